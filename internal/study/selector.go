// Package study assembles the work queue for a study session: items whose
// review date has elapsed plus a bounded batch of not-yet-studied items.
// Everything here is read-only; scheduling records are only ever mutated by
// the review service.
package study

import (
	"context"
	"fmt"
	"time"

	"github.com/mkravets/glossa/internal/store"
)

// Default per-session caps. Independent bounds keep a large review backlog
// from crowding new material out of a session, and vice versa.
const (
	DefaultMaxNew    = 20
	DefaultMaxReview = 100
)

// Caps bounds one study session. Zero values take the defaults.
type Caps struct {
	MaxNew    int
	MaxReview int
}

func (c Caps) normalized() Caps {
	if c.MaxNew <= 0 {
		c.MaxNew = DefaultMaxNew
	}
	if c.MaxReview <= 0 {
		c.MaxReview = DefaultMaxReview
	}
	return c
}

// Source is the read side of the scheduling store the selector needs.
// *store.ReviewRepo implements it.
type Source interface {
	Due(ctx context.Context, ownerID string, now time.Time, limit int) ([]store.StudyItem, error)
	New(ctx context.Context, ownerID string, limit int) ([]store.StudyItem, error)
}

// Order controls how the queue interleaves new and due items.
type Order int

const (
	// NewFirst serves new items before the due backlog, the default.
	NewFirst Order = iota
	// DueFirst clears the due backlog before introducing new items.
	DueFirst
)

// Queue is one session's worth of work.
type Queue struct {
	Items    []store.StudyItem
	NewCount int
	DueCount int
}

// Selector builds study queues from a scheduling source.
type Selector struct {
	src   Source
	order Order
}

// NewSelector creates a Selector with the given ordering convention.
func NewSelector(src Source, order Order) *Selector {
	return &Selector{src: src, order: order}
}

// Due returns the owner's due items, oldest overdue first, capped at
// caps.MaxReview.
func (s *Selector) Due(ctx context.Context, ownerID string, now time.Time, caps Caps) ([]store.StudyItem, error) {
	caps = caps.normalized()
	items, err := s.src.Due(ctx, ownerID, now, caps.MaxReview)
	if err != nil {
		return nil, fmt.Errorf("due items: %w", err)
	}
	return items, nil
}

// New returns the owner's unseen items in insertion order, capped at
// caps.MaxNew.
func (s *Selector) New(ctx context.Context, ownerID string, caps Caps) ([]store.StudyItem, error) {
	caps = caps.normalized()
	items, err := s.src.New(ctx, ownerID, caps.MaxNew)
	if err != nil {
		return nil, fmt.Errorf("new items: %w", err)
	}
	return items, nil
}

// BuildQueue assembles the session queue, applying both caps independently.
func (s *Selector) BuildQueue(ctx context.Context, ownerID string, now time.Time, caps Caps) (*Queue, error) {
	due, err := s.Due(ctx, ownerID, now, caps)
	if err != nil {
		return nil, err
	}
	fresh, err := s.New(ctx, ownerID, caps)
	if err != nil {
		return nil, err
	}

	q := &Queue{
		Items:    make([]store.StudyItem, 0, len(due)+len(fresh)),
		NewCount: len(fresh),
		DueCount: len(due),
	}
	switch s.order {
	case DueFirst:
		q.Items = append(q.Items, due...)
		q.Items = append(q.Items, fresh...)
	default:
		q.Items = append(q.Items, fresh...)
		q.Items = append(q.Items, due...)
	}
	return q, nil
}
