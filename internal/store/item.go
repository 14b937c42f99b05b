package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ItemKind discriminates the three learnable item kinds. All three share one
// scheduling record shape.
type ItemKind string

const (
	KindVocabulary ItemKind = "vocabulary"
	KindGrammar    ItemKind = "grammar"
	KindCard       ItemKind = "card"
)

// IsValid reports whether k is a known item kind.
func (k ItemKind) IsValid() bool {
	switch k {
	case KindVocabulary, KindGrammar, KindCard:
		return true
	}
	return false
}

// Item is one learnable unit: a vocabulary word, a grammar concept, or an
// imported flashcard.
type Item struct {
	ID        string    `db:"id"`
	Kind      ItemKind  `db:"kind"`
	Front     string    `db:"front"`
	Back      string    `db:"back"`
	Deck      string    `db:"deck"`
	Position  int64     `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

// ItemRepo handles database operations for items.
type ItemRepo struct {
	db *sqlx.DB
}

// Create inserts a new item, assigning a UUID and the next position within
// its kind. The assigned fields are written back to item.
func (r *ItemRepo) Create(ctx context.Context, item *Item) error {
	if !item.Kind.IsValid() {
		return fmt.Errorf("store: invalid item kind %q", item.Kind)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	var maxPos sql.NullInt64
	err := r.db.GetContext(ctx, &maxPos,
		`SELECT MAX(position) FROM items WHERE kind = ?`, item.Kind)
	if err != nil {
		return fmt.Errorf("next position: %w", err)
	}
	item.Position = maxPos.Int64 + 1

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO items (id, kind, front, back, deck, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Kind, item.Front, item.Back, item.Deck, item.Position, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// Get returns the item with the given id, or ErrNotFound.
func (r *ItemRepo) Get(ctx context.Context, id string) (*Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item, `SELECT * FROM items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// FindByFront looks an item up by its natural key, used by deck import to
// detect already-imported cards. Returns ErrNotFound when absent.
func (r *ItemRepo) FindByFront(ctx context.Context, kind ItemKind, deck, front string) (*Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item,
		`SELECT * FROM items WHERE kind = ? AND deck = ? AND front = ?`, kind, deck, front)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, front)
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &item, nil
}

// UpdateBack rewrites an item's back side, used when a re-import carries a
// changed translation.
func (r *ItemRepo) UpdateBack(ctx context.Context, id, back string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET back = ? WHERE id = ?`, back, id)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Count returns the number of items of the given kind, or of all kinds when
// kind is empty.
func (r *ItemRepo) Count(ctx context.Context, kind ItemKind) (int, error) {
	var n int
	var err error
	if kind == "" {
		err = r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM items`)
	} else {
		err = r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM items WHERE kind = ?`, kind)
	}
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
