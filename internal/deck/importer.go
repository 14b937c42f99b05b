// Package deck imports flashcard decks from spreadsheet files. Imported
// cards become items tracked by the review scheduler; re-importing a deck
// updates changed translations without touching review progress.
package deck

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mkravets/glossa/internal/store"
)

// ItemStore is the item persistence the importer needs. *store.ItemRepo
// implements it.
type ItemStore interface {
	FindByFront(ctx context.Context, kind store.ItemKind, deck, front string) (*store.Item, error)
	Create(ctx context.Context, item *store.Item) error
	UpdateBack(ctx context.Context, id, back string) error
}

// Tracker registers imported items into the learner's curriculum.
// *review.Service implements it.
type Tracker interface {
	Track(ctx context.Context, ownerID, itemID string) error
}

// Result summarizes one import run.
type Result struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// Importer reads deck files and persists their cards.
type Importer struct {
	items   ItemStore
	tracker Tracker
}

// NewImporter creates an Importer.
func NewImporter(items ItemStore, tracker Tracker) *Importer {
	return &Importer{items: items, tracker: tracker}
}

// card is one parsed row: front on column A, back on column B.
type card struct {
	front string
	back  string
}

// Import reads the deck file at path and imports its cards for the owner.
// The file format is chosen by extension: .csv, or .xlsx via excelize.
// Per-row problems are collected into Result.Errors; only file-level
// failures abort the run.
func (im *Importer) Import(ctx context.Context, ownerID, deckName, path string) (*Result, error) {
	var (
		cards []card
		errs  []string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		cards, errs, err = readCSV(path)
	case ".xlsx":
		cards, errs, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("deck: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: errs}
	for _, c := range cards {
		result.TotalProcessed++
		disp, err := im.importCard(ctx, ownerID, deckName, c)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%q: %v", c.front, err))
			continue
		}
		switch disp {
		case created:
			result.Created++
		case updated:
			result.Updated++
		case skipped:
			result.Skipped++
		}
	}
	return result, nil
}

type disposition int

const (
	created disposition = iota
	updated
	skipped
)

// importCard upserts one card and tracks it for the owner.
func (im *Importer) importCard(ctx context.Context, ownerID, deckName string, c card) (disposition, error) {
	existing, err := im.items.FindByFront(ctx, store.KindCard, deckName, c.front)
	switch {
	case err == nil:
		disp := skipped
		if existing.Back != c.back {
			if err := im.items.UpdateBack(ctx, existing.ID, c.back); err != nil {
				return 0, err
			}
			disp = updated
		}
		return disp, im.tracker.Track(ctx, ownerID, existing.ID)
	case errors.Is(err, store.ErrNotFound):
		item := &store.Item{Kind: store.KindCard, Deck: deckName, Front: c.front, Back: c.back}
		if err := im.items.Create(ctx, item); err != nil {
			return 0, err
		}
		return created, im.tracker.Track(ctx, ownerID, item.ID)
	default:
		return 0, err
	}
}

// readCSV parses front,back rows. Rows with a missing side are reported,
// not fatal.
func readCSV(path string) ([]card, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open deck: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var cards []card
	var errs []string
	rowNum := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		rowNum++
		c, ok := parseRow(row)
		if !ok {
			errs = append(errs, fmt.Sprintf("row %d: need front and back", rowNum))
			continue
		}
		cards = append(cards, c)
	}
	return cards, errs, nil
}

// readXLSX parses the first sheet of an Excel workbook, skipping the
// header row.
func readXLSX(path string) ([]card, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open deck: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var cards []card
	var errs []string
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		c, ok := parseRow(row)
		if !ok {
			errs = append(errs, fmt.Sprintf("row %d: need front and back", i+1))
			continue
		}
		cards = append(cards, c)
	}
	return cards, errs, nil
}

// parseRow extracts a card from a spreadsheet row.
func parseRow(row []string) (card, bool) {
	var c card
	if len(row) > 0 {
		c.front = strings.TrimSpace(row[0])
	}
	if len(row) > 1 {
		c.back = strings.TrimSpace(row[1])
	}
	if c.front == "" || c.back == "" {
		return card{}, false
	}
	return c, true
}
