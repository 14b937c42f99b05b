package deck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkravets/glossa/internal/store"
)

// memItems is an in-memory ItemStore keyed by (kind, deck, front).
type memItems struct {
	items  map[string]*store.Item
	nextID int
}

func newMemItems() *memItems {
	return &memItems{items: make(map[string]*store.Item)}
}

func (m *memItems) key(kind store.ItemKind, deck, front string) string {
	return fmt.Sprintf("%s/%s/%s", kind, deck, front)
}

func (m *memItems) FindByFront(_ context.Context, kind store.ItemKind, deck, front string) (*store.Item, error) {
	item, ok := m.items[m.key(kind, deck, front)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return item, nil
}

func (m *memItems) Create(_ context.Context, item *store.Item) error {
	m.nextID++
	item.ID = fmt.Sprintf("item-%d", m.nextID)
	m.items[m.key(item.Kind, item.Deck, item.Front)] = item
	return nil
}

func (m *memItems) UpdateBack(_ context.Context, id, back string) error {
	for _, item := range m.items {
		if item.ID == id {
			item.Back = back
			return nil
		}
	}
	return store.ErrNotFound
}

type memTracker struct {
	tracked map[string]int
	err     error
}

func (m *memTracker) Track(_ context.Context, ownerID, itemID string) error {
	if m.err != nil {
		return m.err
	}
	if m.tracked == nil {
		m.tracked = make(map[string]int)
	}
	m.tracked[itemID]++
	return nil
}

func writeDeck(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImport_CreatesAndTracks(t *testing.T) {
	items := newMemItems()
	tracker := &memTracker{}
	im := NewImporter(items, tracker)

	path := writeDeck(t, "la casa,house\nel perro,dog\nla manzana,apple\n")
	result, err := im.Import(context.Background(), "u1", "spanish-a1", path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if result.TotalProcessed != 3 || result.Created != 3 {
		t.Errorf("result = %+v, want 3 processed, 3 created", result)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v", result.Errors)
	}
	if len(tracker.tracked) != 3 {
		t.Errorf("tracked %d items, want 3", len(tracker.tracked))
	}
	got, err := items.FindByFront(context.Background(), store.KindCard, "spanish-a1", "el perro")
	if err != nil {
		t.Fatal(err)
	}
	if got.Back != "dog" {
		t.Errorf("Back = %q, want dog", got.Back)
	}
}

func TestImport_ReimportUpdatesAndSkips(t *testing.T) {
	items := newMemItems()
	tracker := &memTracker{}
	im := NewImporter(items, tracker)
	ctx := context.Background()

	first := writeDeck(t, "la casa,house\nel perro,dog\n")
	if _, err := im.Import(ctx, "u1", "spanish-a1", first); err != nil {
		t.Fatal(err)
	}

	// Same deck again: one translation changed, one identical.
	second := writeDeck(t, "la casa,the house\nel perro,dog\n")
	result, err := im.Import(ctx, "u1", "spanish-a1", second)
	if err != nil {
		t.Fatal(err)
	}

	if result.Created != 0 || result.Updated != 1 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 0 created, 1 updated, 1 skipped", result)
	}
	got, _ := items.FindByFront(ctx, store.KindCard, "spanish-a1", "la casa")
	if got.Back != "the house" {
		t.Errorf("Back = %q, want updated translation", got.Back)
	}
}

func TestImport_ReportsBadRows(t *testing.T) {
	im := NewImporter(newMemItems(), &memTracker{})

	path := writeDeck(t, "la casa,house\nmissing-back\n,orphan\n")
	result, err := im.Import(context.Background(), "u1", "d", path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("Created = %d, want 1", result.Created)
	}
	if len(result.Errors) != 2 {
		t.Errorf("Errors = %v, want 2 row errors", result.Errors)
	}
}

func TestImport_UnsupportedExtension(t *testing.T) {
	im := NewImporter(newMemItems(), &memTracker{})

	_, err := im.Import(context.Background(), "u1", "d", "deck.pdf")
	if err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}

func TestImport_TrackFailureIsPerRow(t *testing.T) {
	items := newMemItems()
	tracker := &memTracker{err: errors.New("db gone")}
	im := NewImporter(items, tracker)

	path := writeDeck(t, "la casa,house\n")
	result, err := im.Import(context.Background(), "u1", "d", path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Created != 0 || len(result.Errors) != 1 {
		t.Errorf("result = %+v, want the row reported as an error", result)
	}
}

func TestImport_MissingFile(t *testing.T) {
	im := NewImporter(newMemItems(), &memTracker{})

	_, err := im.Import(context.Background(), "u1", "d", filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
