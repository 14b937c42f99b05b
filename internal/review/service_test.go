package review

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mkravets/glossa/internal/srs"
	"github.com/mkravets/glossa/internal/store"
)

// memStore is an in-memory StateStore with the same not-found semantics as
// the SQLite repo.
type memStore struct {
	mu      sync.Mutex
	states  map[string]srs.ReviewState
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{states: make(map[string]srs.ReviewState)}
}

func (m *memStore) key(owner, item string) string { return owner + "/" + item }

func (m *memStore) Get(_ context.Context, owner, item string) (srs.ReviewState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs, ok := m.states[m.key(owner, item)]
	if !ok {
		return srs.ReviewState{}, store.ErrNotFound
	}
	return rs, nil
}

func (m *memStore) Upsert(_ context.Context, owner, item string, rs srs.ReviewState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[m.key(owner, item)] = rs
	return nil
}

type memEvents struct {
	mu     sync.Mutex
	events []store.ReviewEventData
}

func (m *memEvents) AppendReview(_ context.Context, data store.ReviewEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, data)
	return nil
}

func newTestService(t *testing.T) (*Service, *memStore, *memEvents) {
	t.Helper()
	sched, err := srs.NewScheduler(srs.Config{})
	if err != nil {
		t.Fatal(err)
	}
	st := newMemStore()
	ev := &memEvents{}
	return NewService(sched, st, ev), st, ev
}

func TestTrack_CreatesFreshState(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Track(ctx, "u1", "item-1"); err != nil {
		t.Fatalf("Track: %v", err)
	}
	rs, err := st.Get(ctx, "u1", "item-1")
	if err != nil {
		t.Fatal(err)
	}
	if rs.State != srs.StateNew || rs.EaseFactor != srs.DefaultEase {
		t.Errorf("tracked state = %+v", rs)
	}
}

func TestTrack_IsIdempotent(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := svc.Track(ctx, "u1", "item-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GradeItem(ctx, "u1", "item-1", srs.GradeCorrect, now); err != nil {
		t.Fatal(err)
	}

	// Re-tracking (a deck re-import) must not reset progress.
	if err := svc.Track(ctx, "u1", "item-1"); err != nil {
		t.Fatal(err)
	}
	rs, _ := st.Get(ctx, "u1", "item-1")
	if rs.State != srs.StateLearning {
		t.Errorf("State = %q after re-track, want learning", rs.State)
	}
}

func TestGradeItem_UntrackedItem(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GradeItem(context.Background(), "u1", "ghost", srs.GradeCorrect, time.Now())
	if !errors.Is(err, ErrNotTracked) {
		t.Errorf("err = %v, want ErrNotTracked", err)
	}
}

func TestGradeItem_AppliesAndLogs(t *testing.T) {
	svc, st, ev := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := svc.Track(ctx, "u1", "item-1"); err != nil {
		t.Fatal(err)
	}
	after, err := svc.GradeItem(ctx, "u1", "item-1", srs.GradeCorrect, now)
	if err != nil {
		t.Fatalf("GradeItem: %v", err)
	}
	if after.State != srs.StateLearning {
		t.Errorf("State = %q, want learning", after.State)
	}

	stored, _ := st.Get(ctx, "u1", "item-1")
	if stored != after {
		t.Error("stored state differs from returned state")
	}

	if len(ev.events) != 1 {
		t.Fatalf("events = %d, want 1", len(ev.events))
	}
	e := ev.events[0]
	if e.Grade != int(srs.GradeCorrect) || e.StateBefore != srs.StateNew || e.StateAfter != srs.StateLearning {
		t.Errorf("event = %+v", e)
	}
}

func TestGradeItem_InvalidGradeLeavesStateUntouched(t *testing.T) {
	svc, st, ev := newTestService(t)
	ctx := context.Background()

	if err := svc.Track(ctx, "u1", "item-1"); err != nil {
		t.Fatal(err)
	}
	before, _ := st.Get(ctx, "u1", "item-1")

	_, err := svc.GradeItem(ctx, "u1", "item-1", srs.Grade(9), time.Now())
	if !errors.Is(err, srs.ErrInvalidGrade) {
		t.Fatalf("err = %v, want ErrInvalidGrade", err)
	}

	after, _ := st.Get(ctx, "u1", "item-1")
	if after != before {
		t.Error("rejected grade mutated stored state")
	}
	if len(ev.events) != 0 {
		t.Errorf("events = %d, want 0", len(ev.events))
	}
}

func TestGradeItem_FailedSaveKeepsPreviousRecord(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Track(ctx, "u1", "item-1"); err != nil {
		t.Fatal(err)
	}
	before, _ := st.Get(ctx, "u1", "item-1")

	st.saveErr = errors.New("disk full")
	_, err := svc.GradeItem(ctx, "u1", "item-1", srs.GradeCorrect, time.Now())
	if err == nil {
		t.Fatal("expected save error")
	}
	st.saveErr = nil

	after, _ := st.Get(ctx, "u1", "item-1")
	if after != before {
		t.Error("failed save left a partial update behind")
	}
}

// Concurrent grades of the same item must serialize: every review sees the
// previous one's write, so TotalReviews counts them all.
func TestGradeItem_ConcurrentSameItem(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := svc.Track(ctx, "u1", "item-1"); err != nil {
		t.Fatal(err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.GradeItem(ctx, "u1", "item-1", srs.GradeCorrect, now.Add(time.Duration(i)*time.Minute))
			if err != nil {
				t.Errorf("GradeItem: %v", err)
			}
		}(i)
	}
	wg.Wait()

	rs, _ := st.Get(ctx, "u1", "item-1")
	if rs.TotalReviews != n {
		t.Errorf("TotalReviews = %d, want %d (lost update)", rs.TotalReviews, n)
	}
}

func TestGradeItem_DifferentItemsInParallel(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	items := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, id := range items {
		if err := svc.Track(ctx, "u1", id); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	for _, id := range items {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := svc.GradeItem(ctx, "u1", id, srs.GradePerfect, now); err != nil {
				t.Errorf("GradeItem(%s): %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	for _, id := range items {
		rs, _ := st.Get(ctx, "u1", id)
		if rs.TotalReviews != 1 {
			t.Errorf("item %s: TotalReviews = %d, want 1", id, rs.TotalReviews)
		}
	}
}
