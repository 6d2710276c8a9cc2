package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sadopc/novanotes/internal/mission"
	"github.com/sadopc/novanotes/internal/store"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func newTestDB(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestCore(t *testing.T, db *store.Store, c *clock) *Store {
	t.Helper()
	s := New(db, Options{
		Now:      c.Now,
		NewID:    seqIDs(),
		IntN:     func(int) int { return 3 },
		Location: time.UTC,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Journal:  db,
	})
	if err := s.Rehydrate(context.Background()); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	return s
}

func mustDispatch(t *testing.T, s *Store, a mission.Action) {
	t.Helper()
	if err := s.Dispatch(a); err != nil {
		t.Fatalf("dispatch %s: %v", a.Kind(), err)
	}
}

// ============================================================
// Dispatch
// ============================================================

func TestFirstTaskScenario(t *testing.T) {
	db := newTestDB(t)
	s := newTestCore(t, db, &clock{t0})

	mustDispatch(t, s, mission.AddTodo{Draft: mission.Draft{Text: "Launch probe", Priority: mission.PriorityHigh}})
	st := s.State()
	if len(st.Todos) != 1 || st.Todos[0].ID != "id-001" {
		t.Fatalf("unexpected todos: %+v", st.Todos)
	}
	if !st.Todos[0].CreatedAt.Equal(t0) {
		t.Fatal("AddTodo should be stamped with the store clock")
	}

	mustDispatch(t, s, mission.ToggleTodo{ID: "id-001"})
	st = s.State()
	todo := st.Todos[0]
	if !todo.Completed || todo.CompletedAt == nil {
		t.Fatalf("expected completed todo, got %+v", todo)
	}
	a, _ := st.Achievement(mission.FirstTask)
	if !a.Unlocked || a.UnlockedAt == nil || !a.UnlockedAt.Equal(t0) {
		t.Fatalf("first-task should unlock immediately, got %+v", a)
	}
}

func TestTaskMasterUnlocksOnce(t *testing.T) {
	db := newTestDB(t)
	c := &clock{t0}
	s := newTestCore(t, db, c)

	var unlockedAt time.Time
	for i := 0; i < 12; i++ {
		c.now = t0.Add(time.Duration(i) * time.Minute)
		mustDispatch(t, s, mission.AddTodo{Draft: mission.Draft{Text: fmt.Sprintf("task %d", i)}})
		id := s.State().Todos[0].ID
		mustDispatch(t, s, mission.ToggleTodo{ID: id})
		if i == 9 {
			a, _ := s.State().Achievement(mission.TaskMaster)
			if !a.Unlocked {
				t.Fatal("task-master should unlock at the 10th completion")
			}
			unlockedAt = *a.UnlockedAt
		}
	}

	a, _ := s.State().Achievement(mission.TaskMaster)
	if !a.UnlockedAt.Equal(unlockedAt) {
		t.Fatal("later completions must not touch the unlock time")
	}
	n, err := db.CountActions(mission.UnlockAchievement{}.Kind())
	if err != nil {
		t.Fatal(err)
	}
	// first-task and task-master, each exactly once.
	if n != 2 {
		t.Fatalf("expected 2 unlock actions in the journal, got %d", n)
	}
}

func TestDispatchValidation(t *testing.T) {
	s := newTestCore(t, newTestDB(t), &clock{t0})

	if err := s.Dispatch(mission.AddTodo{Draft: mission.Draft{Text: "   "}}); !errors.Is(err, mission.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if err := s.Dispatch(mission.SetFilter{Filter: "bogus"}); !errors.Is(err, mission.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if len(s.State().Todos) != 0 || s.State().Filter != mission.FilterAll {
		t.Fatal("rejected actions must not change state")
	}
	if err := s.Dispatch(nil); err != nil {
		t.Fatalf("nil action should be a no-op, got %v", err)
	}
}

func TestStateIsACopy(t *testing.T) {
	s := newTestCore(t, newTestDB(t), &clock{t0})
	mustDispatch(t, s, mission.AddTodo{Draft: mission.Draft{Text: "a"}})

	st := s.State()
	st.Todos[0].Text = "mutated"
	st.Achievements[0].Unlocked = true
	if s.State().Todos[0].Text != "a" || s.State().Achievements[0].Unlocked {
		t.Fatal("State must return an independent copy")
	}
}

func TestResolve(t *testing.T) {
	s := newTestCore(t, newTestDB(t), &clock{t0})
	mustDispatch(t, s, mission.AddTodo{Draft: mission.Draft{Text: "a"}})
	mustDispatch(t, s, mission.AddTodo{Draft: mission.Draft{Text: "b"}})

	if _, err := s.Resolve("id-00"); !errors.Is(err, mission.ErrAmbiguousID) {
		t.Fatalf("expected ambiguous, got %v", err)
	}
	got, err := s.Resolve("id-002")
	if err != nil || got.Text != "b" {
		t.Fatalf("Resolve = %+v, %v", got, err)
	}
}

// ============================================================
// Persistence
// ============================================================

func TestPersistenceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	c := &clock{t0}
	s := newTestCore(t, db, c)

	due := t0.Add(48 * time.Hour)
	mustDispatch(t, s, mission.AddTodo{Draft: mission.Draft{Text: "Map nebula", Priority: mission.PriorityLow, DueDate: &due, Category: "learning", EstimatedTime: 40}})
	mustDispatch(t, s, mission.AddTodo{Draft: mission.Draft{Text: "Launch probe"}})
	mustDispatch(t, s, mission.ToggleTodo{ID: "id-002"})
	mustDispatch(t, s, mission.ToggleTheme{})
	mustDispatch(t, s, mission.ToggleSound{})
	mustDispatch(t, s, mission.SetFilter{Filter: mission.FilterPending})
	want := s.State()

	restored := newTestCore(t, db, c)
	got := restored.State()
	if len(got.Todos) != 2 || got.Todos[0].Text != want.Todos[0].Text || got.Todos[1].ID != "id-001" {
		t.Fatalf("todos not restored: %+v", got.Todos)
	}
	if !got.Todos[1].DueDate.Equal(due) || got.Todos[1].EstimatedTime != 40 {
		t.Fatalf("todo fields not restored: %+v", got.Todos[1])
	}
	if got.Theme != mission.ThemeGalaxy || got.SoundEnabled || got.Filter != mission.FilterPending {
		t.Fatalf("settings not restored: %+v", got)
	}
	if a, _ := got.Achievement(mission.FirstTask); !a.Unlocked {
		t.Fatal("achievements not restored")
	}
	if got.DailyQuote != want.DailyQuote {
		t.Fatal("quote should not change on the same day")
	}
}

func TestLoadOnlyTodos(t *testing.T) {
	db := newTestDB(t)
	db.Set(store.StateKey, `{"todos":[{"id":"x","text":"Orbit","completed":false,"priority":"low","createdAt":"2026-03-14T09:30:00Z"}]}`)

	s := newTestCore(t, db, &clock{t0})
	st := s.State()
	if len(st.Todos) != 1 || st.Todos[0].ID != "x" {
		t.Fatalf("todos not loaded: %+v", st.Todos)
	}
	def := mission.DefaultState()
	if st.Theme != def.Theme || st.Filter != def.Filter || st.SoundEnabled != def.SoundEnabled {
		t.Fatalf("missing fields should come from defaults: %+v", st)
	}
	if len(st.Achievements) != len(mission.Catalog()) {
		t.Fatal("missing achievements should come from the catalog")
	}
}

func TestCorruptSnapshotFallsBack(t *testing.T) {
	db := newTestDB(t)
	db.Set(store.StateKey, `{"todos": oops`)

	s := newTestCore(t, db, &clock{t0})
	if !s.Ready() {
		t.Fatal("store should become ready despite corrupt data")
	}
	if len(s.State().Todos) != 0 {
		t.Fatal("corrupt snapshot should fall back to defaults")
	}
	if _, err := db.LoadState(); err != nil {
		t.Fatalf("rehydrate should overwrite the corrupt snapshot, got %v", err)
	}
}

func TestNoSaveBeforeReady(t *testing.T) {
	db := newTestDB(t)
	s := New(db, Options{Now: (&clock{t0}).Now, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	mustDispatch(t, s, mission.ToggleTheme{})
	if snap, _ := db.LoadState(); snap != nil {
		t.Fatal("state must not be saved before rehydration")
	}
	if s.Ready() {
		t.Fatal("store should not be ready before Rehydrate")
	}
}

// ============================================================
// Rehydration
// ============================================================

func TestDailyQuoteOncePerDay(t *testing.T) {
	db := newTestDB(t)
	c := &clock{t0}
	s := newTestCore(t, db, c)

	quotes := mission.Quotes()
	if s.State().DailyQuote != quotes[3] {
		t.Fatalf("expected quote 3, got %q", s.State().DailyQuote)
	}
	if d, _ := db.QuoteDate(); d != "2026-03-14" {
		t.Fatalf("expected quote date 2026-03-14, got %q", d)
	}

	c.now = t0.Add(time.Hour)
	same := New(db, Options{Now: c.Now, IntN: func(int) int { return 7 }, Location: time.UTC})
	same.Rehydrate(context.Background())
	if same.State().DailyQuote != quotes[3] {
		t.Fatal("quote must not change within the same day")
	}

	c.now = t0.Add(24 * time.Hour)
	next := New(db, Options{Now: c.Now, IntN: func(int) int { return 7 }, Location: time.UTC})
	next.Rehydrate(context.Background())
	if next.State().DailyQuote != quotes[7] {
		t.Fatal("a new day should pick a new quote")
	}
	if d, _ := db.QuoteDate(); d != "2026-03-15" {
		t.Fatalf("expected quote date 2026-03-15, got %q", d)
	}
}

func TestRehydrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	s := newTestCore(t, db, &clock{t0})
	mustDispatch(t, s, mission.AddTodo{Draft: mission.Draft{Text: "keep"}})

	if err := s.Rehydrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(s.State().Todos) != 1 {
		t.Fatal("second Rehydrate must not reload state")
	}
}

func TestRehydrateCancelled(t *testing.T) {
	s := New(newTestDB(t), Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Rehydrate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.Ready() {
		t.Fatal("cancelled rehydration must not mark the store ready")
	}
}

type failingPersister struct{ saves int }

func (f *failingPersister) SaveState(mission.AppState) error {
	f.saves++
	return errors.New("disk full")
}
func (f *failingPersister) LoadState() (*mission.Snapshot, error) { return nil, errors.New("io error") }
func (f *failingPersister) QuoteDate() (string, error)            { return "", errors.New("io error") }
func (f *failingPersister) SetQuoteDate(string) error             { return errors.New("io error") }

func TestStorageFailuresAreNotFatal(t *testing.T) {
	p := &failingPersister{}
	s := New(p, Options{Now: (&clock{t0}).Now, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	if err := s.Rehydrate(context.Background()); err != nil {
		t.Fatalf("storage errors should be logged, not returned: %v", err)
	}
	if err := s.Dispatch(mission.AddTodo{Draft: mission.Draft{Text: "still works"}}); err != nil {
		t.Fatal(err)
	}
	if len(s.State().Todos) != 1 {
		t.Fatal("dispatch should apply even when saving fails")
	}
	if p.saves != 2 {
		t.Fatalf("expected 2 save attempts, got %d", p.saves)
	}
}
