// Package core owns the running application state. All mutation goes through
// Store.Dispatch, which reduces the action, unlocks any achievements the new
// state earns, journals the change and persists the result.
package core

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/novanotes/internal/mission"
)

// Persister is the durable side of the store. SaveState overwrites, LoadState
// returns nil when nothing was saved.
type Persister interface {
	SaveState(mission.AppState) error
	LoadState() (*mission.Snapshot, error)
	QuoteDate() (string, error)
	SetQuoteDate(day string) error
}

// Journal receives every applied action.
type Journal interface {
	AppendAction(kind string, payload []byte, at time.Time) error
}

type Options struct {
	Now      func() time.Time
	NewID    func() string
	IntN     func(int) int
	Location *time.Location
	Logger   *slog.Logger
	Journal  Journal
}

type Store struct {
	mu    sync.Mutex
	p     Persister
	opts  Options
	state mission.AppState
	ready bool
}

// New returns a store holding DefaultState. Call Rehydrate before handing the
// state to a user interface.
func New(p Persister, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.IntN == nil {
		opts.IntN = rand.IntN
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{p: p, opts: opts, state: mission.DefaultState()}
}

// State returns a deep copy of the current state.
func (s *Store) State() mission.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *Store) Location() *time.Location { return s.opts.Location }

func (s *Store) Now() time.Time { return s.opts.Now() }

// Dispatch validates a, applies it and any achievement unlocks it earns, then
// saves the new state. Only validation errors are returned; storage failures
// are logged.
func (s *Store) Dispatch(a mission.Action) error {
	if a == nil {
		return nil
	}
	a, err := mission.Validate(a)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(a)
	if s.ready {
		s.save()
	}
	return nil
}

// apply reduces a and then runs the achievement evaluator until it has
// nothing left to unlock. Must be called with mu held.
func (s *Store) apply(a mission.Action) {
	a = mission.Stamp(a, s.opts.Now(), s.opts.NewID)
	s.state = mission.Reduce(s.state, a)
	s.journal(a)

	for {
		ids := mission.Evaluate(s.state, s.opts.Location)
		if len(ids) == 0 {
			return
		}
		for _, id := range ids {
			unlock := mission.Stamp(mission.UnlockAchievement{ID: id}, s.opts.Now(), s.opts.NewID)
			s.state = mission.Reduce(s.state, unlock)
			s.journal(unlock)
			s.opts.Logger.Info("achievement unlocked", "id", id)
		}
	}
}

func (s *Store) journal(a mission.Action) {
	if s.opts.Journal == nil {
		return
	}
	payload, err := json.Marshal(a)
	if err != nil {
		s.opts.Logger.Warn("encode action", "kind", a.Kind(), "err", err)
		return
	}
	if err := s.opts.Journal.AppendAction(a.Kind(), payload, s.opts.Now()); err != nil {
		s.opts.Logger.Warn("journal action", "kind", a.Kind(), "err", err)
	}
}

func (s *Store) save() {
	if err := s.p.SaveState(s.state); err != nil {
		s.opts.Logger.Error("save state", "err", err)
	}
}

// Rehydrate restores the saved snapshot, picks the daily quote if the day has
// changed since the last pick and marks the store ready. A second call is a
// no-op. Storage failures fall back to defaults and are logged; only a
// cancelled ctx is returned.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	log := s.opts.Logger

	snap, err := s.p.LoadState()
	switch {
	case err != nil:
		log.Warn("load state, starting from defaults", "err", err)
	case snap != nil:
		s.apply(mission.LoadState{Snapshot: *snap})
		log.Debug("state restored", "todos", len(s.state.Todos))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	today := mission.DateKey(s.opts.Now(), s.opts.Location)
	last, err := s.p.QuoteDate()
	if err != nil {
		log.Warn("read quote date", "err", err)
	}
	if last != today {
		s.apply(mission.SetDailyQuote{Quote: mission.PickQuote(s.opts.IntN)})
		if err := s.p.SetQuoteDate(today); err != nil {
			log.Warn("write quote date", "err", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.ready = true
	s.save()
	return nil
}

// Resolve finds a todo by id or unique id prefix.
func (s *Store) Resolve(prefix string) (mission.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mission.Resolve(s.state.Todos, prefix)
}
