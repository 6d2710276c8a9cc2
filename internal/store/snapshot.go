package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sadopc/novanotes/internal/mission"
)

const (
	StateKey     = "space-todo-state"
	QuoteDateKey = "space-todo-quote-date"
)

// ErrCorruptSnapshot is returned by LoadState when the stored state cannot be
// parsed.
var ErrCorruptSnapshot = errors.New("corrupt state snapshot")

// SaveState overwrites the stored snapshot with st. Instants are written in
// UTC.
func (s *Store) SaveState(st mission.AppState) error {
	data, err := json.Marshal(mission.SnapshotOf(st))
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return s.Set(StateKey, string(data))
}

// LoadState returns the stored snapshot, or nil when nothing has been saved.
func (s *Store) LoadState() (*mission.Snapshot, error) {
	raw, ok, err := s.Get(StateKey)
	if err != nil || !ok {
		return nil, err
	}
	var snap mission.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

// QuoteDate returns the YYYY-MM-DD day the quote was last picked, or "".
func (s *Store) QuoteDate() (string, error) {
	v, _, err := s.Get(QuoteDateKey)
	return v, err
}

func (s *Store) SetQuoteDate(day string) error {
	return s.Set(QuoteDateKey, day)
}
