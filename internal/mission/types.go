package mission

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrEmptyText       = errors.New("mission text is empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrNotFound        = errors.New("mission not found")
	ErrAmbiguousID     = errors.New("ambiguous mission id")
	ErrInvalidDate     = errors.New("due date must look like 2026-03-14")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterPending:
		return true
	}
	return false
}

type Theme string

const (
	ThemeNebula Theme = "nebula"
	ThemeGalaxy Theme = "galaxy"
)

func (t Theme) Valid() bool {
	return t == ThemeNebula || t == ThemeGalaxy
}

// Todo is a single mission. CompletedAt is set exactly when Completed is true.
type Todo struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Completed     bool       `json:"completed"`
	Priority      Priority   `json:"priority"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Category      string     `json:"category,omitempty"`
	IsRecurring   bool       `json:"isRecurring,omitempty"`
	EstimatedTime int        `json:"estimatedTime,omitempty"` // minutes
}

// Draft holds the user-supplied fields of a new mission.
type Draft struct {
	Text          string     `json:"text"`
	Completed     bool       `json:"completed"`
	Priority      Priority   `json:"priority"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Category      string     `json:"category,omitempty"`
	IsRecurring   bool       `json:"isRecurring,omitempty"`
	EstimatedTime int        `json:"estimatedTime,omitempty"`
}

type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// AppState is the aggregate root owned by the store.
type AppState struct {
	Todos              []Todo        `json:"todos"`
	Filter             Filter        `json:"filter"`
	Theme              Theme         `json:"theme"`
	Achievements       []Achievement `json:"achievements"`
	SoundEnabled       bool          `json:"soundEnabled"`
	DailyQuote         string        `json:"dailyQuote"`
	ShowCommandPalette bool          `json:"showCommandPalette"`
	FocusMode          bool          `json:"focusMode"`
}

// Snapshot is a persisted AppState in which any field may be missing.
type Snapshot struct {
	Todos              *[]Todo        `json:"todos,omitempty"`
	Filter             *Filter        `json:"filter,omitempty"`
	Theme              *Theme         `json:"theme,omitempty"`
	Achievements       *[]Achievement `json:"achievements,omitempty"`
	SoundEnabled       *bool          `json:"soundEnabled,omitempty"`
	DailyQuote         *string        `json:"dailyQuote,omitempty"`
	ShowCommandPalette *bool          `json:"showCommandPalette,omitempty"`
	FocusMode          *bool          `json:"focusMode,omitempty"`
}

// SnapshotOf returns a snapshot with every field of s present and every
// instant in UTC. It is the persisted form of s.
func SnapshotOf(s AppState) Snapshot {
	s = s.Clone()
	for i := range s.Todos {
		t := &s.Todos[i]
		t.CreatedAt = t.CreatedAt.UTC()
		t.DueDate = utcTime(t.DueDate)
		t.CompletedAt = utcTime(t.CompletedAt)
	}
	for i := range s.Achievements {
		s.Achievements[i].UnlockedAt = utcTime(s.Achievements[i].UnlockedAt)
	}
	return Snapshot{
		Todos:              &s.Todos,
		Filter:             &s.Filter,
		Theme:              &s.Theme,
		Achievements:       &s.Achievements,
		SoundEnabled:       &s.SoundEnabled,
		DailyQuote:         &s.DailyQuote,
		ShowCommandPalette: &s.ShowCommandPalette,
		FocusMode:          &s.FocusMode,
	}
}

// DefaultState is the value the store starts from before rehydration.
func DefaultState() AppState {
	return AppState{
		Todos:        []Todo{},
		Filter:       FilterAll,
		Theme:        ThemeNebula,
		Achievements: Catalog(),
		SoundEnabled: true,
		DailyQuote:   quotes[0],
	}
}

// Clone returns a copy of s that shares no mutable memory with it.
func (s AppState) Clone() AppState {
	out := s
	out.Todos = make([]Todo, len(s.Todos))
	for i, t := range s.Todos {
		out.Todos[i] = t.clone()
	}
	out.Achievements = make([]Achievement, len(s.Achievements))
	for i, a := range s.Achievements {
		out.Achievements[i] = a.clone()
	}
	return out
}

func (t Todo) clone() Todo {
	t.DueDate = cloneTime(t.DueDate)
	t.CompletedAt = cloneTime(t.CompletedAt)
	return t
}

func (a Achievement) clone() Achievement {
	a.UnlockedAt = cloneTime(a.UnlockedAt)
	return a
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// Find returns the index of the todo with the given id, or -1.
func (s AppState) Find(id string) int {
	return slices.IndexFunc(s.Todos, func(t Todo) bool { return t.ID == id })
}

// Achievement returns the achievement with the given id.
func (s AppState) Achievement(id string) (Achievement, bool) {
	i := slices.IndexFunc(s.Achievements, func(a Achievement) bool { return a.ID == id })
	if i < 0 {
		return Achievement{}, false
	}
	return s.Achievements[i], true
}
