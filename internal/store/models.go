package store

import "time"

// Entry is one row of the key-value table.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// ActionRecord is a journaled action. Payload is the action's JSON encoding.
type ActionRecord struct {
	ID      int64
	Kind    string
	Payload string
	At      time.Time
}

// ActionFilter is used to filter the action journal in queries.
type ActionFilter struct {
	Kind  string
	From  *time.Time
	To    *time.Time
	Limit int
}

type FocusStatus string

const (
	FocusRunning   FocusStatus = "running"
	FocusCompleted FocusStatus = "completed"
	FocusCancelled FocusStatus = "cancelled"
)

type FocusSession struct {
	ID          int64
	TodoID      string
	Duration    time.Duration
	Status      FocusStatus
	StartedAt   time.Time
	CompletedAt *time.Time
}
