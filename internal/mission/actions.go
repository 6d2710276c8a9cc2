package mission

import (
	"strings"
	"time"
)

// Action is a state transition request interpreted by Reduce.
type Action interface {
	Kind() string
	isAction()
}

type AddTodo struct {
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
	Draft Draft     `json:"draft"`
}

type ToggleTodo struct {
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

type DeleteTodo struct {
	ID string `json:"id"`
}

type EditTodo struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Priority      Priority   `json:"priority"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Category      string     `json:"category,omitempty"`
	EstimatedTime int        `json:"estimatedTime,omitempty"`
}

// ReorderTodos replaces the todo list wholesale.
type ReorderTodos struct {
	Todos []Todo `json:"todos"`
}

type SetFilter struct {
	Filter Filter `json:"filter"`
}

type ToggleTheme struct{}

type UnlockAchievement struct {
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

type ToggleSound struct{}

type SetDailyQuote struct {
	Quote string `json:"quote"`
}

// LoadState merges a persisted snapshot over DefaultState.
type LoadState struct {
	Snapshot Snapshot `json:"snapshot"`
}

type ToggleCommandPalette struct{}

type ToggleFocusMode struct{}

func (AddTodo) Kind() string              { return "ADD_TODO" }
func (ToggleTodo) Kind() string           { return "TOGGLE_TODO" }
func (DeleteTodo) Kind() string           { return "DELETE_TODO" }
func (EditTodo) Kind() string             { return "EDIT_TODO" }
func (ReorderTodos) Kind() string         { return "REORDER_TODOS" }
func (SetFilter) Kind() string            { return "SET_FILTER" }
func (ToggleTheme) Kind() string          { return "TOGGLE_THEME" }
func (UnlockAchievement) Kind() string    { return "UNLOCK_ACHIEVEMENT" }
func (ToggleSound) Kind() string          { return "TOGGLE_SOUND" }
func (SetDailyQuote) Kind() string        { return "SET_DAILY_QUOTE" }
func (LoadState) Kind() string            { return "LOAD_STATE" }
func (ToggleCommandPalette) Kind() string { return "TOGGLE_COMMAND_PALETTE" }
func (ToggleFocusMode) Kind() string      { return "TOGGLE_FOCUS_MODE" }

func (AddTodo) isAction()              {}
func (ToggleTodo) isAction()           {}
func (DeleteTodo) isAction()           {}
func (EditTodo) isAction()             {}
func (ReorderTodos) isAction()         {}
func (SetFilter) isAction()            {}
func (ToggleTheme) isAction()          {}
func (UnlockAchievement) isAction()    {}
func (ToggleSound) isAction()          {}
func (SetDailyQuote) isAction()        {}
func (LoadState) isAction()            {}
func (ToggleCommandPalette) isAction() {}
func (ToggleFocusMode) isAction()      {}

// Stamp fills the identifier and instant an action needs but the caller left
// zero. Reduce never reads the clock, so every time-dependent action must be
// stamped before it is reduced.
func Stamp(a Action, now time.Time, newID func() string) Action {
	switch a := a.(type) {
	case AddTodo:
		if a.ID == "" {
			a.ID = newID()
		}
		if a.At.IsZero() {
			a.At = now
		}
		return a
	case ToggleTodo:
		if a.At.IsZero() {
			a.At = now
		}
		return a
	case UnlockAchievement:
		if a.At.IsZero() {
			a.At = now
		}
		return a
	}
	return a
}

// Validate checks user-supplied fields and returns the normalized action.
func Validate(a Action) (Action, error) {
	switch a := a.(type) {
	case AddTodo:
		text, priority, err := normalize(a.Draft.Text, a.Draft.Priority)
		if err != nil {
			return nil, err
		}
		a.Draft.Text, a.Draft.Priority = text, priority
		a.Draft.Category = strings.TrimSpace(a.Draft.Category)
		return a, nil
	case EditTodo:
		text, priority, err := normalize(a.Text, a.Priority)
		if err != nil {
			return nil, err
		}
		a.Text, a.Priority = text, priority
		a.Category = strings.TrimSpace(a.Category)
		return a, nil
	case SetFilter:
		if !a.Filter.Valid() {
			return nil, ErrInvalidFilter
		}
		return a, nil
	}
	return a, nil
}

func normalize(text string, p Priority) (string, Priority, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", ErrEmptyText
	}
	if p == "" {
		p = PriorityMedium
	}
	if !p.Valid() {
		return "", "", ErrInvalidPriority
	}
	return text, p, nil
}
