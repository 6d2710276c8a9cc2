package mission

import (
	"fmt"
	"slices"
	"strings"
)

// Visible returns the todos shown under f, in list order.
func Visible(todos []Todo, f Filter) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		switch f {
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

type Counts struct {
	All       int
	Pending   int
	Completed int
}

func CountsOf(todos []Todo) Counts {
	c := Counts{All: len(todos)}
	for _, t := range todos {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

// Resolve finds the todo whose id is id or starts with it. Prefixes matching
// more than one todo are rejected.
func Resolve(todos []Todo, id string) (Todo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Todo{}, ErrNotFound
	}
	var match *Todo
	for i := range todos {
		if todos[i].ID == id {
			return todos[i].clone(), nil
		}
		if strings.HasPrefix(todos[i].ID, id) {
			if match != nil {
				return Todo{}, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
			}
			match = &todos[i]
		}
	}
	if match == nil {
		return Todo{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return match.clone(), nil
}

// Move returns a copy of todos with the todo id moved to index to, clamped to
// the list bounds. The result is suitable for ReorderTodos.
func Move(todos []Todo, id string, to int) ([]Todo, error) {
	from := -1
	for i, t := range todos {
		if t.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	to = max(0, min(to, len(todos)-1))
	out := make([]Todo, 0, len(todos))
	moved := todos[from]
	for i, t := range todos {
		if i == from {
			continue
		}
		out = append(out, t)
	}
	return slices.Insert(out, to, moved), nil
}

// ShortID is the display form of a todo id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Added returns the first todo in next whose id is absent from prev.
func Added(prev, next []Todo) (Todo, bool) {
	seen := make(map[string]bool, len(prev))
	for _, t := range prev {
		seen[t.ID] = true
	}
	for _, t := range next {
		if !seen[t.ID] {
			return t.clone(), true
		}
	}
	return Todo{}, false
}
