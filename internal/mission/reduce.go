package mission

import "slices"

// Reduce returns the state that results from applying a to s. It is pure and
// total: s is never modified, and actions it does not recognize return s.
func Reduce(s AppState, a Action) AppState {
	switch a := a.(type) {
	case AddTodo:
		if a.ID == "" || s.Find(a.ID) >= 0 {
			return s
		}
		t := Todo{
			ID:            a.ID,
			Text:          a.Draft.Text,
			Completed:     a.Draft.Completed,
			Priority:      a.Draft.Priority,
			DueDate:       cloneTime(a.Draft.DueDate),
			CreatedAt:     a.At,
			Category:      a.Draft.Category,
			IsRecurring:   a.Draft.IsRecurring,
			EstimatedTime: a.Draft.EstimatedTime,
		}
		if t.Completed {
			at := a.At
			t.CompletedAt = &at
		}
		out := s
		out.Todos = append([]Todo{t}, s.Todos...)
		return out

	case ToggleTodo:
		return mapTodo(s, a.ID, func(t Todo) Todo {
			t.Completed = !t.Completed
			if t.Completed {
				at := a.At
				t.CompletedAt = &at
			} else {
				t.CompletedAt = nil
			}
			return t
		})

	case DeleteTodo:
		i := s.Find(a.ID)
		if i < 0 {
			return s
		}
		out := s
		out.Todos = slices.Delete(slices.Clone(s.Todos), i, i+1)
		return out

	case EditTodo:
		return mapTodo(s, a.ID, func(t Todo) Todo {
			t.Text = a.Text
			t.Priority = a.Priority
			t.DueDate = cloneTime(a.DueDate)
			t.Category = a.Category
			t.EstimatedTime = a.EstimatedTime
			return t
		})

	case ReorderTodos:
		out := s
		out.Todos = make([]Todo, len(a.Todos))
		for i, t := range a.Todos {
			out.Todos[i] = t.clone()
		}
		return out

	case SetFilter:
		out := s
		out.Filter = a.Filter
		return out

	case ToggleTheme:
		out := s
		if s.Theme == ThemeNebula {
			out.Theme = ThemeGalaxy
		} else {
			out.Theme = ThemeNebula
		}
		return out

	case UnlockAchievement:
		i := slices.IndexFunc(s.Achievements, func(x Achievement) bool { return x.ID == a.ID })
		if i < 0 || s.Achievements[i].Unlocked {
			return s
		}
		out := s
		out.Achievements = slices.Clone(s.Achievements)
		at := a.At
		out.Achievements[i].Unlocked = true
		out.Achievements[i].UnlockedAt = &at
		return out

	case ToggleSound:
		out := s
		out.SoundEnabled = !s.SoundEnabled
		return out

	case SetDailyQuote:
		out := s
		out.DailyQuote = a.Quote
		return out

	case LoadState:
		return merge(a.Snapshot)

	case ToggleCommandPalette:
		out := s
		out.ShowCommandPalette = !s.ShowCommandPalette
		return out

	case ToggleFocusMode:
		out := s
		out.FocusMode = !s.FocusMode
		return out
	}
	return s
}

func mapTodo(s AppState, id string, fn func(Todo) Todo) AppState {
	i := s.Find(id)
	if i < 0 {
		return s
	}
	out := s
	out.Todos = slices.Clone(s.Todos)
	out.Todos[i] = fn(s.Todos[i].clone())
	return out
}

// merge overlays the fields present in snap on DefaultState. Unlock state is
// carried over only for achievements still in the catalog.
func merge(snap Snapshot) AppState {
	out := DefaultState()
	if snap.Todos != nil {
		out.Todos = make([]Todo, 0, len(*snap.Todos))
		for _, t := range *snap.Todos {
			out.Todos = append(out.Todos, t.clone())
		}
	}
	if snap.Filter != nil && snap.Filter.Valid() {
		out.Filter = *snap.Filter
	}
	if snap.Theme != nil && snap.Theme.Valid() {
		out.Theme = *snap.Theme
	}
	if snap.Achievements != nil {
		for _, saved := range *snap.Achievements {
			i := slices.IndexFunc(out.Achievements, func(a Achievement) bool { return a.ID == saved.ID })
			if i < 0 || !saved.Unlocked {
				continue
			}
			out.Achievements[i].Unlocked = true
			out.Achievements[i].UnlockedAt = cloneTime(saved.UnlockedAt)
		}
	}
	if snap.SoundEnabled != nil {
		out.SoundEnabled = *snap.SoundEnabled
	}
	if snap.DailyQuote != nil && *snap.DailyQuote != "" {
		out.DailyQuote = *snap.DailyQuote
	}
	if snap.ShowCommandPalette != nil {
		out.ShowCommandPalette = *snap.ShowCommandPalette
	}
	if snap.FocusMode != nil {
		out.FocusMode = *snap.FocusMode
	}
	return out
}
