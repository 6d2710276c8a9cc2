package mission

import (
	"fmt"
	"strings"
	"time"
)

// Achievement ids.
const (
	FirstTask      = "first-task"
	TaskMaster     = "task-master"
	Constellation  = "constellation"
	GalaxyExplorer = "galaxy-explorer"
	PriorityPilot  = "priority-pilot"
	TimeTraveler   = "time-traveler"
	FocusMaster    = "focus-master"
	CategoryKing   = "category-king"
)

type rule struct {
	achievement Achievement
	met         func(facts) bool
}

var rules = []rule{
	{Achievement{ID: FirstTask, Name: "First Mission", Description: "Complete your first task", Icon: "🚀"},
		func(f facts) bool { return f.completed >= 1 }},
	{Achievement{ID: TaskMaster, Name: "Task Master", Description: "Complete 10 tasks", Icon: "⭐"},
		func(f facts) bool { return f.completed >= 10 }},
	{Achievement{ID: Constellation, Name: "Constellation", Description: "Complete 25 tasks", Icon: "✨"},
		func(f facts) bool { return f.completed >= 25 }},
	{Achievement{ID: GalaxyExplorer, Name: "Galaxy Explorer", Description: "Complete 50 tasks", Icon: "🌌"},
		func(f facts) bool { return f.completed >= 50 }},
	{Achievement{ID: PriorityPilot, Name: "Priority Pilot", Description: "Complete 5 high-priority tasks", Icon: "🛸"},
		func(f facts) bool { return f.completedHigh >= 5 }},
	{Achievement{ID: TimeTraveler, Name: "Time Traveler", Description: "Complete a task on its due date", Icon: "⏰"},
		func(f facts) bool { return f.onDueDay }},
	{Achievement{ID: FocusMaster, Name: "Focus Master", Description: "Complete 5 focus sessions", Icon: "🎯"},
		func(f facts) bool { return f.focusMode && f.completed >= 5 }},
	{Achievement{ID: CategoryKing, Name: "Category King", Description: "Complete tasks in all categories", Icon: "👑"},
		func(f facts) bool { return f.categories >= 3 }},
}

// Catalog returns the fixed achievement list, all locked.
func Catalog() []Achievement {
	out := make([]Achievement, len(rules))
	for i, r := range rules {
		out[i] = r.achievement
	}
	return out
}

type facts struct {
	completed     int
	completedHigh int
	categories    int
	onDueDay      bool
	focusMode     bool
}

func deriveFacts(s AppState, loc *time.Location) facts {
	f := facts{focusMode: s.FocusMode}
	cats := make(map[string]struct{})
	for _, t := range s.Todos {
		if t.Category != "" {
			cats[t.Category] = struct{}{}
		}
		if !t.Completed {
			continue
		}
		f.completed++
		if t.Priority == PriorityHigh {
			f.completedHigh++
		}
		if t.DueDate != nil && t.CompletedAt != nil && SameDay(*t.DueDate, *t.CompletedAt, loc) {
			f.onDueDay = true
		}
	}
	f.categories = len(cats)
	return f
}

// Evaluate returns the ids of achievements whose condition holds in s and that
// are not yet unlocked, in catalog order. Evaluating an unchanged state twice
// yields the same ids, and none once they have been unlocked.
func Evaluate(s AppState, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	f := deriveFacts(s, loc)
	var ids []string
	for _, r := range rules {
		a, ok := s.Achievement(r.achievement.ID)
		if !ok || a.Unlocked {
			continue
		}
		if r.met(f) {
			ids = append(ids, r.achievement.ID)
		}
	}
	return ids
}

// NewlyUnlocked returns the achievements unlocked in next but not in prev.
func NewlyUnlocked(prev, next AppState) []Achievement {
	var out []Achievement
	for _, a := range next.Achievements {
		if !a.Unlocked {
			continue
		}
		if old, ok := prev.Achievement(a.ID); ok && old.Unlocked {
			continue
		}
		out = append(out, a.clone())
	}
	return out
}

// UnlockedCount returns how many achievements in s are unlocked.
func UnlockedCount(s AppState) int {
	n := 0
	for _, a := range s.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DateKey formats t as a locale-independent calendar date in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(time.DateOnly)
}

// ParseDue reads a YYYY-MM-DD date as the last minute of that day in loc. A
// blank string means no due date.
func ParseDue(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d = d.Add(23*time.Hour + 59*time.Minute)
	return &d, nil
}
