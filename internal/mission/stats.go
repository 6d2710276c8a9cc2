package mission

import (
	"slices"
	"strings"
	"time"
)

// KnownCategories are the categories offered when creating a mission.
var KnownCategories = []string{"personal", "work", "health", "learning", "creative", "social"}

type CategoryStat struct {
	Name      string
	Count     int
	Completed int
}

type Stats struct {
	Total            int
	Completed        int
	CompletionRate   float64 // percent
	DueToday         int
	HighPriorityOpen int
	MinutesRemaining int
	Categories       []CategoryStat
}

// Summarize computes the mission-control figures for todos at now.
func Summarize(todos []Todo, now time.Time, loc *time.Location) Stats {
	st := Stats{Total: len(todos)}
	byCat := make(map[string]*CategoryStat)
	for _, t := range todos {
		if t.Completed {
			st.Completed++
		} else {
			st.MinutesRemaining += t.EstimatedTime
			if t.Priority == PriorityHigh {
				st.HighPriorityOpen++
			}
		}
		if t.DueDate != nil && SameDay(*t.DueDate, now, loc) {
			st.DueToday++
		}
		if t.Category == "" {
			continue
		}
		c, ok := byCat[t.Category]
		if !ok {
			c = &CategoryStat{Name: t.Category}
			byCat[t.Category] = c
		}
		c.Count++
		if t.Completed {
			c.Completed++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = float64(st.Completed) / float64(st.Total) * 100
	}

	for _, name := range KnownCategories {
		if c, ok := byCat[name]; ok {
			st.Categories = append(st.Categories, *c)
			delete(byCat, name)
		}
	}
	var extra []CategoryStat
	for _, c := range byCat {
		extra = append(extra, *c)
	}
	slices.SortFunc(extra, func(a, b CategoryStat) int { return strings.Compare(a.Name, b.Name) })
	st.Categories = append(st.Categories, extra...)
	return st
}

type DayCount struct {
	Date  string // YYYY-MM-DD
	Count int
}

// CompletionsByDay counts completions for each calendar day in [from, to).
// Every day in the range is present, including days with no completions.
func CompletionsByDay(todos []Todo, from, to time.Time, loc *time.Location) []DayCount {
	if loc == nil {
		loc = time.Local
	}
	counts := make(map[string]int)
	for _, t := range todos {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		counts[DateKey(*t.CompletedAt, loc)]++
	}

	start := from.In(loc)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	var out []DayCount
	for d := start; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		out = append(out, DayCount{Date: key, Count: counts[key]})
	}
	return out
}
