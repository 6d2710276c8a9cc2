package mission

import (
	"fmt"
	"time"
)

type AlertKind string

const (
	AlertDue     AlertKind = "due"
	AlertOverdue AlertKind = "overdue"
)

type Alert struct {
	ID      string
	TodoID  string
	Kind    AlertKind
	Message string
	DueDate time.Time
}

// Alerts scans open todos for due dates that fall today or on an earlier day.
func Alerts(todos []Todo, now time.Time, loc *time.Location) []Alert {
	if loc == nil {
		loc = time.Local
	}
	today := DateKey(now, loc)
	var out []Alert
	for _, t := range todos {
		if t.Completed || t.DueDate == nil {
			continue
		}
		due := DateKey(*t.DueDate, loc)
		switch {
		case due == today:
			out = append(out, Alert{
				ID:      "due-" + t.ID,
				TodoID:  t.ID,
				Kind:    AlertDue,
				Message: fmt.Sprintf("%q is due today!", t.Text),
				DueDate: *t.DueDate,
			})
		case due < today:
			out = append(out, Alert{
				ID:      "overdue-" + t.ID,
				TodoID:  t.ID,
				Kind:    AlertOverdue,
				Message: fmt.Sprintf("%q is overdue!", t.Text),
				DueDate: *t.DueDate,
			})
		}
	}
	return out
}
