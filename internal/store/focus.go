package store

import (
	"database/sql"
	"fmt"
	"time"
)

// StartFocus opens a running focus session of length d, optionally tied to a
// todo.
func (s *Store) StartFocus(todoID string, d time.Duration) (*FocusSession, error) {
	res, err := s.db.Exec(
		`INSERT INTO focus_sessions (todo_id, duration, status, started_at) VALUES (?, ?, ?, ?)`,
		todoID, int64(d/time.Second), FocusRunning, formatTime(s.now()),
	)
	if err != nil {
		return nil, fmt.Errorf("start focus: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetFocus(id)
}

func (s *Store) GetFocus(id int64) (*FocusSession, error) {
	f := &FocusSession{}
	var secs int64
	var status, startedAt string
	var completedAt sql.NullString

	err := s.db.QueryRow(
		`SELECT id, todo_id, duration, status, started_at, completed_at
		 FROM focus_sessions WHERE id = ?`, id,
	).Scan(&f.ID, &f.TodoID, &secs, &status, &startedAt, &completedAt)
	if err != nil {
		return nil, fmt.Errorf("get focus %d: %w", id, err)
	}
	f.Duration = time.Duration(secs) * time.Second
	f.Status = FocusStatus(status)
	f.StartedAt = parseTime(startedAt)
	if completedAt.Valid {
		t := parseTime(completedAt.String)
		f.CompletedAt = &t
	}
	return f, nil
}

func (s *Store) CompleteFocus(id int64) error {
	return s.finishFocus(id, FocusCompleted)
}

func (s *Store) CancelFocus(id int64) error {
	return s.finishFocus(id, FocusCancelled)
}

func (s *Store) finishFocus(id int64, status FocusStatus) error {
	res, err := s.db.Exec(
		`UPDATE focus_sessions SET status = ?, completed_at = ? WHERE id = ? AND status = ?`,
		status, formatTime(s.now()), id, FocusRunning,
	)
	if err != nil {
		return fmt.Errorf("%s focus %d: %w", status, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s focus %d: %w", status, id, sql.ErrNoRows)
	}
	return nil
}

// FocusStats sums completed sessions started in [from, to).
func (s *Store) FocusStats(from, to time.Time) (completed int, total time.Duration, err error) {
	var secs int64
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(duration), 0)
		FROM focus_sessions
		WHERE status = ?
		  AND started_at >= ? AND started_at < ?`,
		FocusCompleted, formatTime(from), formatTime(to),
	).Scan(&completed, &secs)
	if err != nil {
		return 0, 0, fmt.Errorf("focus stats: %w", err)
	}
	return completed, time.Duration(secs) * time.Second, nil
}
