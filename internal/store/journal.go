package store

import (
	"fmt"
	"time"
)

// AppendAction records a dispatched action. Journal rows are never updated.
func (s *Store) AppendAction(kind string, payload []byte, at time.Time) error {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	_, err := s.db.Exec(
		`INSERT INTO action_log (kind, payload, at) VALUES (?, ?, ?)`,
		kind, string(payload), formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("append action %s: %w", kind, err)
	}
	return nil
}

// ListActions returns journaled actions, newest first.
func (s *Store) ListActions(f ActionFilter) ([]ActionRecord, error) {
	query := `SELECT id, kind, payload, at FROM action_log WHERE 1=1`
	var args []any

	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, f.Kind)
	}
	if f.From != nil {
		query += ` AND at >= ?`
		args = append(args, formatTime(*f.From))
	}
	if f.To != nil {
		query += ` AND at < ?`
		args = append(args, formatTime(*f.To))
	}
	query += ` ORDER BY at DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var records []ActionRecord
	for rows.Next() {
		var r ActionRecord
		var at string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Payload, &at); err != nil {
			return nil, err
		}
		r.At = parseTime(at)
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountActions counts journaled actions of kind, or all actions when kind is
// empty.
func (s *Store) CountActions(kind string) (int, error) {
	var n int
	var err error
	if kind == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM action_log`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM action_log WHERE kind = ?`, kind).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count actions: %w", err)
	}
	return n, nil
}
