package storage

import (
	"fmt"
	"time"
)

// Session is one finished (or skipped) timer phase.
type Session struct {
	ID          int64
	Phase       string // "focus", "short break", "long break"
	PlannedSecs int
	Completed   bool // False when the phase was skipped
	CreatedAt   time.Time
}

// FocusStats summarises focus sessions.
type FocusStats struct {
	Completed    int // Completed focus sessions, all time
	Skipped      int // Skipped focus sessions, all time
	TotalMinutes int // Planned minutes of completed focus sessions
	Today        int // Completed focus sessions since the start of today
}

// focusPhase is the phase name counted by FocusStats.
const focusPhase = "focus"

// SaveSession records a timer phase. A zero CreatedAt uses the current time.
func (s *Store) SaveSession(sess Session) (int64, error) {
	var (
		query = "INSERT INTO sessions (phase, planned_secs, completed) VALUES (?, ?, ?)"
		args  = []any{sess.Phase, sess.PlannedSecs, sess.Completed}
	)
	if !sess.CreatedAt.IsZero() {
		query = "INSERT INTO sessions (phase, planned_secs, completed, created_at) VALUES (?, ?, ?, ?)"
		args = append(args, sess.CreatedAt.UTC().Format(sqliteTime))
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentSessions returns the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, phase, planned_secs, completed, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt any
		if err := rows.Scan(&sess.ID, &sess.Phase, &sess.PlannedSecs, &sess.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// FocusStats aggregates focus sessions. dayStart is the local midnight that
// begins "today".
func (s *Store) FocusStats(dayStart time.Time) (FocusStats, error) {
	var st FocusStats
	err := s.db.QueryRow(
		`SELECT
			COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN completed THEN 0 ELSE 1 END), 0),
			COALESCE(SUM(CASE WHEN completed THEN planned_secs ELSE 0 END), 0) / 60,
			COALESCE(SUM(CASE WHEN completed AND created_at >= ? THEN 1 ELSE 0 END), 0)
		 FROM sessions
		 WHERE phase = ?`,
		dayStart.UTC().Format(sqliteTime), focusPhase,
	).Scan(&st.Completed, &st.Skipped, &st.TotalMinutes, &st.Today)
	if err != nil {
		return FocusStats{}, fmt.Errorf("storage: cannot get focus stats: %w", err)
	}
	return st, nil
}

// StartOfDay returns local midnight for t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
