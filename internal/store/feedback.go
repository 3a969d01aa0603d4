package store

import (
	"database/sql"
	"time"
)

// FeedbackEvent is one delivered coaching decision, persisted for
// session review.
type FeedbackEvent struct {
	ID        int64
	SessionID string
	Frame     int
	Timestamp float64
	ErrorCode string
	Severity  float64
	CreatedAt time.Time
}

// FeedbackRepository provides access to persisted feedback events.
type FeedbackRepository struct {
	db *sql.DB
}

// Feedback returns the feedback repository for this store.
func (s *Store) Feedback() *FeedbackRepository {
	return &FeedbackRepository{db: s.db}
}

// Record inserts one feedback event.
func (r *FeedbackRepository) Record(e *FeedbackEvent) error {
	e.CreatedAt = time.Now()
	res, err := r.db.Exec(
		`INSERT INTO feedback_events (session_id, frame, timestamp, error_code, severity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Frame, e.Timestamp, e.ErrorCode, e.Severity, e.CreatedAt,
	)
	if err != nil {
		return err
	}
	e.ID, err = res.LastInsertId()
	return err
}

// ListBySession returns up to limit feedback events for a session,
// newest first. A non-positive limit returns everything.
func (r *FeedbackRepository) ListBySession(sessionID string, limit int) ([]*FeedbackEvent, error) {
	query := `SELECT id, session_id, frame, timestamp, error_code, severity, created_at
		 FROM feedback_events WHERE session_id = ? ORDER BY frame DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*FeedbackEvent
	for rows.Next() {
		e := &FeedbackEvent{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Frame, &e.Timestamp,
			&e.ErrorCode, &e.Severity, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountBySession returns how many feedback events a session has.
func (r *FeedbackRepository) CountBySession(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM feedback_events WHERE session_id = ?`,
		sessionID,
	).Scan(&count)
	return count, err
}
