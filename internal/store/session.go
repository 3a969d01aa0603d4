package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session represents a coaching session row.
type Session struct {
	ID            string
	Asana         string
	TotalFrames   int
	FeedbackCount int
	AvgBalance    float64
	AvgEnergy     float64
	CreatedAt     time.Time
	ClosedAt      *time.Time
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(sess *Session) error {
	sess.CreatedAt = time.Now()
	_, err := r.db.Exec(
		`INSERT INTO sessions (id, asana, total_frames, feedback_count, avg_balance, avg_energy, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Asana, sess.TotalFrames, sess.FeedbackCount,
		sess.AvgBalance, sess.AvgEnergy, sess.CreatedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var closedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, asana, total_frames, feedback_count, avg_balance, avg_energy, created_at, closed_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.Asana, &sess.TotalFrames, &sess.FeedbackCount,
		&sess.AvgBalance, &sess.AvgEnergy, &sess.CreatedAt, &closedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if closedAt.Valid {
		sess.ClosedAt = &closedAt.Time
	}
	return sess, nil
}

// UpdateStats persists the latest counters for a session.
func (r *SessionRepository) UpdateStats(id, asana string, totalFrames, feedbackCount int, avgBalance, avgEnergy float64) error {
	res, err := r.db.Exec(
		`UPDATE sessions
		 SET asana = ?, total_frames = ?, feedback_count = ?, avg_balance = ?, avg_energy = ?
		 WHERE id = ?`,
		asana, totalFrames, feedbackCount, avgBalance, avgEnergy, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close marks a session as finished.
func (r *SessionRepository) Close(id string) error {
	res, err := r.db.Exec(`UPDATE sessions SET closed_at = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session and, via cascade, its feedback events.
func (r *SessionRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, asana, total_frames, feedback_count, avg_balance, avg_energy, created_at, closed_at
		 FROM sessions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var closedAt sql.NullTime
		if err := rows.Scan(&sess.ID, &sess.Asana, &sess.TotalFrames, &sess.FeedbackCount,
			&sess.AvgBalance, &sess.AvgEnergy, &sess.CreatedAt, &closedAt); err != nil {
			return nil, err
		}
		if closedAt.Valid {
			sess.ClosedAt = &closedAt.Time
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}
