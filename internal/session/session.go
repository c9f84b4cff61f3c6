package session

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested session does not exist.
var ErrNotFound = errors.New("session not found")

// Session represents one collection run against a dataset file.
type Session struct {
	ID          string
	DatasetPath string
	StartedAt   time.Time
	EndedAt     *time.Time
	Counts      map[int]int // label -> samples recorded
}

// Repository provides operations on collection sessions.
type Repository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *Repository {
	return &Repository{db: s.db}
}

// Begin creates a new session for the given dataset path and returns it.
func (r *Repository) Begin(datasetPath string) (*Session, error) {
	sess := &Session{
		ID:          uuid.NewString(),
		DatasetPath: datasetPath,
		StartedAt:   time.Now().UTC(),
		Counts:      map[int]int{},
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, dataset_path, started_at) VALUES (?, ?, ?)`,
		sess.ID, sess.DatasetPath, sess.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// End marks a session as finished.
func (r *Repository) End(sessionID string) error {
	res, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ? WHERE id = ?`,
		time.Now().UTC(), sessionID,
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

// IncrementLabel records one more sample logged with the given label.
func (r *Repository) IncrementLabel(sessionID string, label int) error {
	_, err := r.db.Exec(
		`INSERT INTO session_labels (session_id, label, count) VALUES (?, ?, 1)
		 ON CONFLICT(session_id, label) DO UPDATE SET count = count + 1`,
		sessionID, label,
	)
	return err
}

// List returns all sessions with their label counts, newest first.
func (r *Repository) List() ([]Session, error) {
	rows, err := r.db.Query(
		`SELECT id, dataset_path, started_at, ended_at
		 FROM sessions
		 ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var ended sql.NullTime
		if err := rows.Scan(&sess.ID, &sess.DatasetPath, &sess.StartedAt, &ended); err != nil {
			return nil, err
		}
		if ended.Valid {
			t := ended.Time
			sess.EndedAt = &t
		}
		sess.Counts = map[int]int{}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		if err := r.loadCounts(&sessions[i]); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// Totals returns the total samples recorded per label across all sessions.
func (r *Repository) Totals() (map[int]int, error) {
	rows, err := r.db.Query(
		`SELECT label, SUM(count) FROM session_labels GROUP BY label`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := map[int]int{}
	for rows.Next() {
		var label, count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		totals[label] = count
	}

	return totals, rows.Err()
}

func (r *Repository) loadCounts(sess *Session) error {
	rows, err := r.db.Query(
		`SELECT label, count FROM session_labels WHERE session_id = ?`,
		sess.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var label, count int
		if err := rows.Scan(&label, &count); err != nil {
			return err
		}
		sess.Counts[label] = count
	}

	return rows.Err()
}
