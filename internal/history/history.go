// Package history records finished launcher sessions.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is the number of rows Recent returns when limit is not positive.
const DefaultLimit = 20

const timeLayout = time.RFC3339Nano

// Launch is one finished session.
type Launch struct {
	ID        int
	Session   string
	Mode      string
	Selection string
	Outcome   string
	CreatedAt time.Time
}

// NewSession returns a fresh session id.
func NewSession() string {
	return uuid.NewString()
}

// Store handles launch persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a new history store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Record stores l and returns its ID. An empty session gets a fresh id and
// a zero CreatedAt is set to now.
func (s *Store) Record(l Launch) (int, error) {
	if strings.TrimSpace(l.Mode) == "" {
		return 0, fmt.Errorf("recording launch: mode is required")
	}
	if l.Session == "" {
		l.Session = NewSession()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}

	res, err := s.db.Exec(
		`INSERT INTO launches (session, mode, selection, outcome, created_at) VALUES (?, ?, ?, ?, ?)`,
		l.Session, l.Mode, l.Selection, l.Outcome, l.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("recording launch: %w", err)
	}

	id, _ := res.LastInsertId()
	return int(id), nil
}

// Recent returns the newest launches first. An empty mode lists every mode.
func (s *Store) Recent(limit int, mode string) ([]Launch, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `SELECT id, session, mode, selection, outcome, created_at FROM launches`
	var args []any
	if mode != "" {
		query += " WHERE mode = ?"
		args = append(args, mode)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing launches: %w", err)
	}
	defer rows.Close()

	var launches []Launch
	for rows.Next() {
		var l Launch
		var created string
		if err := rows.Scan(&l.ID, &l.Session, &l.Mode, &l.Selection, &l.Outcome, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at of launch %d: %w", l.ID, err)
		}
		l.CreatedAt = t
		launches = append(launches, l)
	}
	return launches, rows.Err()
}
