// Package store persists named plan sessions in a local sqlite database.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/chazu/atrium/pkg/plan"
)

// ErrSessionNotFound is returned when a named session does not exist.
var ErrSessionNotFound = errors.New("session not found")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	name       TEXT PRIMARY KEY,
	plan       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// SessionInfo describes one saved session.
type SessionInfo struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store wraps the sqlite database holding saved sessions.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init session db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the graph snapshot under name.
func (s *Store) Save(name string, g *plan.WallGraph) error {
	data, err := json.Marshal(g.Data())
	if err != nil {
		return fmt.Errorf("encode session %q: %w", name, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO sessions (name, plan, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET plan = excluded.plan, updated_at = excluded.updated_at`,
		name, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session %q: %w", name, err)
	}
	return nil
}

// Load returns the graph saved under name.
func (s *Store) Load(name string) (*plan.WallGraph, error) {
	var raw string
	err := s.db.QueryRow(`SELECT plan FROM sessions WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load session %q: %w", name, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", name, err)
	}

	var data plan.PlanData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode session %q: %w", name, err)
	}
	g, err := plan.FromData(&data)
	if err != nil {
		return nil, fmt.Errorf("restore session %q: %w", name, err)
	}
	return g, nil
}

// List returns the saved sessions, most recently updated first.
func (s *Store) List() ([]SessionInfo, error) {
	rows, err := s.db.Query(`SELECT name, updated_at FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.Name, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// Delete removes the named session.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete session %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete session %q: %w", name, ErrSessionNotFound)
	}
	return nil
}
