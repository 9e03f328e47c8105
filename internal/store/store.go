// Package store persists recorded sessions: an SQLite step log plus a
// directory of screen snapshot files.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/model"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// Store is the durable ordered log of steps per session. The recorder
// appends on the foreground context; the player reads fully written sessions
// on the background context. A session is never read while still being
// recorded, so per-session reads and writes never overlap.
type Store interface {
	CreateSession(name string) (*model.Session, error)
	GetSession(id string) (*model.Session, error)
	// LatestSession returns the most recently created session, or nil when
	// none exist.
	LatestSession() (*model.Session, error)
	ListSessions() ([]*model.Session, error)
	DeleteSession(id string) error

	// AppendStep durably appends one step. A transient write failure is
	// retried once before surfacing; a persisted step is never silently
	// dropped.
	AppendStep(step *model.Step) error
	// Steps returns a session's steps in ascending order index.
	Steps(sessionID string) ([]model.Step, error)

	Close() error
}

// SQLiteStore implements Store on modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (creating if needed) the session database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug().Str("path", dbPath).Msg("Opened session store")
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		name TEXT
	);

	CREATE TABLE IF NOT EXISTS steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		order_idx INTEGER NOT NULL,
		action_kind TEXT NOT NULL,
		text TEXT,
		x INTEGER, y INTEGER,
		bbox TEXT,
		descriptor TEXT,
		snap_path TEXT,
		UNIQUE(session_id, order_idx),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_steps_session ON steps(session_id, order_idx);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateSession inserts a new session and returns it.
func (s *SQLiteStore) CreateSession(name string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &model.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Name:      name,
	}

	var dbName any
	if name != "" {
		dbName = name
	}
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, created_at, name) VALUES (?, ?, ?)",
		sess.ID, sess.CreatedAt.UnixMilli(), dbName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// GetSession returns the session with the given id, or nil when absent.
func (s *SQLiteStore) GetSession(id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanSession(s.db.QueryRow(
		"SELECT id, created_at, name FROM sessions WHERE id = ?", id))
}

// LatestSession returns the most recently created session, or nil.
func (s *SQLiteStore) LatestSession() (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanSession(s.db.QueryRow(
		"SELECT id, created_at, name FROM sessions ORDER BY created_at DESC, rowid DESC LIMIT 1"))
}

func (s *SQLiteStore) scanSession(row *sql.Row) (*model.Session, error) {
	var (
		sess      model.Session
		createdAt int64
		name      sql.NullString
	)
	err := row.Scan(&sess.ID, &createdAt, &name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	sess.CreatedAt = time.UnixMilli(createdAt).UTC()
	sess.Name = name.String
	return &sess, nil
}

// ListSessions returns all sessions, newest first.
func (s *SQLiteStore) ListSessions() ([]*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT id, created_at, name FROM sessions ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		var (
			sess      model.Session
			createdAt int64
			name      sql.NullString
		)
		if err := rows.Scan(&sess.ID, &createdAt, &name); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.CreatedAt = time.UnixMilli(createdAt).UTC()
		sess.Name = name.String
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and its steps.
func (s *SQLiteStore) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM steps WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete steps: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// AppendStep persists one step, retrying once on failure.
func (s *SQLiteStore) AppendStep(step *model.Step) error {
	if err := step.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.insertStep(step)
	if err != nil {
		logger.Warn().Err(err).Int("order", step.OrderIndex).Msg("step write failed, retrying once")
		err = s.insertStep(step)
	}
	if err != nil {
		return fmt.Errorf("failed to append step %d: %w", step.OrderIndex, err)
	}
	return nil
}

func (s *SQLiteStore) insertStep(step *model.Step) error {
	var x, y, text, bbox, descriptor, snap any

	if step.Position != nil {
		x, y = step.Position.X, step.Position.Y
	}
	if step.Text != "" {
		text = step.Text
	}
	if step.SnapshotPath != "" {
		snap = step.SnapshotPath
	}
	if step.Bounds != nil {
		data, err := json.Marshal(step.Bounds)
		if err != nil {
			return fmt.Errorf("marshal bounds: %w", err)
		}
		bbox = string(data)
	}
	if step.Descriptor != nil {
		data, err := json.Marshal(step.Descriptor)
		if err != nil {
			return fmt.Errorf("marshal descriptor: %w", err)
		}
		descriptor = string(data)
	}

	res, err := s.db.Exec(
		`INSERT INTO steps (session_id, order_idx, action_kind, text, x, y, bbox, descriptor, snap_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		step.SessionID, step.OrderIndex, string(step.Action), text, x, y, bbox, descriptor, snap,
	)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		step.ID = id
	}
	return nil
}

// Steps returns a session's steps in replay order.
func (s *SQLiteStore) Steps(sessionID string) ([]model.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, order_idx, action_kind, text, x, y, bbox, descriptor, snap_path
		 FROM steps WHERE session_id = ? ORDER BY order_idx ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read steps: %w", err)
	}
	defer rows.Close()

	var steps []model.Step
	for rows.Next() {
		var (
			step             model.Step
			kind             string
			text, bbox, snap sql.NullString
			descriptor       sql.NullString
			x, y             sql.NullInt64
		)
		if err := rows.Scan(&step.ID, &step.OrderIndex, &kind, &text, &x, &y, &bbox, &descriptor, &snap); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}

		step.SessionID = sessionID
		step.Action, err = model.ParseActionKind(kind)
		if err != nil {
			return nil, err
		}
		step.Text = text.String
		step.SnapshotPath = snap.String
		if x.Valid && y.Valid {
			step.Position = &model.Point{X: int(x.Int64), Y: int(y.Int64)}
		}
		if bbox.Valid {
			var b [4]int
			if err := json.Unmarshal([]byte(bbox.String), &b); err != nil {
				return nil, fmt.Errorf("unmarshal bounds for step %d: %w", step.OrderIndex, err)
			}
			step.Bounds = &b
		}
		if descriptor.Valid {
			var d model.ElementDescriptor
			if err := json.Unmarshal([]byte(descriptor.String), &d); err != nil {
				return nil, fmt.Errorf("unmarshal descriptor for step %d: %w", step.OrderIndex, err)
			}
			step.Descriptor = &d
		}

		steps = append(steps, step)
	}
	return steps, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
