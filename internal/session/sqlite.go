package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"dccd/internal/survey"
)

// DBFile is the sqlite database name inside the session directory.
const DBFile = "session.db"

// SQLiteStore keeps the session in a sqlite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
	id     string
}

// NewSQLiteStore creates or opens the session database in dir.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	dbPath := filepath.Join(dir, DBFile)

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := store.ensureSession(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates the database schema.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		session_id TEXT NOT NULL,
		results BLOB,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS answers (
		question_id INTEGER PRIMARY KEY,
		level INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) ensureSession() error {
	fresh := newState()
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO session_state (id, session_id, updated_at) VALUES (1, ?, ?)`,
		fresh.ID, fresh.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if err := s.db.QueryRow(`SELECT session_id FROM session_state WHERE id = 1`).Scan(&s.id); err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.dbPath }

// ID returns the current session id.
func (s *SQLiteStore) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// LoadAnswers reads every stored answer.
func (s *SQLiteStore) LoadAnswers() (survey.Answers, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT question_id, level FROM answers`)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	answers := survey.Answers{}
	for rows.Next() {
		var id, level int
		if err := rows.Scan(&id, &level); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers[id] = survey.Level(level)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sanitize(answers), nil
}

// SaveAnswers replaces the stored answers in one transaction.
func (s *SQLiteStore) SaveAnswers(answers survey.Answers) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM answers`); err != nil {
		return fmt.Errorf("failed to clear answers: %w", err)
	}
	for id, level := range sanitize(answers) {
		if _, err := tx.Exec(`INSERT INTO answers (question_id, level) VALUES (?, ?)`, id, int(level)); err != nil {
			return fmt.Errorf("failed to save answer %d: %w", id, err)
		}
	}
	if _, err := tx.Exec(`UPDATE session_state SET updated_at = ? WHERE id = 1`, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return tx.Commit()
}

// SaveResults stores raw verbatim.
func (s *SQLiteStore) SaveResults(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE session_state SET results = ?, updated_at = ? WHERE id = 1`, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}

// LoadResults returns the stored response body.
func (s *SQLiteStore) LoadResults() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw []byte
	if err := s.db.QueryRow(`SELECT results FROM session_state WHERE id = 1`).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoResults
		}
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoResults
	}
	return raw, nil
}

// Clear deletes answers and results and assigns a new session id.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := newState()
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM answers`); err != nil {
		return fmt.Errorf("failed to clear answers: %w", err)
	}
	if _, err := tx.Exec(
		`UPDATE session_state SET session_id = ?, results = NULL, updated_at = ? WHERE id = 1`,
		fresh.ID, fresh.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.id = fresh.ID
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
