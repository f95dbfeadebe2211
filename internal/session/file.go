package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dccd/internal/logging"
	"dccd/internal/survey"
)

const (
	stateFile   = "state.json"
	resultsFile = "results.json"
)

// FileStore keeps the session as JSON files in a directory.
type FileStore struct {
	mu    sync.RWMutex
	dir   string
	state *State
}

// NewFileStore opens the session kept in dir. A missing or unreadable
// state file starts a fresh session.
func NewFileStore(dir string) (*FileStore, error) {
	fs := &FileStore{dir: dir}
	if err := fs.load(); err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return nil, err
		}
		logging.Get(logging.CategorySession).Warnw("discarding corrupt session state", "dir", dir, "error", err)
		fs.state = newState()
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(filepath.Join(fs.dir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			fs.state = newState()
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if st.ID == "" {
		st.ID = newState().ID
	}
	st.Answers = sanitize(st.Answers)
	fs.state = &st
	return nil
}

// Path returns the directory the session lives in.
func (fs *FileStore) Path() string { return fs.dir }

// ID returns the current session id.
func (fs *FileStore) ID() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.state.ID
}

// LoadAnswers returns a copy of the stored answers.
func (fs *FileStore) LoadAnswers() (survey.Answers, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return sanitize(fs.state.Answers), nil
}

// SaveAnswers replaces the stored answers and writes them to disk.
func (fs *FileStore) SaveAnswers(answers survey.Answers) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.state.Answers = sanitize(answers)
	fs.state.UpdatedAt = time.Now().UTC()
	return fs.writeStateLocked()
}

func (fs *FileStore) writeStateLocked() error {
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(fs.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(filepath.Join(fs.dir, stateFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// SaveResults writes raw as the stored recommendation response.
func (fs *FileStore) SaveResults(raw []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(fs.dir, resultsFile), raw, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// LoadResults returns the stored response body.
func (fs *FileStore) LoadResults() ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(fs.dir, resultsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoResults
		}
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoResults
	}
	return data, nil
}

// Clear removes both files and starts a new session id.
func (fs *FileStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, name := range []string{stateFile, resultsFile} {
		if err := os.Remove(filepath.Join(fs.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}
	fs.state = newState()
	return nil
}

// Close is a no-op; every write goes straight to disk.
func (fs *FileStore) Close() error { return nil }
