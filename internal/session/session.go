// Package session persists client-side survey state between runs: the
// answer map and the last recommendation response exactly as the backend
// returned it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dccd/internal/api"
	"dccd/internal/config"
	"dccd/internal/survey"
)

var (
	// ErrNoResults is returned when no recommendation response has been stored.
	ErrNoResults = errors.New("no stored results")
	// ErrCorrupt is returned when stored state cannot be decoded.
	ErrCorrupt = errors.New("stored session state is corrupt")
)

// Store is a session backend.
type Store interface {
	// ID identifies the current session. Clear starts a new one.
	ID() string
	LoadAnswers() (survey.Answers, error)
	SaveAnswers(answers survey.Answers) error
	// SaveResults stores a recommendation response body verbatim.
	SaveResults(raw []byte) error
	// LoadResults returns the raw stored body, or ErrNoResults.
	LoadResults() ([]byte, error)
	// Clear drops answers and results.
	Clear() error
	Close() error
}

// State is a snapshot of one session.
type State struct {
	ID        string         `json:"id"`
	Answers   survey.Answers `json:"answers"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func newState() *State {
	return &State{
		ID:        uuid.NewString(),
		Answers:   survey.Answers{},
		UpdatedAt: time.Now().UTC(),
	}
}

// Open returns the backend selected by cfg, rooted under the workspace.
func Open(cfg *config.Config, workspace string) (Store, error) {
	dir := cfg.SessionDir(workspace)
	switch cfg.Session.Backend {
	case config.SessionBackendFile, "":
		return NewFileStore(dir)
	case config.SessionBackendSQLite:
		return NewSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}
}

// Results loads and decodes the stored recommendation response.
func Results(s Store) (*api.RecommendationResponse, error) {
	raw, err := s.LoadResults()
	if err != nil {
		return nil, err
	}
	return DecodeResults(raw)
}

// DecodeResults parses a stored recommendation response. Empty input is
// ErrNoResults; anything unparsable is ErrCorrupt.
func DecodeResults(raw []byte) (*api.RecommendationResponse, error) {
	if len(raw) == 0 {
		return nil, ErrNoResults
	}
	var resp api.RecommendationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if resp.Recommendations == nil {
		return nil, fmt.Errorf("%w: missing recommendations", ErrCorrupt)
	}
	return &resp, nil
}

// sanitize drops entries whose level is outside the valid range.
func sanitize(in survey.Answers) survey.Answers {
	out := make(survey.Answers, len(in))
	for id, l := range in {
		if l.Valid() {
			out[id] = l
		}
	}
	return out
}
