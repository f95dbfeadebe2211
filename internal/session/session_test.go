package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dccd/internal/config"
	"dccd/internal/survey"
)

const sampleResults = `{
  "recommendations": [
    {"name": "Career Tarot", "description": "d", "phase": "Phase A"},
    {"name": "Career Ikigai", "description": "d", "phase": "Phase B"}
  ],
  "total_questions": 3,
  "completion_percent": 100,
  "scoring_note": "Scores are relative.",
  "prerequisite_note": null
}`

type backend struct {
	name string
	open func(t *testing.T, dir string) Store
}

var backends = []backend{
	{"file", func(t *testing.T, dir string) Store {
		s, err := NewFileStore(dir)
		require.NoError(t, err)
		return s
	}},
	{"sqlite", func(t *testing.T, dir string) Store {
		s, err := NewSQLiteStore(dir)
		require.NoError(t, err)
		return s
	}},
}

func TestStore_AnswersRoundTrip(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			dir := t.TempDir()
			s := b.open(t, dir)

			got, err := s.LoadAnswers()
			require.NoError(t, err)
			assert.Empty(t, got)

			answers := survey.Answers{1: survey.StronglyAgree, 2: survey.Disagree, 7: survey.StronglyDisagree}
			require.NoError(t, s.SaveAnswers(answers))
			id := s.ID()
			require.NoError(t, s.Close())

			reopened := b.open(t, dir)
			defer reopened.Close()
			got, err = reopened.LoadAnswers()
			require.NoError(t, err)
			assert.Equal(t, answers, got)
			assert.Equal(t, id, reopened.ID())
		})
	}
}

func TestStore_SaveAnswersReplaces(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t, t.TempDir())
			defer s.Close()

			require.NoError(t, s.SaveAnswers(survey.Answers{1: survey.Agree, 2: survey.Agree}))
			require.NoError(t, s.SaveAnswers(survey.Answers{2: survey.StronglyAgree, 3: survey.Level(9)}))

			got, err := s.LoadAnswers()
			require.NoError(t, err)
			assert.Equal(t, survey.Answers{2: survey.StronglyAgree}, got)
		})
	}
}

func TestStore_ResultsVerbatim(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t, t.TempDir())
			defer s.Close()

			_, err := s.LoadResults()
			assert.ErrorIs(t, err, ErrNoResults)

			require.NoError(t, s.SaveResults([]byte(sampleResults)))
			raw, err := s.LoadResults()
			require.NoError(t, err)
			assert.Equal(t, sampleResults, string(raw))

			resp, err := Results(s)
			require.NoError(t, err)
			require.Len(t, resp.Recommendations, 2)
			assert.Equal(t, "Career Tarot", resp.Recommendations[0].Name)
			assert.Nil(t, resp.PrerequisiteNote)
		})
	}
}

func TestStore_CorruptResults(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t, t.TempDir())
			defer s.Close()

			require.NoError(t, s.SaveResults([]byte("{not json")))
			_, err := Results(s)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t, t.TempDir())
			defer s.Close()

			require.NoError(t, s.SaveAnswers(survey.Answers{1: survey.Agree}))
			require.NoError(t, s.SaveResults([]byte(sampleResults)))
			before := s.ID()

			require.NoError(t, s.Clear())

			got, err := s.LoadAnswers()
			require.NoError(t, err)
			assert.Empty(t, got)
			_, err = s.LoadResults()
			assert.ErrorIs(t, err, ErrNoResults)
			assert.NotEqual(t, before, s.ID())
			assert.NotEmpty(t, s.ID())
		})
	}
}

func TestDecodeResults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrNoResults},
		{"malformed", "[1,2", ErrCorrupt},
		{"wrong shape", `{"recommendations": "nope"}`, ErrCorrupt},
		{"missing recommendations", `{"scoring_note": "x"}`, ErrCorrupt},
		{"ok", sampleResults, nil},
		{"ok empty list", `{"recommendations": []}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResults([]byte(tt.raw))
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestFileStore_CorruptStateStartsFresh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFile), []byte("garbage"), 0644))

	s, err := NewFileStore(dir)
	require.NoError(t, err)

	got, err := s.LoadAnswers()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotEmpty(t, s.ID())
}

func TestFileStore_DropsInvalidStoredLevels(t *testing.T) {
	dir := t.TempDir()
	state := `{"id": "abc", "answers": {"1": 2, "2": 7, "3": -1}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFile), []byte(state), 0644))

	s, err := NewFileStore(dir)
	require.NoError(t, err)

	got, err := s.LoadAnswers()
	require.NoError(t, err)
	assert.Equal(t, survey.Answers{1: survey.Agree}, got)
	assert.Equal(t, "abc", s.ID())
}

func TestOpen(t *testing.T) {
	ws := t.TempDir()

	cfg := config.DefaultConfig()
	s, err := Open(cfg, ws)
	require.NoError(t, err)
	_, ok := s.(*FileStore)
	assert.True(t, ok, "default backend should be file")
	assert.Equal(t, filepath.Join(ws, ".dccd", "session"), s.(*FileStore).Path())
	require.NoError(t, s.Close())

	cfg.Session.Backend = config.SessionBackendSQLite
	s, err = Open(cfg, ws)
	require.NoError(t, err)
	sq, ok := s.(*SQLiteStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(ws, ".dccd", "session", DBFile), sq.Path())
	require.NoError(t, s.Close())

	cfg.Session.Backend = "redis"
	_, err = Open(cfg, ws)
	assert.Error(t, err)
}
