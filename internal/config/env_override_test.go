package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("DCCD_API_URL replaces base url", func(t *testing.T) {
		t.Setenv("DCCD_API_URL", "http://backend:9000")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://backend:9000", cfg.API.BaseURL)
	})

	t.Run("timeouts and intervals", func(t *testing.T) {
		t.Setenv("DCCD_API_TIMEOUT", "3s")
		t.Setenv("DCCD_HIGHLIGHT_INTERVAL", "100ms")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 3*time.Second, cfg.GetAPITimeout())
		assert.Equal(t, 100*time.Millisecond, cfg.GetHighlightInterval())
	})

	t.Run("session backend is lowercased", func(t *testing.T) {
		t.Setenv("DCCD_SESSION_BACKEND", "SQLite")
		t.Setenv("DCCD_SESSION_DIR", "/tmp/dccd-session")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, SessionBackendSQLite, cfg.Session.Backend)
		assert.Equal(t, "/tmp/dccd-session", cfg.Session.Dir)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("DCCD_DEBUG enables debug logging", func(t *testing.T) {
		t.Setenv("DCCD_DEBUG", "1")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("unset variables keep file values", func(t *testing.T) {
		t.Setenv("DCCD_API_URL", "")

		cfg := DefaultConfig()
		cfg.API.BaseURL = "http://from-file"
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://from-file", cfg.API.BaseURL)
	})
}
