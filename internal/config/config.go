package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace state directory.
const DirName = ".dccd"

// Config holds all client configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Backend API
	API APIConfig `yaml:"api"`

	// Survey controls
	Survey SurveyConfig `yaml:"survey"`

	// Results diagram
	Diagram DiagramConfig `yaml:"diagram"`

	// Session persistence
	Session SessionConfig `yaml:"session"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the diagnostic backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// SurveyConfig configures the answer sliders.
type SurveyConfig struct {
	// SliderStep is how far one arrow key press moves a slider.
	SliderStep float64 `yaml:"slider_step"`
}

// DiagramConfig configures the results diagram.
type DiagramConfig struct {
	HighlightInterval string `yaml:"highlight_interval"`
	NodeWidth         int    `yaml:"node_width"`
}

// SessionConfig configures where survey state is kept.
type SessionConfig struct {
	Dir     string `yaml:"dir"`
	Backend string `yaml:"backend"` // file, sqlite
}

// Session backends.
const (
	SessionBackendFile   = "file"
	SessionBackendSQLite = "sqlite"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "dccd",
		Version: "0.1.0",

		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "10s",
		},

		Survey: SurveyConfig{
			SliderStep: 0.25,
		},

		Diagram: DiagramConfig{
			HighlightInterval: "240ms",
			NodeWidth:         26,
		},

		Session: SessionConfig{
			Dir:     filepath.Join(DirName, "session"),
			Backend: SessionBackendFile,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the config file location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, DirName, "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DCCD_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("DCCD_API_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("DCCD_HIGHLIGHT_INTERVAL"); v != "" {
		c.Diagram.HighlightInterval = v
	}
	if v := os.Getenv("DCCD_SESSION_DIR"); v != "" {
		c.Session.Dir = v
	}
	if v := os.Getenv("DCCD_SESSION_BACKEND"); v != "" {
		c.Session.Backend = strings.ToLower(v)
	}
	if os.Getenv("DCCD_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// GetAPITimeout returns the backend request timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// GetHighlightInterval returns the diagram highlight step as a duration.
func (c *Config) GetHighlightInterval() time.Duration {
	d, err := time.ParseDuration(c.Diagram.HighlightInterval)
	if err != nil || d <= 0 {
		return 240 * time.Millisecond
	}
	return d
}

// GetSliderStep returns the slider step, falling back to 0.25.
func (c *Config) GetSliderStep() float64 {
	if c.Survey.SliderStep <= 0 || c.Survey.SliderStep > 3 {
		return 0.25
	}
	return c.Survey.SliderStep
}

// SessionDir resolves the session directory against a workspace.
func (c *Config) SessionDir(workspace string) string {
	if filepath.IsAbs(c.Session.Dir) {
		return c.Session.Dir
	}
	return filepath.Join(workspace, c.Session.Dir)
}

// ValidSessionBackends lists the supported session backends.
var ValidSessionBackends = []string{SessionBackendFile, SessionBackendSQLite}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base_url: %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported api base_url scheme: %s", u.Scheme)
	}

	if !contains(ValidSessionBackends, c.Session.Backend) {
		return fmt.Errorf("invalid session backend: %s (valid: %v)", c.Session.Backend, ValidSessionBackends)
	}

	return c.Logging.validate()
}
