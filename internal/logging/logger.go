// Package logging provides config-driven categorized logging for dccd.
// Logs are written to .dccd/logs/dccd.log with one named zap logger per category.
// Logging is controlled by logging.debug_mode in .dccd/config.yaml - when false, no logs are written,
// because stdout and stderr belong to the terminal UI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dccd/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Boot/initialization
	CategoryAPI     Category = "api"     // Backend HTTP calls
	CategorySession Category = "session" // Session state persistence
	CategoryRoute   Category = "route"   // Route composition and highlight scheduling
	CategoryUI      Category = "ui"      // Page transitions and input handling
)

// LogFileName is the file written inside the logs directory.
const LogFileName = "dccd.log"

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	cfg     config.LoggingConfig
	logsDir string
	owned   bool // base writes to a file we opened
)

// Initialize sets up file logging under the workspace. Outside debug mode it
// installs a no-op logger and creates nothing on disk.
func Initialize(workspace string, lc config.LoggingConfig) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	mu.Lock()
	defer mu.Unlock()

	cfg = lc
	if !lc.DebugMode {
		base = zap.NewNop()
		logsDir = ""
		owned = false
		return nil
	}

	dir := filepath.Join(workspace, config.DirName, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(parseLevel(lc.Level))
	zc.Encoding = "console"
	if strings.EqualFold(lc.Format, "json") {
		zc.Encoding = "json"
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil
	zc.OutputPaths = []string{filepath.Join(dir, LogFileName)}
	zc.ErrorOutputPaths = []string{filepath.Join(dir, LogFileName)}

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	base = l
	logsDir = dir
	owned = true

	boot := base.Named(string(CategoryBoot)).Sugar()
	boot.Info("=== dccd logging initialized ===")
	boot.Infow("logging configuration",
		"workspace", workspace,
		"logs_dir", dir,
		"level", lc.Level,
		"categories", len(lc.Categories),
	)
	return nil
}

// Use installs an externally built logger for every category, bypassing
// the category filter. Non-interactive commands log to stderr this way.
func Use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	base = l
	owned = false
	cfg = config.LoggingConfig{DebugMode: true}
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// LogsDir returns the directory logs are written to, or "" when file
// logging is off.
func LogsDir() string {
	mu.RLock()
	defer mu.RUnlock()
	return logsDir
}

// Get returns the logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if !cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop().Sugar()
	}
	return base.Named(string(category)).Sugar()
}

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if !owned {
		return nil
	}
	return base.Sync()
}

// Close flushes and resets to a no-op logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if owned {
		_ = base.Sync()
	}
	base = zap.NewNop()
	cfg = config.LoggingConfig{}
	logsDir = ""
	owned = false
}

// Convenience functions for quick logging

func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

func API(format string, args ...interface{}) {
	Get(CategoryAPI).Infof(format, args...)
}

func Session(format string, args ...interface{}) {
	Get(CategorySession).Infof(format, args...)
}

func Route(format string, args ...interface{}) {
	Get(CategoryRoute).Infof(format, args...)
}

func UI(format string, args ...interface{}) {
	Get(CategoryUI).Infof(format, args...)
}
