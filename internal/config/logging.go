package config

import (
	"fmt"
	"strings"
)

// LoggingConfig configures the file log written while the TUI runs.
// Nothing is written unless DebugMode is set, since the terminal belongs
// to the UI.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // console, json
	DebugMode  bool            `yaml:"debug_mode"` // false = no log file
	Categories map[string]bool `yaml:"categories"` // boot, api, session, route, ui
}

// LogCategories lists the category names accepted in logging.categories.
var LogCategories = []string{"boot", "api", "session", "route", "ui"}

var (
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{"console", "json"}
)

// IsCategoryEnabled reports whether a category writes to the log file.
// Outside debug mode every category is off; inside it a category is on
// unless the categories map turns it off.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	enabled, exists := c.Categories[category]
	return !exists || enabled
}

func (c *LoggingConfig) validate() error {
	if c.Level != "" && !contains(validLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Level, validLevels)
	}
	if c.Format != "" && !contains(validFormats, strings.ToLower(c.Format)) {
		return fmt.Errorf("invalid logging format: %s (valid: %v)", c.Format, validFormats)
	}
	for name := range c.Categories {
		if !contains(LogCategories, name) {
			return fmt.Errorf("unknown logging category: %s (valid: %v)", name, LogCategories)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
