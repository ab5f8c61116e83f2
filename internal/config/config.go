// Package config loads csvtable settings from environment variables.
// Unset values fall back to defaults and the result is validated before use.
package config

import "fmt"

// Config holds all csvtable settings.
type Config struct {
	Logging LoggingConfig
	View    ViewConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"CSVTABLE_LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"CSVTABLE_LOG_FORMAT" default:"text"`
}

// ViewConfig holds settings for the interactive table viewer.
type ViewConfig struct {
	// Height is the number of table rows shown at once (default: 20)
	Height int `env:"CSVTABLE_VIEW_HEIGHT" default:"20"`

	// MaxColumnWidth caps the rendered width of a column (default: 32)
	MaxColumnWidth int `env:"CSVTABLE_VIEW_MAX_COLUMN_WIDTH" default:"32"`
}

// String returns a one-line summary of the config for logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Logging: {Level: %q, Format: %q}, View: {Height: %d, MaxColumnWidth: %d}}",
		c.Logging.Level, c.Logging.Format, c.View.Height, c.View.MaxColumnWidth)
}
