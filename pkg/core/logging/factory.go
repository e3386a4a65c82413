// ============================================================================
// promokit - Custodiet promo media tooling
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating command loggers
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/custodiet/promokit/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name (narrate, video, slideshow)
	Name string

	// Log level (debug, info, warn, error)
	Level string

	// Output format ("text" or "json")
	Format string

	// RunID is attached to every entry as correlation id
	RunID string

	// Output defaults to os.Stderr so stdout stays free for summaries
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}
}

// NewLogger creates a Foundation logger. Unknown level or format strings
// fall back to info/text.
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level, _ := mdwlog.ParseLevel(cfg.Level)
	format, _ := mdwlog.ParseFormat(cfg.Format)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
	if cfg.RunID != "" {
		logger = logger.WithCorrelationID(cfg.RunID)
	}
	return logger
}

// NewSimpleLogger creates a text logger at info level
func NewSimpleLogger(name string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(name))
}
