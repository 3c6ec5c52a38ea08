// Package logging provides structured logging with zerolog.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// DefaultConfig returns sensible default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
	}
}

// Init initializes the global zerolog logger.
func Init(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stdout
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.Kitchen,
		}
	}

	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Logger()
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return log.Logger
}

// WithTool returns a logger tagged with the diagnostic tool's name.
func WithTool(tool string) zerolog.Logger {
	return log.With().
		Str("tool", tool).
		Logger()
}

// WithFile returns a logger with file identifier context.
func WithFile(fileID string) zerolog.Logger {
	return log.With().
		Str("fileId", fileID).
		Logger()
}

// WithBlob returns a logger with blob context.
func WithBlob(container, blobName string) zerolog.Logger {
	return log.With().
		Str("container", container).
		Str("blob", blobName).
		Logger()
}

// WithCheck returns a logger with check context for the monitor.
func WithCheck(check string) zerolog.Logger {
	return log.With().
		Str("check", check).
		Logger()
}
