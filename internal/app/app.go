// Package app bootstraps a diagnostic command: configuration, logging
// and the shared process state.
package app

import (
	"time"

	"github.com/rs/zerolog"

	"call-pipeline-diagnostics/internal/config"
	"call-pipeline-diagnostics/internal/observability/logging"
)

// Application holds process-wide state for one diagnostic command.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration
}

// New loads configuration, initializes the global logger and returns the
// application state for the named tool.
func New(tool string) *Application {
	cfg := config.Load()

	logging.Init(logging.Config{
		Level:  cfg.Observability.LogLevel,
		Format: cfg.Observability.LogFormat,
	})

	a := &Application{
		StartupTime: time.Now().UTC(),
		Logger:      logging.WithTool(tool),
		Cfg:         cfg,
	}

	a.Logger.Debug().
		Time("startupTime", a.StartupTime).
		Msg("Diagnostic tool starting")
	return a
}
