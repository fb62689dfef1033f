// Package app wires the loaders, the compiler pipeline, and the output
// surfaces into the operations the CLI exposes.
package app

import (
	"io"
	"log/slog"
)

// App is one configured application instance. Diagnostics go to errW
// through the logger; primary output (recipes, reports) goes to outW.
type App struct {
	outW   io.Writer
	logger *slog.Logger
}

// NewApp builds an App writing primary output to outW and logs to errW.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, errW),
	}
}
