// Package logging wraps zerolog with the defaults hellomk uses everywhere.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable consulted when Config.Level is empty.
const EnvLevel = "HELLOMK_LOG_LEVEL"

// Config captures options for configuring the shared logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	Service string    // optional service name attached to every log entry
	JSON    bool      // emit raw JSON instead of console formatting
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Configure replaces the shared logger. It may be called again, e.g. by tests.
func Configure(cfg Config) {
	level := zerolog.WarnLevel
	raw := strings.TrimSpace(cfg.Level)
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv(EnvLevel))
	}
	if raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if !cfg.JSON {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.TimeOnly, NoColor: !isTerminal(writer)}
	}

	service := cfg.Service
	if service == "" {
		service = "hellomk"
	}

	logger := zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()

	mu.Lock()
	base = logger
	mu.Unlock()
}

// Base returns the configured base logger. Before Configure is called it discards everything.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
