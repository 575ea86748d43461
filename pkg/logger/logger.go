// Package logger provides a structured, levelled logger built on log/slog.
//
// Components take a tagged child logger once and keep it:
//
//	log := logger.With("repository", "dishes")
//	log.Info("dish created", "id", dish.ID)
//	// → time=... level=INFO msg="dish created" component=repository name=dishes id=3
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/menumanagerpro/menumanager/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stdout, config.AppEnv(), config.LogLevel())
	slog.SetDefault(L)
}

// New builds a logger the same way the package default is built. Production
// environments get JSON lines; everything else gets the text handler.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetOutput replaces the base logger. The CLI uses it to silence logs
// unless --verbose is given.
func SetOutput(w io.Writer) {
	L = New(w, config.AppEnv(), config.LogLevel())
	slog.SetDefault(L)
}

// With returns a child of the base logger tagged with a component kind and name.
func With(component, name string) *slog.Logger {
	return L.With("component", component, "name", name)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
