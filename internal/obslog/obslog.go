// Package obslog provides structured logging for hashcore. It wraps the
// standard library's slog package with a package-level default logger and
// support for both human-readable and JSON output, matching the CLI's
// --log-level/--log-format flag pair.
package obslog

import (
	"io"
	"log/slog"
	"os"
)

var (
	defaultLogger *slog.Logger
	logLevel      slog.Level = slog.LevelInfo
)

// Init configures the default logger. If output is nil, os.Stderr is used.
// format "json" selects slog.JSONHandler; anything else selects the text
// handler.
func Init(level string, format string, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	defaultLogger = slog.New(handler)
}

// Logger returns the default logger, lazily initializing it at info/text/
// stderr if Init was never called.
func Logger() *slog.Logger {
	if defaultLogger == nil {
		Init("info", "text", nil)
	}
	return defaultLogger
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// With returns a logger carrying the given key-value pairs in every
// subsequent message, for tagging a component or operation.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}
