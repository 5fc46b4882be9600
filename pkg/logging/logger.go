// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelTrace logs raw response bodies and everything above.
	LevelTrace LogLevel = "trace"

	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	// Set global log level
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	// Configure output
	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output}
	}

	// Create logger with timestamp
	logger := zerolog.New(output).With().Timestamp().Logger()

	// Set as global logger
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Trace: Raw wire data
//   - Every response body, before decoding
//
// Debug: Detailed information for debugging
//   - Per-page progress (page, page_size, total_count, rows)
//   - Completed fetches with duration
//   - "No data" results (INFO-200)
//
// Info: Normal operation events
//   - Server startup/shutdown
//   - Completed proxy requests
//
// Warn: Warning conditions that don't prevent operation
//   - Result codes returned instead of rows
//   - Envelope variants that do not match the requested resource
//   - Non-2xx responses and decode failures
//   - Stats recording failures
//
// Error: Error conditions requiring attention
//   - Transport failures
//   - Redis unavailable at startup
//   - Configuration errors
//
// Context Fields:
//   - component: neis-client, pagination, stats, neis-proxy, cli
//   - resource: NEIS dataset name (schoolInfo, mealServiceDietInfo, ...)
//   - page, page_size: pIndex and pSize of the request
//   - total_count: list_total_count reported by the page head
//   - rows: rows on the page or in the finished fetch
//   - status: HTTP status code
//   - code, message: NEIS RESULT code and message
//   - error_class: transport, http_status, decode, result
//   - duration: request or fetch duration
