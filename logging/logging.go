// Package logging provides the structured logging collaborator consumed by
// geoio's load/save pipeline. It wraps a standard slog.Logger for local
// logging while optionally publishing entries to NATS so a remote console
// can stream I/O diagnostics in real time.
package logging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Severity is the level of a published log entry.
type Severity string

const (
	// SeverityInfo marks informational entries.
	SeverityInfo Severity = "INFO"
	// SeverityWarn marks expected-but-notable entries (e.g. user cancellation).
	SeverityWarn Severity = "WARN"
	// SeverityError marks faults.
	SeverityError Severity = "ERROR"
)

// Entry is the wire form of a published log entry.
type Entry struct {
	Timestamp string   `json:"timestamp"` // RFC3339 format
	Level     Severity `json:"level"`
	Scope     string   `json:"scope"`
	Session   string   `json:"session,omitempty"`
	Message   string   `json:"message"`
}

// Logger emits diagnostics at three severities. Local logging goes through
// slog; when a NATS connection is supplied, every entry is also published
// on "io.logs.<session>.<scope>".
type Logger struct {
	scope   string
	session string
	nc      *nats.Conn
	logger  *slog.Logger
	enabled bool
}

// New creates a logger for the given scope. session may be empty; nc may
// be nil to disable remote streaming; a nil slog.Logger falls back to
// slog.Default.
func New(scope, session string, nc *nats.Conn, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{
		scope:   scope,
		session: session,
		nc:      nc,
		logger:  logger,
		enabled: nc != nil,
	}
}

// WithSession returns a copy of the logger bound to a session identifier.
func (l *Logger) WithSession(session string) *Logger {
	clone := *l
	clone.session = session
	return &clone
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.publish(SeverityInfo, msg)
	l.logger.Info(msg, append([]any{"scope", l.scope}, args...)...)
}

// Warn logs a warning.
func (l *Logger) Warn(msg string, args ...any) {
	l.publish(SeverityWarn, msg)
	l.logger.Warn(msg, append([]any{"scope", l.scope}, args...)...)
}

// Error logs a fault.
func (l *Logger) Error(msg string, args ...any) {
	l.publish(SeverityError, msg)
	l.logger.Error(msg, append([]any{"scope", l.scope}, args...)...)
}

// publish sends the entry to NATS when streaming is enabled. Publishing
// failures are reported locally and never fail the caller.
func (l *Logger) publish(level Severity, message string) {
	if !l.enabled {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Scope:     l.scope,
		Session:   l.session,
		Message:   message,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error("failed to marshal log entry", "error", err)
		return
	}

	nc := l.nc
	if nc == nil {
		return
	}

	subject := fmt.Sprintf("io.logs.%s.%s", l.session, l.scope)
	if err := nc.Publish(subject, data); err != nil {
		l.logger.Error("failed to publish log entry", "error", err, "subject", subject)
	}
}
