// Package logging builds the process logger.
//
// Records fan out to a human-readable text handler (stderr for one-shot
// commands) and a JSON file under the scenable root. Every record carries a
// session id so lines from concurrent invocations can be told apart.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	// Level is the minimum level for every handler.
	Level slog.Leveler

	// Console receives text records. Nil disables console output, which the
	// interactive editor needs since it owns the terminal.
	Console io.Writer

	// File is the JSON log file path. Empty disables file output.
	File string

	// Session overrides the generated session id.
	Session string
}

// ParseLevel converts a level name (debug, info, warn, error) to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}

// New returns a logger writing to the configured outputs and a closer for
// the log file. The closer is never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	var (
		handlers []slog.Handler
		closer   io.Closer = nopCloser{}
	)

	if opts.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, &slog.HandlerOptions{
			Level: level,
		}))
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}

	var handler slog.Handler = slog.DiscardHandler
	if len(handlers) > 0 {
		handler = slogmulti.Fanout(handlers...)
	}

	session := opts.Session
	if session == "" {
		session = uuid.NewString()
	}

	return slog.New(handler).With("session", session), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// CloseQuietly closes c and reports a failure on stderr. It is meant for
// deferred cleanup at process exit, where there is no logger left to use.
func CloseQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}
