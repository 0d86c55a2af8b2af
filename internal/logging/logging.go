// Package logging renders log records as "[<Severity>]: <message>" lines on
// the console and mirrors them into a timestamped log file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Severities, in ascending order of noise.
const (
	SeverityNormal  = "Normal"
	SeverityInfo    = "Info"
	SeverityWarning = "Warning"
	SeverityError   = "Error"
)

var severityColors = map[string]*color.Color{
	SeverityNormal:  color.New(color.Faint),
	SeverityInfo:    color.New(color.FgGreen),
	SeverityWarning: color.New(color.FgYellow),
	SeverityError:   color.New(color.FgRed),
}

func severityOf(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return SeverityError
	case level >= slog.LevelWarn:
		return SeverityWarning
	case level >= slog.LevelInfo:
		return SeverityInfo
	default:
		return SeverityNormal
	}
}

// Handler is a slog.Handler producing severity-prefixed lines.
type Handler struct {
	mu      *sync.Mutex
	console io.Writer
	file    io.Writer
	level   slog.Leveler
	attrs   []slog.Attr
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler writes formatted lines to console and, when file is non-nil,
// mirrors them (uncolored) to file.
func NewHandler(console, file io.Writer, level slog.Leveler) *Handler {
	return &Handler{
		mu:      &sync.Mutex{},
		console: console,
		file:    file,
		level:   level,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	severity := severityOf(record.Level)

	var parts []string
	parts = append(parts, record.Message)
	for _, attr := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%v", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%v", attr.Key, attr.Value))
		return true
	})
	message := strings.Join(parts, " ")

	h.mu.Lock()
	defer h.mu.Unlock()

	prefix := fmt.Sprintf("[%s]", severity)
	if c, ok := severityColors[severity]; ok {
		prefix = c.Sprint(prefix)
	}
	if _, err := fmt.Fprintf(h.console, "%s: %s\n", prefix, message); err != nil {
		return fmt.Errorf("write console log: %w", err)
	}
	if h.file != nil {
		if _, err := fmt.Fprintf(h.file, "[%s]: %s\n", severity, message); err != nil {
			return fmt.Errorf("write file log: %w", err)
		}
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *Handler) WithGroup(string) slog.Handler {
	// Groups are not used by this application's log lines.
	return h
}

// NewConsoleLogger returns a logger writing to stdout only.
func NewConsoleLogger(debug bool) *slog.Logger {
	return slog.New(NewHandler(os.Stdout, nil, levelFor(debug)))
}

// NewLogger returns a logger teeing every line into
// dir/dictgen-<timestamp>.log, plus a close function for the file.
func NewLogger(dir string, debug bool) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	name := fmt.Sprintf("dictgen-%s.log", time.Now().Format("20060102-150405"))
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, nil, fmt.Errorf("os.Create(%s) > %w", name, err)
	}

	logger := slog.New(NewHandler(os.Stdout, file, levelFor(debug)))
	return logger, file.Close, nil
}

func levelFor(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
