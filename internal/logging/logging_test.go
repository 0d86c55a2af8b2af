package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_SeverityFormat(t *testing.T) {
	// Force plain output so assertions see no ANSI escapes.
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	tests := []struct {
		name string
		log  func(logger *slog.Logger)
		want string
	}{
		{
			name: "info",
			log:  func(l *slog.Logger) { l.Info("added \"test\" as \"noun\"") },
			want: "[Info]: added \"test\" as \"noun\"\n",
		},
		{
			name: "warning",
			log:  func(l *slog.Logger) { l.Warn("daily quota exhausted") },
			want: "[Warning]: daily quota exhausted\n",
		},
		{
			name: "error",
			log:  func(l *slog.Logger) { l.Error("lookup failed") },
			want: "[Error]: lookup failed\n",
		},
		{
			name: "debug maps to Normal",
			log:  func(l *slog.Logger) { l.Debug("starting up") },
			want: "[Normal]: starting up\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console bytes.Buffer
			logger := slog.New(NewHandler(&console, nil, slog.LevelDebug))

			tt.log(logger)
			assert.Equal(t, tt.want, console.String())
		})
	}
}

func TestHandler_AttrsAppended(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var console bytes.Buffer
	logger := slog.New(NewHandler(&console, nil, slog.LevelInfo))

	logger.With("word", "test").Info("looked up", "category", "noun")

	assert.Equal(t, "[Info]: looked up word=test category=noun\n", console.String())
}

func TestHandler_LevelFiltering(t *testing.T) {
	var console bytes.Buffer
	logger := slog.New(NewHandler(&console, nil, slog.LevelInfo))

	logger.Debug("too quiet to show")

	assert.Empty(t, console.String())
}

func TestHandler_MirrorsToFile(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var console, file bytes.Buffer
	logger := slog.New(NewHandler(&console, &file, slog.LevelInfo))

	logger.Info("mirrored line")

	assert.Equal(t, "[Info]: mirrored line\n", console.String())
	assert.Equal(t, "[Info]: mirrored line\n", file.String())
}

func TestNewLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, closeLog, err := NewLogger(dir, false)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closeLog())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "dictgen-"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".log"))

	contents, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(contents), "[Info]: hello")
}
