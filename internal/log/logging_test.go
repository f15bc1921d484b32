package log_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btn0s/prototype-playground/internal/log"
	"github.com/btn0s/prototype-playground/source"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", log.LevelTrace},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, log.ParseLevel(tt.in), tt.in)
	}
}

func TestConsoleSplitsErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	logger, closers, err := log.SetupLoggerTo(log.Console{Out: &out, Err: &errOut}, "trace", "")
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Log(t.Context(), log.LevelTrace, "snapshot")
	logger.Info("button event", "button", "A")
	logger.Error("source failed")

	assert.Contains(t, out.String(), "level=TRACE")
	assert.Contains(t, out.String(), "button=A")
	assert.NotContains(t, out.String(), "source failed")
	assert.Contains(t, errOut.String(), "source failed")
}

func TestLevelFiltersConsole(t *testing.T) {
	var out bytes.Buffer
	logger, _, err := log.SetupLoggerTo(log.Console{Out: &out}, "warn", "")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}

func TestFileOnlyLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backbone.log")
	logger, closers, err := log.SetupLoggerTo(log.Console{}, "debug", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("written to file")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestSnapshotLogger(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewSnapshotLogger(&buf)

	l.Log(&source.Snapshot{
		Index:     1,
		ID:        "js0",
		Buttons:   []source.Button{{Pressed: true}, {}, {Pressed: true}},
		Axes:      []float64{0.5, -1},
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 6e6, time.UTC),
	})
	l.Log(nil)

	line := buf.String()
	assert.Equal(t, 1, strings.Count(line, "\n"))
	assert.Contains(t, line, "2024/01/02 03:04:05.006")
	assert.Contains(t, line, `pad 1 "js0"`)
	assert.Contains(t, line, "buttons: 101")
	assert.Contains(t, line, "axes: [0.500 -1.000]")
}

func TestNilSnapshotLoggerIsNoop(t *testing.T) {
	l := log.NewSnapshotLogger(nil)
	assert.NotPanics(t, func() { l.Log(&source.Snapshot{}) })
}
