package main

import (
	"blockfall/tetris"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *settings {
	t.Helper()
	var got *settings
	cmd := newCommand(func(_ context.Context, s *settings) error {
		got = s
		return nil
	})
	require.NoError(t, cmd.Run(context.Background(), append([]string{"blockfall"}, args...)))
	require.NotNil(t, got)
	return got
}

func TestFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := parse(t)
		assert.Equal(t, tetris.DefaultConfig(), s.config)
		assert.Equal(t, uint64(0), s.seed)
		assert.Equal(t, tetris.DefaultFrame, s.frame)
		assert.Equal(t, "blockfall.log", s.logPath)
		assert.False(t, s.debug)
	})

	t.Run("flags", func(t *testing.T) {
		s := parse(t,
			"--width", "6",
			"--height", "12",
			"--gravity", "250ms",
			"--score-per-row", "100",
			"--seed", "42",
			"--frame", "10ms",
			"--debug",
		)
		assert.Equal(t, tetris.Config{Width: 6, Height: 12, Gravity: 250 * time.Millisecond, ScorePerRow: 100}, s.config)
		assert.Equal(t, uint64(42), s.seed)
		assert.Equal(t, 10*time.Millisecond, s.frame)
		assert.True(t, s.debug)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("BLOCKFALL_WIDTH", "8")
		t.Setenv("BLOCKFALL_GRAVITY", "1s")
		s := parse(t)
		assert.Equal(t, 8, s.config.Width)
		assert.Equal(t, time.Second, s.config.Gravity)
	})
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	s := parse(t, "--width", "0")
	s.logPath = filepath.Join(t.TempDir(), "test.log")
	err := run(context.Background(), s)
	assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, closeLog, err := newLogger(path, true)
	require.NoError(t, err)
	l.Debug("hello", slog.String("k", "v"))
	require.NoError(t, closeLog())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=hello k=v")
}
