package tetris

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

var (
	ErrInvalidConfig = errors.New("config validation")
	ErrInvalidShape  = errors.New("invalid shape")
	ErrEmptyCatalog  = errors.New("piece catalog is empty")
	ErrEmptyPalette  = errors.New("piece palette is empty")
)

const (
	defaultWidth       = 10
	defaultHeight      = 20
	defaultGravity     = 500 * time.Millisecond
	defaultScorePerRow = 10
)

// Config holds the settings an Engine is built with. They can't change afterwards.
type Config struct {
	Width, Height int
	// Gravity is the time the piece waits before falling one row.
	Gravity     time.Duration
	ScorePerRow int
}

func DefaultConfig() Config {
	return Config{
		Width:       defaultWidth,
		Height:      defaultHeight,
		Gravity:     defaultGravity,
		ScorePerRow: defaultScorePerRow,
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive, got %s", ErrInvalidConfig, c.Gravity)
	}
	if c.ScorePerRow < 0 {
		return fmt.Errorf("%w: score per row can't be negative, got %d", ErrInvalidConfig, c.ScorePerRow)
	}
	return nil
}

type options struct {
	rng     *rand.Rand
	logger  *slog.Logger
	catalog []Template
	palette []Color
}

// Option customizes an Engine.
type Option func(*options)

// WithRand sets the random source used to pick shapes. Useful for replaying a game.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithCatalog(c []Template) Option {
	return func(o *options) { o.catalog = c }
}

func WithPalette(p []Color) Option {
	return func(o *options) { o.palette = p }
}
