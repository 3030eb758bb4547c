package main

import (
	"blockfall/client"
	"blockfall/tetris"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[24;0H\n\r\033[?25h"
)

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: %v\n", err)
		os.Exit(1)
	}
}

type settings struct {
	config  tetris.Config
	seed    uint64
	frame   time.Duration
	logPath string
	debug   bool
}

func newCommand(action func(context.Context, *settings) error) *cli.Command {
	def := tetris.DefaultConfig()
	return &cli.Command{
		Name:  "blockfall",
		Usage: "falling blocks in the terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "width",
				Usage:   "board width in cells",
				Value:   def.Width,
				Sources: cli.EnvVars("BLOCKFALL_WIDTH"),
			},
			&cli.IntFlag{
				Name:    "height",
				Usage:   "board height in cells",
				Value:   def.Height,
				Sources: cli.EnvVars("BLOCKFALL_HEIGHT"),
			},
			&cli.DurationFlag{
				Name:    "gravity",
				Usage:   "time before the piece falls one row",
				Value:   def.Gravity,
				Sources: cli.EnvVars("BLOCKFALL_GRAVITY"),
			},
			&cli.IntFlag{
				Name:    "score-per-row",
				Usage:   "points for every cleared row",
				Value:   def.ScorePerRow,
				Sources: cli.EnvVars("BLOCKFALL_SCORE_PER_ROW"),
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "seed for the piece sequence, 0 picks a random one",
				Sources: cli.EnvVars("BLOCKFALL_SEED"),
			},
			&cli.DurationFlag{
				Name:    "frame",
				Usage:   "how often the game clock advances",
				Value:   tetris.DefaultFrame,
				Sources: cli.EnvVars("BLOCKFALL_FRAME"),
			},
			&cli.StringFlag{
				Name:    "log",
				Usage:   "log file, the terminal is taken by the game",
				Value:   "blockfall.log",
				Sources: cli.EnvVars("BLOCKFALL_LOG"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("BLOCKFALL_DEBUG"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, &settings{
				config: tetris.Config{
					Width:       cmd.Int("width"),
					Height:      cmd.Int("height"),
					Gravity:     cmd.Duration("gravity"),
					ScorePerRow: cmd.Int("score-per-row"),
				},
				seed:    cmd.Uint64("seed"),
				frame:   cmd.Duration("frame"),
				logPath: cmd.String("log"),
				debug:   cmd.Bool("debug"),
			})
		},
	}
}

func run(_ context.Context, s *settings) error {
	logger, closeLog, err := newLogger(s.logPath, s.debug)
	if err != nil {
		return err
	}
	defer closeLog() //nolint: errcheck

	seed := s.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	engine, err := tetris.New(s.config,
		tetris.WithLogger(logger),
		tetris.WithRand(rand.New(rand.NewPCG(seed, seed))),
	)
	if err != nil {
		return fmt.Errorf("unable to create game: %w", err)
	}
	logger.Info("starting", slog.String("game_id", engine.ID().String()), slog.Uint64("seed", seed))

	c, err := client.New(logger, engine, &client.Options{Frame: s.frame})
	if err != nil {
		return fmt.Errorf("unable to create client: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("unable to close the keyboard", slog.String("error", err.Error()))
		}
	}()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	c.Start()
	return nil
}

func newLogger(path string, debug bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f.Close, nil
}
