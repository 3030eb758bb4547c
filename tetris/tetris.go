// Package tetris contains the logic of a falling-block puzzle game.
//
// The Engine owns the board, the falling piece and the score. It doesn't know
// about time, input or screens: a driver calls Step with the elapsed time, input
// calls the move and rotate methods, and renderers read a Snapshot.
package tetris

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// State is the phase of a game.
type State int

const (
	Idle State = iota
	Playing
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Engine is a single game. It isn't safe for concurrent use: all calls are
// expected to come from the same goroutine, see Game.
type Engine struct {
	id      uuid.UUID
	cfg     Config
	logger  *slog.Logger
	board   *Board
	factory *PieceFactory
	piece   *Piece

	state  State
	score  int
	lines  int
	pieces int
	// time elapsed since the last gravity step.
	accumulator time.Duration
}

// Snapshot is a copy of the game status that's safe to read after the Engine moves on.
type Snapshot struct {
	ID     uuid.UUID
	Board  [][]Cell
	Piece  *Piece
	Score  int
	Lines  int
	Pieces int
	State  State
}

func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &options{
		catalog: DefaultCatalog(),
		palette: DefaultPalette(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	board, err := NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	factory, err := NewPieceFactory(cfg.Width, o.catalog, o.palette, o.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to build piece factory: %w", err)
	}

	id := uuid.New()
	return &Engine{
		id:      id,
		cfg:     cfg,
		logger:  o.logger.With(slog.String("game_id", id.String())),
		board:   board,
		factory: factory,
		state:   Idle,
	}, nil
}

func (e *Engine) ID() uuid.UUID  { return e.id }
func (e *Engine) Config() Config { return e.cfg }
func (e *Engine) State() State   { return e.state }
func (e *Engine) Score() int     { return e.score }

// Start empties the board, resets the score and spawns the first piece.
// It can be called at any time to restart the game.
func (e *Engine) Start() {
	e.board.Reset()
	e.score = 0
	e.lines = 0
	e.pieces = 0
	e.accumulator = 0
	e.state = Playing
	e.logger.Debug("game started",
		slog.Int("width", e.cfg.Width),
		slog.Int("height", e.cfg.Height),
	)
	e.spawn()
}

func (e *Engine) MoveLeft() {
	if e.state != Playing {
		return
	}
	if !e.isCollision(-1, 0, e.piece) {
		e.piece.X--
	}
}

func (e *Engine) MoveRight() {
	if e.state != Playing {
		return
	}
	if !e.isCollision(1, 0, e.piece) {
		e.piece.X++
	}
}

// Rotate turns the piece clockwise. The rotation is dropped if the new shape doesn't fit.
func (e *Engine) Rotate() {
	if e.state != Playing {
		return
	}
	test := &Piece{
		Shape: RotateClockwise(e.piece.Shape),
		X:     e.piece.X,
		Y:     e.piece.Y,
	}
	if !e.isCollision(0, 0, test) {
		e.piece.Shape = test.Shape
	}
}

// SoftDrop moves the piece one row down without waiting for gravity.
// If the piece can't go down it's locked.
func (e *Engine) SoftDrop() {
	if e.state != Playing {
		return
	}
	e.fall()
}

// HardDrop moves the piece down until it's blocked and locks it.
func (e *Engine) HardDrop() {
	if e.state != Playing {
		return
	}
	for !e.isCollision(0, 1, e.piece) {
		e.piece.Y++
	}
	e.lock()
}

// Step advances the game clock. Every time the elapsed time goes over the
// gravity threshold the piece falls one row.
func (e *Engine) Step(elapsed time.Duration) {
	if e.state != Playing || elapsed <= 0 {
		return
	}
	e.accumulator += elapsed
	for e.accumulator > e.cfg.Gravity && e.state == Playing {
		e.accumulator -= e.cfg.Gravity
		e.fall()
	}
}

// Snapshot returns a copy of the current game.
func (e *Engine) Snapshot() *Snapshot {
	return &Snapshot{
		ID:     e.id,
		Board:  e.board.Rows(),
		Piece:  e.piece.copy(),
		Score:  e.score,
		Lines:  e.lines,
		Pieces: e.pieces,
		State:  e.state,
	}
}

func (e *Engine) fall() {
	if e.isCollision(0, 1, e.piece) {
		e.lock()
		return
	}
	e.piece.Y++
}

// isCollision() receives the desired offset of the piece and tells whether any
// of its filled cells would land out of bounds or on a filled board cell.
//
//	  0 1 2 3 4 5			0 1 2
//	0 . . O O O .		0	O O O
//	1 . . . O . .		1	X O X
//	2 . . . C . .
func (e *Engine) isCollision(dx, dy int, p *Piece) bool {
	for iy, r := range p.Shape {
		for ix, c := range r {
			// empty cells of the shape never collide.
			if c && e.board.Occupied(p.X+ix+dx, p.Y+iy+dy) {
				return true
			}
		}
	}
	return false
}

// lock writes the piece into the board, clears the complete rows and spawns the next piece.
func (e *Engine) lock() {
	for _, c := range e.piece.Cells() {
		e.board.Set(c[0], c[1], Filled)
	}
	rows := e.board.ClearCompletedRows()
	e.lines += rows
	e.score += rows * e.cfg.ScorePerRow
	e.logger.Debug("piece locked",
		slog.String("kind", string(e.piece.Kind)),
		slog.Int("x", e.piece.X),
		slog.Int("y", e.piece.Y),
		slog.Int("rows_cleared", rows),
		slog.Int("score", e.score),
	)
	e.spawn()
}

func (e *Engine) spawn() {
	e.piece = e.factory.Spawn()
	e.pieces++
	if e.isCollision(0, 0, e.piece) {
		e.state = GameOver
		e.logger.Debug("game over",
			slog.Int("score", e.score),
			slog.Int("lines", e.lines),
			slog.Int("pieces", e.pieces),
		)
	}
}
