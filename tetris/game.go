package tetris

import (
	"log/slog"
	"sync"
	"time"
)

type Action string

const (
	MoveLeft    Action = "left"     // Moves the piece one step to the left.
	MoveRight   Action = "right"    // Moves the piece one step to the right.
	MoveDown    Action = "down"     // Moves the piece one step down.
	DropDown    Action = "drop"     // Drops the piece down the board.
	RotateRight Action = "rotatecw" // Rotates the piece clockwise.
)

// DefaultFrame is how often the driver advances the game clock.
const DefaultFrame = 16 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	t := &wrappedTicker{ticker: time.NewTicker(d)}
	t.ticker.Stop()
	return t
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game runs an Engine on its own goroutine. Ticks and actions are handled one
// at a time so the Engine never sees concurrent calls. Every change is published
// as a Snapshot on the update channel, which is closed when the game stops.
type Game struct {
	engine *Engine
	ticker Ticker
	frame  time.Duration
	logger *slog.Logger

	mu       sync.Mutex
	actionCh chan Action
	updateCh chan *Snapshot
	doneCh   chan struct{}
	exitCh   chan struct{}
	stop     func()
}

// NewGame drives e with a real ticker firing every frame. A non-positive frame uses DefaultFrame.
func NewGame(e *Engine, frame time.Duration, l *slog.Logger) *Game {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return NewConfigurableGame(e, newWrappedTicker(frame), frame, l)
}

func NewConfigurableGame(e *Engine, ticker Ticker, frame time.Duration, l *slog.Logger) *Game {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	doneCh := make(chan struct{})
	close(doneCh)
	updateCh := make(chan *Snapshot)
	close(updateCh)
	return &Game{
		engine:   e,
		ticker:   ticker,
		frame:    frame,
		logger:   l,
		actionCh: make(chan Action),
		updateCh: updateCh,
		doneCh:   doneCh,
		exitCh:   doneCh,
		stop:     func() {},
	}
}

// Start restarts the engine and begins driving it. A running game is stopped first.
func (g *Game) Start() {
	g.Stop()

	g.mu.Lock()
	defer g.mu.Unlock()
	// the previous loop must be gone before the engine is touched.
	<-g.exitCh
	g.engine.Start()
	g.actionCh = make(chan Action)
	g.updateCh = make(chan *Snapshot)
	g.doneCh = make(chan struct{})
	g.exitCh = make(chan struct{})
	var once sync.Once
	doneCh := g.doneCh
	g.stop = func() {
		once.Do(func() {
			g.ticker.Stop()
			close(doneCh)
		})
	}
	go g.listen(g.actionCh, g.updateCh, g.doneCh, g.exitCh, g.stop)
}

// Stop halts the game. It's safe to call it more than once.
func (g *Game) Stop() {
	g.mu.Lock()
	stop := g.stop
	g.mu.Unlock()
	stop()
}

// Action sends a player action to the game. It's dropped if the game isn't running.
func (g *Game) Action(a Action) {
	g.mu.Lock()
	actionCh, doneCh := g.actionCh, g.doneCh
	g.mu.Unlock()
	select {
	case actionCh <- a:
	case <-doneCh:
	}
}

// GetUpdate returns the channel where the snapshots of the running game are published.
func (g *Game) GetUpdate() <-chan *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.updateCh
}

func (g *Game) listen(actionCh <-chan Action, updateCh chan<- *Snapshot, doneCh <-chan struct{}, exitCh chan<- struct{}, stop func()) {
	defer close(exitCh)
	defer close(updateCh)
	g.ticker.Reset(g.frame)

	var last time.Time
	for {
		s := g.engine.Snapshot()
		select {
		case updateCh <- s:
		case <-doneCh:
			return
		}
		if s.State == GameOver {
			g.logger.Info("game over", slog.String("game_id", s.ID.String()), slog.Int("score", s.Score))
			stop()
			return
		}

		select {
		case t := <-g.ticker.C():
			// the first frame only sets the clock.
			if !last.IsZero() {
				g.engine.Step(t.Sub(last))
			}
			last = t
		case a := <-actionCh:
			g.engine.action(a)
		case <-doneCh:
			return
		}
	}
}

func (e *Engine) action(a Action) {
	switch a {
	case MoveLeft:
		e.MoveLeft()
	case MoveRight:
		e.MoveRight()
	case MoveDown:
		e.SoftDrop()
	case DropDown:
		e.HardDrop()
	case RotateRight:
		e.Rotate()
	}
}
