// Package client is a terminal frontend for the game: it reads the keyboard
// and draws every snapshot published by the game driver.
package client

import (
	"blockfall/tetris"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

type tetrisGame interface {
	Start()
	GetUpdate() <-chan *tetris.Snapshot
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	game(*tetris.Snapshot)
	lobby(*tetris.Snapshot)
	reset()
}

type Client struct {
	tetris tetrisGame
	render renderer
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
	state  *state
	wg     sync.WaitGroup
}

type Options struct {
	// Writer is where the game is drawn. Defaults to os.Stdout.
	Writer io.Writer
	// Frame is how often the game clock advances. Defaults to tetris.DefaultFrame.
	Frame time.Duration
}

func New(l *slog.Logger, e *tetris.Engine, o *Options) (*Client, error) {
	if o == nil {
		o = &Options{}
	}
	r, err := newRender(l, o.Writer)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		tetris: tetris.NewGame(e, o.Frame, l),
		render: r,
		logger: l,
		kbCh:   kb,
		state:  &state{current: lobby},
	}, nil
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.reset()
	c.render.lobby(nil)
	c.listenKB()
	c.tetris.Stop()
	c.wg.Wait()
}

// Close releases the keyboard.
func (c *Client) Close() error {
	return keyboard.Close()
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.state.set(playing)
				c.tetris.Start()
				c.wg.Add(1)
				go c.listenTetris()
			case 'q':
				return
			}
		case playing:
			var a tetris.Action
			switch {
			case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
				a = tetris.MoveDown
			case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
				a = tetris.MoveLeft
			case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
				a = tetris.MoveRight
			case event.Key == keyboard.KeyArrowUp || event.Rune == 'w':
				a = tetris.RotateRight
			case event.Key == keyboard.KeySpace:
				a = tetris.DropDown
			case event.Key == keyboard.KeyEsc:
				c.tetris.Stop()
				continue
			default:
				continue
			}
			c.tetris.Action(a)
		}
	}
}

func (c *Client) listenTetris() {
	defer c.wg.Done()
	c.render.reset()
	var last *tetris.Snapshot
	for u := range c.tetris.GetUpdate() {
		c.render.game(u)
		last = u
	}
	if last != nil {
		c.logger.Debug("game finished",
			slog.String("game_id", last.ID.String()),
			slog.String("state", last.State.String()),
			slog.Int("score", last.Score),
		)
	}
	c.state.set(lobby)
	c.render.lobby(last)
}
