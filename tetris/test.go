package tetris

import (
	"math/rand/v2"
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick(t time.Time)    { m.ch <- t }
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// Dot is a single cell piece, handy for placing blocks precisely in tests.
const Dot Kind = "dot"

// TestCatalog returns a catalog with a single kind so spawns are predictable.
// Dot returns a 1x1 shape, any other kind is looked up in the default catalog.
func TestCatalog(k Kind) []Template {
	if k == Dot {
		return []Template{{Kind: Dot, Shape: Shape{{true}}}}
	}
	for _, t := range DefaultCatalog() {
		if t.Kind == k {
			return []Template{t}
		}
	}
	return nil
}

// NewTestEngine creates a started engine that always spawns the given kind.
func NewTestEngine(width, height int, k Kind) *Engine {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = width, height
	e, err := New(cfg, WithCatalog(TestCatalog(k)), WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		panic(err)
	}
	e.Start()
	return e
}
