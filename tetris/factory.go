package tetris

import (
	"fmt"
	"math/rand/v2"
)

const (
	O Kind = "O"
	T Kind = "T"
	I Kind = "I"
	L Kind = "L"
	Z Kind = "Z"
)

// Template is a catalog entry used by the PieceFactory.
type Template struct {
	Kind  Kind
	Shape Shape
}

// DefaultCatalog returns the five shapes of the game, in catalog order.
//
//	O	O O		T	O O O		I	O O O O		L	O O O O		Z	O O X
//	.	O O		.	X O X		.				.	X X X O		.	X O O
func DefaultCatalog() []Template {
	return []Template{
		{Kind: O, Shape: Shape{
			{true, true},
			{true, true},
		}},
		{Kind: T, Shape: Shape{
			{true, true, true},
			{false, true, false},
		}},
		{Kind: I, Shape: Shape{
			{true, true, true, true},
		}},
		{Kind: L, Shape: Shape{
			{true, true, true, true},
			{false, false, false, true},
		}},
		{Kind: Z, Shape: Shape{
			{true, true, false},
			{false, true, true},
		}},
	}
}

// DefaultPalette returns the colors pieces cycle through.
func DefaultPalette() []Color {
	return []Color{Blue, Red, Green, Yellow}
}

// PieceFactory builds new pieces. The shape is drawn at random from the catalog
// while the color follows the palette in order, wrapping after the last one.
type PieceFactory struct {
	width   int
	catalog []Template
	palette []Color
	rng     *rand.Rand
	next    int // palette index of the next piece
}

func NewPieceFactory(width int, catalog []Template, palette []Color, rng *rand.Rand) (*PieceFactory, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: spawn width must be positive, got %d", ErrInvalidConfig, width)
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	c := make([]Template, len(catalog))
	for i, t := range catalog {
		if err := t.Shape.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, t.Kind, err)
		}
		c[i] = Template{Kind: t.Kind, Shape: t.Shape.Clone()}
	}
	p := make([]Color, len(palette))
	copy(p, palette)
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &PieceFactory{
		width:   width,
		catalog: c,
		palette: p,
		rng:     rng,
	}, nil
}

// Spawn returns a new piece at the top center of the board.
func (f *PieceFactory) Spawn() *Piece {
	t := f.catalog[f.rng.IntN(len(f.catalog))]
	color := f.palette[f.next]
	f.next = (f.next + 1) % len(f.palette)

	return &Piece{
		Shape: t.Shape.Clone(),
		Color: color,
		Kind:  t.Kind,
		X:     f.width / 2,
		Y:     0,
	}
}
