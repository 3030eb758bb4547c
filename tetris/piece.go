package tetris

import "fmt"

// Shape is the occupancy grid of a piece. Rows are top to bottom and
// a true value is a filled cell.
//
//	. 0 1 2
//	0 O O O
//	1 X O X
type Shape [][]bool

// Validate checks the shape is not empty and all of its rows have the same length.
func (s Shape) Validate() error {
	if len(s) == 0 || len(s[0]) == 0 {
		return fmt.Errorf("%w: empty shape", ErrInvalidShape)
	}
	for i, r := range s {
		if len(r) != len(s[0]) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidShape, i, len(r), len(s[0]))
		}
	}
	return nil
}

func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for i := range s {
		c[i] = make([]bool, len(s[i]))
		copy(c[i], s[i])
	}
	return c
}

// Equal compares the occupancy of two shapes.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(o[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// RotateClockwise returns a new shape turned 90 degrees clockwise.
// The input is left untouched. A shape of R rows by C columns becomes C rows by R columns.
//
//	. 0 1 2 3		. 0 1
//	0 O O O O		0 X O
//	1 X X X O	>	1 X O
//	.				2 X O
//	.				3 O O
func RotateClockwise(s Shape) Shape {
	if len(s) == 0 {
		return Shape{}
	}
	rotated := make(Shape, len(s[0]))
	for i := range rotated {
		rotated[i] = make([]bool, len(s))
		for j := range rotated[i] {
			rotated[i][j] = s[len(s)-1-j][i]
		}
	}
	return rotated
}

// Color is the tag a renderer uses to paint the piece.
type Color string

const (
	Blue   Color = "blue"
	Red    Color = "red"
	Green  Color = "green"
	Yellow Color = "yellow"
)

// Kind names the catalog entry a piece was built from.
type Kind string

// Piece is the falling block controlled by the player.
// X and Y are the board position of the shape's top-left cell.
type Piece struct {
	Shape Shape
	Color Color
	Kind  Kind
	X, Y  int
}

// Cells returns the board coordinates of every filled cell of the piece as [x, y] pairs.
func (p *Piece) Cells() [][2]int {
	var cells [][2]int
	for iy, r := range p.Shape {
		for ix, c := range r {
			if c {
				cells = append(cells, [2]int{p.X + ix, p.Y + iy})
			}
		}
	}
	return cells
}

func (p *Piece) copy() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{
		Shape: p.Shape.Clone(),
		Color: p.Color,
		Kind:  p.Kind,
		X:     p.X,
		Y:     p.Y,
	}
}
