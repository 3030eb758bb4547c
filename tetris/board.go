package tetris

import (
	"fmt"
	"slices"
)

// Cell is the state of a single position in the board.
type Cell uint8

const (
	Empty Cell = iota
	Filled
)

// Board is the playfield where pieces are locked.
//
// Columns are 0 > W-1 left to right and represent the X axis.
// Rows are 0 > H-1 top to bottom and represent the Y axis.
//
//	  0 1 2 3
//	0 . . . .
//	1 . . . .
//	2 . . X .
//	3 X X X .
type Board struct {
	width, height int
	rows          [][]Cell
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, width, height)
	}
	b := &Board{
		width:  width,
		height: height,
		rows:   make([][]Cell, height),
	}
	for y := range b.rows {
		b.rows[y] = b.newRow()
	}
	return b, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Occupied reports whether a piece cell can't be placed at x, y.
// Any position outside of the board counts as occupied, including above the top row.
func (b *Board) Occupied(x, y int) bool {
	if !b.inBounds(x, y) {
		return true
	}
	return b.rows[y][x] == Filled
}

// Cell returns the content of x, y or Empty when out of bounds.
func (b *Board) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Empty
	}
	return b.rows[y][x]
}

// Set writes a single cell. Writes out of bounds are dropped.
func (b *Board) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.rows[y][x] = c
}

// Reset empties every cell.
func (b *Board) Reset() {
	for y := range b.rows {
		clear(b.rows[y])
	}
}

// ClearCompletedRows removes every full row and adds an empty one at the top for each,
// so the board keeps its height. It returns the number of rows removed.
func (b *Board) ClearCompletedRows() int {
	kept := make([][]Cell, 0, b.height)
	for _, row := range b.rows {
		if slices.Contains(row, Empty) {
			kept = append(kept, row)
		}
	}
	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}

	rows := make([][]Cell, 0, b.height)
	for range cleared {
		rows = append(rows, b.newRow())
	}
	b.rows = append(rows, kept...)

	return cleared
}

// Rows returns a copy of the grid that is safe to hand to a renderer.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, len(b.rows))
	for i := range b.rows {
		rows[i] = make([]Cell, len(b.rows[i]))
		copy(rows[i], b.rows[i])
	}
	return rows
}

func (b *Board) newRow() []Cell {
	return make([]Cell, b.width)
}
