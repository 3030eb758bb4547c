package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateClockwise(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  Shape
	}{
		{
			name: "T",
			// O O O		X O
			// X O X	>	O O
			// .			X O
			shape: Shape{
				{true, true, true},
				{false, true, false},
			},
			want: Shape{
				{false, true},
				{true, true},
				{false, true},
			},
		},
		{
			name: "L",
			// O O O O		X O
			// X X X O	>	X O
			// .			X O
			// .			O O
			shape: Shape{
				{true, true, true, true},
				{false, false, false, true},
			},
			want: Shape{
				{false, true},
				{false, true},
				{false, true},
				{true, true},
			},
		},
		{
			name:  "I",
			shape: Shape{{true, true, true, true}},
			want:  Shape{{true}, {true}, {true}, {true}},
		},
		{
			name:  "O",
			shape: Shape{{true, true}, {true, true}},
			want:  Shape{{true, true}, {true, true}},
		},
		{
			name: "Z",
			// O O X		X O
			// X O O	>	O O
			// .			O X
			shape: Shape{
				{true, true, false},
				{false, true, true},
			},
			want: Shape{
				{false, true},
				{true, true},
				{true, false},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			original := tt.shape.Clone()
			got := RotateClockwise(tt.shape)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, original, tt.shape, "input shape was modified")
		})
	}
}

func TestFourRotationsAreIdentity(t *testing.T) {
	for _, tp := range append(DefaultCatalog(), TestCatalog(Dot)...) {
		t.Run(string(tp.Kind), func(t *testing.T) {
			s := tp.Shape
			for range 4 {
				s = RotateClockwise(s)
			}
			assert.True(t, tp.Shape.Equal(s), "wanted %v, got %v", tp.Shape, s)
		})
	}
}

func TestShapeEqual(t *testing.T) {
	s := Shape{{true, false}}
	assert.True(t, s.Equal(Shape{{true, false}}))
	assert.False(t, s.Equal(Shape{{true, true}}))
	assert.False(t, s.Equal(Shape{{true}, {false}}))
	assert.False(t, s.Equal(Shape{{true, false, false}}))
}

func TestCells(t *testing.T) {
	p := &Piece{
		Shape: Shape{
			{true, true, false},
			{false, true, true},
		},
		X: 3,
		Y: 7,
	}
	assert.Equal(t, [][2]int{{3, 7}, {4, 7}, {4, 8}, {5, 8}}, p.Cells())
}
