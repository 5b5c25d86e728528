package game

import (
	"fmt"
	"strconv"
)

type Variant uint8

const (
	Linear Variant = iota // single file, width 1
	Grid
)

func (v Variant) String() string {
	if v == Linear {
		return "linear"
	}
	return "grid"
}

type Square int

const NoSquare Square = -1

const (
	MaxWidth  = 8
	MaxHeight = 16
)

// Geometry describes the board shape. Squares are indexed row-major, row 0 being the top
// rank (Black's side), so a1 is the bottom-left square.
type Geometry struct {
	Variant Variant
	Width   int
	Height  int
}

func NewGeometry(variant Variant, width, height int) (Geometry, error) {
	if variant == Linear && width != 1 {
		return Geometry{}, fmt.Errorf("%w: single-file board must have width 1, got %d", ErrMalformed, width)
	}
	if width < 1 || width > MaxWidth {
		return Geometry{}, fmt.Errorf("%w: board width %d out of range [1, %d]", ErrMalformed, width, MaxWidth)
	}
	if height < 2 || height > MaxHeight {
		return Geometry{}, fmt.Errorf("%w: board height %d out of range [2, %d]", ErrMalformed, height, MaxHeight)
	}
	return Geometry{Variant: variant, Width: width, Height: height}, nil
}

func (g Geometry) Linear() bool {
	return g.Variant == Linear
}

func (g Geometry) Squares() int {
	return g.Width * g.Height
}

func (g Geometry) Row(sq Square) int {
	return int(sq) / g.Width
}

func (g Geometry) Col(sq Square) int {
	return int(sq) % g.Width
}

// Rank is the 1-based rank number of a square, counted from White's side.
func (g Geometry) Rank(sq Square) int {
	return g.Height - g.Row(sq)
}

func (g Geometry) Square(row, col int) (Square, bool) {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return NoSquare, false
	}
	return Square(row*g.Width + col), true
}

func (g Geometry) Step(sq Square, dRow, dCol int) (Square, bool) {
	return g.Square(g.Row(sq)+dRow, g.Col(sq)+dCol)
}

func (g Geometry) FileLabels() []string {
	labels := make([]string, g.Width)
	for col := range labels {
		labels[col] = string(rune('a' + col))
	}
	return labels
}

// RankNumbers lists rank numbers in row order, top rank first.
func (g Geometry) RankNumbers() []int {
	ranks := make([]int, g.Height)
	for row := range ranks {
		ranks[row] = g.Height - row
	}
	return ranks
}

func (g Geometry) SquareName(sq Square) string {
	if sq == NoSquare {
		return "-"
	}
	return string(rune('a'+g.Col(sq))) + strconv.Itoa(g.Rank(sq))
}

func (g Geometry) ParseSquare(name string) (Square, error) {
	if len(name) < 2 {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrMalformed, name)
	}
	col := int(name[0] - 'a')
	rank, err := strconv.Atoi(name[1:])
	if err != nil {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrMalformed, name)
	}
	sq, ok := g.Square(g.Height-rank, col)
	if !ok {
		return NoSquare, fmt.Errorf("%w: square %q is off the board", ErrMalformed, name)
	}
	return sq, nil
}
