package grid

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// Number is the set of element types supporting the ordered helpers below.
type Number interface {
	constraints.Integer | constraints.Float
}

// Max returns the largest element of the grid.
// An empty grid has no maximum: the zero value is returned and a warning is logged.
func Max[T Number](g *Grid[T]) T {
	if g.Empty() {
		zap.L().Warn("grid: max requested on an empty grid",
			zap.Int("width", g.width),
			zap.Int("height", g.height),
		)
		return 0
	}
	max := g.data[0]
	for _, v := range g.data[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// checkRowRange validates a [start, end) column window inside row.
func (g *Grid[T]) checkRowRange(row, start, end int) {
	if row < 0 || row >= g.height {
		panic(fmt.Sprintf("grid: row %d out of range for %dx%d grid", row, g.width, g.height))
	}
	if start < 0 || start >= end || end > g.width {
		panic(fmt.Sprintf("grid: invalid column range [%d, %d) for width %d", start, end, g.width))
	}
}

// ColumnOfMinInRow returns the column of the minimal element in row between
// start (inclusive) and end (exclusive). On ties the leftmost column wins.
func ColumnOfMinInRow[T Number](g *Grid[T], row, start, end int) int {
	g.checkRowRange(row, start, end)

	offset := row * g.width
	col := start
	for c := start + 1; c < end; c++ {
		if g.data[offset+c] < g.data[offset+col] {
			col = c
		}
	}
	return col
}

// MinInRow returns the minimal element in row between start (inclusive) and end (exclusive).
func MinInRow[T Number](g *Grid[T], row, start, end int) T {
	return g.At(row, ColumnOfMinInRow(g, row, start, end))
}
