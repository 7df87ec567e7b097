package grid

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGrid_NewIsZeroFilled(t *testing.T) {
	assert := assert.New(t)

	g := New[int](3, 5)
	assert.Equal(3, g.Width())
	assert.Equal(5, g.Height())

	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			assert.Equal(0, g.At(r, c))
		}
	}
}

func TestGrid_SetAtEdges(t *testing.T) {
	g := New[int](3, 3)
	g.Set(0, 0, -1)
	g.Set(0, 2, 1)
	g.Set(2, 0, 2)
	g.Set(2, 2, -3)

	assert.Equal(t, -1, g.At(0, 0))
	assert.Equal(t, 1, g.At(0, 2))
	assert.Equal(t, 2, g.At(2, 0))
	assert.Equal(t, -3, g.At(2, 2))
	assert.Equal(t, 0, g.At(1, 1))
}

func TestGrid_OutOfRangePanics(t *testing.T) {
	g := New[int](4, 2)

	assert.Panics(t, func() { g.At(2, 0) })
	assert.Panics(t, func() { g.At(0, 4) })
	assert.Panics(t, func() { g.At(-1, 0) })
	assert.Panics(t, func() { g.Set(0, -1, 1) })
	assert.Panics(t, func() { New[int](-1, 3) })
}

func TestGrid_Fill(t *testing.T) {
	g := New[int](4, 3)
	g.Fill(-1)
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			assert.Equal(t, -1, g.At(r, c))
		}
	}
}

func TestGrid_FillBorder(t *testing.T) {
	assert := assert.New(t)

	g := New[int](4, 3)
	g.Fill(0)
	g.FillBorder(9)

	for c := 0; c < 4; c++ {
		assert.Equal(9, g.At(0, c))
		assert.Equal(9, g.At(2, c))
	}
	for r := 0; r < 3; r++ {
		assert.Equal(9, g.At(r, 0))
		assert.Equal(9, g.At(r, 3))
	}
	assert.Equal(0, g.At(1, 1))
	assert.Equal(0, g.At(1, 2))

	single := New[int](1, 1)
	single.Fill(-1)
	single.FillBorder(5)
	assert.Equal(5, single.At(0, 0))

	// Nothing to do on an empty grid.
	assert.NotPanics(func() { New[int](0, 3).FillBorder(1) })
}

func TestGrid_Print(t *testing.T) {
	g := New[int](3, 2)
	g.Set(0, 0, 1)
	g.Set(0, 1, -2)
	g.Set(0, 2, 3)
	g.Set(1, 0, 42)

	var buf bytes.Buffer
	assert.NoError(t, g.Print(&buf))
	assert.Equal(t, "3 2\n1 -2 3 \n42 0 0 \n", buf.String())

	buf.Reset()
	one := New[int](1, 1)
	one.Set(0, 0, 42)
	assert.NoError(t, one.Print(&buf))
	assert.Equal(t, "1 1\n42 \n", buf.String())
}

func TestGrid_RowAndClone(t *testing.T) {
	g := New[int](3, 2)
	g.Set(1, 0, 7)
	g.Set(1, 2, 9)

	row := g.Row(1)
	assert.Equal(t, []int{7, 0, 9}, row)

	// The returned row must not alias the grid storage.
	row[0] = 100
	assert.Equal(t, 7, g.At(1, 0))

	c := g.Clone()
	assert.True(t, Equal(g, c))
	c.Set(0, 0, 1)
	assert.False(t, Equal(g, c))
	assert.False(t, Equal(g, New[int](2, 3)))
}

func TestGrid_Max(t *testing.T) {
	testCases := []struct {
		name     string
		width    int
		height   int
		values   []int
		expected int
	}{
		{"single", 1, 1, []int{-7}, -7},
		{"basic", 3, 3, []int{-3, -1, -3, -3, -3, -3, -3, -3, 17}, 17},
		{"all negative", 2, 3, []int{-8, -3, -9, -4, -7, -5}, -3},
		{"all int min", 2, 2, []int{math.MinInt, math.MinInt, math.MinInt, math.MinInt}, math.MinInt},
		{"contains int max", 3, 2, []int{math.MaxInt, -1, -1, -1, -1, -1}, math.MaxInt},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := New[int](tc.width, tc.height)
			for i, v := range tc.values {
				g.Set(i/tc.width, i%tc.width, v)
			}
			assert.Equal(t, tc.expected, Max(g))
		})
	}
}

func TestGrid_MaxOfEmptyGridLogsWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	for _, dims := range [][2]int{{0, 0}, {0, 5}, {4, 0}} {
		g := New[int](dims[0], dims[1])
		assert.Equal(t, 0, Max(g))
	}
	assert.Equal(t, 3, logs.Len())
}

func TestGrid_MinInRow(t *testing.T) {
	assert := assert.New(t)

	g := New[int](5, 2)
	for c, v := range []int{3, -3, -1, 2, 8} {
		g.Set(0, c, v)
	}
	assert.Equal(-3, MinInRow(g, 0, 0, 5))
	assert.Equal(1, ColumnOfMinInRow(g, 0, 0, 5))

	ties := New[int](5, 1)
	for c, v := range []int{4, -3, -3, 7, 9} {
		ties.Set(0, c, v)
	}
	assert.Equal(1, ColumnOfMinInRow(ties, 0, 0, 5))

	window := New[int](5, 1)
	for c, v := range []int{9, -1, 8, 8, -3} {
		window.Set(0, c, v)
	}
	assert.Equal(-1, MinInRow(window, 0, 0, 2))
	assert.Equal(1, ColumnOfMinInRow(window, 0, 0, 2))
	assert.Equal(-3, MinInRow(window, 0, 4, 5))
	assert.Equal(4, ColumnOfMinInRow(window, 0, 4, 5))

	column := New[int](1, 4)
	for r, v := range []int{4, -3, 9, -1} {
		column.Set(r, 0, v)
	}
	for r := 0; r < 4; r++ {
		assert.Equal(0, ColumnOfMinInRow(column, r, 0, 1))
	}
}

func TestGrid_MinInRowInvalidRangePanics(t *testing.T) {
	g := New[int](3, 2)

	assert.Panics(t, func() { ColumnOfMinInRow(g, 2, 0, 3) })
	assert.Panics(t, func() { ColumnOfMinInRow(g, 0, 2, 2) })
	assert.Panics(t, func() { ColumnOfMinInRow(g, 0, -1, 2) })
	assert.Panics(t, func() { MinInRow(g, 0, 0, 4) })
}
