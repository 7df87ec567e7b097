// Package grid implements a dense, row-major two dimensional container.
// It is the storage layer used by the seam carver for both the pixel data
// and the energy and cost tables computed on every carving step.
package grid

import (
	"fmt"
	"io"
)

// Grid is a dense two dimensional container addressed by (row, column).
type Grid[T any] struct {
	width  int
	height int
	data   []T
}

// New allocates a zero filled grid of the given dimensions.
func New[T any](width, height int) *Grid[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", width, height))
	}
	return &Grid[T]{
		width:  width,
		height: height,
		data:   make([]T, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// Empty reports whether the grid holds no elements.
func (g *Grid[T]) Empty() bool { return g.width == 0 || g.height == 0 }

// index converts a (row, column) pair into an offset. Out of range access
// is a programmer error, so it panics.
func (g *Grid[T]) index(row, col int) int {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range for %dx%d grid", row, col, g.width, g.height))
	}
	return row*g.width + col
}

// At returns the element at the given row and column.
func (g *Grid[T]) At(row, col int) T {
	return g.data[g.index(row, col)]
}

// Set stores v at the given row and column.
func (g *Grid[T]) Set(row, col int, v T) {
	g.data[g.index(row, col)] = v
}

// Fill sets every element of the grid to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// FillBorder sets every element in the first and last row and
// in the first and last column to v. Interior elements are left untouched.
func (g *Grid[T]) FillBorder(v T) {
	if g.Empty() {
		return
	}
	for r := 0; r < g.height; r++ {
		g.Set(r, 0, v)
		g.Set(r, g.width-1, v)
	}
	for c := 0; c < g.width; c++ {
		g.Set(0, c, v)
		g.Set(g.height-1, c, v)
	}
}

// Row returns a copy of the elements of a single row.
func (g *Grid[T]) Row(row int) []T {
	start := g.index(row, 0)
	out := make([]T, g.width)
	copy(out, g.data[start:start+g.width])
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	dst := New[T](g.width, g.height)
	copy(dst.data, g.data)
	return dst
}

// Print writes the grid dimensions followed by one line per row.
// Every element is followed by a single space.
func (g *Grid[T]) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", g.width, g.height); err != nil {
		return err
	}
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			if _, err := fmt.Fprintf(w, "%v ", g.At(r, c)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// EqualFunc reports whether a and b have the same dimensions and
// eq holds for every pair of elements at the same position.
func EqualFunc[T any](a, b *Grid[T], eq func(T, T) bool) bool {
	if a.width != b.width || a.height != b.height {
		return false
	}
	for i := range a.data {
		if !eq(a.data[i], b.data[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two grids of comparable elements are identical.
func Equal[T comparable](a, b *Grid[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}
