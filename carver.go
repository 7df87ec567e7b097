package seamcarve

import (
	"fmt"

	"github.com/esimov/seamcarve/grid"
	"github.com/esimov/seamcarve/utils"
)

// Seam holds one column index per image row, starting with the top row.
// Consecutive entries differ by at most one column.
type Seam []int

// Carver holds the tables computed during a single carving step.
// A new Carver is created for every removed seam, since the image shrinks in the meantime.
type Carver struct {
	Width  int
	Height int
	Energy *grid.Grid[int]
	Cost   *grid.Grid[int]
}

// NewCarver initializes a Carver for an image of the given size.
func NewCarver(width, height int) *Carver {
	return &Carver{
		Width:  width,
		Height: height,
	}
}

// ComputeSeams computes the energy map of the image and the
// cumulative vertical cost table derived from it.
func (c *Carver) ComputeSeams(img *Image) {
	if img.Width() != c.Width || img.Height() != c.Height {
		panic(fmt.Sprintf("seamcarve: carver sized %dx%d got a %dx%d image",
			c.Width, c.Height, img.Width(), img.Height()))
	}
	c.Energy = ComputeEnergy(img)
	c.Cost = ComputeVerticalCost(c.Energy)
}

// FindLowestEnergySeam returns the vertical seam with the minimal cumulative cost.
// ComputeSeams must be called first.
func (c *Carver) FindLowestEnergySeam() Seam {
	if c.Cost == nil {
		panic("seamcarve: FindLowestEnergySeam called before ComputeSeams")
	}
	return FindMinimalVerticalSeam(c.Cost)
}

// RemoveSeam returns a new image, one pixel narrower, without the seam pixels.
func (c *Carver) RemoveSeam(img *Image, seam Seam) *Image {
	return RemoveVerticalSeam(img, seam)
}

// ComputeEnergy computes the energy of every pixel based on the colour gradients
// of its four direct neighbours: the squared difference of the north and south
// pixels plus the squared difference of the west and east pixels.
// Border pixels have no complete neighbourhood, so they get the
// maximum energy found among the interior pixels.
func ComputeEnergy(img *Image) *grid.Grid[int] {
	width, height := img.Width(), img.Height()
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("seamcarve: cannot compute the energy of a %dx%d image", width, height))
	}
	energy := grid.New[int](width, height)

	maxEnergy := 0
	for r := 1; r < height-1; r++ {
		for c := 1; c < width-1; c++ {
			n := img.Pixel(r-1, c)
			s := img.Pixel(r+1, c)
			w := img.Pixel(r, c-1)
			e := img.Pixel(r, c+1)

			val := squaredDifference(n, s) + squaredDifference(w, e)
			energy.Set(r, c, val)
			if val > maxEnergy {
				maxEnergy = val
			}
		}
	}
	energy.FillBorder(maxEnergy)

	return energy
}

// ComputeVerticalCost computes the cumulative minimum energy M for all possible
// connected seams ending at each entry (r, c):
//   - the first row is identical with the energy map,
//   - every other entry is its own energy plus the minimum of the (at most) three
//     neighbouring entries from the previous row.
func ComputeVerticalCost(energy *grid.Grid[int]) *grid.Grid[int] {
	width, height := energy.Width(), energy.Height()
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("seamcarve: cannot compute the cost of a %dx%d energy map", width, height))
	}
	cost := grid.New[int](width, height)

	for c := 0; c < width; c++ {
		cost.Set(0, c, energy.At(0, c))
	}

	for r := 1; r < height; r++ {
		for c := 0; c < width; c++ {
			// Do not go past the image edges, there is no wraparound.
			start := utils.Max(c-1, 0)
			end := utils.Min(c+2, width)

			low := grid.MinInRow(cost, r-1, start, end)
			cost.Set(r, c, energy.At(r, c)+low)
		}
	}
	return cost
}

// FindMinimalVerticalSeam traces the lowest cost seam from the bottom of the cost table upwards.
// The bottom row anchor is the leftmost column holding the minimum cost. Walking up, the
// left, center and right neighbours are checked in this order and a candidate replaces
// the current choice only if it is strictly cheaper, so left wins ties over center and
// center wins ties over right.
func FindMinimalVerticalSeam(cost *grid.Grid[int]) Seam {
	width, height := cost.Width(), cost.Height()
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("seamcarve: cannot find a seam in a %dx%d cost table", width, height))
	}
	seam := make(Seam, height)

	bottom := height - 1
	seam[bottom] = grid.ColumnOfMinInRow(cost, bottom, 0, width)

	for r := height - 2; r >= 0; r-- {
		curr := seam[r+1]

		col := curr
		if curr > 0 {
			col = curr - 1
		}
		best := cost.At(r, col)

		if v := cost.At(r, curr); v < best {
			best, col = v, curr
		}
		if curr < width-1 {
			if v := cost.At(r, curr+1); v < best {
				col = curr + 1
			}
		}
		seam[r] = col
	}
	return seam
}

// RemoveVerticalSeam returns a new image with the seam pixel removed from every row.
// The pixels on the right side of the seam are shifted one column to the left.
func RemoveVerticalSeam(img *Image, seam Seam) *Image {
	width, height := img.Width(), img.Height()
	if width < 2 {
		panic(fmt.Sprintf("seamcarve: cannot remove a seam from an image of width %d", width))
	}
	if len(seam) != height {
		panic(fmt.Sprintf("seamcarve: seam length %d does not match the image height %d", len(seam), height))
	}

	dst := NewImage(width-1, height)
	for r := 0; r < height; r++ {
		remove := seam[r]
		if remove < 0 || remove >= width {
			panic(fmt.Sprintf("seamcarve: seam column %d out of range in row %d (width %d)", remove, r, width))
		}
		for c := 0; c < width-1; c++ {
			src := c
			if c >= remove {
				src = c + 1
			}
			dst.SetPixel(r, c, img.Pixel(r, src))
		}
	}
	return dst
}
