package seamcarve

import (
	"image"
	"image/color"

	"github.com/esimov/seamcarve/grid"
)

// Pixel holds the three 8-bit colour channels of an opaque pixel.
type Pixel struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}.RGBA()
}

// squaredDifference returns the squared colour distance of two pixels scaled down by 100.
// The integer division keeps the cumulative costs small.
func squaredDifference(p1, p2 Pixel) int {
	dr := int(p2.R) - int(p1.R)
	dg := int(p2.G) - int(p1.G)
	db := int(p2.B) - int(p1.B)
	return (dr*dr + dg*dg + db*db) / 100
}

// Image is a rectangular grid of pixels addressed by (row, column).
// It implements image.Image, so it can be passed directly to the standard encoders.
type Image struct {
	pix *grid.Grid[Pixel]
}

var _ image.Image = (*Image)(nil)

// NewImage returns a black image of the given size.
func NewImage(width, height int) *Image {
	return &Image{pix: grid.New[Pixel](width, height)}
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.pix.Width() }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.pix.Height() }

// Pixel returns the pixel at the given row and column.
func (img *Image) Pixel(row, col int) Pixel { return img.pix.At(row, col) }

// SetPixel replaces the pixel at the given row and column.
func (img *Image) SetPixel(row, col int, px Pixel) { img.pix.Set(row, col, px) }

// Fill paints the whole image with a single colour.
func (img *Image) Fill(px Pixel) { img.pix.Fill(px) }

// Equal reports whether both images have the same size and identical pixels.
func (img *Image) Equal(other *Image) bool {
	return grid.Equal(img.pix, other.pix)
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	return &Image{pix: img.pix.Clone()}
}

// ColorModel implements the image.Image interface.
func (img *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements the image.Image interface.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width(), img.Height())
}

// At implements the image.Image interface. Points outside the bounds are transparent.
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.RGBA{}
	}
	return img.pix.At(y, x)
}

// FromImage converts any image type to an *Image with min-point at (0, 0).
// The alpha channel is discarded.
func FromImage(src image.Image) *Image {
	if img, ok := src.(*Image); ok {
		return img.Clone()
	}

	b := src.Bounds()
	dst := NewImage(b.Dx(), b.Dy())

	switch src := src.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < b.Dx(); x++ {
				dst.SetPixel(y, x, Pixel{R: src.Pix[i+0], G: src.Pix[i+1], B: src.Pix[i+2]})
				i += 4
			}
		}
	case *image.YCbCr:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				srcX := b.Min.X + x
				srcY := b.Min.Y + y
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, bl := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.SetPixel(y, x, Pixel{R: r, G: g, B: bl})
			}
		}
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				dst.SetPixel(y, x, Pixel{R: c.R, G: c.G, B: c.B})
			}
		}
	}
	return dst
}

// RotateLeft returns the image rotated by 90 degrees counter clockwise.
func (img *Image) RotateLeft() *Image {
	width, height := img.Width(), img.Height()
	dst := NewImage(height, width)

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			dst.SetPixel(width-1-c, r, img.Pixel(r, c))
		}
	}
	return dst
}

// RotateRight returns the image rotated by 90 degrees clockwise.
func (img *Image) RotateRight() *Image {
	width, height := img.Width(), img.Height()
	dst := NewImage(height, width)

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			dst.SetPixel(c, height-1-r, img.Pixel(r, c))
		}
	}
	return dst
}
