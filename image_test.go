package seamcarve

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestImage returns an image where every pixel is distinct.
func newTestImage(width, height int) *Image {
	img := NewImage(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			img.SetPixel(r, c, Pixel{R: uint8(r*width + c), G: uint8(r), B: uint8(c)})
		}
	}
	return img
}

func newRandomImage(rng *rand.Rand, width, height int) *Image {
	img := NewImage(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			img.SetPixel(r, c, Pixel{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
			})
		}
	}
	return img
}

func TestPixel_SquaredDifference(t *testing.T) {
	testCases := []struct {
		name   string
		p1, p2 Pixel
		want   int
	}{
		{"equal", Pixel{10, 20, 30}, Pixel{10, 20, 30}, 0},
		{"red", Pixel{0, 0, 0}, Pixel{100, 0, 0}, 100},
		{"green", Pixel{0, 0, 0}, Pixel{0, 50, 0}, 25},
		{"truncated", Pixel{1, 1, 1}, Pixel{2, 2, 2}, 0},
		{"symmetric", Pixel{255, 0, 0}, Pixel{0, 0, 255}, 1300},
		{"max", Pixel{0, 0, 0}, Pixel{255, 255, 255}, 1950},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, squaredDifference(tc.p1, tc.p2))
			assert.Equal(t, tc.want, squaredDifference(tc.p2, tc.p1))
		})
	}
}

func TestImage_NewImageIsBlack(t *testing.T) {
	img := NewImage(4, 3)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 3, img.Height())

	for r := 0; r < img.Height(); r++ {
		for c := 0; c < img.Width(); c++ {
			assert.Equal(t, Pixel{}, img.Pixel(r, c))
		}
	}
}

func TestImage_SetPixelAndFill(t *testing.T) {
	img := NewImage(3, 2)
	img.SetPixel(1, 2, Pixel{1, 2, 3})
	assert.Equal(t, Pixel{1, 2, 3}, img.Pixel(1, 2))
	assert.Equal(t, Pixel{}, img.Pixel(0, 2))

	img.Fill(Pixel{9, 9, 9})
	for r := 0; r < img.Height(); r++ {
		for c := 0; c < img.Width(); c++ {
			assert.Equal(t, Pixel{9, 9, 9}, img.Pixel(r, c))
		}
	}

	assert.Panics(t, func() { img.Pixel(2, 0) })
	assert.Panics(t, func() { img.SetPixel(0, 3, Pixel{}) })
}

func TestImage_EqualAndClone(t *testing.T) {
	img := newTestImage(3, 3)
	cl := img.Clone()
	assert.True(t, img.Equal(cl))

	cl.SetPixel(0, 0, Pixel{200, 200, 200})
	assert.False(t, img.Equal(cl))
	assert.Equal(t, Pixel{}, img.Pixel(0, 0))

	assert.False(t, img.Equal(newTestImage(3, 2)))
}

func TestImage_ImplementsImage(t *testing.T) {
	img := newTestImage(3, 2)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBAModel, img.ColorModel())

	c := color.RGBAModel.Convert(img.At(2, 1)).(color.RGBA)
	assert.Equal(t, color.RGBA{R: 5, G: 1, B: 2, A: 0xff}, c)
	assert.Equal(t, color.RGBA{}, img.At(3, 0))
	assert.Equal(t, color.RGBA{}, img.At(0, -1))
}

func TestImage_Rotate(t *testing.T) {
	img := newTestImage(4, 3)

	left := img.RotateLeft()
	require.Equal(t, 3, left.Width())
	require.Equal(t, 4, left.Height())

	right := img.RotateRight()
	require.Equal(t, 3, right.Width())
	require.Equal(t, 4, right.Height())

	for r := 0; r < img.Height(); r++ {
		for c := 0; c < img.Width(); c++ {
			assert.Equal(t, img.Pixel(r, c), left.Pixel(img.Width()-1-c, r))
			assert.Equal(t, img.Pixel(r, c), right.Pixel(c, img.Height()-1-r))
		}
	}

	assert.True(t, img.Equal(left.RotateRight()))
	assert.True(t, img.Equal(right.RotateLeft()))
	assert.True(t, img.Equal(img.RotateLeft().RotateLeft().RotateLeft().RotateLeft()))
}

func TestImage_RotateEmpty(t *testing.T) {
	img := NewImage(0, 3)
	left := img.RotateLeft()
	assert.Equal(t, 3, left.Width())
	assert.Equal(t, 0, left.Height())
}

func TestImage_FromImage(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9
	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-422",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio422),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "YCbCr-411",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio411),
		},
		{
			name: "Paletted",
			img:  makePalettedImage(rect, colors),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.img.Bounds()
			img := FromImage(tc.img)
			require.Equal(t, b.Dx(), img.Width())
			require.Equal(t, b.Dy(), img.Height())

			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					want := color.NRGBAModel.Convert(tc.img.At(x, y)).(color.NRGBA)
					got := img.Pixel(y-b.Min.Y, x-b.Min.X)
					assert.Equal(t, Pixel{R: want.R, G: want.G, B: want.B}, got, "pixel (%d, %d)", x, y)
				}
			}
		})
	}
}

func TestImage_FromImageClones(t *testing.T) {
	img := newTestImage(2, 2)
	cl := FromImage(img)
	assert.True(t, img.Equal(cl))

	cl.SetPixel(0, 0, Pixel{1, 1, 1})
	assert.False(t, img.Equal(cl))
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func makePalettedImage(rect image.Rectangle, colors []color.Color) *image.Paletted {
	img := image.NewPaletted(rect, colors)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetColorIndex(x, y, uint8(i%len(colors)))
			i++
		}
	}
	return img
}

func fillDrawImage(img draw.Image, colors []color.Color) {
	colorsNRGBA := make([]color.NRGBA, len(colors))
	for i, c := range colors {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		nrgba.A = uint8(i % 256)
		colorsNRGBA[i] = nrgba
	}
	rect := img.Bounds()
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colorsNRGBA[i%len(colorsNRGBA)])
			i++
		}
	}
}
