package seamcarve

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/esimov/seamcarve/utils"
	"go.uber.org/zap"
)

var (
	// ErrInvalidWidth is returned when the requested width is not in (0, image width].
	ErrInvalidWidth = errors.New("seamcarve: new width should be greater than zero and at most the image width")

	// ErrInvalidHeight is returned when the requested height is not in (0, image height].
	ErrInvalidHeight = errors.New("seamcarve: new height should be greater than zero and at most the image height")
)

// SeamCarver is the interface implemented by the types able to resize an image.
type SeamCarver interface {
	Resize(*Image) (*Image, error)
}

var _ SeamCarver = (*Processor)(nil)

// Processor options
type Processor struct {
	// NewWidth and NewHeight are the requested dimensions. Zero keeps the original size.
	NewWidth  int
	NewHeight int
	// Percentage interprets NewWidth and NewHeight as percentages of the source dimensions.
	Percentage bool
	// Debug logs every removed seam.
	Debug   bool
	Logger  *zap.Logger
	Spinner *utils.Spinner
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.L()
}

// Resize is a convenience wrapper around the SeamCarver interface.
func Resize(s SeamCarver, img *Image) (*Image, error) {
	return s.Resize(img)
}

// CarveWidth reduces the image width to newWidth by repeatedly removing
// the vertical seam with the lowest energy. The height is unchanged.
// It panics unless 0 < newWidth <= img.Width().
func CarveWidth(img *Image, newWidth int) *Image {
	return carveWidth(img, newWidth, nil)
}

// CarveHeight reduces the image height to newHeight. The image is rotated to the left,
// carved horizontally and rotated back, so the same seam search is used in both directions.
// It panics unless 0 < newHeight <= img.Height().
func CarveHeight(img *Image, newHeight int) *Image {
	return carveHeight(img, newHeight, nil)
}

// Carve reduces the image to newWidth x newHeight.
// The width is reduced first, then the height.
func Carve(img *Image, newWidth, newHeight int) *Image {
	return carveHeight(CarveWidth(img, newWidth), newHeight, nil)
}

// seamFn is invoked with the carver state and the seam about to be removed.
type seamFn func(c *Carver, seam Seam)

func carveWidth(img *Image, newWidth int, fn seamFn) *Image {
	if newWidth <= 0 || newWidth > img.Width() {
		panic(fmt.Sprintf("seamcarve: cannot carve width %d to %d", img.Width(), newWidth))
	}
	for img.Width() > newWidth {
		c := NewCarver(img.Width(), img.Height())
		c.ComputeSeams(img)

		seam := c.FindLowestEnergySeam()
		if fn != nil {
			fn(c, seam)
		}
		img = c.RemoveSeam(img, seam)
	}
	return img
}

func carveHeight(img *Image, newHeight int, fn seamFn) *Image {
	if newHeight <= 0 || newHeight > img.Height() {
		panic(fmt.Sprintf("seamcarve: cannot carve height %d to %d", img.Height(), newHeight))
	}
	return transposed(img, func(img *Image) *Image {
		return carveWidth(img, newHeight, fn)
	})
}

// transposed runs fn over the image rotated to the left and rotates the result back.
func transposed(img *Image, fn func(*Image) *Image) *Image {
	return fn(img.RotateLeft()).RotateRight()
}

// targetSize resolves the requested dimensions against the source image size.
func (p *Processor) targetSize(width, height int) (int, int, error) {
	nw, nh := p.NewWidth, p.NewHeight

	if p.Percentage {
		if nw < 0 || nw > 100 || nh < 0 || nh > 100 {
			return 0, 0, errors.New("seamcarve: cannot use the percentage option for image enlargement")
		}
		if nw != 0 {
			nw = width * nw / 100
		}
		if nh != 0 {
			nh = height * nh / 100
		}
		if p.NewWidth != 0 && nw == 0 {
			return 0, 0, fmt.Errorf("%w: %d%% of %d rounds down to zero", ErrInvalidWidth, p.NewWidth, width)
		}
		if p.NewHeight != 0 && nh == 0 {
			return 0, 0, fmt.Errorf("%w: %d%% of %d rounds down to zero", ErrInvalidHeight, p.NewHeight, height)
		}
	}

	if nw == 0 {
		nw = width
	}
	if nh == 0 {
		nh = height
	}
	if nw < 0 || nw > width {
		return 0, 0, fmt.Errorf("%w: got %d, image width is %d", ErrInvalidWidth, nw, width)
	}
	if nh < 0 || nh > height {
		return 0, 0, fmt.Errorf("%w: got %d, image height is %d", ErrInvalidHeight, nh, height)
	}
	return nw, nh, nil
}

// Resize reduces the image to the requested size. The width is carved first,
// then the height. Invalid targets are reported as errors.
func (p *Processor) Resize(img *Image) (*Image, error) {
	width, height := img.Width(), img.Height()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("seamcarve: cannot resize an empty %dx%d image", width, height)
	}

	nw, nh, err := p.targetSize(width, height)
	if err != nil {
		return nil, err
	}

	log := p.logger()
	log.Debug("resizing image",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("new_width", nw),
		zap.Int("new_height", nh),
	)
	now := time.Now()

	var fn seamFn
	if p.Debug {
		fn = func(c *Carver, seam Seam) {
			log.Debug("removing seam",
				zap.Int("width", c.Width),
				zap.Int("height", c.Height),
				zap.Int("cost", c.Cost.At(c.Height-1, seam[len(seam)-1])),
				zap.Ints("seam", seam),
			)
		}
	}

	if nw < width {
		img = carveWidth(img, nw, fn)
	}
	if nh < height {
		img = carveHeight(img, nh, fn)
	}

	log.Debug("image resized",
		zap.Int("width", img.Width()),
		zap.Int("height", img.Height()),
		zap.Int("seams_removed", (width-nw)+(height-nh)),
		zap.Duration("elapsed", time.Since(now)),
	)
	return img, nil
}

// Process decodes the source image, resizes it and encodes the result into w.
// The output format is chosen by the destination file extension.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	img, err := decodeImg(r)
	if err != nil {
		return err
	}

	res, err := Resize(p, img)
	if err != nil {
		return err
	}
	return encodeImg(w, res)
}
