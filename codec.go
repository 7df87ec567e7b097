package seamcarve

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned when the destination extension has no encoder.
var ErrUnsupportedFormat = errors.New("seamcarve: unsupported image format")

// supportedExtensions lists the file extensions accepted as source and destination.
var supportedExtensions = []string{".ppm", ".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, ex := range supportedExtensions {
		if ex == ext {
			return true
		}
	}
	return false
}

// decodeImg decodes any registered image format, the plain PPM format included.
// The EXIF orientation of JPEG images is applied.
func decodeImg(r io.Reader) (*Image, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return FromImage(src), nil
}

// encodeImg encodes the image to a destination of type io.Writer.
// Files are encoded according to their extension, every other writer receives a plain PPM.
func encodeImg(w io.Writer, img *Image) error {
	ext := ".ppm"
	if f, ok := w.(*os.File); ok {
		if e := filepath.Ext(f.Name()); e != "" {
			ext = e
		}
	}
	return encodeByExt(w, ext, img)
}

func encodeByExt(w io.Writer, ext string, img *Image) error {
	switch ext = strings.ToLower(ext); ext {
	case ".ppm":
		return EncodePPM(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff":
		format, err := imaging.FormatFromExtension(ext)
		if err != nil {
			return err
		}
		return imaging.Encode(w, img, format, imaging.JPEGQuality(100))
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
