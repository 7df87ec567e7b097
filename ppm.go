package seamcarve

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ppmMagic is the format tag of the plain (ASCII) portable pixmap format.
const ppmMagic = "P3"

// ppmInitialPixels bounds the pixel buffer preallocated from the header.
const ppmInitialPixels = 1 << 16

// ErrInvalidPPM is returned when the source is not a well formed plain PPM file.
var ErrInvalidPPM = errors.New("seamcarve: invalid ppm data")

func init() {
	image.RegisterFormat("ppm", ppmMagic, func(r io.Reader) (image.Image, error) {
		return DecodePPM(r)
	}, decodePPMConfig)
}

// ppmScanner splits a plain PPM stream into whitespace separated tokens
// and drops the `#` comments.
type ppmScanner struct {
	s *bufio.Scanner
}

func newPPMScanner(r io.Reader) *ppmScanner {
	s := bufio.NewScanner(r)
	s.Split(scanPPMTokens)
	return &ppmScanner{s: s}
}

func isPPMSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// scanPPMTokens is a bufio.SplitFunc returning the next token,
// skipping whitespace and comments running from '#' to the end of the line.
func scanPPMTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	i := 0
	for i < len(data) {
		if isPPMSpace(data[i]) {
			i++
			continue
		}
		if data[i] == '#' {
			nl := bytes.IndexByte(data[i:], '\n')
			if nl < 0 {
				if atEOF {
					return len(data), nil, nil
				}
				return i, nil, nil
			}
			i += nl + 1
			continue
		}
		break
	}
	if i == len(data) {
		return i, nil, nil
	}
	for j := i; j < len(data); j++ {
		if isPPMSpace(data[j]) || data[j] == '#' {
			return j, data[i:j], nil
		}
	}
	if atEOF {
		return len(data), data[i:], nil
	}
	return i, nil, nil
}

func (ps *ppmScanner) token() (string, error) {
	if ps.s.Scan() {
		return ps.s.Text(), nil
	}
	if err := ps.s.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (ps *ppmScanner) int(name string, min, max int) (int, error) {
	tok, err := ps.token()
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrInvalidPPM, name, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidPPM, name, tok)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %s %d outside [%d, %d]", ErrInvalidPPM, name, v, min, max)
	}
	return v, nil
}

// header reads the format tag, the dimensions and the maximum channel value.
func (ps *ppmScanner) header() (width, height, maxval int, err error) {
	tag, err := ps.token()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: missing header: %v", ErrInvalidPPM, err)
	}
	if tag != ppmMagic {
		return 0, 0, 0, fmt.Errorf("%w: unsupported format tag %q", ErrInvalidPPM, tag)
	}
	if width, err = ps.int("width", 0, 1<<16); err != nil {
		return 0, 0, 0, err
	}
	if height, err = ps.int("height", 0, 1<<16); err != nil {
		return 0, 0, 0, err
	}
	if maxval, err = ps.int("max value", 1, 255); err != nil {
		return 0, 0, 0, err
	}
	return width, height, maxval, nil
}

// DecodePPM reads a plain (P3) portable pixmap.
func DecodePPM(r io.Reader) (*Image, error) {
	ps := newPPMScanner(r)
	width, height, maxval, err := ps.header()
	if err != nil {
		return nil, err
	}

	// The pixel buffer grows with the triples actually read, so a large
	// header alone does not commit the memory of the whole image.
	pix := make([]Pixel, 0, min(width*height, ppmInitialPixels))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			var ch [3]uint8
			for i := range ch {
				v, err := ps.int("channel value", 0, maxval)
				if err != nil {
					return nil, fmt.Errorf("pixel (%d, %d): %w", row, col, err)
				}
				ch[i] = uint8(v * 255 / maxval)
			}
			pix = append(pix, Pixel{R: ch[0], G: ch[1], B: ch[2]})
		}
	}

	img := NewImage(width, height)
	for i, px := range pix {
		img.SetPixel(i/width, i%width, px)
	}
	return img, nil
}

func decodePPMConfig(r io.Reader) (image.Config, error) {
	width, height, _, err := newPPMScanner(r).header()
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      width,
		Height:     height,
	}, nil
}

// EncodePPM writes the image as a plain (P3) portable pixmap with a maximum value of 255.
// Each row is written on its own line and every line ends with a trailing space.
func EncodePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", ppmMagic, img.Width(), img.Height())

	for r := 0; r < img.Height(); r++ {
		for c := 0; c < img.Width(); c++ {
			px := img.Pixel(r, c)
			if c > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d %d %d", px.R, px.G, px.B)
		}
		bw.WriteString(" \n")
	}
	return bw.Flush()
}
