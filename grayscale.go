package grayscale

import (
	"errors"
	"fmt"
	"math"

	"github.com/esimov/grayscale/utils"
)

var (
	// ErrOutOfBounds is returned when the declared dimensions exceed the source grid.
	ErrOutOfBounds = errors.New("grayscale: dimensions out of bounds")
	// ErrUnsupportedMethod is returned for a method outside of the supported set.
	ErrUnsupportedMethod = errors.New("grayscale: unsupported method")
)

// Pixel holds the red, green and blue channel values of a picture element.
type Pixel struct {
	R, G, B int
}

// BoundsError reports the first cell of the declared rectangle
// which does not exist in the source grid.
type BoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("grayscale: pixel (%d, %d) outside of the source image for %dx%d", e.Row, e.Col, e.Rows, e.Cols)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// MethodError reports an unsupported conversion method.
type MethodError struct {
	Method Method
	Name   string
}

func (e *MethodError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("grayscale: unsupported method %q", e.Name)
	}
	return fmt.Sprintf("grayscale: unsupported method %d", int(e.Method))
}

func (e *MethodError) Unwrap() error { return ErrUnsupportedMethod }

// Convert transforms the rows x cols rectangle of img into grayscale intensities
// using the provided method. Only img[r][c] with r < rows and c < cols is read,
// surplus rows and columns are ignored. The returned grid has exactly rows rows
// of cols values each.
func Convert(img [][]Pixel, rows, cols int, m Method) ([][]int, error) {
	if err := validate(img, rows, cols, m); err != nil {
		return nil, err
	}

	gray := make([][]int, rows)
	for r := 0; r < rows; r++ {
		gray[r] = convertRow(img, r, cols, m)
	}
	return gray, nil
}

// validate checks the method and the declared rectangle before any pixel is touched.
func validate(img [][]Pixel, rows, cols int, m Method) error {
	if !m.Valid() {
		return &MethodError{Method: m}
	}
	if rows < 0 || cols < 0 {
		return &BoundsError{Row: rows, Col: cols, Rows: rows, Cols: cols}
	}
	if cols == 0 {
		return nil
	}
	if len(img) < rows {
		return &BoundsError{Row: len(img), Col: 0, Rows: rows, Cols: cols}
	}
	for r := 0; r < rows; r++ {
		if len(img[r]) < cols {
			return &BoundsError{Row: r, Col: len(img[r]), Rows: rows, Cols: cols}
		}
	}
	return nil
}

// convertRow expects a validated method and rectangle.
// The source row is not accessed when cols is zero.
func convertRow(img [][]Pixel, r, cols int, m Method) []int {
	out := make([]int, cols)
	for c := 0; c < cols; c++ {
		out[c] = m.gray(img[r][c])
	}
	return out
}

// Gray returns the grayscale intensity of a single pixel.
func (m Method) Gray(p Pixel) (int, error) {
	if !m.Valid() {
		return 0, &MethodError{Method: m}
	}
	return m.gray(p), nil
}

func (m Method) gray(p Pixel) int {
	switch m {
	case RedChannel:
		return p.R
	case GreenChannel:
		return p.G
	case BlueChannel:
		return p.B
	case Average:
		return (p.R + p.G + p.B) / 3
	case Lightness:
		hi := utils.Max(p.R, utils.Max(p.G, p.B))
		lo := utils.Min(p.R, utils.Min(p.G, p.B))
		return (hi + lo) / 2
	case Luminosity:
		r, g, b := float64(p.R), float64(p.G), float64(p.B)
		// The explicit conversions keep the products from being fused.
		lum := float64(0.21*r) + float64(0.72*g)
		lum += float64(0.07 * b)
		return int(lum)
	case RootMeanSquare:
		r, g, b := float64(p.R), float64(p.G), float64(p.B)
		sum := float64(r*r) + float64(g*g)
		sum += float64(b * b)
		return int(math.Sqrt(sum / 3))
	}
	panic(fmt.Sprintf("grayscale: unhandled method %d", int(m)))
}
