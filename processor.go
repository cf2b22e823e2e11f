package grayscale

import (
	"context"
	"image"
	"io"

	"github.com/esimov/grayscale/utils"
)

// Processor options
type Processor struct {
	// Method selects the conversion formula. The zero value is RedChannel.
	Method Method
	// Workers is the number of goroutines converting the image rows
	// and, in directory mode, the number of files processed concurrently.
	Workers int
	// Quality is the JPEG encoding quality, a value between 1 and 100.
	Quality int
	Spinner *utils.Spinner
}

// Grayscale converts the source image to a grayscale image using the processor's method.
func (p *Processor) Grayscale(ctx context.Context, src image.Image) (*image.Gray, error) {
	pixels := PixelsFromImage(src)
	rows, cols := src.Bounds().Dy(), src.Bounds().Dx()

	gray, err := ConvertConcurrent(ctx, pixels, rows, cols, p.Method, p.Workers)
	if err != nil {
		return nil, err
	}
	return ToGray(gray), nil
}

// Process is the main entry point for the image conversion.
// It decodes the source, converts it to grayscale and encodes the result into w.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	return p.ProcessContext(context.Background(), r, w)
}

// ProcessContext is like Process, but the conversion is aborted once ctx is done.
func (p *Processor) ProcessContext(ctx context.Context, r io.Reader, w io.Writer) error {
	if !p.Method.Valid() {
		return &MethodError{Method: p.Method}
	}
	src, err := decodeImg(r)
	if err != nil {
		return err
	}
	dst, err := p.Grayscale(ctx, src)
	if err != nil {
		return err
	}
	return encodeImg(w, dst, p.Quality)
}
