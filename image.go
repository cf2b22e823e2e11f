package grayscale

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/grayscale/utils"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "image/gif"               // GIF decoder
	_ "golang.org/x/image/webp" // WEBP decoder
)

// ErrUnsupportedFormat is returned when the output format can't be derived from the destination.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// defaultQuality is the JPEG quality used when the Processor doesn't define one.
const defaultQuality = 100

// PixelsFromImage converts any image type to a pixel grid with the origin at (0, 0).
// The channels are read as non-premultiplied 8 bit values, the alpha channel is discarded.
func PixelsFromImage(img image.Image) [][]Pixel {
	bounds := img.Bounds()
	minX, minY := bounds.Min.X, bounds.Min.Y
	dx, dy := bounds.Dx(), bounds.Dy()

	pixels := make([][]Pixel, dy)
	for y := 0; y < dy; y++ {
		pixels[y] = make([]Pixel, dx)
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < dy; y++ {
			si := src.PixOffset(minX, minY+y)
			for x := 0; x < dx; x++ {
				pixels[y][x] = Pixel{
					R: int(src.Pix[si+0]),
					G: int(src.Pix[si+1]),
					B: int(src.Pix[si+2]),
				}
				si += 4
			}
		}
	case *image.YCbCr:
		for y := 0; y < dy; y++ {
			for x := 0; x < dx; x++ {
				siy := src.YOffset(minX+x, minY+y)
				sic := src.COffset(minX+x, minY+y)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				pixels[y][x] = Pixel{R: int(r), G: int(g), B: int(b)}
			}
		}
	default:
		for y := 0; y < dy; y++ {
			for x := 0; x < dx; x++ {
				c := color.NRGBAModel.Convert(img.At(minX+x, minY+y)).(color.NRGBA)
				pixels[y][x] = Pixel{R: int(c.R), G: int(c.G), B: int(c.B)}
			}
		}
	}
	return pixels
}

// ToGray converts an intensity grid to an *image.Gray. The width is given by the first row.
// Intensities outside of the [0, 255] range are saturated.
func ToGray(gray [][]int) *image.Gray {
	var width int
	if len(gray) > 0 {
		width = len(gray[0])
	}
	dst := image.NewGray(image.Rect(0, 0, width, len(gray)))

	for y, row := range gray {
		off := dst.PixOffset(0, y)
		for x := 0; x < width && x < len(row); x++ {
			dst.Pix[off+x] = uint8(utils.Clamp(row[x], 0, 255))
		}
	}
	return dst
}

// decodeImg decodes the source image and applies the EXIF orientation, if present.
func decodeImg(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return img, nil
}

// encodeImg encodes the image to a destination of type io.Writer.
// The format is chosen by the file extension in case the destination is a file,
// otherwise the image is encoded as JPEG.
func encodeImg(w io.Writer, img image.Image, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	f, ok := w.(*os.File)
	if !ok {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}

	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
