package grayscale

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colors[i%len(colors)])
			i++
		}
	}
	return img
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j%len(colors)]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestImage_PixelsFromImage(t *testing.T) {
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
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "RGBA",
			img:  image.NewRGBA(rect),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pixels := PixelsFromImage(tc.img)
			b := tc.img.Bounds()
			if !assert.Len(t, pixels, b.Dy()) {
				return
			}
			for y := 0; y < b.Dy(); y++ {
				assert.Len(t, pixels[y], b.Dx())
				for x := 0; x < b.Dx(); x++ {
					want := color.NRGBAModel.Convert(tc.img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
					got := pixels[y][x]
					if abs(got.R-int(want.R)) > 1 || abs(got.G-int(want.G)) > 1 || abs(got.B-int(want.B)) > 1 {
						t.Errorf("pixel (%d, %d): got %v want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestImage_ToGray(t *testing.T) {
	gray := ToGray([][]int{{0, 128, 300}, {-5, 255, 17}})
	assert.Equal(t, image.Rect(0, 0, 3, 2), gray.Bounds())
	assert.Equal(t, []uint8{0, 128, 255, 0, 255, 17}, gray.Pix)

	empty := ToGray(nil)
	assert.True(t, empty.Bounds().Empty())
}

func TestImage_EncodeByExtension(t *testing.T) {
	src := ToGray([][]int{{10, 20}, {30, 40}})
	dir := t.TempDir()

	for _, ext := range []string{".png", ".bmp", ".tiff", ".jpg", ""} {
		f, err := os.Create(filepath.Join(dir, "out"+ext))
		if err != nil {
			t.Fatalf("could not create destination: %v", err)
		}
		assert.NoError(t, encodeImg(f, src, 90), ext)
		f.Close()

		data, err := os.ReadFile(f.Name())
		assert.NoError(t, err)
		img, err := decodeImg(bytes.NewReader(data))
		if assert.NoError(t, err, ext) {
			assert.Equal(t, src.Bounds(), img.Bounds(), ext)
		}
	}
}

func TestImage_EncodeUnsupportedExtension(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.xyz"))
	if err != nil {
		t.Fatalf("could not create destination: %v", err)
	}
	defer f.Close()

	err = encodeImg(f, ToGray([][]int{{1}}), 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImage_DecodeInvalidData(t *testing.T) {
	_, err := decodeImg(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
