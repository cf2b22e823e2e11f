package grayscale

import (
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/esimov/grayscale/utils"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/bmp"
)

func quietProcessor(m Method) *Processor {
	s := utils.NewSpinner("", time.Millisecond, false)
	s.SetWriter(io.Discard)
	return &Processor{Method: m, Spinner: s}
}

func TestExec_SingleFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sample.png")
	out := filepath.Join(dir, "gray.png")
	writePNG(t, in, sampleImage())

	p := quietProcessor(RedChannel)
	err := p.ExecuteContext(context.Background(), &Ops{Src: in, Dst: out, PipeName: "-"})
	assert.NoError(t, err)

	got := readGray(t, out)
	assert.Equal(t, image.Rect(0, 0, imgWidth, imgHeight), got.Bounds())
}

func TestExec_UnsupportedDestination(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sample.png")
	writePNG(t, in, sampleImage())

	p := quietProcessor(RedChannel)
	err := p.ExecuteContext(context.Background(), &Ops{Src: in, Dst: filepath.Join(dir, "out.gif"), PipeName: "-"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExec_MissingSource(t *testing.T) {
	p := quietProcessor(RedChannel)
	err := p.ExecuteContext(context.Background(), &Ops{Src: filepath.Join(t.TempDir(), "nope.png"), Dst: "out.png", PipeName: "-"})
	assert.Error(t, err)
}

func TestExec_Directory(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "gray")

	writePNG(t, filepath.Join(src, "a.png"), sampleImage())
	assert.NoError(t, os.Mkdir(filepath.Join(src, "nested"), 0755))
	writePNG(t, filepath.Join(src, "nested", "b.png"), sampleImage())

	f, err := os.Create(filepath.Join(src, "c.bmp"))
	if err != nil {
		t.Fatal(err)
	}
	assert.NoError(t, bmp.Encode(f, sampleImage()))
	f.Close()
	assert.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("skip me"), 0644))

	p := quietProcessor(RootMeanSquare)
	err = p.ExecuteContext(context.Background(), &Ops{Src: src, Dst: dst, PipeName: "-", Workers: 2})
	assert.NoError(t, err)

	for _, name := range []string{"a.png", filepath.Join("nested", "b.png"), "c.bmp"} {
		got := readGray(t, filepath.Join(dst, name))
		assert.Equal(t, image.Rect(0, 0, imgWidth, imgHeight), got.Bounds(), name)
	}
	_, err = os.Stat(filepath.Join(dst, "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestExec_DirectoryReportsFailures(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "gray")

	writePNG(t, filepath.Join(src, "good.png"), sampleImage())
	assert.NoError(t, os.WriteFile(filepath.Join(src, "broken.png"), []byte("not a png"), 0644))

	p := quietProcessor(Average)
	err := p.ExecuteContext(context.Background(), &Ops{Src: src, Dst: dst, PipeName: "-", Workers: 1})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.png")

	_, err = os.Stat(filepath.Join(dst, "good.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, "broken.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestExec_DestPath(t *testing.T) {
	dir := t.TempDir()
	got, err := destPath("/src", "/src/sub/photo.webp", dir)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", "photo.png"), got)

	got, err = destPath("/src", "/src/photo.JPG", dir)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo.JPG"), got)
}
