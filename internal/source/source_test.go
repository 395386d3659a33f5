package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			img.SetRGBA(x, y, color.RGBA{v, v / 2, 255 - v, 255})
		}
	}
	return img
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, gradient(10, 4)))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 4), img.Bounds())

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = Load(junk)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestPrepareIdentity(t *testing.T) {
	src := gradient(16, 8)
	out, err := Prepare(src, Options{Gamma: 1})
	require.NoError(t, err)
	assert.Same(t, src, out)
}

func TestPrepareColumns(t *testing.T) {
	out, err := Prepare(gradient(64, 32), Options{Columns: 4, CellWidth: 8, Gamma: 1})
	require.NoError(t, err)
	assert.Equal(t, 32, out.Bounds().Dx())
	assert.Equal(t, 16, out.Bounds().Dy())
}

func TestPrepareThreshold(t *testing.T) {
	out, err := Prepare(gradient(16, 2), Options{Gamma: 1, Threshold: 128})
	require.NoError(t, err)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(out.At(x, y)).(color.Gray).Y
			assert.Contains(t, []uint8{0, 255}, g)
		}
	}
}

func TestPreparePosterize(t *testing.T) {
	_, err := Prepare(gradient(8, 8), Options{Gamma: 1, Posterize: 2, Kernel: "nope"})
	assert.Error(t, err)

	out, err := Prepare(gradient(8, 8), Options{Gamma: 1, Posterize: 2, Kernel: "none"})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 8), out.Bounds().Size())
}
