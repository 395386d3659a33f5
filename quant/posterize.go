package quant

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/esimov/colorquant"
	log "github.com/sirupsen/logrus"
)

// ErrUnknownKernel is returned by Posterize for a kernel name not in Kernels.
var ErrUnknownKernel = errors.New("quant: unknown diffusion kernel")

// kernels are the whole-image error diffusion filters Posterize offers. Each
// filter row is centred on the current pixel.
var kernels = map[string]colorquant.Dither{
	"jarvis-judice-ninke": {
		Filter: [][]float32{
			{0.0, 0.0, 0.0, 7.0 / 48.0, 5.0 / 48.0},
			{3.0 / 48.0, 5.0 / 48.0, 7.0 / 48.0, 5.0 / 48.0, 3.0 / 48.0},
			{1.0 / 48.0, 3.0 / 48.0, 5.0 / 48.0, 3.0 / 48.0, 1.0 / 48.0},
		},
	},
	"floyd-steinberg": {
		Filter: [][]float32{
			{0.0, 0.0, 7.0 / 16.0},
			{3.0 / 16.0, 5.0 / 16.0, 1.0 / 16.0},
		},
	},
	"stucki": {
		Filter: [][]float32{
			{0.0, 0.0, 0.0, 8.0 / 42.0, 4.0 / 42.0},
			{2.0 / 42.0, 4.0 / 42.0, 8.0 / 42.0, 4.0 / 42.0, 2.0 / 42.0},
			{1.0 / 42.0, 2.0 / 42.0, 4.0 / 42.0, 2.0 / 42.0, 1.0 / 42.0},
		},
	},
	"atkinson": {
		Filter: [][]float32{
			{0.0, 0.0, 1.0 / 8.0, 1.0 / 8.0},
			{1.0 / 8.0, 1.0 / 8.0, 1.0 / 8.0, 0.0},
			{0.0, 1.0 / 8.0, 0.0, 0.0},
		},
	},
	"sierra-3": {
		Filter: [][]float32{
			{0.0, 0.0, 0.0, 5.0 / 32.0, 3.0 / 32.0},
			{2.0 / 32.0, 4.0 / 32.0, 5.0 / 32.0, 4.0 / 32.0, 2.0 / 32.0},
			{0.0, 2.0 / 32.0, 3.0 / 32.0, 2.0 / 32.0, 0.0},
		},
	},
	"sierra-lite": {
		Filter: [][]float32{
			{0.0, 0.0, 2.0 / 4.0},
			{1.0 / 4.0, 1.0 / 4.0, 0.0},
			{0.0, 0.0, 0.0},
		},
	},
}

// Kernels lists the diffusion kernel names Posterize accepts, plus "none".
func Kernels() []string {
	names := []string{"none"}
	for k := range kernels {
		names = append(names, k)
	}
	sort.Strings(names[1:])
	return names
}

// PickPalette chooses n representative colours for the whole of img.
func PickPalette(img image.Image, n int) color.Palette {
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, n), img)
}

// Posterize reduces img to a palette of n colours, spreading the error with
// the named kernel. It runs before cels are cut, so the per-cel palettes are
// drawn from a smaller set of colours and neighbouring cels agree.
func Posterize(img image.Image, n int, kernel string) (image.Image, error) {
	b := img.Bounds()
	pal := PickPalette(img, n)
	log.Debugf("quant: posterize to %d colours with %s", len(pal), kernel)

	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	if kernel == "" || kernel == "none" {
		return colorquant.NoDither.Quantize(img, dst, len(pal), false, false), nil
	}
	d, ok := kernels[kernel]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKernel, kernel)
	}
	return d.Quantize(img, dst, len(pal), true, false), nil
}
