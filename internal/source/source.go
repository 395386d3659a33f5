// Package source loads and prepares images for the command line tools.
package source

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/submersibletoaster/blockglyph/quant"
)

// Options control the optional clean-up applied before encoding.
type Options struct {
	Columns   int     // scale to this many cells across; 0 keeps the size
	CellWidth int     // pixel width of one cell, needed for Columns
	Contrast  float64 // -1..1, 0 is unchanged
	Gamma     float64 // 1 is unchanged
	Grayscale bool
	Threshold int    // 1..255 reduces to black and white; 0 is off
	Posterize int    // reduce the whole image to this many colours first; 0 is off
	Kernel    string // diffusion kernel for Posterize
}

// Flags are the preparation flags shared by every tool.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "columns",
			Usage: "scale the image to this many text cells across (0 keeps the original size)",
		},
		&cli.Float64Flag{
			Name:  "contrast",
			Usage: "contrast change between -1 and 1",
		},
		&cli.Float64Flag{
			Name:  "gamma",
			Value: 1.0,
			Usage: "gamma correction",
		},
		&cli.BoolFlag{
			Name:  "grayscale",
			Usage: "drop colour before encoding",
		},
		&cli.IntFlag{
			Name:  "threshold",
			Usage: "reduce to black and white at this grey level (1-255)",
		},
		&cli.IntFlag{
			Name:  "posterize",
			Usage: "reduce the whole image to this many colours before encoding",
		},
		&cli.StringFlag{
			Name:  "kernel",
			Value: "sierra-3",
			Usage: "error diffusion for --posterize: " + strings.Join(quant.Kernels(), ", "),
		},
	}
}

// FromContext reads Options from the flags returned by Flags.
func FromContext(c *cli.Context, cellWidth int) Options {
	return Options{
		Columns:   c.Int("columns"),
		CellWidth: cellWidth,
		Contrast:  c.Float64("contrast"),
		Gamma:     c.Float64("gamma"),
		Grayscale: c.Bool("grayscale"),
		Threshold: c.Int("threshold"),
		Posterize: c.Int("posterize"),
		Kernel:    c.String("kernel"),
	}
}

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	log.Debugf("Loaded %s: %s %v", path, format, img.Bounds())
	return img, nil
}

// Prepare applies opts to img.
func Prepare(img image.Image, opts Options) (image.Image, error) {
	if opts.Columns > 0 && opts.CellWidth > 0 {
		width := uint(opts.Columns * opts.CellWidth)
		img = resize.Resize(width, 0, img, resize.Lanczos3)
		log.Debugf("Resized to %v", img.Bounds())
	}
	if opts.Contrast != 0 {
		img = adjust.Contrast(img, opts.Contrast)
	}
	if opts.Gamma > 0 && opts.Gamma != 1 {
		img = adjust.Gamma(img, opts.Gamma)
	}
	if opts.Grayscale {
		img = effect.Grayscale(img)
	}
	if opts.Threshold > 0 {
		img = segment.Threshold(img, uint8(min(opts.Threshold, 255)))
	}
	if opts.Posterize > 0 {
		return quant.Posterize(img, opts.Posterize, opts.Kernel)
	}
	return img, nil
}
