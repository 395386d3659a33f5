// Package examine slices a source image into fixed-size cels, one per text
// cell, and provides the colour helpers the rest of the pipeline reads them
// through.
package examine

import (
	"errors"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

var (
	// ErrEmptyImage is returned when the source image has no pixels.
	ErrEmptyImage = errors.New("examine: image has zero width or height")
	// ErrBadCellSize is returned for non-positive cell geometry.
	ErrBadCellSize = errors.New("examine: cell size must be positive")
)

// Cel is one text cell's worth of image content. Image is always exactly the
// cell size with its origin at (0,0); pixels beyond the source edge are
// opaque black.
type Cel struct {
	Image   *image.RGBA
	Origin  image.Rectangle // area of the source image this cel was cut from
	CharPos image.Point     // column and row of the cel in the grid
	Nth     int             // row-major position
}

// Grid holds every cel of an image in row-major order.
type Grid struct {
	Columns int
	Rows    int
	Cels    []*Cel
}

// GridSize reports how many cel columns and rows cover b.
func GridSize(b image.Rectangle, cellX, cellY int) (int, int) {
	if cellX <= 0 || cellY <= 0 {
		return 0, 0
	}
	return (b.Dx() + cellX - 1) / cellX, (b.Dy() + cellY - 1) / cellY
}

// ImageToCels takes a source image and slices it into cels of cellX,cellY.
// The last column and row may be cut short by the image edge; those cels are
// composited onto a black canvas of the full cell size.
func ImageToCels(src image.Image, cellX int, cellY int) (Grid, error) {
	if src == nil || src.Bounds().Empty() {
		return Grid{}, ErrEmptyImage
	}
	if cellX <= 0 || cellY <= 0 {
		return Grid{}, ErrBadCellSize
	}

	b := src.Bounds()
	columns, rows := GridSize(b, cellX, cellY)
	grid := Grid{Columns: columns, Rows: rows, Cels: make([]*Cel, 0, columns*rows)}

	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			origin := image.Rect(
				b.Min.X+col*cellX, b.Min.Y+row*cellY,
				b.Min.X+(col+1)*cellX, b.Min.Y+(row+1)*cellY,
			).Intersect(b)

			canvas := image.NewRGBA(image.Rect(0, 0, cellX, cellY))
			draw.Draw(canvas, canvas.Bounds(), image.Black, image.Point{}, draw.Src)
			draw.Draw(canvas, image.Rect(0, 0, origin.Dx(), origin.Dy()), src, origin.Min, draw.Over)

			grid.Cels = append(grid.Cels, &Cel{
				Image:   canvas,
				Origin:  origin,
				CharPos: image.Point{X: col, Y: row},
				Nth:     len(grid.Cels),
			})
		}
	}
	log.Debugf("ImageToCels: %v into %dx%d cels of %dx%d", b, columns, rows, cellX, cellY)
	return grid, nil
}

// NewCel wraps an already cell-sized image. The image is re-based so its
// origin sits at (0,0).
func NewCel(img *image.RGBA) *Cel {
	b := img.Bounds()
	if b.Min != (image.Point{}) {
		dup := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dup, dup.Bounds(), img, b.Min, draw.Src)
		img = dup
	}
	return &Cel{Image: img, Origin: img.Bounds()}
}

// Width of the cel in pixels.
func (s *Cel) Width() int { return s.Image.Bounds().Dx() }

// Height of the cel in pixels.
func (s *Cel) Height() int { return s.Image.Bounds().Dy() }

// Pixels returns the cel's colours in row-major order. Any pixel that is not
// fully opaque becomes black.
func (s *Cel) Pixels() []RGB {
	w, h := s.Width(), s.Height()
	out := make([]RGB, 0, w*h)
	for y := 0; y < h; y++ {
		off := y * s.Image.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			p := s.Image.Pix[i : i+4 : i+4]
			if p[3] != 0xff {
				out = append(out, Black)
				continue
			}
			out = append(out, RGB{p[0], p[1], p[2]})
		}
	}
	return out
}

// Average is the plain mean colour of the whole cel.
func (s *Cel) Average() RGB {
	return s.AverageRect(s.Image.Bounds())
}

// AverageRect is the mean colour of the pixels of r. An empty rectangle
// averages to black.
func (s *Cel) AverageRect(r image.Rectangle) RGB {
	r = r.Intersect(s.Image.Bounds())
	if r.Empty() {
		return Black
	}
	var tr, tg, tb, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := FromRGBA(s.Image.RGBAAt(x, y))
			tr += int(c.R)
			tg += int(c.G)
			tb += int(c.B)
			n++
		}
	}
	return RGB{uint8(tr / n), uint8(tg / n), uint8(tb / n)}
}

// RGB is an opaque 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Black is the colour every undefined or transparent pixel collapses to.
var Black = RGB{}

// FromColor converts c, turning anything that is not fully opaque into black.
func FromColor(c color.Color) RGB {
	r, g, b, a := c.RGBA()
	if a != 0xffff {
		return Black
	}
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// FromRGBA is FromColor without the interface conversion.
func FromRGBA(c color.RGBA) RGB {
	if c.A != 0xff {
		return Black
	}
	return RGB{c.R, c.G, c.B}
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns c as a fully opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Colorful converts c for colour-space work.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Mean averages two colours channel by channel, rounding down.
func Mean(a, b RGB) RGB {
	return RGB{
		uint8((int(a.R) + int(b.R)) / 2),
		uint8((int(a.G) + int(b.G)) / 2),
		uint8((int(a.B) + int(b.B)) / 2),
	}
}
