package glyph

import (
	"image"
	"image/color"

	"github.com/steakknife/hamming"
)

// Pattern is the sub-cell layout a glyph paints in its foreground colour.
// Bits are numbered row by row, or column by column when ColumnMajor is set
// (the sextant and Braille order).
type Pattern struct {
	Columns     int
	Rows        int
	Mask        uint8
	ColumnMajor bool
}

// MaskPattern describes what a raw mask means for set. Halves and Blocks use
// the quadrant layout.
func MaskPattern(set Set, mask uint8) Pattern {
	switch set {
	case Sextants, SixDot, SixDotSolid:
		return Pattern{Columns: 2, Rows: 3, Mask: mask & 0x3f, ColumnMajor: true}
	default:
		return Pattern{Columns: 2, Rows: 2, Mask: mask & 0x0f}
	}
}

// On reports whether the sub-cell at col,row is foreground.
func (p Pattern) On(col, row int) bool {
	bit := row*p.Columns + col
	if p.ColumnMajor {
		bit = col*p.Rows + row
	}
	return p.Mask&(1<<uint(bit)) != 0
}

// Filled counts foreground sub-cells.
func (p Pattern) Filled() int {
	return hamming.CountBitsUint8(p.Mask)
}

// Raster expands p to a w by h index image, 1 for foreground, using the
// same sub-cell boundaries as the mask samplers.
func (p Pattern) Raster(w, h int) []uint8 {
	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := band(y, h, p.Rows)
		for x := 0; x < w; x++ {
			if p.On(band(x, w, p.Columns), row) {
				out[y*w+x] = 1
			}
		}
	}
	return out
}

// band finds which of n slices of size v falls in; slice k starts at k*size/n.
func band(v, size, n int) int {
	for k := n - 1; k > 0; k-- {
		if v >= k*size/n {
			return k
		}
	}
	return 0
}

var halvesPatterns = map[rune]uint8{
	' ':            0x00,
	upperHalfBlock: QuadTopLeft | QuadTopRight,
	lowerHalfBlock: QuadBottomLeft | QuadBottomRight,
	leftHalfBlock:  QuadTopLeft | QuadBottomLeft,
	rightHalfBlock: QuadTopRight | QuadBottomRight,
	fullBlock:      0x0f,
}

var (
	quadrantMasks = map[rune]uint8{}
	sextantMasks  = map[rune]uint8{}
)

func init() {
	// Several masks share a glyph. Quadrants keep the glyph's own shape,
	// which is the highest mask using it; sextants keep the first.
	for mask := 15; mask >= 0; mask-- {
		r := QuadrantRune(uint8(mask))
		if _, ok := quadrantMasks[r]; !ok {
			quadrantMasks[r] = uint8(mask)
		}
	}
	for mask := 0; mask < 64; mask++ {
		r := SextantRune(uint8(mask))
		if _, ok := sextantMasks[r]; !ok {
			sextantMasks[r] = uint8(mask)
		}
	}
}

// Decode recovers the pattern a glyph of set stands for.
func Decode(set Set, r rune) (Pattern, bool) {
	switch set {
	case Blocks:
		if r == ' ' {
			return Pattern{Columns: 1, Rows: 1}, true
		}
	case Halves:
		if mask, ok := halvesPatterns[r]; ok {
			return MaskPattern(set, mask), true
		}
	case Quadrants:
		if mask, ok := quadrantMasks[r]; ok {
			return MaskPattern(set, mask), true
		}
	case Sextants:
		if mask, ok := sextantMasks[r]; ok {
			return MaskPattern(set, mask), true
		}
	case SixDot, SixDotSolid:
		if r >= brailleBase && r < brailleBase+0x40 {
			return MaskPattern(set, uint8(r-brailleBase)), true
		}
	}
	return Pattern{}, false
}

// Repertoire lists the distinct glyphs of set in mask order.
func Repertoire(set Set) []rune {
	switch set {
	case Blocks:
		return []rune{' '}
	case Halves:
		return []rune{' ', upperHalfBlock, leftHalfBlock, rightHalfBlock, lowerHalfBlock, fullBlock}
	}

	n := 64
	lookup := SextantRune
	switch set {
	case Quadrants:
		n, lookup = 16, QuadrantRune
	case SixDot, SixDotSolid:
		lookup = SixDotRune
	}
	seen := make(map[rune]bool, n)
	out := make([]rune, 0, n)
	for mask := 0; mask < n; mask++ {
		r := lookup(uint8(mask))
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Render paints c as a w by h bitmap: foreground where its pattern is set,
// background elsewhere. Glyphs set cannot decode render as background.
func Render(set Set, c Cell, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	p, ok := Decode(set, c.Rune)
	var raster []uint8
	if ok {
		raster = p.Raster(w, h)
	}
	fg, bg := color.RGBA(c.FG.NRGBA()), color.RGBA(c.BG.NRGBA())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if raster != nil && raster[y*w+x] == 1 {
				img.SetRGBA(x, y, fg)
			} else {
				img.SetRGBA(x, y, bg)
			}
		}
	}
	return img
}
