package glyph

import (
	"github.com/submersibletoaster/blockglyph/quant"
)

// Quadrant mask bits.
const (
	QuadTopLeft     = 0x01
	QuadTopRight    = 0x02
	QuadBottomLeft  = 0x04
	QuadBottomRight = 0x08
)

// Sextant mask bits. Columns are numbered top to bottom, left column first,
// the same order as the first six Braille dots.
const (
	SextTopLeft     = 0x01
	SextMiddleLeft  = 0x02
	SextBottomLeft  = 0x04
	SextTopRight    = 0x08
	SextMiddleRight = 0x10
	SextBottomRight = 0x20
)

const (
	fullBlock      = 0x2588
	upperHalfBlock = 0x2580
	lowerHalfBlock = 0x2584
	leftHalfBlock  = 0x258c
	rightHalfBlock = 0x2590

	brailleBase = 0x2800

	// sextantBase+mask lands on the sextant block before the gap
	// corrections below.
	sextantBase = 0x1faff
	sextantLast = 0x1fb3b
)

// quadrants maps a quadrant mask to its glyph. 0x08 and 0x0b
// reuse the lower half and full block.
var quadrants = [16]rune{
	0x00: ' ',
	0x01: 0x2598, // ▘
	0x02: 0x259d, // ▝
	0x03: upperHalfBlock,
	0x04: 0x2596, // ▖
	0x05: leftHalfBlock,
	0x06: 0x259e, // ▞
	0x07: 0x259b, // ▛
	0x08: lowerHalfBlock,
	0x09: 0x259a, // ▚
	0x0a: rightHalfBlock,
	0x0b: fullBlock,
	0x0c: lowerHalfBlock,
	0x0d: 0x2599, // ▙
	0x0e: 0x259f, // ▟
	0x0f: fullBlock,
}

// QuadrantRune maps a 4-bit quadrant mask to its glyph. Only the low four
// bits are used.
func QuadrantRune(mask uint8) rune {
	return quadrants[mask&0x0f]
}

// SextantRune maps a 6-bit sextant mask to its glyph in the Symbols for
// Legacy Computing block. Empty, left half, right half and full are not in
// that block and come from Block Elements instead.
func SextantRune(mask uint8) rune {
	mask &= 0x3f
	switch mask {
	case 0x00:
		return ' '
	case 0x3f:
		return fullBlock
	case 0x07:
		return leftHalfBlock
	case 0x38:
		return rightHalfBlock
	}
	ch := rune(mask) + sextantBase
	switch {
	case ch > sextantLast:
		ch -= 4
	case ch > 0x1fb27:
		ch -= 3
	case ch > 0x1fb13:
		ch -= 2
	}
	return ch
}

// SixDotRune maps a 6-bit sextant mask onto the Braille block.
func SixDotRune(mask uint8) rune {
	return brailleBase + rune(mask&0x3f)
}

// QuadrantMask marks each quadrant of t whose foreground pixels are more
// than half of the quadrant.
func QuadrantMask(t *quant.Tile) uint8 {
	w, h := t.Width, t.Height
	threshold := h * w / 4 / 2

	var mask uint8
	regions := [...]struct {
		x0, y0, x1, y1 int
		bit            uint8
	}{
		{0, 0, w / 2, h / 2, QuadTopLeft},
		{w / 2, 0, w, h / 2, QuadTopRight},
		{0, h / 2, w / 2, h, QuadBottomLeft},
		{w / 2, h / 2, w, h, QuadBottomRight},
	}
	for _, r := range regions {
		if t.Count(r.x0, r.y0, r.x1, r.y1) > threshold {
			mask |= r.bit
		}
	}
	return mask
}

// SextantMask is QuadrantMask over a grid of two columns and three rows.
func SextantMask(t *quant.Tile) uint8 {
	w, h := t.Width, t.Height
	threshold := h * w / 6 / 2

	var mask uint8
	rows := [4]int{0, h / 3, h * 2 / 3, h}
	cols := [3]int{0, w / 2, w}
	for col := 0; col < 2; col++ {
		for row := 0; row < 3; row++ {
			if t.Count(cols[col], rows[row], cols[col+1], rows[row+1]) > threshold {
				mask |= 1 << uint(col*3+row)
			}
		}
	}
	return mask
}
