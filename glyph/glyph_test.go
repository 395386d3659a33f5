package glyph

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submersibletoaster/blockglyph/examine"
	"github.com/submersibletoaster/blockglyph/quant"
)

var (
	black = examine.Black
	white = examine.RGB{R: 255, G: 255, B: 255}
)

func fill(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func selectFor(set Set, img *image.RGBA) Cell {
	cel := examine.NewCel(img)
	var t *quant.Tile
	if set != Blocks {
		t = quant.Quantize(cel, 2)
	}
	return Select(set, cel, t)
}

// tileFromPattern builds a quantized tile whose foreground covers p exactly.
func tileFromPattern(p Pattern, w, h int) *quant.Tile {
	return &quant.Tile{Width: w, Height: h, Index: p.Raster(w, h), Palette: quant.Palette{black, white}}
}

func TestParseSet(t *testing.T) {
	cases := map[string]Set{
		"solid":     Blocks,
		"halves":    Halves,
		"sextants":  Sextants,
		"quadrants": Quadrants,
		"6dot":      SixDot,
		"6dotsolid": SixDotSolid,
		" Halves ":  Halves,
		"6DOTSOLID": SixDotSolid,
	}
	for in, want := range cases {
		got, ok := ParseSet(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "blocks", "braille", "sixdot"} {
		_, ok := ParseSet(in)
		assert.False(t, ok, in)
	}
	for _, s := range Sets {
		got, ok := ParseSet(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
}

func TestQuadrantTable(t *testing.T) {
	want := [16]rune{
		' ', 0x2598, 0x259d, 0x2580, 0x2596, 0x258c, 0x259e, 0x259b,
		0x2584, 0x259a, 0x2590, 0x2588, 0x2584, 0x2599, 0x259f, 0x2588,
	}
	for mask := 0; mask < 16; mask++ {
		assert.Equal(t, want[mask], QuadrantRune(uint8(mask)), "mask %#x", mask)
	}
}

func TestSextantTable(t *testing.T) {
	assert.Equal(t, ' ', SextantRune(0x00))
	assert.Equal(t, rune(0x2588), SextantRune(0x3f))
	assert.Equal(t, rune(0x258c), SextantRune(0x07))
	assert.Equal(t, rune(0x2590), SextantRune(0x38))

	assert.Equal(t, rune(0x1fb00), SextantRune(0x01))
	assert.Equal(t, rune(0x1fb13), SextantRune(0x14))
	assert.Equal(t, rune(0x1fb12), SextantRune(0x15))
	assert.Equal(t, rune(0x1fb26), SextantRune(0x2a))
	assert.Equal(t, rune(0x1fb38), SextantRune(0x3c))
	assert.Equal(t, rune(0x1fb39), SextantRune(0x3e))

	for mask := 0; mask < 64; mask++ {
		r := SextantRune(uint8(mask))
		assert.NotZero(t, r, "mask %#x", mask)
		assert.LessOrEqual(t, r, rune(sextantLast), "mask %#x", mask)
	}
}

func TestSixDotTable(t *testing.T) {
	for mask := 0; mask < 64; mask++ {
		assert.Equal(t, rune(0x2800+mask), SixDotRune(uint8(mask)))
	}
}

func TestQuadrantTopLeftPixel(t *testing.T) {
	img := fill(2, 2, color.Black)
	img.Set(0, 0, color.White)

	c := selectFor(Quadrants, img)
	assert.Equal(t, Cell{Rune: 0x2598, FG: white, BG: black}, c)
}

func TestQuadrantMaskMajority(t *testing.T) {
	tile := &quant.Tile{Width: 8, Height: 8, Index: make([]uint8, 64), Palette: quant.Palette{black, white}}
	set := func(x, y int) { tile.Index[y*8+x] = 1 }
	set(0, 0)
	set(1, 0)
	set(2, 0)
	set(4, 0)
	set(5, 0)
	// 16 pixels per quadrant, so the threshold is 8.
	assert.Equal(t, uint8(0), QuadrantMask(tile))

	for y := 4; y < 8; y++ {
		for x := 4; x < 8; x++ {
			set(x, y)
		}
	}
	assert.Equal(t, uint8(QuadBottomRight), QuadrantMask(tile))
}

func TestMasksRoundTrip(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		tile := tileFromPattern(MaskPattern(Quadrants, uint8(mask)), 8, 12)
		assert.Equal(t, uint8(mask), QuadrantMask(tile), "quadrant %#x", mask)
	}
	for mask := 0; mask < 64; mask++ {
		tile := tileFromPattern(MaskPattern(Sextants, uint8(mask)), 8, 12)
		assert.Equal(t, uint8(mask), SextantMask(tile), "sextant %#x", mask)
	}
}

func TestSextantSelection(t *testing.T) {
	tile := tileFromPattern(MaskPattern(Sextants, SextTopLeft|SextMiddleLeft|SextBottomLeft), 6, 9)
	cel := examine.NewCel(fill(6, 9, color.Black))

	c := Select(Sextants, cel, tile)
	assert.Equal(t, Cell{Rune: 0x258c, FG: white, BG: black}, c)

	c = Select(SixDotSolid, cel, tile)
	assert.Equal(t, Cell{Rune: 0x2807, FG: white, BG: black}, c)
}

func TestSixDotColors(t *testing.T) {
	fg := examine.RGB{R: 200, G: 100, B: 51}
	bg := examine.RGB{R: 100, G: 50, B: 0}
	tile := &quant.Tile{Width: 2, Height: 3, Index: []uint8{1, 0, 0, 0, 0, 1}, Palette: quant.Palette{bg, fg}}
	cel := examine.NewCel(fill(2, 3, color.Black))

	c := Select(SixDot, cel, tile)
	assert.Equal(t, rune(0x2800+SextTopLeft+SextBottomRight), c.Rune)
	assert.Equal(t, examine.RGB{R: 150, G: 75, B: 25}, c.FG)
	assert.Equal(t, black, c.BG)

	c = Select(SixDotSolid, cel, tile)
	assert.Equal(t, fg, c.FG)
	assert.Equal(t, bg, c.BG)
}

func TestUniformCelEverySet(t *testing.T) {
	for _, col := range []examine.RGB{black, {R: 30, G: 160, B: 220}} {
		img := fill(8, 12, col)
		for _, set := range []Set{Blocks, Halves, Quadrants, Sextants, SixDotSolid} {
			c := selectFor(set, img)
			assert.Contains(t, []rune{' ', 0x2588, 0x2800}, c.Rune, "%v", set)
			assert.Equal(t, col, c.FG, "%v", set)
			assert.Equal(t, col, c.BG, "%v", set)
		}
		c := selectFor(SixDot, img)
		assert.Equal(t, rune(0x2800), c.Rune)
		assert.Equal(t, col, c.FG)
		assert.Equal(t, black, c.BG)
	}
}

func TestBlankCelsAreSpaceOrFull(t *testing.T) {
	img := fill(8, 12, color.Black)
	for _, set := range []Set{Blocks, Halves, Quadrants, Sextants} {
		c := selectFor(set, img)
		assert.Contains(t, []rune{' ', 0x2588}, c.Rune, "%v", set)
	}
}

func TestHalvesSplits(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	vertical := fill(8, 8, blue)
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			vertical.Set(x, y, red)
		}
	}
	c := halvesCell(examine.NewCel(vertical))
	assert.Equal(t, Cell{Rune: 0x258c, FG: examine.RGB{R: 255}, BG: examine.RGB{B: 255}}, c)

	horizontal := fill(8, 8, blue)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			horizontal.Set(x, y, red)
		}
	}
	c = halvesCell(examine.NewCel(horizontal))
	assert.Equal(t, Cell{Rune: 0x2580, FG: examine.RGB{R: 255}, BG: examine.RGB{B: 255}}, c)

	c = halvesCell(examine.NewCel(fill(8, 8, red)))
	assert.Equal(t, Cell{Rune: 0x2588, FG: examine.RGB{R: 255}, BG: examine.RGB{R: 255}}, c)
}

func TestSelectRequiresQuantization(t *testing.T) {
	cel := examine.NewCel(fill(2, 2, color.White))
	for _, set := range []Set{Halves, Quadrants, Sextants, SixDot, SixDotSolid} {
		assert.PanicsWithValue(t, ErrInvalidCell, func() { Select(set, cel, nil) }, "%v", set)
		bad := &quant.Tile{Width: 2, Height: 2, Index: []uint8{0, 0, 0, 3}, Palette: quant.Palette{black, white}}
		assert.PanicsWithValue(t, ErrInvalidCell, func() { Select(set, cel, bad) }, "%v", set)
	}
	assert.NotPanics(t, func() { Select(Blocks, cel, nil) })
}

func TestDecode(t *testing.T) {
	p, ok := Decode(Quadrants, 0x2584)
	require.True(t, ok)
	assert.Equal(t, uint8(QuadBottomLeft|QuadBottomRight), p.Mask)

	p, ok = Decode(Quadrants, 0x2588)
	require.True(t, ok)
	assert.Equal(t, uint8(0x0f), p.Mask)
	assert.Equal(t, 4, p.Filled())

	p, ok = Decode(Sextants, 0x258c)
	require.True(t, ok)
	assert.True(t, p.On(0, 0))
	assert.True(t, p.On(0, 2))
	assert.False(t, p.On(1, 1))

	p, ok = Decode(SixDot, 0x2800+SextTopRight)
	require.True(t, ok)
	assert.True(t, p.On(1, 0))
	assert.Equal(t, 1, p.Filled())

	_, ok = Decode(SixDot, 'x')
	assert.False(t, ok)
	_, ok = Decode(Halves, 0x2598)
	assert.False(t, ok)
}

func TestRepertoire(t *testing.T) {
	assert.Len(t, Repertoire(Blocks), 1)
	assert.Len(t, Repertoire(Halves), 6)
	assert.Len(t, Repertoire(Quadrants), 14)
	assert.Len(t, Repertoire(SixDot), 64)
	for _, r := range Repertoire(Sextants) {
		_, ok := Decode(Sextants, r)
		assert.True(t, ok, "%U", r)
	}
}

func TestRender(t *testing.T) {
	c := Cell{Rune: 0x2580, FG: white, BG: black}
	img := Render(Halves, c, 4, 4)
	assert.Equal(t, white.NRGBA(), color.NRGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, white.NRGBA(), color.NRGBAModel.Convert(img.At(3, 1)))
	assert.Equal(t, black.NRGBA(), color.NRGBAModel.Convert(img.At(0, 2)))

	red := examine.RGB{R: 200, G: 10, B: 30}
	solid := Render(Blocks, Cell{Rune: ' ', FG: red, BG: red}, 3, 2)
	assert.Equal(t, color.RGBA{200, 10, 30, 255}, solid.RGBAAt(2, 1))

	quad := Render(Quadrants, Cell{Rune: 0x259e, FG: red, BG: white}, 4, 4)
	assert.Equal(t, color.RGBA{200, 10, 30, 255}, quad.RGBAAt(3, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, quad.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{200, 10, 30, 255}, quad.RGBAAt(0, 3))

	unknown := Render(Quadrants, Cell{Rune: 'x', FG: white, BG: black}, 2, 2)
	assert.Equal(t, black.NRGBA(), color.NRGBAModel.Convert(unknown.At(1, 1)))
}

func TestBand(t *testing.T) {
	assert.Equal(t, 0, band(1, 5, 2))
	assert.Equal(t, 1, band(2, 5, 2))
	assert.Equal(t, 2, band(6, 9, 3))
	assert.Equal(t, 1, band(5, 9, 3))
}
