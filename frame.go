package blockglyph

import (
	"image"
	"sort"

	"golang.org/x/image/draw"

	"github.com/submersibletoaster/blockglyph/glyph"
)

// Frame is an encoded image: Columns by Rows cells in row-major order.
type Frame struct {
	Columns    int
	Rows       int
	CellWidth  int
	CellHeight int
	Set        glyph.Set
	Cells      []glyph.Cell
}

// At returns the cell at col,row.
func (f *Frame) At(col, row int) glyph.Cell {
	return f.Cells[row*f.Columns+col]
}

// Row returns the cells of one row.
func (f *Frame) Row(row int) []glyph.Cell {
	return f.Cells[row*f.Columns : (row+1)*f.Columns]
}

// Image paints the frame back into pixels, each cell drawn from its glyph
// pattern and colours at the frame's cell size.
func (f *Frame) Image() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, f.Columns*f.CellWidth, f.Rows*f.CellHeight))
	for i, c := range f.Cells {
		col, row := i%f.Columns, i/f.Columns
		at := image.Pt(col*f.CellWidth, row*f.CellHeight)
		tile := glyph.Render(f.Set, c, f.CellWidth, f.CellHeight)
		draw.Draw(out, tile.Bounds().Add(at), tile, image.Point{}, draw.Src)
	}
	return out
}

// GlyphCount is how often one glyph occurs in a frame.
type GlyphCount struct {
	Rune  rune
	Count int
}

// Stats summarises a frame.
type Stats struct {
	Cells int
	// Diversity lists every glyph used, most frequent first.
	Diversity []GlyphCount
	// Filled counts foreground sub-cells over all decodable glyphs.
	Filled int
}

// Stats reports glyph diversity and coverage for f.
func (f *Frame) Stats() Stats {
	counts := make(map[rune]int)
	s := Stats{Cells: len(f.Cells)}
	for _, c := range f.Cells {
		counts[c.Rune]++
		if p, ok := glyph.Decode(f.Set, c.Rune); ok {
			s.Filled += p.Filled()
		}
	}
	for r, n := range counts {
		s.Diversity = append(s.Diversity, GlyphCount{Rune: r, Count: n})
	}
	sort.Slice(s.Diversity, func(i, j int) bool {
		if s.Diversity[i].Count != s.Diversity[j].Count {
			return s.Diversity[i].Count > s.Diversity[j].Count
		}
		return s.Diversity[i].Rune < s.Diversity[j].Rune
	})
	return s
}
