// Package glyph picks the Unicode block, sextant or Braille character (plus a
// foreground/background pair) that best stands in for one quantized cel.
package glyph

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/submersibletoaster/blockglyph/examine"
	"github.com/submersibletoaster/blockglyph/quant"
)

// ErrInvalidCell is the panic value when a cel reaches selection without a
// valid quantization. It signals a pipeline ordering bug.
var ErrInvalidCell = errors.New("glyph: cel has not been quantized")

// Set is a glyph repertoire.
type Set int

const (
	// Blocks fills the cell with its average colour.
	Blocks Set = iota
	// Halves uses half blocks chosen by least RMS error.
	Halves
	// Sextants uses the 2x3 sextant blocks.
	Sextants
	// Quadrants uses the 2x2 quadrant blocks.
	Quadrants
	// SixDot uses 6-dot Braille with one averaged colour on black.
	SixDot
	// SixDotSolid uses 6-dot Braille with the cel's two palette colours.
	SixDotSolid
)

// Sets lists every repertoire in declaration order.
var Sets = []Set{Blocks, Halves, Sextants, Quadrants, SixDot, SixDotSolid}

var setNames = map[Set]string{
	Blocks:      "solid",
	Halves:      "halves",
	Sextants:    "sextants",
	Quadrants:   "quadrants",
	SixDot:      "6dot",
	SixDotSolid: "6dotsolid",
}

// String returns the setting name of s.
func (s Set) String() string {
	if name, ok := setNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Set(%d)", int(s))
}

// ParseSet maps a setting value ("solid", "halves", "sextants",
// "quadrants", "6dot", "6dotsolid") to its Set. Case and surrounding space
// are ignored.
func ParseSet(name string) (Set, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range setNames {
		if n == name {
			return s, true
		}
	}
	return Halves, false
}

// Cell is one output character with its colours.
type Cell struct {
	Rune rune
	FG   examine.RGB
	BG   examine.RGB
}

func (c Cell) String() string {
	return fmt.Sprintf("%q %U fg %s bg %s", c.Rune, c.Rune, c.FG.Hex(), c.BG.Hex())
}

type selector func(cel *examine.Cel, t *quant.Tile) Cell

var selectors = [...]selector{
	Blocks:      selectBlocks,
	Halves:      selectHalves,
	Sextants:    selectSextants,
	Quadrants:   selectQuadrants,
	SixDot:      selectSixDot,
	SixDotSolid: selectSixDotSolid,
}

// Select builds the cell for cel using set. Every set except Blocks needs t,
// the cel's quantization with a two entry palette; a missing or invalid t
// panics with ErrInvalidCell.
func Select(set Set, cel *examine.Cel, t *quant.Tile) Cell {
	if set < 0 || int(set) >= len(selectors) {
		panic(fmt.Sprintf("glyph: unknown set %d", int(set)))
	}
	if set != Blocks && (!t.Valid() || len(t.Palette) < 2) {
		panic(ErrInvalidCell)
	}
	c := selectors[set](cel, t)
	log.Debugf("glyph: %v cel %v -> %v", set, cel.CharPos, c)
	return c
}

func selectBlocks(cel *examine.Cel, _ *quant.Tile) Cell {
	avg := cel.Average()
	return Cell{Rune: ' ', FG: avg, BG: avg}
}

func selectHalves(cel *examine.Cel, _ *quant.Tile) Cell {
	return halvesCell(cel)
}

func selectQuadrants(_ *examine.Cel, t *quant.Tile) Cell {
	return Cell{Rune: QuadrantRune(QuadrantMask(t)), FG: t.Palette[1], BG: t.Palette[0]}
}

func selectSextants(_ *examine.Cel, t *quant.Tile) Cell {
	return Cell{Rune: SextantRune(SextantMask(t)), FG: t.Palette[1], BG: t.Palette[0]}
}

func selectSixDot(_ *examine.Cel, t *quant.Tile) Cell {
	return Cell{
		Rune: SixDotRune(SextantMask(t)),
		FG:   examine.Mean(t.Palette[0], t.Palette[1]),
		BG:   examine.Black,
	}
}

func selectSixDotSolid(_ *examine.Cel, t *quant.Tile) Cell {
	return Cell{Rune: SixDotRune(SextantMask(t)), FG: t.Palette[1], BG: t.Palette[0]}
}
