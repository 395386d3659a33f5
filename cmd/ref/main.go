package main

import (
	"fmt"
	"image"
	"os"

	"github.com/steakknife/hamming"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/submersibletoaster/blockglyph/examine"
	"github.com/submersibletoaster/blockglyph/glyph"
	"github.com/submersibletoaster/blockglyph/quant"
)

func main() {
	app := &cli.App{
		Name:  "blockglyph-ref",
		Usage: "check that every mask of the patterned sets decodes back to itself",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cell-width", Value: 8},
			&cli.IntFlag{Name: "cell-height", Value: 12},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	w, h := c.Int("cell-width"), c.Int("cell-height")

	broken := 0
	for _, set := range []glyph.Set{glyph.Quadrants, glyph.Sextants, glyph.SixDotSolid} {
		perfect, edge, wrong := check(set, w, h)
		log.Infof("%v: perfect %d, shared glyph %d, wrong %d", set, perfect, edge, wrong)
		broken += wrong
	}
	if broken > 0 {
		return cli.Exit(fmt.Sprintf("%d masks select a glyph that does not match", broken), 1)
	}
	return nil
}

// check draws each mask of set as a two colour tile, selects a glyph for it
// and compares the decoded pattern to the mask. Masks that land on a glyph
// another mask owns are edge cases: the glyph is right but the inverse lookup
// names the other mask.
func check(set glyph.Set, w, h int) (perfect, edge, wrong int) {
	n := 64
	if set == glyph.Quadrants {
		n = 16
	}
	white := examine.RGB{R: 255, G: 255, B: 255}
	cel := examine.NewCel(image.NewRGBA(image.Rect(0, 0, w, h)))

	for mask := 0; mask < n; mask++ {
		want := glyph.MaskPattern(set, uint8(mask))
		tile := &quant.Tile{Width: w, Height: h, Index: want.Raster(w, h), Palette: quant.Palette{examine.Black, white}}
		got := glyph.Select(set, cel, tile)

		p, ok := glyph.Decode(set, got.Rune)
		if !ok {
			fmt.Printf("%v\t%#02x\t%U\tundecodable\n", set, mask, got.Rune)
			wrong++
			continue
		}
		dist := hamming.Uint8(want.Mask, p.Mask)
		switch {
		case dist == 0:
			perfect++
		case glyphFor(set, p.Mask) == glyphFor(set, want.Mask):
			edge++
			log.Debugf("%v\t%#02x\t'%s'\t%U\tshared with %#02x, distance %d", set, mask, string(got.Rune), got.Rune, p.Mask, dist)
		default:
			wrong++
			fmt.Printf("%v\t%#02x\t'%s'\t%U\tdecodes to %#02x, distance %d\n", set, mask, string(got.Rune), got.Rune, p.Mask, dist)
		}
	}
	return
}

func glyphFor(set glyph.Set, mask uint8) rune {
	switch set {
	case glyph.Quadrants:
		return glyph.QuadrantRune(mask)
	case glyph.Sextants:
		return glyph.SextantRune(mask)
	}
	return glyph.SixDotRune(mask)
}
