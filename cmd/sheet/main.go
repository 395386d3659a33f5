package main

import (
	"image"
	"image/png"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/draw"

	"github.com/submersibletoaster/blockglyph/examine"
	"github.com/submersibletoaster/blockglyph/glyph"
)

func main() {
	app := &cli.App{
		Name:  "blockglyph-sheet",
		Usage: "draw every glyph of every set into one PNG, one set per row",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cell-width", Value: 8, Usage: "pixel width of one glyph"},
			&cli.IntFlag{Name: "cell-height", Value: 12, Usage: "pixel height of one glyph"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "sheet.png", Usage: "output file"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	img := makeCharSheet(c.Int("cell-width"), c.Int("cell-height"))

	w, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return err
	}
	log.Infof("Wrote %s %v", c.String("out"), img.Bounds())
	return w.Close()
}

// makeCharSheet lays the repertoire of each set out on its own row, white on
// black with a one pixel gutter.
func makeCharSheet(sX, sY int) *image.RGBA {
	const gutter = 1
	white := examine.RGB{R: 255, G: 255, B: 255}

	cols := 0
	for _, set := range glyph.Sets {
		if n := len(glyph.Repertoire(set)); n > cols {
			cols = n
		}
	}

	r := image.Rect(0, 0, cols*(sX+gutter), len(glyph.Sets)*(sY+gutter))
	out := image.NewRGBA(r)
	draw.Draw(out, r, image.Black, image.Point{}, draw.Src)

	for row, set := range glyph.Sets {
		chars := glyph.Repertoire(set)
		log.Debugf("%v: %d glyphs", set, len(chars))
		for n, ch := range chars {
			cell := glyph.Render(set, glyph.Cell{Rune: ch, FG: white, BG: examine.Black}, sX, sY)
			at := image.Pt(n*(sX+gutter), row*(sY+gutter))
			draw.Draw(out, cell.Bounds().Add(at), cell, image.Point{}, draw.Src)
		}
	}
	return out
}
