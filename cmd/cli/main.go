package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/joshdk/preview"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/submersibletoaster/blockglyph"
	"github.com/submersibletoaster/blockglyph/examine"
	"github.com/submersibletoaster/blockglyph/glyph"
	"github.com/submersibletoaster/blockglyph/internal/source"
)

func main() {
	app := &cli.App{
		Name:      "blockglyph",
		Usage:     "print images as coloured Unicode block, sextant or Braille glyphs",
		ArgsUsage: "CELL_WIDTH CELL_HEIGHT FILE [FILE...]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				EnvVars: []string{"BLOCKGLYPH_DISPLAY_MODE"},
				Value:   blockglyph.DefaultDisplayMode,
				Usage:   "glyph set: solid, halves, sextants, quadrants, 6dot or 6dotsolid",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				EnvVars: []string{"BLOCKGLYPH_WORKERS"},
				Value:   runtime.NumCPU(),
				Usage:   "number of cels encoded at once",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "show a progress bar on stderr",
			},
			&cli.BoolFlag{
				Name:  "preview",
				Usage: "also show the reconstructed image inline",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose logging",
			},
		}, source.Flags()...),
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
	if c.NArg() < 3 {
		cli.ShowAppHelpAndExit(c, 1)
	}

	cellW, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Sprintf("bad cell width: %v", err), 1)
	}
	cellH, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return cli.Exit(fmt.Sprintf("bad cell height: %v", err), 1)
	}

	enc := blockglyph.New(blockglyph.Config{
		DisplayMode: c.String("mode"),
		Workers:     c.Int("workers"),
	})
	opts := source.FromContext(c, cellW)

	failed := 0
	for _, path := range c.Args().Slice()[2:] {
		if err := emit(c, enc, path, cellW, cellH, opts); err != nil {
			log.Errorf("%s: %v", path, err)
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, c.NArg()-2), failed)
	}
	return nil
}

func emit(c *cli.Context, enc *blockglyph.Encoder, path string, cellW, cellH int, opts source.Options) error {
	img, err := source.Load(path)
	if err != nil {
		return err
	}
	if img, err = source.Prepare(img, opts); err != nil {
		return err
	}

	enc.OnCell = nil
	if c.Bool("progress") {
		cols, rows := examine.GridSize(img.Bounds(), cellW, cellH)
		bar := pb.StartNew(cols * rows)
		defer bar.Finish()
		enc.OnCell = func(glyph.Cell) { bar.Increment() }
	}

	frame, err := enc.Encode(context.Background(), img, cellW, cellH)
	if err != nil {
		return err
	}
	if err := blockglyph.WriteANSI(os.Stdout, frame); err != nil {
		return err
	}
	fmt.Println()

	if log.IsLevelEnabled(log.DebugLevel) {
		stats := frame.Stats()
		log.Debugf("%s: %d cells, %d glyphs, %d filled sub-cells", path, stats.Cells, len(stats.Diversity), stats.Filled)
		for _, d := range stats.Diversity {
			log.Debugf("%q\t%U\t%d", d.Rune, d.Rune, d.Count)
		}
	}
	if c.Bool("preview") {
		preview.Image(frame.Image())
	}
	return nil
}
