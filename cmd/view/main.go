package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/submersibletoaster/blockglyph"
	"github.com/submersibletoaster/blockglyph/examine"
	"github.com/submersibletoaster/blockglyph/glyph"
	"github.com/submersibletoaster/blockglyph/internal/source"
)

func main() {
	app := &cli.App{
		Name:      "blockglyph-view",
		Usage:     "show an image as glyphs in the terminal; m cycles glyph sets, q quits",
		ArgsUsage: "CELL_WIDTH CELL_HEIGHT FILE",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				EnvVars: []string{"BLOCKGLYPH_DISPLAY_MODE"},
				Value:   blockglyph.DefaultDisplayMode,
				Usage:   "initial glyph set",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				EnvVars: []string{"BLOCKGLYPH_WORKERS"},
				Value:   blockglyph.DefaultConfig().Workers,
				Usage:   "number of cels encoded at once",
			},
		}, source.Flags()...),
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type viewer struct {
	screen tcell.Screen
	enc    *blockglyph.Encoder
	cfg    blockglyph.Config
	img    image.Image
	cellW  int
	cellH  int
	frame  *blockglyph.Frame
}

func run(c *cli.Context) error {
	if c.NArg() != 3 {
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

	img, err := source.Load(c.Args().Get(2))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	opts := source.FromContext(c, cellW)
	if opts.Columns == 0 {
		opts.Columns, _ = screen.Size()
	}

	if img, err = source.Prepare(img, opts); err != nil {
		return err
	}

	v := &viewer{
		screen: screen,
		cfg:    blockglyph.Config{DisplayMode: c.String("mode"), Workers: c.Int("workers")},
		img:    img,
		cellW:  cellW,
		cellH:  cellH,
	}
	v.enc = blockglyph.New(v.cfg)
	if err := v.encode(c.Context); err != nil {
		return err
	}
	return v.loop(c.Context)
}

func (v *viewer) encode(ctx context.Context) error {
	frame, err := v.enc.Encode(ctx, v.img, v.cellW, v.cellH)
	if err != nil {
		return err
	}
	v.frame = frame
	v.draw()
	return nil
}

// nextSet moves the encoder on to the glyph set after the current one.
func (v *viewer) nextSet() {
	next := glyph.Sets[(int(v.enc.Set())+1)%len(glyph.Sets)]
	v.cfg.DisplayMode = next.String()
	v.enc.Reload(v.cfg)
}

func (v *viewer) loop(ctx context.Context) error {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.draw()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				return nil
			case ev.Rune() == 'm':
				v.nextSet()
				if err := v.encode(ctx); err != nil {
					return err
				}
			}
		case nil:
			return nil
		}
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	f := v.frame
	for y := 0; y < f.Rows && y < h-1; y++ {
		for x := 0; x < f.Columns && x < w; x++ {
			cell := f.At(x, y)
			v.screen.SetContent(x, y, cell.Rune, nil, style(cell))
		}
	}
	status := fmt.Sprintf(" %v  %dx%d cells  m: next set  q: quit ", f.Set, f.Columns, f.Rows)
	for i, r := range status {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

func style(c glyph.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(color(c.FG)).
		Background(color(c.BG))
}

func color(c examine.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
