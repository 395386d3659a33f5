// Package blockglyph turns images into rows of coloured Unicode block,
// sextant and Braille characters, one character per text cell.
package blockglyph

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/submersibletoaster/blockglyph/examine"
	"github.com/submersibletoaster/blockglyph/glyph"
	"github.com/submersibletoaster/blockglyph/quant"
)

// paletteSize is the number of colours each cel is reduced to.
const paletteSize = 2

// DefaultDisplayMode is used when no display mode is configured.
const DefaultDisplayMode = "halves"

// ErrInvalidInput is returned for images that cannot be encoded: nil, empty,
// or paired with a non-positive cell size.
var ErrInvalidInput = errors.New("blockglyph: invalid input image")

// Config selects how an Encoder works.
type Config struct {
	// DisplayMode names the glyph set: solid, halves, sextants, quadrants,
	// 6dot or 6dotsolid. Empty means DefaultDisplayMode.
	DisplayMode string
	// Workers bounds how many cels are encoded at once. Values below one
	// mean one.
	Workers int
}

// DefaultConfig encodes half blocks with one worker per CPU.
func DefaultConfig() Config {
	return Config{DisplayMode: DefaultDisplayMode, Workers: runtime.NumCPU()}
}

// Encoder converts images to glyph frames. Its settings change only through
// Reload; an Encoder must not be reloaded while an Encode is running.
type Encoder struct {
	set     glyph.Set
	workers int

	// OnCell, when set, is called once for every encoded cel. Calls are
	// serialised but arrive in completion order, not grid order.
	OnCell func(glyph.Cell)

	hookMu sync.Mutex
}

// New returns an Encoder configured from cfg.
func New(cfg Config) *Encoder {
	e := &Encoder{set: glyph.Halves, workers: 1}
	e.Reload(cfg)
	return e
}

// Reload re-reads cfg. An unrecognised display mode leaves the current glyph
// set in place.
func (e *Encoder) Reload(cfg Config) {
	mode := cfg.DisplayMode
	if strings.TrimSpace(mode) == "" {
		mode = DefaultDisplayMode
	}
	if set, ok := glyph.ParseSet(mode); ok {
		e.set = set
	} else {
		log.Warnf("blockglyph: unknown display mode %q, keeping %v", cfg.DisplayMode, e.set)
	}

	e.workers = cfg.Workers
	if e.workers < 1 {
		e.workers = 1
	}
	log.Debugf("blockglyph: encoder using %v with %d workers", e.set, e.workers)
}

// Set returns the active glyph set.
func (e *Encoder) Set() glyph.Set {
	return e.set
}

// Encode slices img into cellW by cellH cels and converts each to a glyph.
// Cels are independent, so they are spread over the configured workers and
// gathered back in row-major order.
func (e *Encoder) Encode(ctx context.Context, img image.Image, cellW, cellH int) (*Frame, error) {
	grid, err := examine.ImageToCels(img, cellW, cellH)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	set := e.set
	frame := &Frame{
		Columns:    grid.Columns,
		Rows:       grid.Rows,
		CellWidth:  cellW,
		CellHeight: cellH,
		Set:        set,
		Cells:      make([]glyph.Cell, len(grid.Cels)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, cel := range grid.Cels {
		cel := cel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := EncodeCel(set, cel)
			frame.Cells[cel.Nth] = c
			e.notify(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frame, nil
}

// ToUnicodeGlyph encodes img and returns the whole terminal sequence as a
// string.
func (e *Encoder) ToUnicodeGlyph(img image.Image, cellW, cellH int) (string, error) {
	frame, err := e.Encode(context.Background(), img, cellW, cellH)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := WriteANSI(&sb, frame); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Encoder) notify(c glyph.Cell) {
	if e.OnCell == nil {
		return
	}
	e.hookMu.Lock()
	defer e.hookMu.Unlock()
	e.OnCell(c)
}

// EncodeCel runs one cel through palette reduction, dithering and glyph
// selection. Solid blocks need only the cel's average and skip the first two.
func EncodeCel(set glyph.Set, cel *examine.Cel) glyph.Cell {
	if set == glyph.Blocks {
		return glyph.Select(set, cel, nil)
	}
	t := quant.Quantize(cel, paletteSize)
	log.Debugf("blockglyph: cel %v palette %v", cel.CharPos, t.Palette)
	return glyph.Select(set, cel, t)
}
