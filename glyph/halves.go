package glyph

import (
	"image"
	"math"

	"github.com/submersibletoaster/blockglyph/examine"
)

// halvesCell picks between a full block, a left/right split and a top/bottom
// split of cel, whichever reconstruction has the lowest RMS colour deviation
// from the cel. Each region is painted with its plain average colour. Ties
// keep the earlier candidate, so a flat cel becomes a full block.
func halvesCell(cel *examine.Cel) Cell {
	w, h := cel.Width(), cel.Height()
	pixels := cel.Pixels()

	full := cel.Average()
	best := Cell{Rune: fullBlock, FG: full, BG: full}
	bestDeviation := rmsDeviation(pixels, w, h, func(x, y int) examine.RGB {
		return full
	})

	left := cel.AverageRect(image.Rect(0, 0, w/2, h))
	right := cel.AverageRect(image.Rect(w/2, 0, w, h))
	deviation := rmsDeviation(pixels, w, h, func(x, y int) examine.RGB {
		if x < w/2 {
			return left
		}
		return right
	})
	if deviation < bestDeviation {
		best = Cell{Rune: leftHalfBlock, FG: left, BG: right}
		bestDeviation = deviation
	}

	top := cel.AverageRect(image.Rect(0, 0, w, h/2))
	bottom := cel.AverageRect(image.Rect(0, h/2, w, h))
	deviation = rmsDeviation(pixels, w, h, func(x, y int) examine.RGB {
		if y < h/2 {
			return top
		}
		return bottom
	})
	if deviation < bestDeviation {
		best = Cell{Rune: upperHalfBlock, FG: top, BG: bottom}
	}
	return best
}

// rmsDeviation is the root mean square per-channel difference between pixels
// and the reconstruction painted by at.
func rmsDeviation(pixels []examine.RGB, w, h int, at func(x, y int) examine.RGB) float64 {
	if len(pixels) == 0 {
		return 0
	}
	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pixels[y*w+x]
			q := at(x, y)
			dr := float64(p.R) - float64(q.R)
			dg := float64(p.G) - float64(q.G)
			db := float64(p.B) - float64(q.B)
			sum += dr*dr + dg*dg + db*db
		}
	}
	return math.Sqrt(sum / float64(3*len(pixels)))
}
