package blockglyph

import (
	"bufio"
	"io"

	ansi "github.com/gookit/color"

	"github.com/submersibletoaster/blockglyph/examine"
)

const (
	csi   = "\x1b["
	reset = csi + "m"
)

// WriteANSI writes f as 24-bit SGR sequences: for every cell the background,
// then the foreground, then the glyph. Rows are separated by a reset and a
// newline; nothing follows the last row.
func WriteANSI(w io.Writer, f *Frame) error {
	bw := bufio.NewWriter(w)
	for row := 0; row < f.Rows; row++ {
		for _, c := range f.Row(row) {
			writeSGR(bw, toANSI(c.BG, true))
			writeSGR(bw, toANSI(c.FG, false))
			bw.WriteRune(c.Rune)
		}
		if row < f.Rows-1 {
			bw.WriteString(reset)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func writeSGR(bw *bufio.Writer, c ansi.RGBColor) {
	bw.WriteString(csi)
	bw.WriteString(c.String())
	bw.WriteByte('m')
}

func toANSI(c examine.RGB, background bool) ansi.RGBColor {
	return ansi.RGB(c.R, c.G, c.B, background)
}
