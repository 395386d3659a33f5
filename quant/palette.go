// Package quant reduces a cel to a tiny palette with median cut and maps its
// pixels onto that palette with error diffusion.
package quant

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/submersibletoaster/blockglyph/examine"
)

// Palette is the reduced colour set of one cel. Index 0 is the background,
// index 1 the foreground.
type Palette []examine.RGB

// Nearest returns the index of the palette entry closest to r,g,b by squared
// Euclidean distance. The channels may lie outside [0,255]. Ties go to the
// lowest index.
func (p Palette) Nearest(r, g, b int) int {
	best := -1
	bestDistance := 0
	for i, c := range p {
		dr := int(c.R) - r
		dg := int(c.G) - g
		db := int(c.B) - b
		distance := dr*dr + dg*dg + db*db
		if best < 0 || distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}
	return best
}

func (p Palette) String() string {
	s := "["
	for i, c := range p {
		if i > 0 {
			s += " "
		}
		s += c.Hex()
	}
	return s + "]"
}

// colorCount is a distinct colour and how often it occurs in the cel.
type colorCount struct {
	color examine.RGB
	count int
}

// bucket is a working set of distinct colours with the per-channel bounds
// needed to choose a split axis.
type bucket struct {
	colors []*colorCount

	minRed, maxRed     int
	minGreen, maxGreen int
	minBlue, maxBlue   int

	average *examine.RGB
}

func newBucket(n int) *bucket {
	b := &bucket{}
	b.reset(n)
	return b
}

func (b *bucket) reset(n int) {
	b.colors = make([]*colorCount, 0, n)
	b.minRed, b.maxRed = 0xff, 0
	b.minGreen, b.maxGreen = 0xff, 0
	b.minBlue, b.maxBlue = 0xff, 0
	b.average = nil
}

func (b *bucket) add(cc *colorCount) {
	b.colors = append(b.colors, cc)
	r, g, bl := int(cc.color.R), int(cc.color.G), int(cc.color.B)
	b.minRed, b.maxRed = min(b.minRed, r), max(b.maxRed, r)
	b.minGreen, b.maxGreen = min(b.minGreen, g), max(b.maxGreen, g)
	b.minBlue, b.maxBlue = min(b.minBlue, bl), max(b.maxBlue, bl)
	b.average = nil
}

// partition sorts the bucket along its widest channel and moves the upper
// half into a new bucket. The receiver keeps ceil(n/2) colours. A bucket of a
// single colour splits into two copies of it.
func (b *bucket) partition() *bucket {
	n := len(b.colors)
	if n == 1 {
		twin := newBucket(1)
		twin.add(b.colors[0])
		return twin
	}

	redDiff := max(0, b.maxRed-b.minRed)
	greenDiff := max(0, b.maxGreen-b.minGreen)
	blueDiff := max(0, b.maxBlue-b.minBlue)

	var channel func(examine.RGB) uint8
	switch {
	case redDiff > greenDiff && redDiff > blueDiff:
		channel = func(c examine.RGB) uint8 { return c.R }
	case greenDiff > blueDiff && greenDiff > redDiff:
		channel = func(c examine.RGB) uint8 { return c.G }
	default:
		channel = func(c examine.RGB) uint8 { return c.B }
	}
	sort.SliceStable(b.colors, func(i, j int) bool {
		return channel(b.colors[i].color) < channel(b.colors[j].color)
	})

	keep := n - n/2
	upper := newBucket(n - keep)
	for _, cc := range b.colors[keep:] {
		upper.add(cc)
	}
	lower := b.colors[:keep]
	b.reset(keep)
	for _, cc := range lower {
		b.add(cc)
	}
	return upper
}

// mean is the population weighted average colour. An empty bucket is black.
func (b *bucket) mean() examine.RGB {
	if b.average != nil {
		return *b.average
	}
	var red, green, blue, count int64
	for _, cc := range b.colors {
		n := int64(cc.count)
		red += n * int64(cc.color.R)
		green += n * int64(cc.color.G)
		blue += n * int64(cc.color.B)
		count += n
	}
	avg := examine.Black
	if count > 0 {
		avg = examine.RGB{R: uint8(red / count), G: uint8(green / count), B: uint8(blue / count)}
	}
	b.average = &avg
	return avg
}

func (b *bucket) String() string {
	return fmt.Sprintf("bucket %d colors avg %s", len(b.colors), b.mean().Hex())
}

// MedianCut reduces pixels to a palette of size colours. size is rounded down
// to a power of two; every round splits each existing bucket once, appending
// the upper halves after the existing buckets, so palette order follows
// bucket creation order.
func MedianCut(pixels []examine.RGB, size int) Palette {
	if size < 1 {
		size = 1
	}
	total := 1 << (bits.Len(uint(size)) - 1)

	// Distinct colours in first-seen order keep the split deterministic.
	index := make(map[examine.RGB]*colorCount, len(pixels))
	all := newBucket(len(pixels))
	for _, c := range pixels {
		if cc, ok := index[c]; ok {
			cc.count++
			continue
		}
		cc := &colorCount{color: c, count: 1}
		index[c] = cc
		all.add(cc)
	}

	buckets := make([]*bucket, 1, total)
	buckets[0] = all
	for len(buckets) < total {
		n := len(buckets)
		for i := 0; i < n; i++ {
			buckets = append(buckets, buckets[i].partition())
		}
	}

	palette := make(Palette, len(buckets))
	for i, b := range buckets {
		palette[i] = b.mean()
	}
	return palette
}
