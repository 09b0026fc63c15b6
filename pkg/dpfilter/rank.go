package dpfilter

import (
	"math"
	"slices"

	"github.com/Fepozopo/dpfilter/pkg/raster"
)

// Window is the square neighborhood the Rank operator samples. Both ends are
// inclusive, so RowHi may equal the raster height and ColHi the width.
type Window struct {
	RowLo, RowHi int
	ColLo, ColHi int
}

// Count is the number of samples the window yields.
func (w Window) Count() int {
	return (w.RowHi - w.RowLo + 1) * (w.ColHi - w.ColLo + 1)
}

// RankRadius grows from 1 at the top-left corner to about 25 at the
// bottom-right, faster along rows than along columns.
func RankRadius(width, height, row, col int) float64 {
	return math.Max(1.0, 5.0*float64(col)/float64(width)+20.0*float64(row)/float64(height))
}

// RankWindow computes the window bounds for (row, col). The upper bounds are
// clamped to height and width, not height-1 and width-1.
func RankWindow(width, height, row, col int) Window {
	radius := RankRadius(width, height, row, col)
	return Window{
		RowLo: int(math.Max(0, float64(row)-radius)),
		RowHi: int(math.Min(float64(height), float64(row)+radius)),
		ColLo: int(math.Max(0, float64(col)-radius)),
		ColHi: int(math.Min(float64(width), float64(col)+radius)),
	}
}

// windowSamples collects the window of channel ch in row-major order.
// Samples are addressed by linear offset, so a column past the right edge
// reads the first pixel of the following row. Offsets past the end of the
// plane fall back to the nearest pixel inside the raster.
func windowSamples(src *raster.Raster, ch int, win Window, dst []uint8) []uint8 {
	w, h := src.Width(), src.Height()
	p := src.Plane(ch)
	for i := win.RowLo; i <= win.RowHi; i++ {
		for j := win.ColLo; j <= win.ColHi; j++ {
			off := i*w + j
			if off >= len(p) {
				off = clampInt(i, 0, h-1)*w + clampInt(j, 0, w-1)
			}
			dst = append(dst, p[off])
		}
	}
	return dst
}

// Rank is the position-dependent order-statistic operator. It sorts the
// window and combines the minimum, the element at n/2 and the maximum as
// hi - mid/2 + lo/4, narrowed without saturation.
func Rank(src *raster.Raster, row, col, ch int) uint8 {
	win := RankWindow(src.Width(), src.Height(), row, col)
	n := win.Count()
	values := windowSamples(src, ch, win, make([]uint8, 0, n))
	slices.Sort(values)

	lo := float64(values[0])
	mid := float64(values[n/2])
	hi := float64(values[n-1])
	funky := math.Max(0, hi-mid/2.0+lo/4.0)
	return narrow(funky)
}
