package dpfilter

import (
	"slices"

	"github.com/Fepozopo/dpfilter/pkg/raster"
)

// Median replaces each sample with the median of its 3x3 neighborhood.
// Neighbors outside the raster are skipped, so corners use four samples and
// edges six; the upper median (index n/2) is taken.
func Median(src *raster.Raster, row, col, ch int) uint8 {
	w, h := src.Width(), src.Height()
	p := src.Plane(ch)
	var buf [9]uint8
	neighbors := buf[:0]
	for y := row - 1; y <= row+1; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := col - 1; x <= col+1; x++ {
			if x < 0 || x >= w {
				continue
			}
			neighbors = append(neighbors, p[y*w+x])
		}
	}
	slices.Sort(neighbors)
	return neighbors[len(neighbors)/2]
}
