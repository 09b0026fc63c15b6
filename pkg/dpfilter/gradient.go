package dpfilter

import (
	"math"

	"github.com/Fepozopo/dpfilter/pkg/raster"
)

// Sobel kernels, indexed [dy+1][dx+1]. Read-only after init.
var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// GradientFloor is the smallest value Gradient emits for an interior pixel.
const GradientFloor = 70.0

// Gradient is the edge operator. Border pixels are 0. Interior pixels get the
// Sobel magnitude of their 3x3 neighborhood in channel ch, floored at
// GradientFloor and narrowed without saturation (magnitudes >= 256 wrap).
func Gradient(src *raster.Raster, row, col, ch int) uint8 {
	w, h := src.Width(), src.Height()
	if row == 0 || col == 0 || row == h-1 || col == w-1 {
		return 0
	}
	p := src.Plane(ch)
	sumX := 0.0
	sumY := 0.0
	for ky := -1; ky <= 1; ky++ {
		base := (row+ky)*w + col
		for kx := -1; kx <= 1; kx++ {
			v := float64(p[base+kx])
			sumX += sobelX[ky+1][kx+1] * v
			sumY += sobelY[ky+1][kx+1] * v
		}
	}
	m := math.Sqrt(sumX*sumX + sumY*sumY)
	return narrow(math.Max(m, GradientFloor))
}
