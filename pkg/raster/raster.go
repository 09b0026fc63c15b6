// Package raster holds the planar 8-bit RGB image buffer shared by the
// decoder, the filters and the encoder.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Channels is the number of sample planes carried by every Raster.
const Channels = 3

var (
	// ErrInvalidArgument reports bad dimensions, worker counts or mismatched rasters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfBounds reports an index outside the raster. Filters never hit it
	// unless their boundary handling is wrong.
	ErrOutOfBounds = errors.New("index out of bounds")
)

// Raster is a fixed-size image stored as three row-major planes.
// Sample (row, col) of channel ch lives at Plane(ch)[row*Width()+col].
// Dimensions are fixed at construction.
type Raster struct {
	width  int
	height int
	planes [Channels][]uint8
}

// New allocates a zeroed raster. Each plane is a separate allocation.
func New(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: raster dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	r := &Raster{width: width, height: height}
	for ch := range r.planes {
		r.planes[ch] = make([]uint8, width*height)
	}
	return r, nil
}

// Width is the number of columns.
func (r *Raster) Width() int { return r.width }

// Height is the number of rows.
func (r *Raster) Height() int { return r.height }

// Offset maps (row, col) to the linear index used by every plane.
func (r *Raster) Offset(row, col int) int {
	return row*r.width + col
}

// Plane returns the backing slice of channel ch. Callers must not retain it
// past Release.
func (r *Raster) Plane(ch int) []uint8 {
	return r.planes[ch]
}

func (r *Raster) inBounds(row, col, ch int) bool {
	return row >= 0 && row < r.height && col >= 0 && col < r.width && ch >= 0 && ch < Channels
}

// Sample returns the value at (row, col) in channel ch.
func (r *Raster) Sample(row, col, ch int) (uint8, error) {
	if !r.inBounds(row, col, ch) {
		return 0, fmt.Errorf("%w: sample (%d,%d,%d) in %dx%d raster", ErrOutOfBounds, row, col, ch, r.width, r.height)
	}
	return r.planes[ch][r.Offset(row, col)], nil
}

// SetSample stores v at (row, col) in channel ch.
func (r *Raster) SetSample(row, col, ch int, v uint8) error {
	if !r.inBounds(row, col, ch) {
		return fmt.Errorf("%w: sample (%d,%d,%d) in %dx%d raster", ErrOutOfBounds, row, col, ch, r.width, r.height)
	}
	r.planes[ch][r.Offset(row, col)] = v
	return nil
}

// SameSize reports whether o has the same dimensions as r.
func (r *Raster) SameSize(o *Raster) bool {
	return o != nil && r.width == o.width && r.height == o.height
}

// Bytes is the total sample count over all planes.
func (r *Raster) Bytes() int {
	return Channels * r.width * r.height
}

// Release drops the planes. The raster is unusable afterwards.
func (r *Raster) Release() {
	for ch := range r.planes {
		r.planes[ch] = nil
	}
	r.width, r.height = 0, 0
}

// Fill sets every sample of channel ch to v.
func (r *Raster) Fill(ch int, v uint8) {
	p := r.planes[ch]
	for i := range p {
		p[i] = v
	}
}

// FromImage copies the red, green and blue samples of img into a new raster.
// Alpha is discarded. It returns nil for a nil or empty image.
func FromImage(img image.Image) *Raster {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	r, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil
	}
	if _, ok := img.(*image.YCbCr); ok {
		// JPEG decodes to YCbCr; convert it in one pass instead of per-pixel At.
		rgba := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		img, b = rgba, rgba.Bounds()
	}
	red, green, blue := r.planes[0], r.planes[1], r.planes[2]
	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < r.height; y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			o := y * r.width
			for x := 0; x < r.width; x++ {
				red[o+x] = src.Pix[i+0]
				green[o+x] = src.Pix[i+1]
				blue[o+x] = src.Pix[i+2]
				i += 4
			}
		}
	case *image.RGBA:
		for y := 0; y < r.height; y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			o := y * r.width
			for x := 0; x < r.width; x++ {
				red[o+x] = src.Pix[i+0]
				green[o+x] = src.Pix[i+1]
				blue[o+x] = src.Pix[i+2]
				i += 4
			}
		}
	default:
		o := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				// 16-bit components; keep the high byte
				cr, cg, cb, _ := img.At(x, y).RGBA()
				red[o] = uint8(cr >> 8)
				green[o] = uint8(cg >> 8)
				blue[o] = uint8(cb >> 8)
				o++
			}
		}
	}
	return r
}

// ToImage interleaves the planes into an opaque *image.RGBA.
func (r *Raster) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	red, green, blue := r.planes[0], r.planes[1], r.planes[2]
	idx := 0
	for o := 0; o < r.width*r.height; o++ {
		out.Pix[idx+0] = red[o]
		out.Pix[idx+1] = green[o]
		out.Pix[idx+2] = blue[o]
		out.Pix[idx+3] = 255
		idx += 4
	}
	return out
}
