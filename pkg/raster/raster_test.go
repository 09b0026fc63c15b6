package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewRejectsBadDimensions(t *testing.T) {
	cases := [][2]int{{0, 1}, {1, 0}, {-3, 4}, {0, 0}}
	for _, c := range cases {
		if _, err := New(c[0], c[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("New(%d,%d) err = %v; want ErrInvalidArgument", c[0], c[1], err)
		}
	}
}

func TestPlanesAreDistinct(t *testing.T) {
	r, err := New(3, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for ch := 0; ch < Channels; ch++ {
		if len(r.Plane(ch)) != 6 {
			t.Fatalf("plane %d len = %d; want 6", ch, len(r.Plane(ch)))
		}
	}
	r.Plane(0)[0] = 9
	if r.Plane(1)[0] != 0 || r.Plane(2)[0] != 0 {
		t.Fatalf("write to plane 0 leaked into another plane")
	}
}

func TestSampleRowMajor(t *testing.T) {
	r, _ := New(4, 3)
	if err := r.SetSample(2, 1, 1, 77); err != nil {
		t.Fatalf("SetSample: %v", err)
	}
	if got := r.Plane(1)[2*4+1]; got != 77 {
		t.Fatalf("plane[9] = %d; want 77", got)
	}
	v, err := r.Sample(2, 1, 1)
	if err != nil || v != 77 {
		t.Fatalf("Sample = %d, %v; want 77, nil", v, err)
	}
}

func TestSampleOutOfBounds(t *testing.T) {
	r, _ := New(2, 2)
	bad := [][3]int{{-1, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, -1, 0}, {0, 0, 3}, {0, 0, -1}}
	for _, c := range bad {
		if _, err := r.Sample(c[0], c[1], c[2]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Sample%v err = %v; want ErrOutOfBounds", c, err)
		}
		if err := r.SetSample(c[0], c[1], c[2], 1); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("SetSample%v err = %v; want ErrOutOfBounds", c, err)
		}
	}
}

func TestRelease(t *testing.T) {
	r, _ := New(2, 2)
	r.Release()
	if r.Width() != 0 || r.Height() != 0 || r.Plane(0) != nil {
		t.Fatalf("Release left data behind")
	}
}

func TestImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(10 * x), G: uint8(20 * y), B: uint8(x + y), A: 255})
		}
	}
	r := FromImage(src)
	if r == nil || r.Width() != 3 || r.Height() != 2 {
		t.Fatalf("FromImage dims wrong: %+v", r)
	}
	v, _ := r.Sample(1, 2, 0)
	if v != 20 {
		t.Fatalf("red at (1,2) = %d; want 20", v)
	}
	out := r.ToImage()
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got := out.RGBAAt(x, y)
			want := src.NRGBAAt(x, y)
			if got.R != want.R || got.G != want.G || got.B != want.B || got.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v; want %v", x, y, got, want)
			}
		}
	}
}

func TestFromImageGeneric(t *testing.T) {
	g := image.NewGray(image.Rect(5, 5, 7, 6))
	g.SetGray(6, 5, color.Gray{Y: 200})
	r := FromImage(g)
	if r.Width() != 2 || r.Height() != 1 {
		t.Fatalf("dims = %dx%d; want 2x1", r.Width(), r.Height())
	}
	for ch := 0; ch < Channels; ch++ {
		if v, _ := r.Sample(0, 1, ch); v != 200 {
			t.Fatalf("channel %d = %d; want 200", ch, v)
		}
	}
	if FromImage(nil) != nil {
		t.Fatalf("FromImage(nil) should be nil")
	}
}

func TestDimensionsFixedAtConstruction(t *testing.T) {
	r, err := New(4, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Width() != 4 || r.Height() != 3 {
		t.Fatalf("dims = %dx%d; want 4x3", r.Width(), r.Height())
	}
	for ch := 0; ch < Channels; ch++ {
		if len(r.Plane(ch)) != r.Width()*r.Height() {
			t.Fatalf("plane %d has %d samples; want %d", ch, len(r.Plane(ch)), r.Width()*r.Height())
		}
	}
	if r.Bytes() != 36 {
		t.Fatalf("Bytes() = %d; want 36", r.Bytes())
	}
}

// Neutral chroma converts to R = G = B = Y exactly.
func TestFromImageYCbCr(t *testing.T) {
	img := image.NewYCbCr(image.Rect(2, 1, 8, 5), image.YCbCrSubsampleRatio420)
	for i := range img.Y {
		img.Y[i] = uint8(i * 7)
	}
	for i := range img.Cb {
		img.Cb[i] = 128
		img.Cr[i] = 128
	}
	r := FromImage(img)
	if r == nil || r.Width() != 6 || r.Height() != 4 {
		t.Fatalf("unexpected raster %v", r)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			want := img.Y[img.YOffset(x+2, y+1)]
			for ch := 0; ch < Channels; ch++ {
				if got, _ := r.Sample(y, x, ch); got != want {
					t.Fatalf("(%d,%d,%d) = %d; want %d", y, x, ch, got, want)
				}
			}
		}
	}
}
