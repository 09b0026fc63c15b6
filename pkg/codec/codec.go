// Package codec moves rasters between image files and memory.
//
// Decode accepts anything the registered decoders understand (JPEG, PNG, GIF,
// BMP, TIFF, WebP) plus raw JPEG 2000 codestreams. Encode picks the container from the file extension and
// falls back to full-quality JPEG.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"github.com/mrjoshuak/go-jpeg2000"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/dpfilter/pkg/raster"
)

var (
	// ErrIO reports a file that could not be opened, created or written.
	ErrIO = errors.New("i/o error")
	// ErrFormat reports input the decoders could not parse.
	ErrFormat = errors.New("malformed image")
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 100

// Decode reads the image at path into a new raster.
func Decode(path string) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s for reading: %v", ErrIO, path, err)
	}
	defer f.Close()
	return DecodeReader(f, path)
}

// DecodeReader decodes an image from r. name only appears in errors.
func DecodeReader(r io.Reader, name string) (*raster.Raster, error) {
	br := bufio.NewReader(r)
	var img image.Image
	var err error
	if isJ2K(br) {
		img, err = jpeg2000.Decode(br)
	} else {
		img, _, err = image.Decode(br)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}
	out := raster.FromImage(img)
	if out == nil {
		return nil, fmt.Errorf("%w: %s: empty image", ErrFormat, name)
	}
	return out, nil
}

// j2kMagic is the SOC marker followed by SIZ that opens every codestream.
const j2kMagic = "\xff\x4f\xff\x51"

func isJ2K(br *bufio.Reader) bool {
	head, err := br.Peek(len(j2kMagic))
	return err == nil && string(head) == j2kMagic
}

// Format names the container Encode writes for path.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".j2k", ".j2c":
		return "j2k"
	default:
		return "jpeg"
	}
}

// Encode writes r to path. A partially written file is removed on failure.
func Encode(r *raster.Raster, path string) (err error) {
	if r == nil || r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("%w: nothing to encode", raster.ErrInvalidArgument)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: could not open %s for writing: %v", ErrIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %v", ErrIO, path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := EncodeWriter(w, r, Format(path)); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	return nil
}

// EncodeWriter writes r to w in the given format ("jpeg", "png", "bmp", "tiff", "j2k").
func EncodeWriter(w io.Writer, r *raster.Raster, format string) error {
	img := r.ToImage()
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "j2k":
		err = jpeg2000.Encode(w, img, &jpeg2000.Options{Format: jpeg2000.FormatJ2K, Lossless: true})
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	default:
		return fmt.Errorf("%w: unsupported format %q", raster.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s encode: %v", ErrIO, format, err)
	}
	return nil
}
