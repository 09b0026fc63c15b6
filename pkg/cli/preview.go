package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/Fepozopo/dpfilter/pkg/codec"
	"github.com/Fepozopo/dpfilter/pkg/raster"
)

// Inline terminal preview of a filtered raster.
//
// Two protocols are supported:
//   - kitty graphics protocol (KITTY_WINDOW_ID set, or TERM naming kitty/ghostty),
//     zlib-compressed RGB24 sent as chunked base64 inside ESC _G ... ESC \.
//   - iTerm2 OSC 1337 inline file, used by iTerm2, WezTerm, VSCode and friends.
//
// DPFILTER_PREVIEW_BACKEND=kitty|inline forces one of them.

// errNoPreview is returned when the terminal supports neither protocol.
var errNoPreview = errors.New("no supported preview protocol")

const envPreviewBackend = "DPFILTER_PREVIEW_BACKEND"

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	return strings.Contains(strings.ToLower(os.Getenv("TERM")), "wezterm")
}

// previewBackend picks "kitty", "inline" or "" (none).
func previewBackend() string {
	switch v := strings.ToLower(os.Getenv(envPreviewBackend)); v {
	case "kitty", "inline":
		return v
	}
	if isKitty() {
		return "kitty"
	}
	if isInlineImageCapable() {
		return "inline"
	}
	return ""
}

// previewSize is the placement of the preview in terminal cells.
type previewSize struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

// computePreviewSize fits a w x h image into at most 80x40 cells, keeping the
// aspect ratio and never scaling up.
func computePreviewSize(w, h int) previewSize {
	const charW, charH = 8, 16
	const minCols, minRows = 6, 3
	const maxCols, maxRows = 80, 40

	scale := math.Min(1.0, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	cols := clampInt(int(math.Round(float64(w)*scale/charW)), minCols, maxCols)
	rows := clampInt(int(math.Round(float64(h)*scale/charH)), minRows, maxRows)
	return previewSize{
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols * charW,
		PixelHeight: rows * charH,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PreviewRaster writes r to w as an inline image if the terminal supports it.
func PreviewRaster(w io.Writer, r *raster.Raster) error {
	backend := previewBackend()
	if backend == "" {
		return errNoPreview
	}
	size := computePreviewSize(r.Width(), r.Height())
	if backend == "kitty" {
		return sendKittyImage(w, r, size)
	}
	var buf bytes.Buffer
	if err := codec.EncodeWriter(&buf, r, "png"); err != nil {
		return fmt.Errorf("preview encode: %w", err)
	}
	return sendInlineImage(w, buf.Bytes(), size)
}

// kittyPayload interleaves the planes into RGB24 and zlib-compresses them.
func kittyPayload(r *raster.Raster) ([]byte, error) {
	rgb := make([]byte, 0, r.Bytes())
	p0, p1, p2 := r.Plane(0), r.Plane(1), r.Plane(2)
	for i := range p0 {
		rgb = append(rgb, p0[i], p1[i], p2[i])
	}
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(rgb); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sendKittyImage transmits the raster in base64 chunks of at most 4096 bytes.
// Only the first chunk carries the control keys; q=2 silences replies.
func sendKittyImage(w io.Writer, r *raster.Raster, size previewSize) error {
	data, err := kittyPayload(r)
	if err != nil {
		return fmt.Errorf("preview compress: %w", err)
	}
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=24,o=z,s=%d,v=%d,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\",
				r.Width(), r.Height(), size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// sendInlineImage emits the OSC 1337 File sequence.
func sendInlineImage(w io.Writer, data []byte, size previewSize) error {
	meta := fmt.Sprintf("size=%d;width=%dpx;height=%dpx", len(data), size.PixelWidth, size.PixelHeight)
	seq := "\x1b]1337;File=name=" + base64.StdEncoding.EncodeToString([]byte("preview.png")) +
		";inline=1;" + meta + ":" + base64.StdEncoding.EncodeToString(data) + "\a\n"
	_, err := io.WriteString(w, seq)
	return err
}
