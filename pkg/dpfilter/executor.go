package dpfilter

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Fepozopo/dpfilter/pkg/raster"
)

// Operator computes one output sample from the input raster. It must only
// read src, so any number of workers can call it concurrently.
type Operator func(src *raster.Raster, row, col, ch int) uint8

// Apply runs op over every (row, col, channel) of src and stores the results
// in dst. Rows are handed out one at a time to a pool of exactly workers
// goroutines; each row is written by the worker that claimed it and by no
// other. Apply returns once every worker has exited.
//
// The output does not depend on workers or on scheduling order.
func Apply(src, dst *raster.Raster, op Operator, workers int) (*RunStats, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: worker count must be a positive integer, got %d", raster.ErrInvalidArgument, workers)
	}
	if op == nil {
		return nil, fmt.Errorf("%w: nil operator", raster.ErrInvalidArgument)
	}
	if src == nil || dst == nil {
		return nil, fmt.Errorf("%w: nil raster", raster.ErrInvalidArgument)
	}
	if src == dst {
		return nil, fmt.Errorf("%w: input and output raster must not alias", raster.ErrInvalidArgument)
	}
	if !src.SameSize(dst) || src.Width() <= 0 || src.Height() <= 0 {
		return nil, fmt.Errorf("%w: output %dx%d does not match input %dx%d",
			raster.ErrInvalidArgument, dst.Width(), dst.Height(), src.Width(), src.Height())
	}

	stats := &RunStats{
		Workers: make([]WorkerStats, workers),
		Bytes:   src.Bytes(),
	}
	height := int64(src.Height())
	var next atomic.Int64
	var g errgroup.Group

	start := time.Now()
	for id := range workers {
		ws := &stats.Workers[id]
		ws.Worker = id
		g.Go(func() (err error) {
			begin := time.Now()
			row := -1
			defer func() {
				ws.Elapsed = time.Since(begin)
				if r := recover(); r != nil {
					err = workerPanic(id, row, r)
				}
			}()
			for {
				claimed := next.Add(1) - 1
				if claimed >= height {
					return nil
				}
				row = int(claimed)
				applyRow(src, dst, op, row)
				ws.Rows++
			}
		})
	}
	err := g.Wait()
	stats.Elapsed = time.Since(start)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func applyRow(src, dst *raster.Raster, op Operator, row int) {
	var planes [raster.Channels][]uint8
	for ch := range planes {
		planes[ch] = dst.Plane(ch)
	}
	base := dst.Offset(row, 0)
	for col := 0; col < src.Width(); col++ {
		for ch := range planes {
			planes[ch][base+col] = op(src, row, col, ch)
		}
	}
}

// workerPanic turns an index panic raised inside an operator into
// ErrOutOfBounds. Anything else is not ours to handle.
func workerPanic(worker, row int, r any) error {
	if re, ok := r.(runtime.Error); ok && strings.Contains(re.Error(), "out of range") {
		return fmt.Errorf("%w: worker %d, row %d: %v", raster.ErrOutOfBounds, worker, row, re)
	}
	panic(r)
}
