package dpfilter

import (
	"fmt"
	"io"
	"time"
)

// WorkerStats records what one worker of an Apply call did.
type WorkerStats struct {
	Worker  int
	Rows    int
	Elapsed time.Duration
}

// RunStats summarizes one Apply call.
type RunStats struct {
	Workers []WorkerStats
	Elapsed time.Duration
	Bytes   int // input samples processed, all channels
}

// Megabytes is Bytes in units of 2^20.
func (s *RunStats) Megabytes() float64 {
	return float64(s.Bytes) / (1 << 20)
}

// Throughput returns processed megabytes per second, or 0 when no time was
// measured.
func (s *RunStats) Throughput() float64 {
	sec := s.Elapsed.Seconds()
	if sec <= 0 {
		return 0
	}
	return s.Megabytes() / sec
}

// TotalRows is the number of rows processed across all workers.
func (s *RunStats) TotalRows() int {
	n := 0
	for _, w := range s.Workers {
		n += w.Rows
	}
	return n
}

// WriteWorkerTimes prints one line per worker in worker order.
func (s *RunStats) WriteWorkerTimes(w io.Writer) {
	for _, ws := range s.Workers {
		fmt.Fprintf(w, "Thread %d took %.6f seconds\n", ws.Worker, ws.Elapsed.Seconds())
	}
}

// WriteSummary prints the size/time/speed line for a filter run.
func (s *RunStats) WriteSummary(w io.Writer, filter string) {
	fmt.Fprintf(w, "%s: %.2f MB in %.3f s (%.2f MB/s, %d rows, %d workers)\n",
		filter, s.Megabytes(), s.Elapsed.Seconds(), s.Throughput(), s.TotalRows(), len(s.Workers))
}
