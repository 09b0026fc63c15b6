// Package cli is the command-line front end shared by the filter programs.
package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Fepozopo/dpfilter/pkg/codec"
	"github.com/Fepozopo/dpfilter/pkg/dpfilter"
	"github.com/Fepozopo/dpfilter/pkg/raster"
)

// EnvFile is the optional dotenv file read on every run.
var EnvFile = ".env"

type logger struct {
	w      io.Writer
	debug  bool
	prefix string
}

func (l logger) debugf(format string, args ...any) {
	if l.debug {
		fmt.Fprintf(l.w, l.prefix+": "+format+"\n", args...)
	}
}

// Run executes filter f as program with the given arguments (program name
// excluded) and returns the process exit status.
//
//	<program> <input> <output> <worker-count>
//	<program> --version
//	<program> --check-update
func Run(program string, f dpfilter.FilterSpec, args []string, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig(EnvFile)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", program, err)
		return 1
	}
	log := logger{w: stderr, debug: cfg.Debug, prefix: program}

	if len(args) == 1 {
		switch args[0] {
		case "--version", "-version":
			v, err := CurrentVersion()
			if err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", program, err)
				return 1
			}
			fmt.Fprintf(stdout, "%s %s\n", program, v)
			return 0
		case "--check-update":
			if err := CheckForUpdates(stdout, cfg.AutoUpdate); err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", program, err)
				return 1
			}
			return 0
		}
	}

	if len(args) != 3 {
		fmt.Fprintln(stderr, f.Usage(program))
		return 1
	}
	inPath, outPath := args[0], args[1]

	workers, err := strconv.Atoi(args[2])
	if err != nil {
		// unparsable counts read as 0, like atoi
		fmt.Fprintln(stderr, "Number of threads: 0")
		fmt.Fprintf(stderr, "Number of threads must be a positive integer, got %q.\n", args[2])
		return 1
	}
	fmt.Fprintf(stderr, "Number of threads: %d\n", workers)
	if workers <= 0 {
		fmt.Fprintln(stderr, "Number of threads must be a positive integer.")
		return 1
	}

	src, err := codec.Decode(inPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", program, err)
		return 1
	}
	defer src.Release()
	log.debugf("decoded %s: %dx%d", inPath, src.Width(), src.Height())

	dst, err := raster.New(src.Width(), src.Height())
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", program, err)
		return 1
	}
	defer dst.Release()

	stats, err := dpfilter.Apply(src, dst, f.Op, workers)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s filter failed: %v\n", program, f.Name, err)
		return 1
	}
	if cfg.Timing {
		stats.WriteWorkerTimes(stdout)
	}
	if cfg.Stats {
		stats.WriteSummary(stderr, f.Name)
	}

	if err := codec.Encode(dst, outPath); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", program, err)
		return 1
	}
	log.debugf("wrote %s as %s", outPath, codec.Format(outPath))

	if cfg.Preview {
		if err := PreviewRaster(stdout, dst); err != nil {
			log.debugf("preview skipped: %v", err)
		}
	}
	return 0
}
