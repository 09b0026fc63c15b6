// jpegmedian applies a 3x3 median filter to an image using a pool of worker goroutines.
//
// Usage:
//
//	jpegmedian <input image path> <output image path> <number of data parallel threads>
package main

import (
	"os"

	"github.com/Fepozopo/dpfilter/pkg/cli"
	"github.com/Fepozopo/dpfilter/pkg/dpfilter"
)

func main() {
	os.Exit(cli.Run("jpegmedian", dpfilter.MustLookup("median"), os.Args[1:], os.Stdout, os.Stderr))
}
