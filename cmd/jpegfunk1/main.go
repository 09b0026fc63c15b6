// jpegfunk1 applies the position-dependent rank filter to an image using a pool of worker goroutines.
//
// Usage:
//
//	jpegfunk1 <input image path> <output image path> <number of data parallel threads>
package main

import (
	"os"

	"github.com/Fepozopo/dpfilter/pkg/cli"
	"github.com/Fepozopo/dpfilter/pkg/dpfilter"
)

func main() {
	os.Exit(cli.Run("jpegfunk1", dpfilter.MustLookup("funk1"), os.Args[1:], os.Stdout, os.Stderr))
}
