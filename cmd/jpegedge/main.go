// jpegedge applies the Sobel edge filter to an image using a pool of worker goroutines.
//
// Usage:
//
//	jpegedge <input image path> <output image path> <number of data parallel threads>
package main

import (
	"os"

	"github.com/Fepozopo/dpfilter/pkg/cli"
	"github.com/Fepozopo/dpfilter/pkg/dpfilter"
)

func main() {
	os.Exit(cli.Run("jpegedge", dpfilter.MustLookup("edge"), os.Args[1:], os.Stdout, os.Stderr))
}
