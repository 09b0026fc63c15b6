// Package dpfilter implements the neighborhood filters and the row-parallel
// executor that runs them.
//
// Filters is the registry the command-line programs are built from. Keep it
// in sync when adding an operator so usage text stays accurate.
package dpfilter

import "fmt"

// FilterSpec describes one filter program.
type FilterSpec struct {
	Name        string   // short name used in diagnostics and stats
	Program     string   // executable name under cmd/
	Op          Operator // per-sample operator
	Description string
}

// Usage returns the one-line usage string for the program.
func (f FilterSpec) Usage(program string) string {
	if program == "" {
		program = f.Program
	}
	return fmt.Sprintf("Usage: %s <input image path> <output image path> <number of data parallel threads>", program)
}

// Filters is the list of filters shipped as programs.
var Filters = []FilterSpec{
	{
		Name:        "edge",
		Program:     "jpegedge",
		Op:          Gradient,
		Description: "Sobel gradient magnitude, zero border, floor of 70.",
	},
	{
		Name:        "funk1",
		Program:     "jpegfunk1",
		Op:          Rank,
		Description: "Order statistic over a window that grows toward the bottom-right.",
	},
	{
		Name:        "median",
		Program:     "jpegmedian",
		Op:          Median,
		Description: "3x3 median with in-bounds neighbors only.",
	},
}

// Lookup finds a filter by name or program name.
func Lookup(name string) (FilterSpec, bool) {
	for _, f := range Filters {
		if f.Name == name || f.Program == name {
			return f, true
		}
	}
	return FilterSpec{}, false
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) FilterSpec {
	f, ok := Lookup(name)
	if !ok {
		panic("dpfilter: unknown filter " + name)
	}
	return f
}
