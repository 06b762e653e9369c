// Biorhythms server: computes physical, emotional and intellectual cycles
// from a birth date and serves them as numbers and charts.
package main

import (
	"fmt"
	"os"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
