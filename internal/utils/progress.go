package utils

import (
	"fmt"
	"io"
	"os"
)

/**
 * ProgressPrinter renders download progress on a single terminal line
 * @description
 * - Deduplicates repeated percent values
 * - Renders an indeterminate marker while the total size is unknown (-1)
 * - Terminates the line once 100% is reached
 */
type ProgressPrinter struct {
	Out  io.Writer
	last int
}

func NewProgressPrinter() *ProgressPrinter {
	return &ProgressPrinter{Out: os.Stdout, last: -2}
}

// Update is shaped to be passed directly as a fetch.ProgressFunc.
func (p *ProgressPrinter) Update(percent int) {
	if percent == p.last {
		return
	}
	p.last = percent
	if percent < 0 {
		fmt.Fprintf(p.Out, "\rDownloading...")
		return
	}
	fmt.Fprintf(p.Out, "\rDownloading: %3d%%", percent)
	if percent == 100 {
		fmt.Fprintln(p.Out)
	}
}
