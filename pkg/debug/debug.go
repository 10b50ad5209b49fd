// Package debug is the global trace switch for the transport layers.
package debug

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Verbose controls whether debug output is enabled
var Verbose bool

// Output receives trace lines
var Output io.Writer = color.Output

var prefix = color.New(color.FgBlue).Sprint("[D]")

// Printf prints debug output if verbose mode is enabled
func Printf(format string, args ...any) {
	if Verbose {
		fmt.Fprintf(Output, prefix+" "+format, args...)
	}
}
