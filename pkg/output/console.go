// Package output renders session progress and results on the console.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	statusPrefix = color.New(color.FgCyan).Sprint("[*]")
	goodPrefix   = color.New(color.FgGreen).Sprint("[+]")
	errorPrefix  = color.New(color.FgRed).Sprint("[!]")
	warnPrefix   = color.New(color.FgYellow).Sprint("[-]")
	debugPrefix  = color.New(color.FgBlue).Sprint("[D]")
)

// Console writes prefixed, colored lines. Debug lines need Verbose.
type Console struct {
	Out     io.Writer
	Verbose bool
}

// NewConsole returns a console on stdout
func NewConsole(verbose bool) *Console {
	return &Console{Out: os.Stdout, Verbose: verbose}
}

func (c *Console) line(prefix, format string, args []any) {
	fmt.Fprintf(c.Out, prefix+" "+format+"\n", args...)
}

// Status prints progress
func (c *Console) Status(format string, args ...any) {
	c.line(statusPrefix, format, args)
}

// Good prints a success
func (c *Console) Good(format string, args ...any) {
	c.line(goodPrefix, format, args)
}

// Warn prints a warning
func (c *Console) Warn(format string, args ...any) {
	c.line(warnPrefix, format, args)
}

// Error prints an error
func (c *Console) Error(format string, args ...any) {
	c.line(errorPrefix, format, args)
}

// Debug prints only in verbose mode
func (c *Console) Debug(format string, args ...any) {
	if c.Verbose {
		c.line(debugPrefix, format, args)
	}
}
