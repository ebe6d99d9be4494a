package cli

import (
	"io"

	"github.com/fatih/color"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	// Stdout receives command output; color.Output is used when nil.
	Stdout io.Writer
}

func (c *Context) out() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}

	return color.Output
}
