// Package console connects a runtime to a terminal style reader and writer.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/panyam/funsh/config"
	"github.com/panyam/funsh/decl"
	"github.com/panyam/funsh/runtime"
)

// Console implements runtime.IO over a line oriented input and an output
// writer.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string

	labelColor *color.Color
	valueColor *color.Color
	errorColor *color.Color
}

var _ runtime.IO = (*Console)(nil)

func New(cfg *config.Config, in io.Reader, out io.Writer) *Console {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Console{
		in:         bufio.NewReader(in),
		out:        out,
		prompt:     cfg.Prompt,
		labelColor: color.New(color.FgCyan, color.Bold),
		valueColor: color.New(color.FgGreen),
		errorColor: color.New(color.FgRed),
	}
	for _, col := range []*color.Color{c.labelColor, c.valueColor, c.errorColor} {
		if cfg.Color {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// ReadLine writes the prompt and returns the next line without its line
// ending.  A final line missing its newline is still returned.
func (c *Console) ReadLine() (string, error) {
	if c.prompt != "" {
		fmt.Fprint(c.out, c.prompt)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) Show(v runtime.Value) {
	fmt.Fprintln(c.out, c.valueColor.Sprint(runtime.Render(v)))
}

func (c *Console) Running(expr decl.Expr) {
	fmt.Fprintf(c.out, "%s %s\n", c.labelColor.Sprint("running:"), expr)
}

func (c *Console) Result(v runtime.Value) {
	fmt.Fprintf(c.out, "%s %s\n", c.labelColor.Sprint("result:"), c.valueColor.Sprint(runtime.Render(v)))
}

func (c *Console) Failure(err error) {
	fmt.Fprintln(c.out, c.errorColor.Sprint(err.Error()))
}
