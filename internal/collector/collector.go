// Package collector reads an interactive component description from a
// line-based input stream.
package collector

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/decagondev/react-component-generator/internal/component"
)

// Collector prompts for the six component fields in a fixed order.
type Collector struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Collector reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Collector {
	return &Collector{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Collect prompts for each field in order and returns the assembled
// request. Empty answers are accepted silently. If the input stream ends
// or fails before all six fields are read, an error is returned.
func (c *Collector) Collect() (component.Request, error) {
	fmt.Fprintln(c.out, "Welcome to the React Component Generator!")
	fmt.Fprintln(c.out, "Enter the details of the component you'd like to build:")

	var req component.Request
	fields := []struct {
		label string
		dest  *string
	}{
		{"Component Name", &req.Name},
		{"Purpose", &req.Purpose},
		{"Props (describe as a list)", &req.Props},
		{"Behavior", &req.Behavior},
		{"Styling (optional)", &req.Styling},
		{"Examples (optional)", &req.Examples},
	}

	for _, f := range fields {
		fmt.Fprintf(c.out, "%s: ", f.label)
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return component.Request{}, fmt.Errorf("reading %s: %w", f.label, err)
			}
			return component.Request{}, fmt.Errorf("input ended before %s", f.label)
		}
		*f.dest = strings.TrimSpace(c.in.Text())
	}

	return req, nil
}
