package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/printpositions/internal/config"
	"github.com/zjrosen/printpositions/internal/log"
)

// maxLineSize bounds a single stdin line; decorated output can run long.
const maxLineSize = 1024 * 1024

// readInput returns the text to operate on: the arguments joined by spaces, or
// every line of in when there are no arguments.
func readInput(in io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var lines []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	log.Debug(log.CatCLI, "Read input from stdin", "lines", len(lines))
	return lines, nil
}

// layoutFlags registers the layout flags shared by pad and truncate.
func layoutFlags(c *cobra.Command) {
	c.Flags().IntP("width", "w", 0, "target width in terminal cells (default from config layout.width)")
	c.Flags().Bool("east-asian-wide", false, "treat ambiguous-width characters as two cells")
}

// resolveLayout overlays explicitly set flags on the configured layout.
func resolveLayout(c *cobra.Command) (config.LayoutConfig, error) {
	l := cfg.Layout
	flags := c.Flags()

	if flags.Changed("width") {
		l.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("east-asian-wide") {
		l.EastAsianWide, _ = flags.GetBool("east-asian-wide")
	}
	if f := flags.Lookup("fill"); f != nil && f.Changed {
		l.Fill = f.Value.String()
	}
	if f := flags.Lookup("align"); f != nil && f.Changed {
		l.Align = f.Value.String()
	}
	if f := flags.Lookup("tail"); f != nil && f.Changed {
		l.Ellipsis = f.Value.String()
	}

	if err := config.ValidateLayout(l); err != nil {
		return l, fmt.Errorf("invalid layout: %w", err)
	}
	return l, nil
}
