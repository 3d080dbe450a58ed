package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/printpositions/internal/config"
	"github.com/zjrosen/printpositions/printpos"
)

var truncateCmd = &cobra.Command{
	Use:   "truncate [text...]",
	Short: "Cut text to a width in terminal cells",
	Long: `Cut each line of input to at most the given width, keeping whole print
positions. When text is cut the tail is appended and any color left open is
closed with a reset.

Examples:
  printpos truncate --width 8 "a long line of text"
  git log --oneline --color=always | printpos truncate -w 40 --tail ...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := resolveLayout(cmd)
		if err != nil {
			return err
		}
		lines, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		return runTruncate(cmd.OutOrStdout(), lines, layout)
	},
}

func init() {
	layoutFlags(truncateCmd)
	truncateCmd.Flags().String("tail", "…", "appended when text is cut (default from config layout.ellipsis)")
	rootCmd.AddCommand(truncateCmd)
}

func runTruncate(w io.Writer, lines []string, layout config.LayoutConfig) error {
	opts := layout.Options()
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, printpos.Truncate(line, layout.Width, layout.Ellipsis, opts...)); err != nil {
			return err
		}
	}
	return nil
}
