package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/printpositions/internal/config"
	"github.com/zjrosen/printpositions/printpos"
)

var padCmd = &cobra.Command{
	Use:   "pad [text...]",
	Short: "Pad text to a width in terminal cells",
	Long: `Pad each line of input to a fixed width, counting only visible cells so that
colors and other control sequences do not throw off alignment. Lines already
wider than the target are printed unchanged.

Examples:
  printpos pad --width 10 --fill + abc
  ls --color=always | printpos pad -w 30 --align right`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := resolveLayout(cmd)
		if err != nil {
			return err
		}
		lines, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		return runPad(cmd.OutOrStdout(), lines, layout)
	},
}

func init() {
	layoutFlags(padCmd)
	padCmd.Flags().String("fill", " ", "fill string, one print position (default from config layout.fill)")
	padCmd.Flags().String("align", "left", "left, right or center (default from config layout.align)")
	rootCmd.AddCommand(padCmd)
}

func runPad(w io.Writer, lines []string, layout config.LayoutConfig) error {
	align := layout.Alignment()
	opts := layout.Options()
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, printpos.Pad(line, layout.Width, layout.Fill, align, opts...)); err != nil {
			return err
		}
	}
	return nil
}
