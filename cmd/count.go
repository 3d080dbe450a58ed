package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/printpositions/printpos"
)

var countCmd = &cobra.Command{
	Use:   "count [text...]",
	Short: "Count print positions and terminal cells",
	Long: `Print, for each line of input, the byte length, the number of print positions
and the width in terminal cells, separated by tabs.

Examples:
  printpos count "$(printf '\033[30;42me\314\210\033[0m')"
  ls --color=always | printpos count`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		wide, _ := cmd.Flags().GetBool("east-asian-wide")
		return runCount(cmd.OutOrStdout(), lines, wide || cfg.Layout.EastAsianWide)
	},
}

func init() {
	countCmd.Flags().Bool("east-asian-wide", false, "treat ambiguous-width characters as two cells")
	rootCmd.AddCommand(countCmd)
}

func runCount(w io.Writer, lines []string, eastAsianWide bool) error {
	opt := printpos.WithEastAsianWidth(eastAsianWide)
	for _, line := range lines {
		_, err := fmt.Fprintf(w, "%d\t%d\t%d\n", len(line), printpos.Count(line, opt), printpos.Width(line, opt))
		if err != nil {
			return err
		}
	}
	return nil
}
