package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/zjrosen/printpositions/printpos"
)

var splitCmd = &cobra.Command{
	Use:   "split [text...]",
	Short: "Print each print position with its byte offsets",
	Long: `Print one line per print position: start offset, end offset and the quoted
text of the position. Lines of input are separated by a blank line.

Examples:
  # Show how a colored word is grouped
  printf 'a\033[31mb\033[0mc\n' | printpos split

  # Show only the visible text of each position
  printpos split --plain "$(ls --color=always)"

  # Show the individual tokens making up each position
  printpos split --tokens "$(git log --oneline --color=always -1)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")
		tokens, _ := cmd.Flags().GetBool("tokens")
		return runSplit(cmd.OutOrStdout(), lines, splitOptions{plain: plain, tokens: tokens})
	},
}

type splitOptions struct {
	plain  bool
	tokens bool
}

func init() {
	splitCmd.Flags().Bool("plain", false, "print positions with control sequences stripped")
	splitCmd.Flags().Bool("tokens", false, "also list the tokens of each position")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(w io.Writer, lines []string, opts splitOptions) error {
	for i, line := range lines {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		it := printpos.NewIterator(line, cfg.Layout.Options()...)
		for it.Next() {
			pos := it.Position()
			text := pos.Text
			if opts.plain {
				text = ansi.Strip(text)
			}
			if _, err := fmt.Fprintf(w, "%d\t%d\t%q\n", pos.Start, pos.End, text); err != nil {
				return err
			}
			if !opts.tokens {
				continue
			}
			for _, tok := range it.Tokens() {
				kind := tok.Kind.String()
				if tok.IsReset {
					kind += " reset"
				}
				if _, err := fmt.Fprintf(w, "\t\t%s %q\n", kind, tok.Text(line)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
