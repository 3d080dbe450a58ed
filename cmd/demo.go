package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/printpositions/printpos"
)

// woman ZWJ laptop: three code points, one print position.
const technologist = "\U0001F469\u200d\U0001F4BB"

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show padding with print positions on sample fields",
	Long: `Pad a few sample fields, including an emoji sequence and colored text, to show
that counting print positions keeps fields aligned where counting bytes does not.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		width, _ := cmd.Flags().GetInt("width")
		fill, _ := cmd.Flags().GetString("fill")
		if printpos.Count(fill) != 1 {
			return fmt.Errorf("fill %q must be exactly one print position", fill)
		}
		return runDemo(cmd.OutOrStdout(), width, fill)
	},
}

func init() {
	demoCmd.Flags().IntP("width", "w", 5, "field width in print positions")
	demoCmd.Flags().String("fill", "+", "fill character")
	rootCmd.AddCommand(demoCmd)
}

// demoFields builds the sample inputs. Colors are always emitted so the
// output is the same whether or not w is a terminal.
func demoFields(w io.Writer) []string {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	green := r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	return []string{
		"abc" + technologist,
		strings.Join([]string{"a\x1b[30;42m", "b\x1b[30;45m", "c\x1b[0m", technologist}, ""),
		green.Render("ok") + technologist,
	}
}

func runDemo(w io.Writer, width int, fill string) error {
	for i, field := range demoFields(w) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := padField(w, field, width, fill); err != nil {
			return err
		}
	}
	return nil
}

func padField(w io.Writer, field string, width int, fill string) error {
	n := printpos.Count(field)
	gap := max(width-n, 0)
	_, err := fmt.Fprintf(w,
		"Content of this field is %d bytes long but %d print positions wide\n"+
			"   padded to width %d with `%s`\n"+
			"    %s%s\n"+
			"    %s\n",
		len(field), n, width, fill,
		strings.Repeat(fill, gap), field,
		strings.Repeat(fill, width))
	return err
}
