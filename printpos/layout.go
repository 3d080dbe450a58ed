package printpos

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/printpositions/internal/ansiseq"
)

// Align selects where Pad places its fill.
type Align uint8

const (
	AlignLeft   Align = iota // text first, fill on the right
	AlignRight               // fill first, text on the right
	AlignCenter              // fill split on both sides, extra cell on the right
)

func (a Align) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// ParseAlign maps "left", "right" or "center" to an Align.
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "center", "centre":
		return AlignCenter, nil
	}
	return AlignLeft, fmt.Errorf("unknown alignment %q", s)
}

// Width returns the number of terminal cells s occupies. Control sequences
// contribute nothing; each grapheme cluster contributes its monospace width.
func Width(s string, opts ...Option) int {
	o := newOptions(opts)
	it := newIterator(s, o)
	w := 0
	for it.Next() {
		w += graphemeWidth(it, o)
	}
	return w
}

func graphemeWidth(it *Iterator, o *options) int {
	g := it.Grapheme()
	if g == "" {
		return 0
	}
	return o.cond.StringWidth(g)
}

// Pad fills s with copies of fill until it occupies width cells. Text that is
// already at least width cells wide is returned unchanged. A fill wider than
// one cell is repeated as far as it fits and the remainder is made up with spaces.
func Pad(s string, width int, fill string, align Align, opts ...Option) string {
	gap := width - Width(s, opts...)
	if gap <= 0 {
		return s
	}
	var left, right int
	switch align {
	case AlignRight:
		left = gap
	case AlignCenter:
		left = gap / 2
		right = gap - left
	default:
		right = gap
	}
	fw := 0
	if fill != "" {
		fw = Width(fill, opts...)
	}
	return makeFill(fill, fw, left) + s + makeFill(fill, fw, right)
}

func makeFill(fill string, fw, cells int) string {
	if cells <= 0 {
		return ""
	}
	if fw <= 0 {
		return strings.Repeat(" ", cells)
	}
	return strings.Repeat(fill, cells/fw) + strings.Repeat(" ", cells%fw)
}

// Truncate shortens s to at most width cells, keeping whole print positions
// and appending tail. The width of tail counts toward the limit. If the kept
// text leaves an SGR style active, a reset is appended after tail so the style
// does not leak into following output. Text that already fits is returned
// unchanged, including zero-width text at width 0. A negative width yields "".
func Truncate(s string, width int, tail string, opts ...Option) string {
	if width < 0 {
		return ""
	}
	o := newOptions(opts)
	if Width(s, opts...) <= width {
		return s
	}
	avail := width - Width(tail, opts...)
	if avail < 0 {
		tail, avail = "", width
	}

	var b strings.Builder
	b.Grow(len(s))
	styled := false
	dangling := false
	used := 0
	it := newIterator(s, o)
	for it.Next() {
		w := graphemeWidth(it, o)
		if used+w > avail {
			break
		}
		used += w
		b.WriteString(it.Position().Text)
		styled = trackStyle(s, it.Tokens(), styled)
		dangling = endsWithLoneIntroducer(s, it.Tokens())
	}
	kept := b.String()
	if dangling {
		// a lone ESC would swallow the first byte of whatever follows it
		kept = kept[:len(kept)-1]
	}
	if styled {
		return kept + tail + ansi.ResetStyle
	}
	return kept + tail
}

// endsWithLoneIntroducer reports whether the position made of tokens ends in
// an unrecognized ESC that was passed through as text.
func endsWithLoneIntroducer(s string, tokens []Token) bool {
	if len(tokens) == 0 {
		return false
	}
	last := tokens[len(tokens)-1]
	return last.Kind == GraphemeCluster && last.Text(s) == string(rune(ansiseq.Introducer))
}

// trackStyle reports whether an SGR style is active after tokens.
func trackStyle(s string, tokens []Token, styled bool) bool {
	for _, tok := range tokens {
		if tok.Kind != ControlSequence {
			continue
		}
		seq := ansiseq.Parse(s, tok.Start)
		switch {
		case seq.IsSGR():
			styled = !seq.IsReset
		case seq.IsReset:
			styled = false
		}
	}
	return styled
}
