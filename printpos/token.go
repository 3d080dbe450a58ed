package printpos

// TokenKind distinguishes the two kinds of token a print position is built from.
type TokenKind uint8

const (
	// ControlSequence is a recognized escape or C0 control sequence.
	ControlSequence TokenKind = iota
	// GraphemeCluster is one extended grapheme cluster of ordinary text.
	GraphemeCluster
)

func (k TokenKind) String() string {
	if k == GraphemeCluster {
		return "grapheme"
	}
	return "control"
}

// Token is a view of s[Start:End] in the scanned input.
// IsReset is only meaningful for control sequences.
type Token struct {
	Kind    TokenKind
	Start   int
	End     int
	IsReset bool
}

// Text returns the bytes of the token within s, the string it was scanned from.
func (t Token) Text(s string) string { return s[t.Start:t.End] }

// PrintPosition is one contiguous range of the input holding at most one
// grapheme cluster plus the control sequences attached to it.
type PrintPosition struct {
	Start int
	End   int
	Text  string
}

// Len returns the length of the print position in bytes.
func (p PrintPosition) Len() int { return p.End - p.Start }

// Parts splits the tokens of a print position into its three sections.
// A position without a grapheme only occurs at the end of the input; its
// control sequences are reported as Leading.
type Parts struct {
	Leading     []Token
	Grapheme    Token
	HasGrapheme bool
	Trailing    []Token
}

func splitParts(tokens []Token) Parts {
	for i, tok := range tokens {
		if tok.Kind == GraphemeCluster {
			return Parts{
				Leading:     tokens[:i:i],
				Grapheme:    tok,
				HasGrapheme: true,
				Trailing:    tokens[i+1:],
			}
		}
	}
	return Parts{Leading: tokens}
}
