package printpos

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const (
	sgrReset0 = "\x1b[0m"
	sgrReset  = "\x1b[m"
	sgrColor  = "\x1b[1;3m"
	sgrRed    = "\x1b[31m"
)

type indexed struct {
	Offset int
	Text   string
}

func collect(t *testing.T, s string, opts ...Option) []indexed {
	t.Helper()
	var got []indexed
	it := NewIterator(s, opts...)
	for it.Next() {
		pp := it.Position()
		require.NotEmpty(t, pp.Text, "empty print position returned")
		if len(got) > 0 {
			require.Greater(t, pp.Start, got[len(got)-1].Offset, "offsets must increase")
		}
		got = append(got, indexed{pp.Start, pp.Text})
	}
	return got
}

func TestIterator_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single grapheme", "A", []string{"A"}},
		{"leading and trailing", sgrRed + "A" + sgrReset0, []string{sgrRed + "A" + sgrReset0}},
		{"color attaches to next grapheme only", sgrRed + "AB", []string{sgrRed + "A", "B"}},
		{"reset attaches to previous grapheme", "A" + sgrReset0 + "B", []string{"A" + sgrReset0, "B"}},
		{"empty input", "", nil},
		{"combining marks", "e\u0301\u0327", []string{"e\u0301\u0327"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Strings(tc.input))
		})
	}
}

func TestIterator_ScenarioTwoTokens(t *testing.T) {
	s := sgrRed + "A" + sgrReset0
	it := NewIterator(s)
	require.True(t, it.Next())

	expected := []Token{
		{Kind: ControlSequence, Start: 0, End: 5},
		{Kind: GraphemeCluster, Start: 5, End: 6},
		{Kind: ControlSequence, Start: 6, End: 10, IsReset: true},
	}
	if diff := cmp.Diff(expected, it.Tokens()); diff != "" {
		t.Fatalf("unexpected tokens for %q:\n%s", s, diff)
	}

	parts := it.Parts()
	require.True(t, parts.HasGrapheme)
	require.Equal(t, sgrRed, parts.Leading[0].Text(s))
	require.Len(t, parts.Leading, 1)
	require.Equal(t, "A", parts.Grapheme.Text(s))
	require.Len(t, parts.Trailing, 1)
	require.Equal(t, sgrReset0, parts.Trailing[0].Text(s))

	require.False(t, it.Next())
}

func TestIterator_OffsetsAndSlices(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []indexed
	}{
		{
			name:     "embedded csi",
			input:    "abc" + sgrColor + "def",
			expected: []indexed{{0, "a"}, {1, "b"}, {2, "c"}, {3, sgrColor + "d"}, {10, "e"}, {11, "f"}},
		},
		{
			name:     "trailing reset",
			input:    "ef" + sgrReset0,
			expected: []indexed{{0, "e"}, {1, "f" + sgrReset0}},
		},
		{
			name:     "embedded csi and trailing reset",
			input:    "abc" + sgrColor + "def" + sgrReset,
			expected: []indexed{{0, "a"}, {1, "b"}, {2, "c"}, {3, sgrColor + "d"}, {10, "e"}, {11, "f" + sgrReset}},
		},
		{
			name:  "double trailing reset",
			input: "abc" + sgrColor + "def" + sgrReset + sgrReset0 + "g",
			expected: []indexed{
				{0, "a"}, {1, "b"}, {2, "c"}, {3, sgrColor + "d"}, {10, "e"},
				{11, "f" + sgrReset + sgrReset0}, {19, "g"},
			},
		},
		{
			name:     "C1 controls around reset",
			input:    "\u00d1\u0097" + sgrReset + "\u00d2\u0083",
			expected: []indexed{{0, "\u00d1"}, {2, "\u0097" + sgrReset}, {7, "\u00d2"}, {9, "\u0083"}},
		},
		{
			name:     "multi-byte clusters",
			input:    "a" + sgrColor + "a\u0310e\u0301" + sgrReset + sgrReset,
			expected: []indexed{{0, "a"}, {1, sgrColor + "a\u0310"}, {10, "e\u0301" + sgrReset + sgrReset}},
		},
		{
			name:     "RIS is a reset",
			input:    "A\x1bcB",
			expected: []indexed{{0, "A\x1bc"}, {3, "B"}},
		},
		{
			name:     "bare control leads the next grapheme",
			input:    "A\x07B",
			expected: []indexed{{0, "A"}, {1, "\x07B"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, collect(t, tc.input))
		})
	}
}

func TestIterator_Emoji(t *testing.T) {
	family := "\U0001F468\u200d\U0001F467\u200d\U0001F466"
	require.Equal(t, []string{"a", "b", "c", family}, Strings("abc"+family))

	var spans [][2]int
	for start, end := range Indices(family + "abc") {
		spans = append(spans, [2]int{start, end})
	}
	require.Equal(t, [][2]int{{0, 18}, {18, 19}, {19, 20}, {20, 21}}, spans)
}

func TestIterator_DecoratedSingleGlyph(t *testing.T) {
	content := "\x1b[30;42m" + "e" + "\u0308" + sgrReset0
	require.Len(t, content, 15)
	require.Equal(t, 1, Count(content))
}

// A reset with no grapheme before it in the current print position is kept
// in the leading part instead of being dropped.
func TestIterator_ResetWithoutGraphemeFoldsIntoLeading(t *testing.T) {
	t.Run("at start of input", func(t *testing.T) {
		s := sgrReset0 + "A"
		it := NewIterator(s)
		require.True(t, it.Next())
		require.Equal(t, s, it.Position().Text)

		parts := it.Parts()
		require.Len(t, parts.Leading, 1)
		require.True(t, parts.Leading[0].IsReset)
		require.Equal(t, "A", parts.Grapheme.Text(s))
		require.Empty(t, parts.Trailing)
		require.False(t, it.Next())
	})

	t.Run("after a pending setting sequence", func(t *testing.T) {
		s := "A" + sgrRed + sgrReset0 + "B"
		require.Equal(t, []string{"A", sgrRed + sgrReset0 + "B"}, Strings(s))
	})

	t.Run("alone", func(t *testing.T) {
		require.Equal(t, []string{sgrReset0}, Strings(sgrReset0))
	})
}

func TestIterator_TrailingSettingSequenceAtEnd(t *testing.T) {
	s := "A" + sgrRed
	it := NewIterator(s)

	require.True(t, it.Next())
	require.Equal(t, "A", it.Position().Text)

	require.True(t, it.Next())
	pp := it.Position()
	require.Equal(t, sgrRed, pp.Text)
	require.Equal(t, 1, pp.Start)
	require.Equal(t, 6, pp.End)
	require.Equal(t, 5, pp.Len())
	parts := it.Parts()
	require.False(t, parts.HasGrapheme)
	require.Len(t, parts.Leading, 1)
	require.Equal(t, "", it.Grapheme())

	require.False(t, it.Next())
}

func TestIterator_MalformedSequences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"truncated CSI", "A\x1b[31", []string{"A", "\x1b", "[", "3", "1"}},
		{"dangling escape", "A\x1b", []string{"A", "\x1b"}},
		{"private mode CSI", "\x1b[?25hA", []string{"\x1b", "[", "?", "2", "5", "h", "A"}},
		{"escape before multi-byte", "\x1bé", []string{"\x1b", "é"}},
		{"malformed then valid", "\x1b[3" + sgrRed + "A", []string{"\x1b", "[", "3", sgrRed + "A"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Strings(tc.input)
			require.Equal(t, tc.expected, got)
			require.Equal(t, tc.input, strings.Join(got, ""))
		})
	}
}

// Cursor-moving controls are not modeled; they lead the next grapheme like
// any other state-setting sequence.
func TestIterator_NewlinesAreControlSequences(t *testing.T) {
	input := "\r\n\na\rb\n\r\r\n"
	require.Equal(t, []string{"\r\n\na", "\rb", "\n\r\r\n"}, Strings(input))
}

func TestIterator_Rest(t *testing.T) {
	it := NewIterator("abc")
	require.Equal(t, "abc", it.Rest())
	it.Next()
	require.Equal(t, "bc", it.Rest())
	it.Next()
	it.Next()
	require.Equal(t, "", it.Rest())

	it = NewIterator("A" + sgrRed + "B")
	it.Next()
	require.Equal(t, sgrRed+"B", it.Rest())
}

func TestIterator_Grapheme(t *testing.T) {
	it := NewIterator(sgrRed + "e\u0301" + sgrReset)
	require.True(t, it.Next())
	require.Equal(t, "e\u0301", it.Grapheme())
}

func TestIterator_CustomSegmenter(t *testing.T) {
	pairs := SegmenterFunc(func(s string, offset int) int {
		return min(offset+2, len(s))
	})
	require.Equal(t, []string{sgrRed + "ab", "c"}, Strings(sgrRed+"abc", WithSegmenter(pairs)))

	// combining marks split under the rune segmenter
	require.Equal(t, []string{"e", "\u0301"}, Strings("e\u0301", WithSegmenter(RuneSegmenter{})))

	// nil keeps the default
	require.Equal(t, []string{"e\u0301"}, Strings("e\u0301", WithSegmenter(nil)))
}

func TestIterator_MisbehavingSegmenterStillAdvances(t *testing.T) {
	stuck := SegmenterFunc(func(s string, offset int) int { return offset })
	require.Equal(t, []string{"a", "é"}, Strings("aé", WithSegmenter(stuck)))

	overshoot := SegmenterFunc(func(s string, offset int) int { return len(s) + 10 })
	require.Equal(t, []string{"a", "b"}, Strings("ab", WithSegmenter(overshoot)))
}

func TestIterator_Bytes(t *testing.T) {
	b := []byte("x" + sgrRed + "y" + sgrReset0)
	it := NewBytesIterator(b)
	var got []string
	for it.Next() {
		got = append(got, it.Position().Text)
	}
	require.Equal(t, []string{"x", sgrRed + "y" + sgrReset0}, got)
}

func TestAll_StopsEarly(t *testing.T) {
	var got []string
	for pp := range All("abcdef") {
		got = append(got, pp)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, got)

	n := 0
	for range Indices("abcdef") {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestPositions(t *testing.T) {
	var got []PrintPosition
	for pp := range Positions("a" + sgrRed + "b") {
		got = append(got, pp)
	}
	require.Equal(t, []PrintPosition{
		{Start: 0, End: 1, Text: "a"},
		{Start: 1, End: 7, Text: sgrRed + "b"},
	}, got)
}

func TestCount(t *testing.T) {
	require.Equal(t, 0, Count(""))
	require.Equal(t, 3, Count("abc"))
	require.Equal(t, 3, Count("a\x1b[30;42mb\x1b[30;45mc\x1b[0m"))
}

func TestTokenKind_String(t *testing.T) {
	require.Equal(t, "control", ControlSequence.String())
	require.Equal(t, "grapheme", GraphemeCluster.String())
}

func TestIterator_ConcurrentPassesOverSameInput(t *testing.T) {
	s := strings.Repeat("ab"+sgrRed+"c\u0301"+sgrReset0+"\U0001F600", 50)
	want := Strings(s)

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Strings(s)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		require.Equal(t, want, got, "pass %d", i)
	}
}
