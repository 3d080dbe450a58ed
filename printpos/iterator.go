package printpos

import (
	"iter"
	"unicode/utf8"
	"unsafe"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/printpositions/internal/ansiseq"
	"github.com/zjrosen/printpositions/internal/log"
)

type scanState uint8

const (
	scanningLeading scanState = iota // collecting state-setting sequences before a grapheme
	emittedGrapheme                  // have the grapheme, collecting trailing resets
)

// Option configures an Iterator or a layout function.
type Option func(*options)

type options struct {
	segmenter Segmenter
	cond      *runewidth.Condition
}

func newOptions(opts []Option) *options {
	o := &options{segmenter: Uniseg{}}
	for _, opt := range opts {
		opt(o)
	}
	if o.cond == nil {
		o.cond = runewidth.NewCondition()
		o.cond.EastAsianWidth = false
	}
	return o
}

// WithSegmenter replaces the default Uniseg grapheme segmenter.
func WithSegmenter(seg Segmenter) Option {
	return func(o *options) {
		if seg != nil {
			o.segmenter = seg
		}
	}
}

// WithEastAsianWidth makes ambiguous-width characters occupy two cells.
func WithEastAsianWidth(wide bool) Option {
	return func(o *options) {
		o.cond = runewidth.NewCondition()
		o.cond.EastAsianWidth = wide
	}
}

// WithCondition measures widths with the given go-runewidth condition.
func WithCondition(cond *runewidth.Condition) Option {
	return func(o *options) { o.cond = cond }
}

// Iterator is a forward-only cursor over the print positions of a string.
// It is not safe for concurrent use; separate iterators over the same string are.
//
//	it := printpos.NewIterator(s)
//	for it.Next() {
//		fmt.Println(it.Position().Text)
//	}
type Iterator struct {
	s      string
	seg    Segmenter
	pos    int // first unexamined byte
	start  int // current print position
	end    int
	tokens []Token
}

// NewIterator creates an iterator over the print positions in s.
func NewIterator(s string, opts ...Option) *Iterator {
	return newIterator(s, newOptions(opts))
}

// NewBytesIterator creates an iterator over b without copying it. b must not
// be modified until the iterator and every print position taken from it are
// no longer in use.
func NewBytesIterator(b []byte, opts ...Option) *Iterator {
	return NewIterator(unsafe.String(unsafe.SliceData(b), len(b)), opts...)
}

func newIterator(s string, o *options) *Iterator {
	return &Iterator{s: s, seg: o.segmenter}
}

// Next advances to the next print position. It returns false once the input
// is exhausted.
func (it *Iterator) Next() bool {
	it.tokens = it.tokens[:0]
	it.start = it.pos
	state := scanningLeading

	for it.pos < len(it.s) {
		if end, isReset, ok := ansiseq.Classify(it.s, it.pos); ok {
			if state == emittedGrapheme && !isReset {
				// starts the next print position
				break
			}
			// A reset seen before any grapheme folds into the leading part so
			// the print position stays contiguous.
			it.tokens = append(it.tokens, Token{Kind: ControlSequence, Start: it.pos, End: end, IsReset: isReset})
			it.pos = end
			continue
		}
		if state == emittedGrapheme {
			break
		}
		if it.s[it.pos] == ansiseq.Introducer {
			log.Debug(log.CatScan, "unrecognized escape sequence, treating as text", "offset", it.pos)
		}
		end := it.nextCluster()
		it.tokens = append(it.tokens, Token{Kind: GraphemeCluster, Start: it.pos, End: end})
		it.pos = end
		state = emittedGrapheme
	}

	it.end = it.pos
	return it.end > it.start
}

// nextCluster asks the segmenter for the end of the cluster at it.pos and
// forces progress of at least one rune if the answer is out of range.
func (it *Iterator) nextCluster() int {
	end := it.seg.NextCluster(it.s, it.pos)
	if end > it.pos && end <= len(it.s) {
		return end
	}
	_, size := utf8.DecodeRuneInString(it.s[it.pos:])
	log.Warn(log.CatScan, "segmenter returned invalid cluster end", "offset", it.pos, "end", end)
	return it.pos + size
}

// Position returns the print position found by the last call to Next.
func (it *Iterator) Position() PrintPosition {
	return PrintPosition{Start: it.start, End: it.end, Text: it.s[it.start:it.end]}
}

// Tokens returns the tokens of the current print position in input order.
// The slice is reused by the next call to Next.
func (it *Iterator) Tokens() []Token { return it.tokens }

// Parts returns the tokens of the current print position grouped into
// leading sequences, grapheme and trailing resets. The slices are reused by
// the next call to Next.
func (it *Iterator) Parts() Parts { return splitParts(it.tokens) }

// Grapheme returns the text of the grapheme cluster in the current print
// position, or "" if it has none.
func (it *Iterator) Grapheme() string {
	for _, tok := range it.tokens {
		if tok.Kind == GraphemeCluster {
			return tok.Text(it.s)
		}
	}
	return ""
}

// Rest returns the part of the input not yet returned by Next.
func (it *Iterator) Rest() string { return it.s[it.pos:] }

// All returns the print positions of s as strings.
func All(s string, opts ...Option) iter.Seq[string] {
	o := newOptions(opts)
	return func(yield func(string) bool) {
		it := newIterator(s, o)
		for it.Next() {
			if !yield(it.s[it.start:it.end]) {
				return
			}
		}
	}
}

// Indices returns the start and end byte offsets of each print position in s.
func Indices(s string, opts ...Option) iter.Seq2[int, int] {
	o := newOptions(opts)
	return func(yield func(int, int) bool) {
		it := newIterator(s, o)
		for it.Next() {
			if !yield(it.start, it.end) {
				return
			}
		}
	}
}

// Positions returns each print position of s.
func Positions(s string, opts ...Option) iter.Seq[PrintPosition] {
	o := newOptions(opts)
	return func(yield func(PrintPosition) bool) {
		it := newIterator(s, o)
		for it.Next() {
			if !yield(it.Position()) {
				return
			}
		}
	}
}

// Strings returns all print positions of s.
func Strings(s string, opts ...Option) []string {
	var ans []string
	for pp := range All(s, opts...) {
		ans = append(ans, pp)
	}
	return ans
}

// Count returns the number of print positions in s.
func Count(s string, opts ...Option) int {
	it := NewIterator(s, opts...)
	n := 0
	for it.Next() {
		n++
	}
	return n
}
