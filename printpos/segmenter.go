package printpos

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Segmenter finds grapheme cluster boundaries. NextCluster returns the offset
// one past the end of the single extended grapheme cluster that starts at
// offset in s. offset is always less than len(s) and never points at a
// recognized control sequence.
type Segmenter interface {
	NextCluster(s string, offset int) int
}

// SegmenterFunc adapts an ordinary function to the Segmenter interface.
type SegmenterFunc func(s string, offset int) int

// NextCluster calls f(s, offset).
func (f SegmenterFunc) NextCluster(s string, offset int) int { return f(s, offset) }

// Uniseg segments text per Unicode Standard Annex #29 using github.com/rivo/uniseg.
// It is the default Segmenter.
type Uniseg struct{}

// NextCluster implements Segmenter.
func (Uniseg) NextCluster(s string, offset int) int {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[offset:], -1)
	return offset + len(cluster)
}

// RuneSegmenter treats every rune as its own cluster. It is deterministic and
// independent of Unicode tables, which makes it useful in tests.
type RuneSegmenter struct{}

// NextCluster implements Segmenter.
func (RuneSegmenter) NextCluster(s string, offset int) int {
	_, size := utf8.DecodeRuneInString(s[offset:])
	return offset + size
}
