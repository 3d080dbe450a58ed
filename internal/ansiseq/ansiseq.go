// Package ansiseq recognizes terminal control sequences at a byte offset and
// classifies them as state-setting or state-resetting.
//
// Three forms are recognized:
//
//   - CSI: ESC '[' followed by parameter bytes ('0'-'9', ';') and a single
//     letter final byte.
//   - Escape: ESC followed by one ASCII byte other than '['.
//   - Control: a lone C0 control byte (0x00-0x1F) other than ESC.
//
// A sequence is state-resetting when it is an SGR reset (ESC[m or ESC[0m) or
// RIS (ESC c). Everything else that is recognized sets state.
//
// ESC followed by a byte of 0x80 or above is not an Escape sequence: that byte
// starts a UTF-8 encoded character, which is never split. Parse reports None
// there and the ESC is left for the caller to treat as text.
package ansiseq

// Introducer is the escape byte that starts CSI and escape sequences.
const Introducer = 0x1b

// Kind identifies which form a recognized sequence matched.
type Kind uint8

const (
	// None means no sequence was recognized.
	None Kind = iota
	// CSI is ESC '[' params final.
	CSI
	// Escape is ESC followed by one byte.
	Escape
	// Control is a single C0 control byte.
	Control
)

func (k Kind) String() string {
	switch k {
	case CSI:
		return "CSI"
	case Escape:
		return "ESC"
	case Control:
		return "C0"
	default:
		return "none"
	}
}

// Sequence describes a recognized control sequence. End is one past its last byte.
type Sequence struct {
	Kind    Kind
	Start   int
	End     int
	Final   byte
	IsReset bool
}

// Len returns the length of the sequence in bytes.
func (s Sequence) Len() int { return s.End - s.Start }

// IsSGR reports whether the sequence is a Select Graphic Rendition CSI.
func (s Sequence) IsSGR() bool { return s.Kind == CSI && s.Final == 'm' }

// IsIntroducer reports whether b can begin a recognized sequence.
func IsIntroducer(b byte) bool { return b < 0x20 }

// Classify reports whether a control sequence begins at offset in s. It
// returns the offset one past the end of the sequence and whether the
// sequence resets rendering state. ok is false for text, for truncated
// sequences and for sequences that do not match any recognized form.
func Classify(s string, offset int) (end int, isReset bool, ok bool) {
	seq := Parse(s, offset)
	if seq.Kind == None {
		return offset, false, false
	}
	return seq.End, seq.IsReset, true
}

// ClassifyBytes is like Classify for a byte slice.
func ClassifyBytes(b []byte, offset int) (end int, isReset bool, ok bool) {
	seq := parse(b, offset)
	if seq.Kind == None {
		return offset, false, false
	}
	return seq.End, seq.IsReset, true
}

// Parse returns the sequence that begins at offset in s. The returned
// Sequence has Kind None when nothing is recognized.
func Parse(s string, offset int) Sequence {
	return parse(s, offset)
}

func parse[T string | []byte](s T, offset int) Sequence {
	if offset < 0 || offset >= len(s) {
		return Sequence{Start: offset, End: offset}
	}
	b := s[offset]
	if b != Introducer {
		if IsIntroducer(b) {
			return Sequence{Kind: Control, Start: offset, End: offset + 1}
		}
		return Sequence{Start: offset, End: offset}
	}
	if offset+1 >= len(s) {
		// dangling ESC at end of input
		return Sequence{Start: offset, End: offset}
	}
	next := s[offset+1]
	switch {
	case next == '[':
		return parseCSI(s, offset)
	case next < 0x80:
		return Sequence{
			Kind:    Escape,
			Start:   offset,
			End:     offset + 2,
			Final:   next,
			IsReset: next == 'c',
		}
	}
	// a non-ASCII byte would split a UTF-8 encoded character
	return Sequence{Start: offset, End: offset}
}

func parseCSI[T string | []byte](s T, offset int) Sequence {
	params := offset + 2
	i := params
	for i < len(s) && isParameter(s[i]) {
		i++
	}
	if i >= len(s) || !isFinal(s[i]) {
		return Sequence{Start: offset, End: offset}
	}
	final := s[i]
	return Sequence{
		Kind:    CSI,
		Start:   offset,
		End:     i + 1,
		Final:   final,
		IsReset: final == 'm' && isResetParams(s[params:i]),
	}
}

func isParameter(b byte) bool {
	return ('0' <= b && b <= '9') || b == ';'
}

func isFinal(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

func isResetParams[T string | []byte](p T) bool {
	return len(p) == 0 || (len(p) == 1 && p[0] == '0')
}
