/*
Package printpos splits text that may contain ANSI escape sequences into print
positions.

A print position is one extended grapheme cluster (what a reader perceives as
a single character) together with the control sequences that decorate it. It
occupies one glyph on a terminal, even though it may span many bytes:

	"\x1b[30;42me\u0308\x1b[0m" // 15 bytes, 1 print position

# Attachment

Sequences that set rendering state (colors, intensity, cursor style) attach to
the grapheme that follows them. Sequences that reset rendering state (SGR reset
ESC[m or ESC[0m, and RIS ESC c) attach to the grapheme that precedes them. Each
print position is therefore a contiguous slice of the input, and joining all
of them reproduces the input exactly.

# Iteration

Use [NewIterator] for a forward-only cursor, [All] or [Indices] for range-over-func
sequences, and [Strings] or [Count] when the whole result is needed at once.

	for pp := range printpos.All("abc\x1b[37;46mdef\x1b[0mg") {
		fmt.Printf("%q\n", pp) // "a" "b" "c" "\x1b[37;46md" "e" "f\x1b[0m" "g"
	}

# Layout

[Width], [Pad] and [Truncate] measure and reshape decorated text one print
position at a time, so escape sequences never count toward the width and are
never cut in half.

# Limitations

Sequences that move the cursor or consume visual space (tab, backspace,
newline, cursor positioning) are treated like any other control sequence and
contribute no width.

An ESC followed by a non-ASCII character is not taken as a two-byte escape;
the ESC becomes a print position of its own so the character stays whole.
*/
package printpos
