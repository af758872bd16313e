package reflow

import "strings"

// reinjectWhitespace takes the raw token stream from component A and the
// exact source text it was scanned from, and produces the full Lexeme
// stream: for every consecutive pair of raw tokens, the text strictly
// between them is split on "\\\n" (an escaped line continuation) and
// turned into explicit WHITESPACE / ESCAPED_NL lexemes, interleaved with
// the real token converted to a Lexeme.
//
// The very first WHITESPACE produced (the gap before the synthetic
// leading ENCODING token, which is always empty) is discarded, matching
// the convention that every Line starts with a WHITESPACE lexeme that
// belongs to the first real token on that line.
func reinjectWhitespace(src string, raw []rawToken) []Lexeme {
	lexemes := make([]Lexeme, 0, len(raw)*2)
	lastEnd := 0

	for i, t := range raw {
		gap := src[lastEnd:t.start]
		parts := strings.Split(gap, "\\\n")
		for j, part := range parts {
			if j > 0 {
				lexemes = append(lexemes, newLexeme(EscapedNL, "\\\n", -1))
			}
			lexemes = append(lexemes, newLexeme(Whitespace, part, -1))
		}

		lx := newLexeme(t.kind, t.text, t.line)
		lexemes = append(lexemes, lx)
		lastEnd = t.end
		_ = i
	}

	// Discard the very first WHITESPACE (the empty gap before ENCODING).
	if len(lexemes) > 0 && lexemes[0].Kind == Whitespace {
		lexemes = lexemes[1:]
	}

	return lexemes
}
