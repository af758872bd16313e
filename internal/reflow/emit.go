package reflow

import "strings"

// debugIndentGlyph and debugGlyph mirror pyend's --debug rendering: a
// visible bracket glyph per indent step, and visible markers for otherwise-blank
// characters, so a reader can see exactly what the formatter produced
// without guessing at invisible whitespace.
const debugIndentGlyph = "⊢−−⊣"

func debugGlyph(s string) string {
	s = strings.ReplaceAll(s, " ", "⎵")
	s = strings.ReplaceAll(s, "\n", "↲\n")
	return s
}

// emit renders the final Line/Lexeme arena to source text (component
// G). indentWith is the literal string repeated OpticalIndent times at
// the start of every non-blank line.
func emit(lexemes []Lexeme, lines []Line, indentWith string, debug bool) string {
	var b strings.Builder

	for _, line := range lines {
		if len(line.Tokens) > 2 {
			if debug {
				b.WriteString(strings.Repeat(debugIndentGlyph, line.OpticalIndent))
			} else {
				b.WriteString(strings.Repeat(indentWith, line.OpticalIndent))
			}
		}
		for _, ti := range line.Tokens {
			lx := lexemes[ti]
			switch {
			case lx.Kind == Indent && debug:
				b.WriteString(">")
			case lx.Kind == Dedent && debug:
				b.WriteString("<")
			case debug:
				b.WriteString(debugGlyph(lx.NewString))
			default:
				b.WriteString(lx.NewString)
			}
		}
	}

	return b.String()
}

// shebangPreamble returns the preamble to prepend when insertEndMarkers
// has run on a source that never defines the end-mark identifier
// itself: either appended after an existing shebang comment, or emitted
// as a line of its own. define is the exact definition statement text
// (e.g. "from pyend import end" or "end = None").
func shebangPreamble(lexemes []Lexeme, lines []Line, define string) (preamble string, consumedShebangLine bool) {
	if len(lines) == 0 {
		return define + "\n", false
	}
	for _, ti := range lines[0].Tokens {
		lx := lexemes[ti]
		switch lx.Kind {
		case Encoding, Whitespace, EscapedNL:
			continue
		case Comment:
			if strings.HasPrefix(lx.SrcString, "#!") {
				return lx.NewString + "\n" + define + "\n", true
			}
		}
		break
	}
	return define + "\n", false
}
