package reflow

// defineEnd is the preamble statement injected ahead of the first
// formatted line when insertEndMarkers adds end-marks to a file that
// never defines the "end" identifier itself, so the marker resolves to
// a real binding rather than a NameError.
const defineEnd = "from pyend import end"

// isBlankLine reports whether a Line carries no content beyond its
// leading WHITESPACE and trailing newline lexeme.
func isBlankLine(lexemes []Lexeme, line Line) bool {
	return len(line.Tokens) <= 2
}

// isCommentOnlyLine reports whether a Line's only payload is a COMMENT,
// and returns the indent width (in source columns) of that line's
// leading whitespace.
func isCommentOnlyLine(lexemes []Lexeme, line Line) (width int, ok bool) {
	if len(line.Tokens) != 4 {
		return 0, false
	}
	if lexemes[line.Tokens[1]].Kind != Comment {
		return 0, false
	}
	return len(lexemes[line.Tokens[0]].SrcString), true
}

// endAlreadyDefined mirrors pyend's top-level scan for an existing
// binding of the end-mark identifier (an assignment or import) before
// its first use as a block closer, so the inserted preamble is skipped
// when the source already accounts for the name.
func endAlreadyDefined(lexemes []Lexeme) bool {
	depth := 0
	for i := range lexemes {
		lx := lexemes[i]
		switch lx.Kind {
		case Indent:
			depth++
		case Dedent:
			depth--
		case BlockEnd:
			return false
		}
		if lx.SrcString != blockEndMark || lx.Kind != Name || depth != 0 {
			continue
		}
		if n := nextSignificant(lexemes, i); n != -1 && lexemes[n].SrcString == "=" {
			if p := prevSignificant(lexemes, i); p != -1 && isOneOf(lexemes[p].Kind, Newline, Encoding) {
				return true
			}
		}
		if p := prevSignificant(lexemes, i); p != -1 && lexemes[p].SrcString == "import" {
			return true
		}
	}
	return false
}

// headIndentWidth returns the source column width of the line
// introducing the block that an INDENT lexeme opens, used as the
// threshold for deciding whether a trailing comment still belongs to
// the block being closed.
func headIndentWidth(lexemes []Lexeme, lines []Line, indentLx Lexeme) int {
	if indentLx.BlockHead == noIndex {
		return 0
	}
	headLine := lines[lexemes[indentLx.BlockHead].LineIndex]
	width := len(lexemes[headLine.Tokens[0]].SrcString)
	if len(headLine.Tokens) > 1 && lexemes[headLine.Tokens[1]].Kind == Indent {
		width += len(lexemes[headLine.Tokens[1]].SrcString)
	}
	return width
}

// insertEndMarkers walks the grouped lines produced with indentation
// driving the grammar (ignoreIndent == false) and, for every DEDENT not
// already followed by an implicit closer keyword, synthesizes an "end"
// line. The new line is pulled as far up as possible past trailing
// blank lines -- and past comment lines that were themselves indented
// no further than the block's header -- by mutating those lines'
// indent fields rather than physically moving them.
func insertEndMarkers(lexemes *[]Lexeme, lines []Line) []Line {
	out := make([]Line, 0, len(lines)+8)

	for li := 0; li < len(lines); li++ {
		line := lines[li]

		nDedent := 0
		for _, ti := range line.Tokens {
			if (*lexemes)[ti].Kind == Dedent {
				nDedent++
			}
		}

		seen := 0
		for _, ti := range line.Tokens {
			lx := (*lexemes)[ti]
			if lx.Kind != Dedent {
				continue
			}
			level := line.LogicalIndent + nDedent - seen - 1
			seen++
			if dedentSuppressed(*lexemes, ti, lx) {
				continue
			}

			headWidth := headIndentWidth(*lexemes, lines, (*lexemes)[lx.Corresponding])
			insertAt := len(out)
			for insertAt > 0 {
				if isBlankLine(*lexemes, out[insertAt-1]) {
					out[insertAt-1].LogicalIndent--
					out[insertAt-1].OpticalIndent--
					insertAt--
					continue
				}
				if w, ok := isCommentOnlyLine(*lexemes, out[insertAt-1]); ok && w <= headWidth {
					out[insertAt-1].LogicalIndent--
					out[insertAt-1].OpticalIndent--
					insertAt--
					continue
				}
				break
			}

			endLine := newEndLine(lexemes, level)
			out = append(out, Line{})
			copy(out[insertAt+1:], out[insertAt:])
			out[insertAt] = endLine
		}
		out = append(out, line)
	}

	return out
}

// dedentSuppressed reports whether the token immediately following this
// particular DEDENT already closes the block on its own: an implicit
// closer keyword (elif, else, catch, finally), an explicit end-mark
// already present in the source, or a "case" block head, none of which
// need a synthesized end-mark. The check is per-DEDENT, not per-line:
// when several DEDENTs share a line (e.g. the "else:" closing two
// nested blocks), the first DEDENT's next token is the second DEDENT
// itself, not the keyword, so only the last DEDENT on the run is
// suppressed -- each of the others still needs its own "end".
func dedentSuppressed(lexemes []Lexeme, dedentIdx int, dedent Lexeme) bool {
	corresponding := lexemes[dedent.Corresponding]
	if corresponding.BlockHead != noIndex && lexemes[corresponding.BlockHead].SrcString == "case" {
		return true
	}
	n := nextSignificant(lexemes, dedentIdx)
	if n == -1 {
		return false
	}
	switch lexemes[n].Kind {
	case BlockEnd:
		return true
	case Name:
		return implicitBlockEnd[lexemes[n].SrcString]
	default:
		return false
	}
}

// newEndLine appends the lexemes for a synthesized "end" line to the
// arena and returns the Line referencing them.
func newEndLine(lexemes *[]Lexeme, indent int) Line {
	base := len(*lexemes)
	*lexemes = append(*lexemes,
		newLexeme(Whitespace, "", -1),
		newLexeme(BlockEnd, blockEndMark, -1),
		newLexeme(Newline, "\n", -1),
	)
	(*lexemes)[base+1].NewString = blockEndMark
	return Line{
		Tokens:        []int{base, base + 1, base + 2},
		BreakBefore:   Newline,
		LogicalIndent: indent,
		OpticalIndent: indent,
	}
}

// stripEndMarkers removes every end-mark line from lines, whether
// INDENT/DEDENT or BLOCK_START/BLOCK_END drove the grouping. A line
// carrying a trailing comment after its end-mark keeps the
// comment; a bare end-mark line is dropped entirely.
func stripEndMarkers(lexemes []Lexeme, lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		kept := line.Tokens[:0:0]
		dropLine := false
		for i, ti := range line.Tokens {
			if lexemes[ti].Kind != BlockEnd {
				kept = append(kept, ti)
				continue
			}
			if i+2 < len(line.Tokens) && lexemes[line.Tokens[i+2]].Kind == Comment {
				continue
			}
			dropLine = true
		}
		if dropLine {
			continue
		}
		line.Tokens = kept
		out = append(out, line)
	}
	return out
}
