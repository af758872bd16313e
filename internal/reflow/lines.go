package reflow

// Line is an ordered run of lexeme indices belonging to one emitted
// source line, plus the indentation computed for it.
type Line struct {
	Tokens        []int // indices into the owning Lexemes slice
	BreakBefore   Kind  // kind of the newline lexeme that ended the previous Line; Illegal for the first
	LogicalIndent int
	OpticalIndent int
}

// groupLines streams the linked lexeme stream into Lines and computes
// logical/optical indent per line (component D). ignoreIndent selects
// whether BLOCK_START/BLOCK_END and the implicit-closer keywords drive
// the indent counters instead of INDENT/DEDENT.
func groupLines(lexemes []Lexeme, ignoreIndent bool) []Line {
	lines := []Line{{BreakBefore: Illegal}}
	cur := 0

	logicalIndent := 0
	opticalIndent := 0
	addLogicalNext := 0
	addOpticalNext := 0
	var bracketDepth int

	for i := range lexemes {
		lx := &lexemes[i]
		lines[cur].Tokens = append(lines[cur].Tokens, i)
		lx.LineIndex = cur

		switch {
		case lx.Kind == Newline || lx.Kind == NL || lx.Kind == EscapedNL:
			lines[cur].LogicalIndent = logicalIndent
			lines[cur].OpticalIndent = opticalIndent
			lines = append(lines, Line{BreakBefore: lx.Kind})
			cur++
			logicalIndent += addLogicalNext
			opticalIndent += addOpticalNext
			addLogicalNext = 0
			addOpticalNext = 0
			if lx.Kind == EscapedNL && bracketDepth == 0 {
				opticalIndent++
				addOpticalNext--
			}

		case isOpenBracket(lx.SrcString):
			bracketDepth++
			if !lx.Coalesce {
				addOpticalNext++
			}

		case isCloseBracket(lx.SrcString):
			if bracketDepth > 0 {
				bracketDepth--
			}
			if !lx.Coalesce {
				if isFirstNonWhitespaceOnLine(lexemes, lines[cur].Tokens) {
					opticalIndent--
				} else {
					addOpticalNext--
				}
			}

		case ignoreIndent && lx.Kind == BlockStart:
			addLogicalNext++
			addOpticalNext++

		case ignoreIndent && lx.Kind == BlockEnd:
			logicalIndent--
			opticalIndent--

		case ignoreIndent && implicitBlockEnd[lx.SrcString] && lx.Kind == Name:
			if precededByNewline(lexemes, i) {
				logicalIndent--
				opticalIndent--
			}

		case lx.Kind == Indent:
			lx.NewString = ""
			logicalIndent++
			opticalIndent++
			resolveBlockHead(lexemes, lines, i)

		case lx.Kind == Dedent:
			logicalIndent--
			opticalIndent--
		}
	}

	// Drop the mandatory trailing line created after the final linebreak,
	// unless it holds the DEDENTs that close blocks still open at end of
	// input: insertEndMarkers needs those, and the line emits no text
	// outside debug mode.
	if n := len(lines); n > 0 {
		keep := false
		for _, ti := range lines[n-1].Tokens {
			keep = keep || lexemes[ti].Kind == Dedent
		}
		if keep {
			lines[n-1].LogicalIndent = logicalIndent
			lines[n-1].OpticalIndent = opticalIndent
		} else {
			lines = lines[:n-1]
		}
	}

	repairContinuationIndent(lines)
	return lines
}

// isFirstNonWhitespaceOnLine reports whether the just-appended token
// (the last entry in tokens) is the first non-WHITESPACE token on the
// current line -- i.e. every token before it is WHITESPACE. On a line
// with several stacked closers ("})"), only the very first one
// qualifies; later closers on the same line fall to
// addOpticalIndentNextLine instead, matching the original's literal
// len(currentLine.tokens) == 2 check.
func isFirstNonWhitespaceOnLine(lexemes []Lexeme, tokens []int) bool {
	for _, ti := range tokens[:len(tokens)-1] {
		if lexemes[ti].Kind != Whitespace {
			return false
		}
	}
	return true
}

// precededByNewline reports whether the previous significant lexeme
// before i was a NEWLINE, guarding implicit-closer keywords like "else"
// against deceptive ternary-style uses mid-statement.
func precededByNewline(lexemes []Lexeme, i int) bool {
	j := i - 1
	for j > 0 && isOneOf(lexemes[j].Kind, Whitespace, NL, EscapedNL, Comment) {
		j--
	}
	return j >= 0 && lexemes[j].Kind == Newline
}

// resolveBlockHead finds the NAME lexeme that introduced the block this
// INDENT opens (the first NAME after the last-but-one NEWLINE before it),
// records it on the INDENT lexeme, and -- if a governing ":" is found --
// walks every Line between that colon and this INDENT, indenting each so
// dangling comments/blank lines between the header and its body line up
// with the body.
func resolveBlockHead(lexemes []Lexeme, lines []Line, indentIdx int) {
	j := indentIdx
	newlines := 0
	colon := -1
	for j > 0 && newlines < 2 {
		if lexemes[j].Kind == Newline {
			newlines++
		}
		if colon == -1 && lexemes[j].SrcString == ":" {
			colon = j
		}
		j--
	}
	for j < indentIdx && lexemes[j].Kind != Name {
		j++
	}
	if j < indentIdx && lexemes[j].Kind == Name {
		lexemes[indentIdx].BlockHead = j
	} else {
		lexemes[indentIdx].BlockHead = noIndex
	}

	if colon == -1 {
		return
	}
	ln := lexemes[colon].LineIndex + 1
	for ln < len(lines)-1 {
		lines[ln].LogicalIndent++
		lines[ln].OpticalIndent++
		ln++
	}
}

// repairContinuationIndent finds a continuation line whose optical
// indent happens to match the line after it even though their logical
// indent differs, and pushes the whole continuation one step deeper so
// it never reads as flush with the code that follows.
func repairContinuationIndent(lines []Line) {
	for i := 1; i < len(lines); i++ {
		if lines[i].OpticalIndent != lines[i-1].OpticalIndent || lines[i].LogicalIndent == lines[i-1].LogicalIndent {
			continue
		}
		j := i - 1
		for j > 1 && lines[j-1].OpticalIndent >= lines[i].OpticalIndent {
			j--
		}
		for k := j; k < i; k++ {
			lines[k].OpticalIndent++
		}
	}
}
