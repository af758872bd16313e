package reflow

import "github.com/connerohnesorge/endmark/internal/reflowerrs"

// linkScopes runs the single left-to-right scope-linking pass (component
// C): it pairs every opening bracket with its closer and every INDENT
// with its DEDENT, reclassifies ":" before a block body as BLOCK_START and
// a lone end-mark identifier as BLOCK_END, and finally marks bracket
// pairs that coalesce with their enclosing bracket (both opened and both
// closed on the same source line, so they share one indent step instead
// of two).
func linkScopes(lexemes []Lexeme) error {
	var bracketStack []int
	var indentStack []int

	for i := range lexemes {
		lx := &lexemes[i]
		switch {
		case isOpenBracket(lx.SrcString):
			if len(bracketStack) > 0 {
				lx.Outer = bracketStack[len(bracketStack)-1]
			}
			bracketStack = append(bracketStack, i)

		case isCloseBracket(lx.SrcString):
			if len(bracketStack) == 0 {
				return &reflowerrs.UnbalancedScopeError{Detail: "unmatched closing bracket " + lx.SrcString}
			}
			opener := bracketStack[len(bracketStack)-1]
			bracketStack = bracketStack[:len(bracketStack)-1]
			lx.Corresponding = opener
			lexemes[opener].Corresponding = i

		case lx.Kind == Indent:
			if len(indentStack) > 0 {
				lx.Outer = indentStack[len(indentStack)-1]
			}
			indentStack = append(indentStack, i)

		case lx.Kind == Dedent:
			if len(indentStack) == 0 {
				return &reflowerrs.UnbalancedScopeError{Detail: "unmatched DEDENT"}
			}
			opener := indentStack[len(indentStack)-1]
			indentStack = indentStack[:len(indentStack)-1]
			lx.Corresponding = opener
			lexemes[opener].Corresponding = i

		case lx.SrcString == ":" && lx.Kind == Op:
			if k := nextSignificant(lexemes, i); k != -1 && (lexemes[k].Kind == Newline || lexemes[k].Kind == Comment) {
				lx.Kind = BlockStart
			}

		case lx.SrcString == blockEndMark && lx.Kind == Name:
			p := prevSignificant(lexemes, i)
			n := nextSignificant(lexemes, i)
			if p != -1 && n != -1 &&
				isOneOf(lexemes[p].Kind, Newline, NL, Dedent, Indent) &&
				isOneOf(lexemes[n].Kind, Newline, Comment) {
				lx.Kind = BlockEnd
			}
		}
	}

	if len(bracketStack) > 0 {
		return &reflowerrs.UnbalancedScopeError{Detail: "unclosed bracket"}
	}
	if len(indentStack) > 0 {
		return &reflowerrs.UnbalancedScopeError{Detail: "unclosed INDENT"}
	}

	detectCoalesce(lexemes)
	return nil
}

// detectCoalesce marks an opener (and mirrors onto its closer) when it
// and its immediate outer opener sit on the same source line and their
// respective closers also share a line; such pairs occupy one indent
// step together rather than two.
func detectCoalesce(lexemes []Lexeme) {
	for i := range lexemes {
		lx := &lexemes[i]
		if !isOpenBracket(lx.SrcString) {
			continue
		}
		if lx.Outer == noIndex || lx.Corresponding == noIndex {
			continue
		}
		outer := lexemes[lx.Outer]
		if outer.Corresponding == noIndex {
			continue
		}
		if outer.OriginalLine == lx.OriginalLine &&
			lexemes[lx.Corresponding].OriginalLine == lexemes[outer.Corresponding].OriginalLine {
			lx.Coalesce = true
			lexemes[lx.Corresponding].Coalesce = true
		}
	}
}

func isOneOf(k Kind, options ...Kind) bool {
	for _, o := range options {
		if k == o {
			return true
		}
	}
	return false
}

// nextSignificant returns the index of the next lexeme after i that is
// not WHITESPACE or ESCAPED_NL, or -1 if none remains.
func nextSignificant(lexemes []Lexeme, i int) int {
	for j := i + 1; j < len(lexemes); j++ {
		if lexemes[j].Kind != Whitespace && lexemes[j].Kind != EscapedNL {
			return j
		}
	}
	return -1
}

// prevSignificant returns the index of the previous lexeme before i that
// is not WHITESPACE or ESCAPED_NL, or -1 if none precedes it.
func prevSignificant(lexemes []Lexeme, i int) int {
	for j := i - 1; j >= 0; j-- {
		if lexemes[j].Kind != Whitespace && lexemes[j].Kind != EscapedNL {
			return j
		}
	}
	return -1
}
