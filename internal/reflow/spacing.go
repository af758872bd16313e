package reflow

// noSpaceAround lists lexeme kinds that never take a surrounding space:
// they are either invisible markers (INDENT/DEDENT) or already own their
// own layout (NEWLINE/NL/ENCODING/ENDMARKER).
func noSpaceAround(k Kind) bool {
	return isOneOf(k, Indent, Dedent, Newline, NL, Encoding, EndMarker)
}

// skipForPriorSignificant lists the kinds ignored when walking backwards
// to find the lexeme that an operator like "+" or "**" attaches to.
func skipForPriorSignificant(k Kind) bool {
	return isOneOf(k, Whitespace, NL, EscapedNL, Comment, Indent, Dedent)
}

func isExpressionEnd(lx Lexeme) bool {
	switch lx.SrcString {
	case "True", "False", "None", ")", "]", "}", "...":
		return true
	}
	return isOneOf(lx.Kind, Name, Number, String)
}

// applySpacing runs the spacing engine (component E): for every
// WHITESPACE lexeme it picks the rewritten text according to the first
// matching rule, given the immediately surrounding lexemes.
func applySpacing(lexemes []Lexeme) {
	var brackets []byte

	for i := range lexemes {
		lx := &lexemes[i]

		switch {
		case isOpenBracket(lx.SrcString):
			brackets = append(brackets, lx.SrcString[0])
		case isCloseBracket(lx.SrcString):
			if len(brackets) > 0 {
				brackets = brackets[:len(brackets)-1]
			}
		case lx.Kind == Whitespace:
			prv := &lexemes[i-1]
			nxt := &lexemes[i+1]
			lx.NewString = spacingFor(lexemes, i, prv, nxt, brackets)
		}
	}
}

func spacingFor(lexemes []Lexeme, i int, prv, nxt *Lexeme, brackets []byte) string {
	switch {
	case nxt.Kind == Comment &&
		!(len(prv.SrcString) > 0 && (prv.SrcString[len(prv.SrcString)-1] == '\t' || prv.SrcString[len(prv.SrcString)-1] == '\n')) &&
		!noSpaceAround(prv.Kind):
		return applyPowerOverride(lexemes, i, nxt, " ")

	case len(prv.SrcString) > 0 && lastByteIn(prv.SrcString, "([{.~\t\n") ||
		prv.SrcString == "**" ||
		noSpaceAround(prv.Kind):
		return applyPowerOverride(lexemes, i, nxt, "")

	case (nxt.SrcString == ":" || prv.SrcString == ":") && len(brackets) > 0 && brackets[len(brackets)-1] == '[':
		return applyPowerOverride(lexemes, i, nxt, "")

	case len(nxt.SrcString) > 0 && firstByteIn(nxt.SrcString, ")]},.:;\t\n") || noSpaceAround(nxt.Kind):
		return applyPowerOverride(lexemes, i, nxt, "")

	case isOneOf(prv.Kind, Name, Number, String) && !isCallPrefixKeyword(prv.SrcString) && (nxt.SrcString == "(" || nxt.SrcString == "["),
		(prv.SrcString == ")" || prv.SrcString == "]" || prv.SrcString == "...") && (nxt.SrcString == "(" || nxt.SrcString == "["):
		return applyPowerOverride(lexemes, i, nxt, "")

	case prv.Kind == Op && (prv.SrcString == "+" || prv.SrcString == "-" || prv.SrcString == "*"):
		j := priorSignificant(lexemes, i-2)
		if j != -1 && isExpressionEnd(lexemes[j]) {
			return applyPowerOverride(lexemes, i, nxt, " ")
		}
		return applyPowerOverride(lexemes, i, nxt, "")

	default:
		return applyPowerOverride(lexemes, i, nxt, " ")
	}
}

// applyPowerOverride implements the post-rule in spec.md 4.E: "**" always
// binds tightly to a preceding expression even when an earlier rule chose
// a space (e.g. the space rule 1/7 defaults would otherwise add one).
func applyPowerOverride(lexemes []Lexeme, i int, nxt *Lexeme, chosen string) string {
	if nxt.SrcString != "**" {
		return chosen
	}
	j := priorSignificant(lexemes, i-1)
	if j != -1 && isExpressionEnd(lexemes[j]) {
		return ""
	}
	return chosen
}

func priorSignificant(lexemes []Lexeme, from int) int {
	j := from
	for j > 0 && skipForPriorSignificant(lexemes[j].Kind) {
		j--
	}
	if j < 0 {
		return -1
	}
	return j
}

func isCallPrefixKeyword(s string) bool { return keywords[s] }

func lastByteIn(s string, set string) bool {
	if s == "" {
		return false
	}
	return containsByte(set, s[len(s)-1])
}

func firstByteIn(s string, set string) bool {
	if s == "" {
		return false
	}
	return containsByte(set, s[0])
}

func containsByte(set string, b byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == b {
			return true
		}
	}
	return false
}
