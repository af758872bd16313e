package reflow

import (
	"fmt"

	"github.com/connerohnesorge/endmark/internal/reflowerrs"
)

// validate re-tokenizes the formatted output and checks it against the
// pre-image token stream under an equivalence filter: drop COMMENT and
// NL noise from both sides, drop every "end\n" pair the formatter may
// have synthesized, and require everything else to match kind-for-kind
// (src text too, except for INDENT, whose text is never meaningful).
// It also asserts every end-mark alone on its line is immediately
// preceded by a DEDENT, and -- when insertEnd was requested -- that
// every DEDENT is immediately followed by an end-mark, an implicit
// closer keyword, or (when formatting a clipboard fragment) the
// synthesized ENDMARKER the scanner appends when it runs out of input
// mid-block.
func validate(original []rawToken, formatted string, insertEnd, isClipboard bool) error {
	// The formatted output always carries real indentation (ignoreIndent
	// only changes how the *input* is read), so re-tokenizing it for
	// comparison always uses the indentation-driven scanner.
	reformatted, err := scan(formatted, false)
	if err != nil {
		return &reflowerrs.ValidationFailedError{Detail: fmt.Sprintf("formatted output does not re-tokenize: %v", err)}
	}

	left := filterForComparison(original)
	right := filterForComparison(reformatted)

	if len(left) != len(right) {
		return &reflowerrs.ValidationFailedError{
			Detail: fmt.Sprintf("token count changed: %d before, %d after", len(left), len(right)),
		}
	}
	for i := range left {
		if left[i].kind != right[i].kind {
			return &reflowerrs.ValidationFailedError{
				Detail: fmt.Sprintf("token %d changed kind: %s before, %s after", i, left[i].kind, right[i].kind),
			}
		}
		if left[i].kind != Indent && left[i].text != right[i].text {
			return &reflowerrs.ValidationFailedError{
				Detail: fmt.Sprintf("token %d changed text: %q before, %q after", i, left[i].text, right[i].text),
			}
		}
	}

	if err := assertEndFollowsDedent(reformatted); err != nil {
		return err
	}
	if insertEnd {
		if err := assertDedentFollowedByCloser(reformatted, isClipboard); err != nil {
			return err
		}
	}
	return nil
}

func filterForComparison(tokens []rawToken) []rawToken {
	out := make([]rawToken, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if tokens[i].kind == Name && tokens[i].text == blockEndMark &&
			i+1 < len(tokens) && tokens[i+1].kind == Newline {
			i++
			continue
		}
		if tokens[i].kind == NL || tokens[i].kind == Comment {
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

// assertEndFollowsDedent checks that any token reading exactly
// blockEndMark, alone on its line, is immediately preceded by a DEDENT.
func assertEndFollowsDedent(tokens []rawToken) error {
	for i, t := range tokens {
		if t.kind != Name || t.text != blockEndMark {
			continue
		}
		if i == 0 || i+1 >= len(tokens) {
			continue
		}
		prevIsBoundary := isOneOf(tokens[i-1].kind, Newline, NL, Dedent, Indent)
		nextIsBoundary := isOneOf(tokens[i+1].kind, Newline, Comment)
		if prevIsBoundary && nextIsBoundary && tokens[i-1].kind != Dedent {
			return &reflowerrs.ValidationFailedError{
				Detail: fmt.Sprintf("end-mark at line %d is not preceded by a DEDENT", t.line),
			}
		}
	}
	return nil
}

// assertDedentFollowedByCloser checks that every DEDENT is immediately
// followed by an end-mark or an implicit closer keyword -- or, when
// formatting a clipboard fragment, by the ENDMARKER the scanner
// synthesizes at end-of-input, since a pasted fragment can legitimately
// end mid-block with no closer of its own.
func assertDedentFollowedByCloser(tokens []rawToken, isClipboard bool) error {
	for i, t := range tokens {
		if t.kind != Dedent {
			continue
		}
		if i+1 >= len(tokens) {
			continue
		}
		nxt := tokens[i+1]
		if nxt.kind == Name && (nxt.text == blockEndMark || implicitBlockEnd[nxt.text]) {
			continue
		}
		if isClipboard && nxt.kind == EndMarker {
			continue
		}
		return &reflowerrs.ValidationFailedError{
			Detail: fmt.Sprintf("DEDENT at line %d is not followed by an end-mark or closer keyword", t.line),
		}
	}
	return nil
}
