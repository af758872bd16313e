package reflow

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/connerohnesorge/endmark/internal/reflowerrs"
)

// Options configures a single formatting run. The zero value reflows a
// whole (non-clipboard) source with tab indentation, reading blocks from
// INDENT/DEDENT, without inserting or stripping end-marks and without
// validating the result.
type Options struct {
	InsertEnd    bool // synthesize end-marks from indentation
	StripEnd     bool // remove end-mark lines; blocks come from BLOCK_START/BLOCK_END only when IgnoreIndent is also set
	IgnoreIndent bool // drive the grammar from BLOCK_START/BLOCK_END instead of INDENT/DEDENT
	Clipboard    bool // source is a pasted fragment, not a whole file
	IndentWith   string
	Validate     bool // re-tokenize the result and assert semantic equivalence
	Debug        bool // render with visible glyphs instead of real whitespace

	// DefineEnd overrides the exact preamble text prepended when InsertEnd
	// synthesizes the first end-mark in a file that never binds the
	// end-mark identifier itself. Empty selects the default
	// "from pyend import end" form.
	DefineEnd string
}

func (o Options) defineEnd() string {
	if o.DefineEnd == "" {
		return defineEnd
	}
	return o.DefineEnd
}

func (o Options) indentWith() string {
	if o.IndentWith == "" {
		return "\t"
	}
	return o.IndentWith
}

// FormatString runs the full pipeline (A-G) over src and returns the
// formatted text.
func FormatString(src string, opts Options) (string, error) {
	if opts.InsertEnd && opts.IgnoreIndent {
		return "", &reflowerrs.ConflictingOptionsError{Flag1: "InsertEnd", Flag2: "IgnoreIndent"}
	}
	if opts.InsertEnd && opts.StripEnd {
		return "", &reflowerrs.ConflictingOptionsError{Flag1: "InsertEnd", Flag2: "StripEnd"}
	}

	normalized := normalizeTrailingNewline(src)

	raw, err := scan(normalized, opts.IgnoreIndent)
	if err != nil {
		return "", &reflowerrs.InvalidSourceError{Detail: err.Error()}
	}

	lexemes := reinjectWhitespace(normalized, raw)
	if opts.Clipboard {
		lexemes = unwrapClipboardIndent(lexemes)
	}

	if err := linkScopes(lexemes); err != nil {
		return "", err
	}

	lines := groupLines(lexemes, opts.IgnoreIndent)
	applySpacing(lexemes)

	if opts.StripEnd {
		lines = stripEndMarkers(lexemes, lines)
	}
	if opts.InsertEnd {
		lines = insertEndMarkers(&lexemes, lines)
	}

	preamble := ""
	if opts.InsertEnd && !opts.Clipboard && !endAlreadyDefined(lexemes) {
		var consumed bool
		preamble, consumed = shebangPreamble(lexemes, lines, opts.defineEnd())
		if consumed {
			lines = lines[1:]
		}
	}

	body := emit(lexemes, lines, opts.indentWith(), opts.Debug)

	if opts.Validate && !opts.Debug {
		if err := validate(raw, body, opts.InsertEnd, opts.Clipboard); err != nil {
			return "", err
		}
	}

	return preamble + body, nil
}

// Format runs FormatString over raw file bytes, auto-detecting a
// Python-style magic encoding comment ("# -*- coding: xxx -*-") on
// either of the first two lines and round-tripping through it so the
// output byte stream uses the same encoding as the input.
func Format(data []byte, opts Options) ([]byte, error) {
	enc, encName := detectEncoding(data)

	decoded := data
	if enc != nil {
		d, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, err
		}
		decoded = d
	}

	out, err := FormatString(string(decoded), opts)
	if err != nil {
		return nil, err
	}

	if enc == nil || encName == "utf-8" {
		return []byte(out), nil
	}
	encoded, err := enc.NewEncoder().Bytes([]byte(out))
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

var codingCommentRe = regexp.MustCompile(`coding[:=]\s*([-\w.]+)`)

func detectEncoding(data []byte) (encoding.Encoding, string) {
	lines := bytes.SplitN(data, []byte("\n"), 3)
	for i := 0; i < len(lines) && i < 2; i++ {
		m := codingCommentRe.FindSubmatch(lines[i])
		if m == nil {
			continue
		}
		name := string(m[1])
		enc, err := ianaindex.IANA.Encoding(name)
		if err != nil || enc == nil {
			continue
		}
		return enc, strings.ToLower(name)
	}
	return nil, "utf-8"
}

func normalizeTrailingNewline(src string) string {
	src = strings.TrimRight(src, "\n")
	return src + "\n"
}

// unwrapClipboardIndent handles pasting a fragment copied from the
// middle of an indented block: the scanner sees the fragment as opening
// one INDENT level it never closes from the outside, paired with a
// trailing DEDENT the scanner synthesizes once it runs out of input.
// Dropping that matched pair lets the fragment format as if it were
// copied starting at column zero.
func unwrapClipboardIndent(lexemes []Lexeme) []Lexeme {
	firstIndent := -1
	for i := range lexemes {
		if lexemes[i].Kind == Whitespace || lexemes[i].Kind == EscapedNL {
			continue
		}
		if lexemes[i].Kind == Indent {
			firstIndent = i
		}
		break
	}
	if firstIndent == -1 {
		return lexemes
	}

	lastDedent := -1
	for i := len(lexemes) - 1; i >= 0; i-- {
		if lexemes[i].Kind == EndMarker || lexemes[i].Kind == Whitespace || lexemes[i].Kind == Newline || lexemes[i].Kind == NL {
			continue
		}
		if lexemes[i].Kind == Dedent {
			lastDedent = i
		}
		break
	}
	if lastDedent == -1 {
		return lexemes
	}

	out := make([]Lexeme, 0, len(lexemes)-2)
	for i, lx := range lexemes {
		if i == firstIndent || i == lastDedent {
			continue
		}
		out = append(out, lx)
	}
	return out
}
