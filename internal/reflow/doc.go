// Package reflow implements a tokenization-preserving reflow engine for an
// indentation-sensitive scripting language.
//
// The target language looks like Python: statements are separated by
// indentation rather than braces, blocks are introduced by a trailing
// colon, and strings/comments/identifiers follow Python's lexical rules.
// Its one extension is the end-mark: a single reserved identifier (by
// convention "end") that, placed alone on a line, explicitly closes the
// innermost indented block. The end-mark is entirely optional; code
// without it is ordinary indentation-delimited source.
//
// Formatting runs through seven stages, each its own file in this package:
//
//	lexer.go     A. tokenizer adapter
//	whitespace.go B. whitespace reinjector
//	scope.go     C. scope linker
//	lines.go     D. line grouper + indent solver
//	spacing.go   E. spacing engine
//	endmark.go   F. end-mark synthesizer/stripper
//	emit.go/validate.go G. emitter + validator
//
// Lexemes and lines are stored in flat slices and cross-referenced by
// index rather than pointer, so the pipeline never builds reference
// cycles and can be walked with plain loops.
package reflow
