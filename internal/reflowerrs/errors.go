// Package reflowerrs defines the typed error values the reflow engine and
// its CLI wrapper can return, mirroring the one-struct-per-failure-kind
// convention used elsewhere in this codebase for command-line validation
// errors.
package reflowerrs

import "fmt"

// InvalidSourceError indicates the tokenizer adapter could not classify
// the input as the target language.
type InvalidSourceError struct {
	Detail string
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid source: %s", e.Detail)
}

// UnbalancedScopeError indicates an opening bracket or INDENT lacks its
// matching closer, detected while linking scopes.
type UnbalancedScopeError struct {
	Detail string
}

func (e *UnbalancedScopeError) Error() string {
	return fmt.Sprintf("unbalanced scope: %s", e.Detail)
}

// ValidationFailedError indicates the post-emit re-tokenization of the
// formatted output disagreed with the pre-image under the equivalence
// filter.
type ValidationFailedError struct {
	Detail string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Detail)
}

// ConflictingOptionsError indicates two mutually exclusive formatting
// modes were requested together.
type ConflictingOptionsError struct {
	Flag1 string
	Flag2 string
}

func (e *ConflictingOptionsError) Error() string {
	return fmt.Sprintf("conflicting options: %s and %s cannot both be set", e.Flag1, e.Flag2)
}
