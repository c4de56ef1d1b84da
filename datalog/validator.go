package datalog

import (
	"fmt"
	"strings"
)

// Validator is the pluggable build-time check for query source text. How
// validation happens is outside this package; a Validator only has to
// produce a ValidatedSource whose text conforms to the engine's grammar.
// Generated code or an external toolchain step typically runs it once at
// startup and caches the result.
type Validator interface {
	Validate(src string) (ValidatedSource, error)
}

// ValidatedSource is query text that passed a Validator. It renders as-is
// and can be executed anywhere a Query can.
type ValidatedSource struct {
	text string
}

// Render returns the validated query text unchanged.
func (v ValidatedSource) Render() string {
	return v.text
}

// SyntaxError reports where and why query source text failed validation.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query syntax error at offset %d: %s", e.Offset, e.Message)
}

// StructuralValidator is a minimal Validator: it checks bracket balance and
// the presence and order of the :find and :where keywords. It is not a
// parser; the engine remains the authority on the grammar. Use it where no
// stronger external validator is wired in, e.g. for query text arriving on
// a CLI.
type StructuralValidator struct{}

// NewStructuralValidator creates a StructuralValidator.
func NewStructuralValidator() StructuralValidator {
	return StructuralValidator{}
}

// Validate checks src structurally and wraps it into a ValidatedSource.
func (StructuralValidator) Validate(src string) (ValidatedSource, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return ValidatedSource{}, &SyntaxError{Offset: 0, Message: "empty query source"}
	}

	if err := checkBracketBalance(trimmed); err != nil {
		return ValidatedSource{}, err
	}

	findIdx := strings.Index(trimmed, ":find")
	if findIdx < 0 {
		return ValidatedSource{}, &SyntaxError{Offset: 0, Message: "missing :find clause"}
	}

	whereIdx := strings.Index(trimmed, ":where")
	if whereIdx < 0 {
		return ValidatedSource{}, &SyntaxError{Offset: len(trimmed), Message: "missing :where clause"}
	}

	if whereIdx < findIdx {
		return ValidatedSource{}, &SyntaxError{Offset: whereIdx, Message: ":where must follow :find"}
	}

	return ValidatedSource{text: trimmed}, nil
}

func checkBracketBalance(src string) error {
	depth := 0
	parens := 0

	for i, r := range src {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return &SyntaxError{Offset: i, Message: "unbalanced ']'"}
			}
		case '(':
			parens++
		case ')':
			parens--
			if parens < 0 {
				return &SyntaxError{Offset: i, Message: "unbalanced ')'"}
			}
		}
	}

	if depth != 0 {
		return &SyntaxError{Offset: len(src), Message: "unbalanced '['"}
	}

	if parens != 0 {
		return &SyntaxError{Offset: len(src), Message: "unbalanced '('"}
	}

	return nil
}
