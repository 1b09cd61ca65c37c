package driver

import (
	"fmt"

	"github.com/nihei9/minigo/grammar/symbol"
)

type DiagnosticKind string

const (
	DiagnosticKindLexical  = DiagnosticKind("lexical")
	DiagnosticKindSyntax   = DiagnosticKind("syntax")
	DiagnosticKindSemantic = DiagnosticKind("semantic")
)

// Diagnostic is a defect found in the checked program. Err is one of
// *LexicalError, *SyntaxError, or *semantic.Error.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Line    int            `json:"line" yaml:"line"`
	Message string         `json:"message" yaml:"message"`
	Err     error          `json:"-" yaml:"-"`
}

func (d *Diagnostic) String() string {
	return d.Err.Error()
}

// SyntaxError is either a terminal mismatch (HasExpected is true) or a
// non-terminal without a production for the lookahead. In the latter case
// Viable lists the terminals the non-terminal could have started with.
type SyntaxError struct {
	Token       *Token
	Expected    symbol.Symbol
	HasExpected bool
	Viable      []symbol.Symbol
}

// Message returns the error without its position.
func (e *SyntaxError) Message() string {
	if e.HasExpected {
		return fmt.Sprintf("Unexpected token %v \"%v\". Expected %v.", e.Token.Kind, e.Token.Text(), e.Expected)
	}
	return fmt.Sprintf("Unexpected token %v \"%v\".", e.Token.Kind, e.Token.Text())
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("Unexpected token %v \"%v\" at line %v.", e.Token.Kind, e.Token.Text(), e.Token.Line)
	if e.HasExpected {
		msg += fmt.Sprintf(" Expected %v.", e.Expected)
	}
	return msg
}
