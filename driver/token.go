package driver

import (
	"fmt"

	"github.com/nihei9/minigo/grammar/symbol"
)

// Token is a terminal read from the source. Line and Col are 1-based.
type Token struct {
	Kind   symbol.Symbol
	Lexeme string
	Line   int
	Col    int
}

func (t *Token) EOF() bool {
	return t.Kind == symbol.EOF
}

// Text returns the source text of the token. Terminals without a variable
// lexeme return their fixed spelling.
func (t *Token) Text() string {
	if t.Lexeme != "" {
		return t.Lexeme
	}
	return t.Kind.Spelling()
}

func (t *Token) String() string {
	return fmt.Sprintf("%v %#v (%v:%v)", t.Kind, t.Text(), t.Line, t.Col)
}

// TokenSource produces the tokens of one source. After the end of input it
// keeps returning the EOF token. A *LexicalError reports input that matches no
// token; the source stays usable and the next call continues after it.
type TokenSource interface {
	Next() (*Token, error)
}

type LexicalError struct {
	Text string
	Line int
	Col  int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("Unknown lexeme \"%v\" at line %v.", e.Text, e.Line)
}
