package driver

import (
	"io"

	mldriver "github.com/nihei9/maleeni/driver"
	"github.com/nihei9/minigo/grammar/symbol"
)

type tokenStream struct {
	lex  *mldriver.Lexer
	spec *lexSpec
	eof  *Token
}

// NewTokenStream returns a TokenSource that tokenizes src. White space and
// comments are skipped.
func NewTokenStream(src io.Reader) (TokenSource, error) {
	ls, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(ls.spec), src)
	if err != nil {
		return nil, err
	}

	return &tokenStream{
		lex:  lex,
		spec: ls,
	}, nil
}

func (s *tokenStream) Next() (*Token, error) {
	if s.eof != nil {
		return s.eof, nil
	}

	for {
		tok, err := s.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			s.eof = &Token{
				Kind: symbol.EOF,
				Line: tok.Row + 1,
				Col:  tok.Col + 1,
			}
			return s.eof, nil
		}
		if tok.Invalid {
			return nil, &LexicalError{
				Text: string(tok.Lexeme),
				Line: tok.Row + 1,
				Col:  tok.Col + 1,
			}
		}
		if s.spec.skip[tok.KindID] {
			continue
		}

		term := s.spec.kindToTerminal[tok.KindID]
		t := &Token{
			Kind: term,
			Line: tok.Row + 1,
			Col:  tok.Col + 1,
		}
		if term.HasLexeme() {
			t.Lexeme = string(tok.Lexeme)
		}
		return t, nil
	}
}

// Tokenize reads every token of src up to and including EOF. Lexical errors
// are collected rather than returned.
func Tokenize(src io.Reader) ([]*Token, []*LexicalError, error) {
	toks, err := NewTokenStream(src)
	if err != nil {
		return nil, nil, err
	}

	var ts []*Token
	var lexErrs []*LexicalError
	for {
		tok, err := toks.Next()
		if err != nil {
			lexErr, ok := err.(*LexicalError)
			if !ok {
				return nil, nil, err
			}
			lexErrs = append(lexErrs, lexErr)
			continue
		}
		ts = append(ts, tok)
		if tok.EOF() {
			return ts, lexErrs, nil
		}
	}
}
