package driver

import (
	"fmt"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/nihei9/minigo/grammar/symbol"
)

const (
	kindWhiteSpace   = "white_space"
	kindLineComment  = "line_comment"
	kindBlockComment = "block_comment"
)

const exponent = `[eE][+\-]?[0-9]+`

// Patterns of the terminals whose lexeme varies. Quotes and the back quote are
// written as code points.
var lexemePatterns = []struct {
	kind    symbol.Symbol
	pattern string
}{
	{symbol.Ident, `[A-Za-z_][0-9A-Za-z_]*`},
	{symbol.FloatLit, `[0-9]+\.[0-9]*(` + exponent + `)?|[0-9]+` + exponent + `|\.[0-9]+(` + exponent + `)?`},
	{symbol.HexLit, `0[xX][0-9A-Fa-f]+`},
	{symbol.OctalLit, `0[0-7]*`},
	{symbol.DecimalLit, `[1-9][0-9]*`},
	{symbol.RuneLit, `\u{0027}([^\u{0027}\\\u{000A}]|\\[nt\\\u{0027}\u{0022}])\u{0027}`},
	{symbol.StringLit, `\u{0022}([^\u{0022}\\\u{000A}]|\\[nt\\\u{0027}\u{0022}])*\u{0022}`},
	{symbol.RawStringLit, `\u{0060}[^\u{0060}]*\u{0060}`},
}

var skipPatterns = []struct {
	kind    string
	pattern string
}{
	{kindWhiteSpace, `[\u{0009}\u{000A}\u{000D}\u{0020}]+`},
	{kindLineComment, `//[^\u{000A}]*`},
	{kindBlockComment, `/\*([^*]|\*+[^*/])*\*+/`},
}

// genLexSpec lists the skipped kinds, then the keywords, then the remaining
// terminals. A keyword precedes ident so that it wins when both match the same
// text.
func genLexSpec() *mlspec.LexSpec {
	var entries []*mlspec.LexEntry
	add := func(kind, pattern string) {
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(kind),
			Pattern: mlspec.LexPattern(pattern),
		})
	}

	for _, p := range skipPatterns {
		add(p.kind, p.pattern)
	}
	for _, term := range symbol.Terminals() {
		if !strings.HasPrefix(term.String(), "kw_") {
			continue
		}
		add(term.String(), mlspec.EscapePattern(term.Spelling()))
	}
	for _, p := range lexemePatterns {
		add(p.kind.String(), p.pattern)
	}
	for _, term := range symbol.Terminals() {
		if term == symbol.EOF || term.HasLexeme() || strings.HasPrefix(term.String(), "kw_") {
			continue
		}
		add(term.String(), mlspec.EscapePattern(term.Spelling()))
	}

	return &mlspec.LexSpec{
		Name:    "minigo",
		Entries: entries,
	}
}

type lexSpec struct {
	spec           *mlspec.CompiledLexSpec
	kindToTerminal []symbol.Symbol
	skip           []bool
}

var (
	lexSpecOnce sync.Once
	lexSpecVal  *lexSpec
	lexSpecErr  error
)

// compiledLexSpec compiles the lexical specification on first use.
func compiledLexSpec() (*lexSpec, error) {
	lexSpecOnce.Do(func() {
		lexSpecVal, lexSpecErr = compileLexSpec(genLexSpec())
	})
	return lexSpecVal, lexSpecErr
}

func compileLexSpec(ls *mlspec.LexSpec) (*lexSpec, error) {
	clspec, err, cErrs := mlcompiler.Compile(ls, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			for i, cErr := range cErrs {
				if i > 0 {
					fmt.Fprintf(&b, "\n")
				}
				fmt.Fprintf(&b, "%v: %v", cErr.Kind, cErr.Cause)
				if cErr.Detail != "" {
					fmt.Fprintf(&b, ": %v", cErr.Detail)
				}
			}
			return nil, fmt.Errorf("cannot compile the lexical specification: %v", b.String())
		}
		return nil, err
	}

	kindToTerminal := make([]symbol.Symbol, len(clspec.KindNames))
	skip := make([]bool, len(clspec.KindNames))
	for i, k := range clspec.KindNames {
		if k == mlspec.LexKindNameNil {
			continue
		}
		switch k.String() {
		case kindWhiteSpace, kindLineComment, kindBlockComment:
			skip[i] = true
			continue
		}
		sym, ok := symbol.ToSymbol(k.String())
		if !ok || !sym.IsTerminal() {
			return nil, fmt.Errorf("lexical kind %v is not a terminal", k)
		}
		kindToTerminal[i] = sym
	}

	return &lexSpec{
		spec:           clspec,
		kindToTerminal: kindToTerminal,
		skip:           skip,
	}, nil
}
