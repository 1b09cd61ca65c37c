package driver

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/nihei9/minigo/grammar"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/types"
)

type expectedDiag struct {
	kind    DiagnosticKind
	line    int
	message string
}

func analyze(t *testing.T, src string, opts ...AnalyzerOption) (*Analyzer, bool) {
	t.Helper()

	gram, err := grammar.Default()
	if err != nil {
		t.Fatal(err)
	}
	toks, err := NewTokenStream(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewAnalyzer(toks, gram, opts...)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := a.Analyze()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Attributes().Created() != a.Attributes().Released() {
		t.Fatalf("frames are unbalanced; created: %v, released: %v", a.Attributes().Created(), a.Attributes().Released())
	}
	if a.SymbolTable().Depth() != 1 {
		t.Fatalf("scopes are unbalanced; depth: %v", a.SymbolTable().Depth())
	}
	return a, ok
}

func testDiagnostics(t *testing.T, actual []*Diagnostic, expected []expectedDiag) {
	t.Helper()

	if len(actual) != len(expected) {
		var b strings.Builder
		for _, d := range actual {
			fmt.Fprintf(&b, "\n    %v", d)
		}
		t.Fatalf("unexpected diagnostics; want: %v diagnostics, got: %v diagnostics%v", len(expected), len(actual), b.String())
	}
	for i, e := range expected {
		d := actual[i]
		if d.Kind != e.kind || d.Line != e.line || d.Message != e.message {
			t.Errorf("unexpected diagnostic #%v\nwant: %v %v %#v\ngot: %v %v %#v", i, e.kind, e.line, e.message, d.Kind, d.Line, d.Message)
		}
	}
}

func TestAnalyzer_Accepts(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{
			caption: "an empty source",
			src:     ``,
		},
		{
			caption: "a package clause and imports",
			src: `package main;
import "fmt";
import ` + "`os`" + `;
`,
		},
		{
			caption: "constant declarations",
			src: `
const x int = 5
const y = 1.5;
const z = x * 2 + 0x1F - 012
const s string = "a" + "b"
const r = 'a'
const b = true && !false
`,
		},
		{
			caption: "variable declarations",
			src: `
var a int
var b int32 = 42
var c uint64 = 42
var d float32 = 1.5e2
var e = "str"
var f [3]int
var g [2][0x3]string
var h rune = 'x'
`,
		},
		{
			caption: "functions, calls, and returns",
			src: `
func add(a int, b int) int {
	return a + b;
}

func log(msg string) {
	return;
}

func main() {
	var s int = add(1, 2);
	s = add(s, add(3, 4));
	s++;
	s -= 1;
	log("done");
}
`,
		},
		{
			caption: "arrays, indexing, and array literals",
			src: `
func main() {
	var a [3]int = [3]int{1, 2, 3};
	var m [2][2]float64;
	a[1] = a[0] + 2;
	m[0][1] = 1.5;
	m[1][0] += m[0][1];
	var row [2]float64 = m[0];
}
`,
		},
		{
			caption: "conversions",
			src: `
func main() {
	var i int = 3;
	var f float64 = float64(i);
	var u uint32 = uint32(f) << 2;
	var r rune = rune(i);
	var s string = string(r);
	i = int(r) % 2;
}
`,
		},
		{
			caption: "if and else",
			src: `
func sign(x int) int {
	if x > 0 {
		return 1;
	} else if x < 0 {
		return -1;
	} else {
		return 0;
	}
	return 0;
}
`,
		},
		{
			caption: "for loops with break and continue",
			src: `
func main() {
	var i int;
	for {
		break;
	}
	for i < 10 {
		i++;
		if i == 5 {
			continue;
		}
	}
	for i = 0; i < 10; i++ {
		{
			break;
		}
	}
	for ; ; {
		continue;
	}
}
`,
		},
		{
			caption: "comments and empty statements",
			src: `
// a line comment
/* a block
   comment */
func main() {
	;
	var x int; // trailing
	x = /* inline */ 1;
}
`,
		},
		{
			caption: "shadowing",
			src: `
var x int
func main() {
	var x string;
	x = "a";
	{
		var x bool;
		x = true;
	}
	x = "b";
}
`,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			a, ok := analyze(t, tt.src)
			testDiagnostics(t, a.Diagnostics(), nil)
			if !ok {
				t.Fatal("the source must be accepted")
			}
		})
	}
}

func TestAnalyzer_Diagnostics(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		diags   []expectedDiag
	}{
		{
			caption: "assigning a string to an int variable",
			src: `func main() {
	var x int;
	x = "hi";
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 3, "Types mismatch"},
			},
		},
		{
			caption: "assigning a float literal to an int32 variable",
			src: `func main() {
	var x int32;
	x = 1.5;
	var y uint64;
	y = 42;
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 3, "Types mismatch"},
			},
		},
		{
			caption: "redeclaration in one scope",
			src: `var x int
var x string
`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 2, `Redeclaration of "x"`},
			},
		},
		{
			caption: "break and continue outside a loop",
			src: `func main() {
	break;
	continue;
	for {
		func2();
	}
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 2, "Statement not inside a loop"},
				{DiagnosticKindSemantic, 3, "Statement not inside a loop"},
				{DiagnosticKindSemantic, 5, `Unknown identifier "func2"`},
			},
		},
		{
			caption: "a missing semicolon",
			src: `func main() {
	var x int = 1
	x = 2;
	x = x + 1;
	x = "s";
	y = 1;
}`,
			diags: []expectedDiag{
				{DiagnosticKindSyntax, 3, `Unexpected token ident "x". Expected semicolon.`},
				{DiagnosticKindSemantic, 5, `Types mismatch`},
				{DiagnosticKindSemantic, 6, `Unknown identifier "y"`},
			},
		},
		{
			caption: "no viable production",
			src: `func main() {
	var x int;
	x = ;
	x = "s";
}`,
			diags: []expectedDiag{
				{DiagnosticKindSyntax, 3, `Unexpected token semicolon ";".`},
				{DiagnosticKindSemantic, 4, "Types mismatch"},
			},
		},
		{
			caption: "a recovered expression does not cascade",
			src: `func main() {
	var i int;
	for i = 0; i < ; i++ {
	}
	i = "s";
	if i == {
	}
}`,
			diags: []expectedDiag{
				{DiagnosticKindSyntax, 3, `Unexpected token semicolon ";".`},
				{DiagnosticKindSemantic, 5, "Types mismatch"},
				{DiagnosticKindSyntax, 6, `Unexpected token l_brace "{".`},
			},
		},
		{
			caption: "an unknown lexeme",
			src: `var x int @
var y string = "y"
`,
			diags: []expectedDiag{
				{DiagnosticKindLexical, 1, `Unknown lexeme "@"`},
			},
		},
		{
			caption: "array lengths beyond the int range",
			src: `var a [0xFFFFFFFFFFFFFFFF]int
var b = [2][0x8000000000000000]int{}
var c [2][3]int
var d int = c
`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 1, `Invalid integer literal "0xFFFFFFFFFFFFFFFF"`},
				{DiagnosticKindSemantic, 2, `Invalid integer literal "0x8000000000000000"`},
				{DiagnosticKindSemantic, 4, `Dimensions mismatch`},
			},
		},
		{
			caption: "end of input inside a function body",
			src: `func main() {
	var x int;
`,
			diags: []expectedDiag{
				{DiagnosticKindSyntax, 3, `Unexpected token eof "". Expected r_brace.`},
			},
		},
		{
			caption: "assignments to non-lvalues and constants",
			src: `const c int = 1
func f() int {
	return 1;
}
func main() {
	c = 2;
	f() = 3;
	1 = 2;
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 6, `Cannot assign to constant "c"`},
				{DiagnosticKindSemantic, 7, "Cannot assign to non-lvalue expression"},
				{DiagnosticKindSemantic, 8, "Cannot assign to non-lvalue expression"},
			},
		},
		{
			caption: "operators not defined for a type",
			src: `func main() {
	var s string;
	var b bool;
	var f float64;
	var a [2]int;
	s = s - "x";
	b = b + b;
	f = f % 2.0;
	b = !1;
	a = a + a;
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 6, "Invalid operation for string type"},
				{DiagnosticKindSemantic, 7, "Invalid operation for bool type"},
				{DiagnosticKindSemantic, 8, "Invalid operation for floating point type"},
				{DiagnosticKindSemantic, 9, "Invalid operation for integer type"},
				{DiagnosticKindSemantic, 10, "Invalid operation for array type"},
			},
		},
		{
			caption: "function calls",
			src: `func f(a int, b string) {
}
func main() {
	var x int;
	f(1);
	f(1, 2);
	x(1);
	x[0] = 1;
	f;
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 5, `Wrong number of arguments in call to "f"`},
				{DiagnosticKindSemantic, 6, "Types mismatch"},
				{DiagnosticKindSemantic, 7, `"x" is not a function`},
				{DiagnosticKindSemantic, 8, `"x" is not an array`},
				{DiagnosticKindSemantic, 9, "Expression evaluated but not used"},
			},
		},
		{
			caption: "return values",
			src: `func f() int {
	return;
}
func g() {
	return 1;
}
func h() string {
	return 1;
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 2, "Missing return value"},
				{DiagnosticKindSemantic, 5, "Unexpected return value"},
				{DiagnosticKindSemantic, 8, "Types mismatch"},
			},
		},
		{
			caption: "conditions",
			src: `func main() {
	var i int;
	if i {
	}
	for i + 1 {
	}
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 3, "Condition must be a boolean expression"},
				{DiagnosticKindSemantic, 5, "Condition must be a boolean expression"},
			},
		},
		{
			caption: "constants",
			src: `var v int
const a int
const b = v
`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 2, `Missing initializer for constant "a"`},
				{DiagnosticKindSemantic, 3, "Constant initializer is not constant"},
			},
		},
		{
			caption: "arrays",
			src: `func main() {
	var a [2]int = [2]int{1, 2, 3};
	var b [2]int;
	var c [3]int;
	b = c;
	a[1.5] = 1;
	var d int = int{1};
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 2, "Too many elements in array literal"},
				{DiagnosticKindSemantic, 5, "Dimensions mismatch"},
				{DiagnosticKindSemantic, 6, "Array index must be an integer"},
				{DiagnosticKindSemantic, 7, "Invalid composite literal type int"},
			},
		},
		{
			caption: "conversions",
			src: `func main() {
	var s string = "1";
	var i int = int(s);
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 3, "Cannot convert string to int"},
			},
		},
		{
			caption: "an unknown identifier does not cascade",
			src: `func main() {
	var x int = y + 1;
	x = y * y;
}`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 2, `Unknown identifier "y"`},
				{DiagnosticKindSemantic, 3, `Unknown identifier "y"`},
				{DiagnosticKindSemantic, 3, `Unknown identifier "y"`},
			},
		},
		{
			caption: "an out of range integer literal",
			src: `const x uint64 = 18446744073709551616
`,
			diags: []expectedDiag{
				{DiagnosticKindSemantic, 1, `Invalid integer literal "18446744073709551616"`},
			},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			a, ok := analyze(t, tt.src)
			if ok {
				t.Fatal("the source must be rejected")
			}
			testDiagnostics(t, a.Diagnostics(), tt.diags)
		})
	}
}

func TestAnalyzer_SymbolTable(t *testing.T) {
	t.Run("a constant declaration", func(t *testing.T) {
		a, ok := analyze(t, `const x int = 5`)
		if !ok {
			t.Fatalf("the source must be accepted: %v", a.Diagnostics())
		}
		rec, found := a.SymbolTable().Record("x")
		if !found {
			t.Fatal("x was not declared")
		}
		if !rec.TypeDim.Equal(types.Scalar(types.Int)) || len(rec.TypeDim.Dims) != 0 || !rec.IsConst || rec.IsFunction {
			t.Fatalf("unexpected record: %+v", rec)
		}
	})

	t.Run("an inner declaration ends with its scope", func(t *testing.T) {
		a, ok := analyze(t, `var x int
func main() {
	var x string;
	x = "a";
}
`)
		if !ok {
			t.Fatalf("the source must be accepted: %v", a.Diagnostics())
		}
		rec, found := a.SymbolTable().Record("x")
		if !found {
			t.Fatal("x was not declared")
		}
		if !rec.TypeDim.Equal(types.Scalar(types.Int)) || rec.Line != 1 {
			t.Fatalf("unexpected record: %+v", rec)
		}
		if a.SymbolTable().HasSymbol("main") == false {
			t.Fatal("main was not declared")
		}
	})

	t.Run("a function signature", func(t *testing.T) {
		a, ok := analyze(t, `func f(a [2]int, b float32) string {
	return "";
}`)
		if !ok {
			t.Fatalf("the source must be accepted: %v", a.Diagnostics())
		}
		rec, found := a.SymbolTable().Record("f")
		if !found {
			t.Fatal("f was not declared")
		}
		if !rec.IsFunction || !rec.TypeDim.Equal(types.Scalar(types.String)) {
			t.Fatalf("unexpected record: %+v", rec)
		}
		want := []types.TypeDim{
			{Type: types.Int, Dims: []int{2}},
			types.Scalar(types.Float32),
		}
		if len(rec.Params) != len(want) {
			t.Fatalf("unexpected parameters: %v", rec.Params)
		}
		for i, p := range want {
			if !rec.Params[i].Equal(p) {
				t.Fatalf("unexpected parameter #%v; want: %v, got: %v", i, p, rec.Params[i])
			}
		}
		if a.SymbolTable().HasSymbol("a") || a.SymbolTable().HasSymbol("b") {
			t.Fatal("parameters must not outlive the function")
		}
	})

	t.Run("array dimensions", func(t *testing.T) {
		a, _ := analyze(t, `var a [2][3]int
var b [0xFFFFFFFFFFFFFFFF]int
var c [0x7FFFFFFF]bool
`)
		testDiagnostics(t, a.Diagnostics(), []expectedDiag{
			{DiagnosticKindSemantic, 2, `Invalid integer literal "0xFFFFFFFFFFFFFFFF"`},
		})
		tests := []struct {
			name string
			typ  types.TypeDim
		}{
			{name: "a", typ: types.TypeDim{Type: types.Int, Dims: []int{2, 3}}},
			{name: "b", typ: types.Scalar(types.Invalid)},
			{name: "c", typ: types.TypeDim{Type: types.Bool, Dims: []int{math.MaxInt32}}},
		}
		for _, tt := range tests {
			rec, found := a.SymbolTable().Record(tt.name)
			if !found {
				t.Fatalf("%v was not declared", tt.name)
			}
			if !rec.TypeDim.Equal(tt.typ) {
				t.Fatalf("unexpected type of %v; want: %v, got: %v", tt.name, tt.typ, rec.TypeDim)
			}
		}
	})
}

func TestAnalyzer_FrameBalance(t *testing.T) {
	srcs := []string{
		`func main() { var x int = ; }`,
		`func main() { if { } }`,
		`func f(a int, { }`,
		`var x [3 int`,
		`func main() { for i = 0; i < ; { `,
		`) ) ) func`,
		`func main() { x = [2]int{1, 2; }`,
		`package ; import 1;`,
		`func`,
		`func main`,
		`func main() { if`,
	}
	for i, src := range srcs {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			a, ok := analyze(t, src)
			if ok {
				t.Fatal("the source must be rejected")
			}
			if len(a.Diagnostics()) == 0 {
				t.Fatal("a rejected source must have diagnostics")
			}
		})
	}
}

func TestAnalyzer_MaxDiagnostics(t *testing.T) {
	src := `func main() {
	a = 1;
	b = 1;
	c = 1;
}`
	a, ok := analyze(t, src, MaxDiagnostics(2))
	if ok {
		t.Fatal("the source must be rejected")
	}
	testDiagnostics(t, a.Diagnostics(), []expectedDiag{
		{DiagnosticKindSemantic, 2, `Unknown identifier "a"`},
		{DiagnosticKindSemantic, 3, `Unknown identifier "b"`},
	})
}

func TestAnalyzer_MaxDiagnosticsBeforeScopeOpens(t *testing.T) {
	tests := []struct {
		src  string
		diag expectedDiag
	}{
		{
			src:  `func 1`,
			diag: expectedDiag{DiagnosticKindSyntax, 1, `Unexpected token decimal_lit "1". Expected ident.`},
		},
		{
			src:  `func main() { if $ true { } }`,
			diag: expectedDiag{DiagnosticKindLexical, 1, `Unknown lexeme "$"`},
		},
		{
			src:  `func main() { for $ { } }`,
			diag: expectedDiag{DiagnosticKindLexical, 1, `Unknown lexeme "$"`},
		},
		{
			src:  `func main() { if true { } else $ { } }`,
			diag: expectedDiag{DiagnosticKindLexical, 1, `Unknown lexeme "$"`},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			a, ok := analyze(t, tt.src, MaxDiagnostics(1))
			if ok {
				t.Fatal("the source must be rejected")
			}
			testDiagnostics(t, a.Diagnostics(), []expectedDiag{tt.diag})
		})
	}
}

func TestAnalyzer_StrictLookahead(t *testing.T) {
	src := `func main() {
	var x int;
`
	tests := []struct {
		opts []AnalyzerOption
		diag expectedDiag
	}{
		{
			diag: expectedDiag{DiagnosticKindSyntax, 3, `Unexpected token eof "". Expected r_brace.`},
		},
		{
			opts: []AnalyzerOption{StrictLookahead()},
			diag: expectedDiag{DiagnosticKindSyntax, 3, `Unexpected token eof "".`},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			a, ok := analyze(t, src, tt.opts...)
			if ok {
				t.Fatal("the source must be rejected")
			}
			testDiagnostics(t, a.Diagnostics(), []expectedDiag{tt.diag})
		})
	}
}

func TestAnalyzer_ViableTerminals(t *testing.T) {
	a, _ := analyze(t, `var x = ;`)
	diags := a.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	synErr, ok := diags[0].Err.(*SyntaxError)
	if !ok || synErr.HasExpected {
		t.Fatalf("a missing expression must be reported as no viable production: %#v", diags[0].Err)
	}
	viable := map[symbol.Symbol]bool{}
	for _, term := range synErr.Viable {
		viable[term] = true
	}
	for _, term := range []symbol.Symbol{symbol.Ident, symbol.DecimalLit, symbol.LParen, symbol.Not} {
		if !viable[term] {
			t.Errorf("%v must be viable: %v", term, synErr.Viable)
		}
	}
	if viable[symbol.Semicolon] {
		t.Errorf("%v must not be viable: %v", symbol.Semicolon, synErr.Viable)
	}
}

func TestAnalyzer_CST(t *testing.T) {
	a, ok := analyze(t, `const x = 1`, MakeCST())
	if !ok {
		t.Fatalf("the source must be accepted: %v", a.Diagnostics())
	}
	root := a.CST()
	if root == nil || root.KindName != "package" {
		t.Fatalf("unexpected root: %+v", root)
	}

	var b strings.Builder
	PrintTree(&b, root)
	for _, s := range []string{`kw_const "const"`, `ident "x"`, `decimal_lit "1"`} {
		if !strings.Contains(b.String(), s) {
			t.Fatalf("the tree must contain %v:\n%v", s, b.String())
		}
	}
}

func TestAnalyzer_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	_, ok := analyze(t, `var x int`, Logger(logger))
	if !ok {
		t.Fatal("the source must be accepted")
	}
	for _, s := range []string{"component=analyzer", "msg=expand", "msg=match", "msg=action"} {
		if !strings.Contains(buf.String(), s) {
			t.Fatalf("the log must contain %v:\n%v", s, buf.String())
		}
	}
}

func TestAnalyzer_RunsOnce(t *testing.T) {
	gram, err := grammar.Default()
	if err != nil {
		t.Fatal(err)
	}
	toks, err := NewTokenStream(strings.NewReader(``))
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewAnalyzer(toks, gram)
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.Analyze()
	if err == nil {
		t.Fatal("expected error didn't occur")
	}
}
