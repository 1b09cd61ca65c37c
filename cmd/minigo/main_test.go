package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nihei9/minigo/driver"
	"github.com/nihei9/minigo/grammar"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/tester"
)

func TestWriteGrammar(t *testing.T) {
	gram, err := grammar.Default()
	if err != nil {
		t.Fatal(err)
	}
	descs, err := grammar.Describe(gram.Productions)
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	err = writeGrammar(&b, &grammarReport{
		Terminals:    symbol.Terminals(),
		NonTerminals: descs,
		Productions:  gram.Productions,
	})
	if err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, s := range []string{
		"# Terminals",
		"kw_package (package)",
		"# Non-terminals",
		"FOLLOW: eof",
		"# Productions",
		"   1 package →",
	} {
		if !strings.Contains(out, s) {
			t.Fatalf("the output must contain %#v:\n%v", s, out)
		}
	}
}

func TestPrintTestResults(t *testing.T) {
	rs := []*tester.TestResult{
		{
			TestCasePath: "a.txt",
		},
		{
			TestCasePath: "b.txt",
			Error:        fmt.Errorf("diagnostics mismatch"),
		},
	}

	var b strings.Builder
	failed := printTestResults(&b, rs, false)
	if failed != 1 {
		t.Fatalf("unexpected failure count: %v", failed)
	}
	out := b.String()
	if strings.Contains(out, "Passed a.txt") || !strings.Contains(out, "Failed b.txt:") || !strings.Contains(out, "1 passed, 1 failed") {
		t.Fatalf("unexpected output:\n%v", out)
	}

	b.Reset()
	printTestResults(&b, rs, true)
	if !strings.Contains(b.String(), "Passed a.txt") {
		t.Fatalf("a passed case must be printed in verbose mode:\n%v", b.String())
	}
}

func TestPrintTokens(t *testing.T) {
	toks, lexErrs, err := driver.Tokenize(strings.NewReader("var x $\nint"))
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	printTokens(&b, toks, lexErrs)
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	expected := []string{
		`kw_var "var" (1:1)`,
		`ident "x" (1:5)`,
		`kw_int "int" (2:1)`,
		`eof "" (2:4)`,
		`Unknown lexeme "$" at line 1.`,
	}
	if len(lines) != len(expected) {
		t.Fatalf("unexpected output:\n%v", b.String())
	}
	for i, line := range lines {
		if line != expected[i] {
			t.Fatalf("#%v: want %v, got %v", i, expected[i], line)
		}
	}
}
