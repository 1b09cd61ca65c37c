package grammar

import (
	"fmt"
	"testing"
)

type first struct {
	prod    int
	dot     int
	symbols []string
	empty   bool
}

func TestGenFirst(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		first   []first
	}{
		{
			caption: "productions contain only non-empty productions",
			src: `
expr,operand,plus,expr
expr,operand
operand,l_paren,expr,r_paren
operand,ident
`,
			first: []first{
				{prod: 0, dot: 0, symbols: []string{"l_paren", "ident"}},
				{prod: 0, dot: 1, symbols: []string{"plus"}},
				{prod: 0, dot: 2, symbols: []string{"l_paren", "ident"}},
				{prod: 1, dot: 0, symbols: []string{"l_paren", "ident"}},
				{prod: 2, dot: 0, symbols: []string{"l_paren"}},
				{prod: 2, dot: 1, symbols: []string{"l_paren", "ident"}},
				{prod: 2, dot: 2, symbols: []string{"r_paren"}},
				{prod: 3, dot: 0, symbols: []string{"ident"}},
			},
		},
		{
			caption: "productions contain an empty production",
			src: `
package
`,
			first: []first{
				{prod: 0, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "a nullable symbol lets FIRST see through it",
			src: `
expr,operand,access
access,l_bracket,expr,r_bracket,access
access
operand,ident
`,
			first: []first{
				{prod: 0, dot: 0, symbols: []string{"ident"}},
				{prod: 0, dot: 1, symbols: []string{"l_bracket"}, empty: true},
				{prod: 1, dot: 0, symbols: []string{"l_bracket"}},
				{prod: 1, dot: 4, symbols: []string{"l_bracket"}, empty: true},
				{prod: 2, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "actions take no part in FIRST",
			src: `
expr,70,operand,71,access,72
access,l_bracket,expr,r_bracket,access
access
operand,126,ident
`,
			first: []first{
				{prod: 0, dot: 0, symbols: []string{"ident"}},
				{prod: 0, dot: 1, symbols: []string{"l_bracket"}, empty: true},
				{prod: 3, dot: 0, symbols: []string{"ident"}},
			},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			prods := genTestProductions(t, tt.src)
			fst, err := genFirstSet(prods)
			if err != nil {
				t.Fatal(err)
			}

			for _, ttFirst := range tt.first {
				actualFirst, err := fst.find(prods[ttFirst.prod], ttFirst.dot)
				if err != nil {
					t.Fatalf("failed to get a FIRST set; production: %v, dot: %v, error: %v", ttFirst.prod, ttFirst.dot, err)
				}

				expectedFirst := genExpectedFirstEntry(t, ttFirst.symbols, ttFirst.empty)

				testFirst(t, actualFirst, expectedFirst)
			}
		})
	}
}

func TestGenFirst_UndefinedNonTerminal(t *testing.T) {
	prods := []*Production{
		{
			Num:     0,
			LHS:     genTestSymbol(t, "expr"),
			symbols: nil,
		},
		{
			Num: 1,
			LHS: genTestSymbol(t, "package"),
		},
	}
	prods[1].symbols = append(prods[1].symbols, genTestSymbol(t, "operand"))
	_, err := genFirstSet(prods)
	if err == nil {
		t.Fatal("expected error didn't occur")
	}
}

func genExpectedFirstEntry(t *testing.T, symbols []string, empty bool) *firstEntry {
	t.Helper()

	entry := newFirstEntry()
	if empty {
		entry.addEmpty()
	}
	for _, sym := range symbols {
		entry.add(genTestSymbol(t, sym))
	}

	return entry
}

func testFirst(t *testing.T, actual, expected *firstEntry) {
	if actual.empty != expected.empty {
		t.Errorf("empty is mismatched\nwant: %v\ngot: %v", expected.empty, actual.empty)
	}

	if len(actual.symbols) != len(expected.symbols) {
		t.Fatalf("invalid FIRST set\nwant: %+v\ngot: %+v", expected.symbols, actual.symbols)
	}

	for eSym := range expected.symbols {
		if _, ok := actual.symbols[eSym]; !ok {
			t.Fatalf("invalid FIRST set\nwant: %+v\ngot: %+v", expected.symbols, actual.symbols)
		}
	}
}
