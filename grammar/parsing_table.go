package grammar

import (
	"fmt"

	"github.com/nihei9/minigo/compressor"
	"github.com/nihei9/minigo/grammar/symbol"
)

const noProduction = -1

func newEntries() []int {
	entries := make([]int, symbol.NonTerminalCount*symbol.TerminalCount)
	for i := range entries {
		entries[i] = noProduction
	}
	return entries
}

func entryIndex(nt, term symbol.Symbol) int {
	return nt.Row()*symbol.TerminalCount + int(term)
}

// ParsingTable maps (non-terminal, lookahead terminal) to the production to
// expand. The cells are kept in a row displacement table since almost all of
// them are empty.
type ParsingTable struct {
	prods   []*Production
	table   *compressor.RowDisplacementTable
	epsilon []int
}

func newParsingTable(prods []*Production, entries []int) (*ParsingTable, error) {
	orig, err := compressor.NewOriginalTable(entries, symbol.TerminalCount)
	if err != nil {
		return nil, err
	}
	tab := compressor.NewRowDisplacementTable(noProduction)
	err = tab.Compress(orig)
	if err != nil {
		return nil, err
	}

	epsilon := make([]int, symbol.NonTerminalCount)
	for i := range epsilon {
		epsilon[i] = noProduction
	}
	for _, prod := range prods {
		if !prod.IsEmpty() || epsilon[prod.LHS.Row()] != noProduction {
			continue
		}
		epsilon[prod.LHS.Row()] = prod.Num
	}

	return &ParsingTable{
		prods:   prods,
		table:   tab,
		epsilon: epsilon,
	}, nil
}

// Lookup returns the production selected for nt when term is the lookahead.
func (t *ParsingTable) Lookup(nt, term symbol.Symbol) (*Production, bool) {
	if !nt.IsNonTerminal() || !term.IsTerminal() {
		return nil, false
	}
	n, err := t.table.Lookup(nt.Row(), int(term))
	if err != nil || n == noProduction {
		return nil, false
	}
	return t.prods[n], true
}

// EmptyProduction returns the ε-production of nt if it has one.
func (t *ParsingTable) EmptyProduction(nt symbol.Symbol) (*Production, bool) {
	if !nt.IsNonTerminal() {
		return nil, false
	}
	n := t.epsilon[nt.Row()]
	if n == noProduction {
		return nil, false
	}
	return t.prods[n], true
}

// Expected returns the terminals that have an entry in nt's row.
func (t *ParsingTable) Expected(nt symbol.Symbol) []symbol.Symbol {
	var terms []symbol.Symbol
	for _, term := range symbol.Terminals() {
		if _, ok := t.Lookup(nt, term); ok {
			terms = append(terms, term)
		}
	}
	return terms
}

func (t *ParsingTable) Productions() []*Production {
	return t.prods
}

// Size returns the number of slots of the compressed table and of the dense
// table it replaces.
func (t *ParsingTable) Size() (int, int) {
	rows, cols := t.table.OriginalTableSize()
	return len(t.table.Entries), rows * cols
}

func (t *ParsingTable) String() string {
	compressed, dense := t.Size()
	return fmt.Sprintf("%v productions, %v/%v slots", len(t.prods), compressed, dense)
}
