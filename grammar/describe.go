package grammar

import (
	"sort"

	"github.com/nihei9/minigo/grammar/symbol"
)

// NonTerminalDescription lists the FIRST and FOLLOW terminals of a
// non-terminal in symbol order.
type NonTerminalDescription struct {
	Symbol   symbol.Symbol
	Nullable bool
	First    []symbol.Symbol
	Follow   []symbol.Symbol
}

// Describe computes FIRST and FOLLOW of every non-terminal having a
// production in prods.
func Describe(prods []*Production) ([]*NonTerminalDescription, error) {
	if len(prods) == 0 {
		return nil, semErrNoProduction
	}

	first, err := genFirstSet(prods)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSet(prods, first, symbol.Start)
	if err != nil {
		return nil, err
	}

	var descs []*NonTerminalDescription
	for _, nt := range symbol.NonTerminals() {
		fst := first.findBySymbol(nt)
		if fst == nil {
			continue
		}
		flw, err := follow.find(nt)
		if err != nil {
			return nil, err
		}
		descs = append(descs, &NonTerminalDescription{
			Symbol:   nt,
			Nullable: fst.empty,
			First:    sortSymbols(fst.symbols),
			Follow:   sortSymbols(flw.symbols),
		})
	}
	return descs, nil
}

func sortSymbols(set map[symbol.Symbol]struct{}) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(set))
	for sym := range set {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
