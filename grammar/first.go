package grammar

import (
	"fmt"

	"github.com/nihei9/minigo/grammar/symbol"
)

type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[symbol.Symbol]struct{}{},
		empty:   false,
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

type firstSet struct {
	set map[symbol.Symbol]*firstEntry
}

func newFirstSet(prods []*Production) *firstSet {
	fst := &firstSet{
		set: map[symbol.Symbol]*firstEntry{},
	}
	for _, prod := range prods {
		if _, ok := fst.set[prod.LHS]; ok {
			continue
		}
		fst.set[prod.LHS] = newFirstEntry()
	}
	return fst
}

// find returns FIRST of the symbol sequence starting at head in prod's
// right-hand side. Actions take no part in it.
func (fst *firstSet) find(prod *Production, head int) (*firstEntry, error) {
	return fst.findBySymbols(prod.Symbols()[head:])
}

func (fst *firstSet) findBySymbols(syms []symbol.Symbol) (*firstEntry, error) {
	entry := newFirstEntry()
	for _, sym := range syms {
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		for s := range e.symbols {
			entry.add(s)
		}
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

func (fst *firstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	return fst.set[sym]
}

func genFirstSet(prods []*Production) (*firstSet, error) {
	first := newFirstSet(prods)
	for {
		more := false
		for _, prod := range prods {
			e := first.findBySymbol(prod.LHS)
			changed, err := genProdFirstEntry(first, e, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return first, nil
}

func genProdFirstEntry(first *firstSet, acc *firstEntry, prod *Production) (bool, error) {
	if prod.IsEmpty() {
		return acc.addEmpty(), nil
	}

	changed := false
	for _, sym := range prod.Symbols() {
		if sym.IsTerminal() {
			return acc.add(sym) || changed, nil
		}

		e := first.findBySymbol(sym)
		if e == nil {
			return false, fmt.Errorf("symbol %v has no production", sym)
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed, nil
		}
	}
	return acc.addEmpty() || changed, nil
}
