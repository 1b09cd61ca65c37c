package grammar

import (
	"fmt"

	"github.com/nihei9/minigo/grammar/symbol"
)

type followEntry struct {
	symbols map[symbol.Symbol]struct{}
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[symbol.Symbol]struct{}{},
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false
	if fst != nil {
		for sym := range fst.symbols {
			if e.add(sym) {
				changed = true
			}
		}
	}
	if flw != nil {
		for sym := range flw.symbols {
			if e.add(sym) {
				changed = true
			}
		}
	}
	return changed
}

type followSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollow(prods []*Production) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods {
		if _, ok := flw.set[prod.LHS]; ok {
			continue
		}
		flw.set[prod.LHS] = newFollowEntry()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

// genFollowSet computes FOLLOW for every non-terminal. The end-of-input
// terminal follows the start symbol.
func genFollowSet(prods []*Production, first *firstSet, start symbol.Symbol) (*followSet, error) {
	follow := newFollow(prods)
	startEntry, err := follow.find(start)
	if err != nil {
		return nil, err
	}
	startEntry.add(symbol.EOF)

	for {
		more := false
		for _, prod := range prods {
			for i, sym := range prod.Symbols() {
				if sym.IsTerminal() {
					continue
				}
				e, err := follow.find(sym)
				if err != nil {
					return nil, err
				}
				fst, err := first.find(prod, i+1)
				if err != nil {
					return nil, err
				}
				if e.merge(fst, nil) {
					more = true
				}
				if fst.empty {
					flw, err := follow.find(prod.LHS)
					if err != nil {
						return nil, err
					}
					if e.merge(nil, flw) {
						more = true
					}
				}
			}
		}
		if !more {
			break
		}
	}

	return follow, nil
}
