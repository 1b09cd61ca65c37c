package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/minigo/grammar/symbol"
)

type ItemKind int

const (
	ItemSymbol ItemKind = iota
	ItemAction
)

// Item is one element of a right-hand side: a grammar symbol or a reference to
// a semantic rule by its catalog position.
type Item struct {
	Kind   ItemKind
	Symbol symbol.Symbol
	Action int
}

func SymbolItem(sym symbol.Symbol) Item {
	return Item{
		Kind:   ItemSymbol,
		Symbol: sym,
	}
}

func ActionItem(id int) Item {
	return Item{
		Kind:   ItemAction,
		Action: id,
	}
}

func (it Item) String() string {
	if it.Kind == ItemAction {
		return fmt.Sprintf("#%v", it.Action)
	}
	return it.Symbol.String()
}

// Production is a row of the productions table. Num is its 0-based position.
type Production struct {
	Num     int
	LHS     symbol.Symbol
	Items   []Item
	symbols []symbol.Symbol
}

func newProduction(num int, lhs symbol.Symbol, items []Item) (*Production, error) {
	if !lhs.IsNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v", lhs)
	}

	var syms []symbol.Symbol
	for _, it := range items {
		if it.Kind != ItemSymbol {
			continue
		}
		if !it.Symbol.IsValid() {
			return nil, fmt.Errorf("a symbol of RHS must be a valid symbol; LHS: %v, symbol: %v", lhs, it.Symbol)
		}
		syms = append(syms, it.Symbol)
	}

	return &Production{
		Num:     num,
		LHS:     lhs,
		Items:   items,
		symbols: syms,
	}, nil
}

// Symbols returns the grammar symbols of the right-hand side, actions omitted.
func (p *Production) Symbols() []symbol.Symbol {
	return p.symbols
}

func (p *Production) IsEmpty() bool {
	return len(p.symbols) == 0
}

func (p *Production) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", p.LHS)
	if len(p.Items) == 0 {
		fmt.Fprintf(&b, " ε")
	}
	for _, it := range p.Items {
		fmt.Fprintf(&b, " %v", it)
	}
	return b.String()
}
