package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nihei9/minigo/grammar/symbol"
)

// Conflict is a cell of the parse table claimed by more than one production.
type Conflict struct {
	NonTerminal symbol.Symbol
	Terminal    symbol.Symbol
	Productions []int
}

func (c *Conflict) String() string {
	nums := make([]string, len(c.Productions))
	for i, n := range c.Productions {
		nums[i] = fmt.Sprintf("%v", n+1)
	}
	return fmt.Sprintf("%v on %v: productions %v", c.NonTerminal, c.Terminal, strings.Join(nums, ", "))
}

// ConflictError reports that a grammar is not LL(1).
type ConflictError struct {
	Conflicts []*Conflict
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v conflicts", len(e.Conflicts))
	for _, c := range e.Conflicts {
		fmt.Fprintf(&b, "\n    %v", c)
	}
	return b.String()
}

// BuildParsingTable computes the LL(1) parse table of prods. A production
// A → α fills M[A, a] for every a in FIRST(α) and, when α is nullable,
// M[A, b] for every b in FOLLOW(A).
func BuildParsingTable(prods []*Production) (*ParsingTable, error) {
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

	entries := newEntries()
	conflicts := map[int]*Conflict{}
	set := func(nt, term symbol.Symbol, prod *Production) {
		i := entryIndex(nt, term)
		if entries[i] == noProduction || entries[i] == prod.Num {
			entries[i] = prod.Num
			return
		}
		c, ok := conflicts[i]
		if !ok {
			c = &Conflict{
				NonTerminal: nt,
				Terminal:    term,
				Productions: []int{entries[i]},
			}
			conflicts[i] = c
		}
		c.Productions = append(c.Productions, prod.Num)
	}

	for _, prod := range prods {
		fst, err := first.find(prod, 0)
		if err != nil {
			return nil, err
		}
		for term := range fst.symbols {
			set(prod.LHS, term, prod)
		}
		if !fst.empty {
			continue
		}
		flw, err := follow.find(prod.LHS)
		if err != nil {
			return nil, err
		}
		for term := range flw.symbols {
			set(prod.LHS, term, prod)
		}
	}

	if len(conflicts) > 0 {
		cErr := &ConflictError{}
		for _, c := range conflicts {
			cErr.Conflicts = append(cErr.Conflicts, c)
		}
		sort.Slice(cErr.Conflicts, func(i, j int) bool {
			ci, cj := cErr.Conflicts[i], cErr.Conflicts[j]
			if ci.NonTerminal != cj.NonTerminal {
				return ci.NonTerminal < cj.NonTerminal
			}
			return ci.Terminal < cj.Terminal
		})
		return nil, cErr
	}

	return newParsingTable(prods, entries)
}
