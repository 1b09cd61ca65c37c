// Package symtab implements a scoped symbol table. Each name maps to a stack
// of records so that an inner declaration hides an outer one until its scope
// ends.
package symtab

import (
	"fmt"
	"sort"

	"github.com/nihei9/minigo/types"
)

// Record is what a declaration leaves behind.
type Record struct {
	TypeDim    types.TypeDim   `json:"type" yaml:"type"`
	IsConst    bool            `json:"const,omitempty" yaml:"const,omitempty"`
	IsFunction bool            `json:"function,omitempty" yaml:"function,omitempty"`
	Params     []types.TypeDim `json:"params,omitempty" yaml:"params,omitempty"`
	Line       int             `json:"line" yaml:"line"`
}

type Table struct {
	scopes  [][]string
	records map[string][]*Record
}

// New returns a table with the global scope open.
func New() *Table {
	return &Table{
		scopes:  [][]string{nil},
		records: map[string][]*Record{},
	}
}

func (t *Table) StartScope() {
	t.scopes = append(t.scopes, nil)
}

// EndScope removes the most recent record of every name declared in the
// innermost scope. The global scope cannot be ended.
func (t *Table) EndScope() error {
	if len(t.scopes) <= 1 {
		return fmt.Errorf("no scope to end")
	}

	top := t.scopes[len(t.scopes)-1]
	for _, name := range top {
		recs := t.records[name]
		if len(recs) <= 1 {
			delete(t.records, name)
			continue
		}
		recs[len(recs)-1] = nil
		t.records[name] = recs[:len(recs)-1]
	}
	t.scopes = t.scopes[:len(t.scopes)-1]

	return nil
}

// AddSymbol declares name in the innermost scope and returns its fresh
// record. It fails iff name is already declared in that scope.
func (t *Table) AddSymbol(name string) (*Record, bool) {
	top := len(t.scopes) - 1
	for _, n := range t.scopes[top] {
		if n == name {
			return nil, false
		}
	}
	t.scopes[top] = append(t.scopes[top], name)

	rec := &Record{}
	t.records[name] = append(t.records[name], rec)
	return rec, true
}

func (t *Table) HasSymbol(name string) bool {
	_, ok := t.records[name]
	return ok
}

// Record returns the innermost visible record of name.
func (t *Table) Record(name string) (*Record, bool) {
	recs, ok := t.records[name]
	if !ok || len(recs) == 0 {
		return nil, false
	}
	return recs[len(recs)-1], true
}

// Depth returns the number of open scopes, the global one included.
func (t *Table) Depth() int {
	return len(t.scopes)
}

// Symbol is a visible name and its innermost record.
type Symbol struct {
	Name   string  `json:"name" yaml:"name"`
	Record *Record `json:"record" yaml:"record"`
}

// Visible returns every visible name sorted by name.
func (t *Table) Visible() []*Symbol {
	syms := make([]*Symbol, 0, len(t.records))
	for name := range t.records {
		rec, _ := t.Record(name)
		syms = append(syms, &Symbol{
			Name:   name,
			Record: rec,
		})
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Name < syms[j].Name
	})
	return syms
}
