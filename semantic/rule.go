package semantic

import (
	"fmt"

	"github.com/nihei9/minigo/attribute"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/symtab"
)

// Context is the state rules read and write: the attribute frames of the
// symbols on the parse stack and the symbol table.
type Context struct {
	Attrs   *attribute.Store
	Symbols *symtab.Table

	err error
}

func NewContext(attrs *attribute.Store, syms *symtab.Table) *Context {
	return &Context{
		Attrs:   attrs,
		Symbols: syms,
	}
}

// get returns a frame of sym. A missing frame means the productions and the
// catalog disagree; it is remembered and a scratch frame is returned so the
// rule can finish.
func (c *Context) get(sym symbol.Symbol, depth int) *attribute.Frame {
	f, err := c.Attrs.Attributes(sym, depth)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return &attribute.Frame{}
	}
	return f
}

func (c *Context) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Rule is a semantic action. Productions refer to a rule by its position in
// the catalog.
type Rule struct {
	Name string

	// Always marks a rule that runs even when panic-mode recovery discards it.
	Always bool

	// OpensScope marks a rule starting a scope that an Always rule later in
	// the same production ends.
	OpensScope bool

	fn func(c *Context) error
}

// Apply runs the rule. A *Error is a diagnostic for the checked program; any
// other error is an internal failure.
func (r *Rule) Apply(c *Context) error {
	c.err = nil
	err := r.fn(c)
	if c.err != nil {
		return fmt.Errorf("%v: %w", r.Name, c.err)
	}
	return err
}

func (r *Rule) String() string {
	return r.Name
}
