package attribute

import (
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/symtab"
	"github.com/nihei9/minigo/types"
)

type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueRune
	ValueString
)

// Value is the decoded payload of a literal. Only the field matching Kind is
// meaningful.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Int    uint64
	Float  float64
	Rune   rune
	String string
}

// Frame holds the attributes of one occurrence of a grammar symbol. The same
// frame carries the inherited attributes written before the occurrence is
// expanded and the synthesized ones written after.
type Frame struct {
	sym symbol.Symbol

	TypeDim   types.TypeDim
	IsConst   bool
	IsLvalue  bool
	IsLiteral bool

	// IsFunction marks a bare function name; IsCall marks the result of a call.
	IsFunction   bool
	IsCall       bool
	IsAssignment bool
	HasValue     bool

	Line      int
	Operation symbol.Symbol
	Name      string
	Lexeme    string
	Value     Value

	// Params holds parameter types while a signature is built or a call is
	// checked; Count counts the items seen so far.
	Params []types.TypeDim
	Count  int

	ReturnType types.TypeDim
	InLoop     bool

	Record *symtab.Record
}

func (f *Frame) Symbol() symbol.Symbol {
	return f.sym
}

// CopyFrom overwrites every attribute of f with those of src. f keeps its
// identity as an occurrence of its own symbol.
func (f *Frame) CopyFrom(src *Frame) {
	sym := f.sym
	*f = *src
	f.sym = sym
	f.TypeDim = src.TypeDim.Clone()
}

// SetContext copies the control-flow context of src into f.
func (f *Frame) SetContext(src *Frame) {
	f.ReturnType = src.ReturnType.Clone()
	f.InLoop = src.InLoop
}
