// Package types describes the types of the checked language: a scalar type
// paired with a list of array dimensions.
package types

import (
	"fmt"
	"strings"
)

type Type int

const (
	Void Type = iota
	Bool
	Int
	Int32
	Int64
	Uint
	Uint32
	Uint64
	Float32
	Float64
	Rune
	String

	// Invalid is the type of an expression that already produced a
	// diagnostic. Checks involving it always pass.
	Invalid
)

var typeNames = [...]string{
	Void:    "void",
	Bool:    "bool",
	Int:     "int",
	Int32:   "int32",
	Int64:   "int64",
	Uint:    "uint",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Rune:    "rune",
	String:  "string",
	Invalid: "invalid",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("<type %d>", int(t))
	}
	return typeNames[t]
}

func (t Type) IsInteger() bool {
	switch t {
	case Int, Int32, Int64, Uint, Uint32, Uint64:
		return true
	}
	return false
}

func (t Type) IsFloat() bool {
	return t == Float32 || t == Float64
}

func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// Category names the family a type belongs to in diagnostics.
func (t Type) Category() string {
	switch {
	case t.IsInteger():
		return "integer"
	case t.IsFloat():
		return "floating point"
	}
	switch t {
	case Bool:
		return "bool"
	case Rune:
		return "rune"
	case String:
		return "string"
	case Invalid:
		return "invalid"
	}
	return "void"
}

// TypeDim is a scalar type and its array dimensions, outermost first. A nil or
// empty Dims denotes a scalar.
type TypeDim struct {
	Type Type
	Dims []int
}

func Scalar(t Type) TypeDim {
	return TypeDim{
		Type: t,
	}
}

func (td TypeDim) IsArray() bool {
	return len(td.Dims) > 0
}

func (td TypeDim) IsInvalid() bool {
	return td.Type == Invalid
}

func (td TypeDim) IsScalar(t Type) bool {
	return td.Type == t && len(td.Dims) == 0
}

// SameDims compares dimension lists pointwise.
func (td TypeDim) SameDims(other TypeDim) bool {
	if len(td.Dims) != len(other.Dims) {
		return false
	}
	for i, d := range td.Dims {
		if other.Dims[i] != d {
			return false
		}
	}
	return true
}

func (td TypeDim) Equal(other TypeDim) bool {
	return td.Type == other.Type && td.SameDims(other)
}

// Clone returns a copy that shares no dimension storage with td.
func (td TypeDim) Clone() TypeDim {
	c := TypeDim{
		Type: td.Type,
	}
	if len(td.Dims) > 0 {
		c.Dims = make([]int, len(td.Dims))
		copy(c.Dims, td.Dims)
	}
	return c
}

// Elem returns the type of one element of an array.
func (td TypeDim) Elem() TypeDim {
	if len(td.Dims) == 0 {
		return td.Clone()
	}
	c := td.Clone()
	c.Dims = c.Dims[1:]
	if len(c.Dims) == 0 {
		c.Dims = nil
	}
	return c
}

func (td TypeDim) String() string {
	var b strings.Builder
	for _, d := range td.Dims {
		fmt.Fprintf(&b, "[%v]", d)
	}
	b.WriteString(td.Type.String())
	return b.String()
}

// MarshalText lets a TypeDim appear as "[3]int" in reports.
func (td TypeDim) MarshalText() ([]byte, error) {
	return []byte(td.String()), nil
}
