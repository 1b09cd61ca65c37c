package semantic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nihei9/minigo/attribute"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/types"
)

func typed(t types.Type, dims ...int) *attribute.Frame {
	return &attribute.Frame{
		TypeDim: types.TypeDim{
			Type: t,
			Dims: dims,
		},
	}
}

func lit(t types.Type) *attribute.Frame {
	return &attribute.Frame{
		TypeDim:   types.Scalar(t),
		IsLiteral: true,
		IsConst:   true,
	}
}

func TestCheckTypes(t *testing.T) {
	fn := typed(types.Int)
	fn.IsFunction = true
	fn.Name = "f"

	tests := []struct {
		left   *attribute.Frame
		right  *attribute.Frame
		result types.TypeDim
		msg    string
	}{
		{left: typed(types.Int), right: typed(types.Int), result: types.Scalar(types.Int)},
		{left: typed(types.Int), right: typed(types.Int64), msg: "Types mismatch"},
		{left: typed(types.Uint64), right: lit(types.Int), result: types.Scalar(types.Uint64)},
		{left: lit(types.Int), right: typed(types.Int32), result: types.Scalar(types.Int32)},
		{left: typed(types.Float32), right: lit(types.Float64), result: types.Scalar(types.Float32)},
		{left: typed(types.Int32), right: lit(types.Float64), msg: "Types mismatch"},
		{left: typed(types.Float64), right: lit(types.Int), msg: "Types mismatch"},
		{left: typed(types.String), right: lit(types.String), result: types.Scalar(types.String)},
		{left: typed(types.Rune), right: lit(types.Int), msg: "Types mismatch"},
		{left: lit(types.Int), right: lit(types.Int), result: types.Scalar(types.Int)},
		{left: lit(types.Int), right: lit(types.Float64), msg: "Types mismatch"},
		{left: typed(types.Int, 3), right: typed(types.Int, 3), result: types.TypeDim{Type: types.Int, Dims: []int{3}}},
		{left: typed(types.Int, 3), right: typed(types.Int, 4), msg: "Dimensions mismatch"},
		{left: typed(types.Int, 3), right: typed(types.Int), msg: "Dimensions mismatch"},
		{left: typed(types.Invalid), right: typed(types.String), result: types.Scalar(types.Invalid)},
		{left: typed(types.Int), right: typed(types.Invalid), result: types.Scalar(types.Invalid)},
		{left: typed(types.Int), right: fn, msg: "Function \"f\" used as value"},
		{left: typed(types.Int), right: typed(types.Void), msg: "Expression has no value"},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			td, err := checkTypes(tt.left, tt.right, 7)
			if tt.msg != "" {
				testSemanticError(t, err, tt.msg, 7)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !td.Equal(tt.result) {
				t.Fatalf("unexpected result type; want: %v, got: %v", tt.result, td)
			}
		})
	}
}

func TestCheckOperation(t *testing.T) {
	tests := []struct {
		td  types.TypeDim
		op  symbol.Symbol
		msg string
	}{
		{td: types.Scalar(types.Int), op: symbol.Plus},
		{td: types.Scalar(types.Int), op: symbol.Mod},
		{td: types.Scalar(types.Uint), op: symbol.ShiftLeft},
		{td: types.Scalar(types.Int), op: symbol.Lt},
		{td: types.Scalar(types.Int), op: symbol.LogicalAnd, msg: "Invalid operation for integer type"},
		{td: types.Scalar(types.Float64), op: symbol.Div},
		{td: types.Scalar(types.Float64), op: symbol.Mod, msg: "Invalid operation for floating point type"},
		{td: types.Scalar(types.Float32), op: symbol.BitAnd, msg: "Invalid operation for floating point type"},
		{td: types.Scalar(types.Float32), op: symbol.ShiftRight, msg: "Invalid operation for floating point type"},
		{td: types.Scalar(types.String), op: symbol.Plus},
		{td: types.Scalar(types.String), op: symbol.Eq},
		{td: types.Scalar(types.String), op: symbol.Lte},
		{td: types.Scalar(types.String), op: symbol.Minus, msg: "Invalid operation for string type"},
		{td: types.Scalar(types.Rune), op: symbol.Neq},
		{td: types.Scalar(types.Rune), op: symbol.Plus, msg: "Invalid operation for rune type"},
		{td: types.Scalar(types.Bool), op: symbol.LogicalOr},
		{td: types.Scalar(types.Bool), op: symbol.Eq},
		{td: types.Scalar(types.Bool), op: symbol.Lt, msg: "Invalid operation for bool type"},
		{td: types.Scalar(types.Bool), op: symbol.Plus, msg: "Invalid operation for bool type"},
		{td: types.TypeDim{Type: types.Int, Dims: []int{2}}, op: symbol.Plus, msg: "Invalid operation for array type"},
		{td: types.TypeDim{Type: types.Int, Dims: []int{2}}, op: symbol.Eq, msg: "Invalid operation for array type"},
		{td: types.Scalar(types.Void), op: symbol.Eq, msg: "Invalid operation for void type"},
		{td: types.Scalar(types.Invalid), op: symbol.Mod},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			err := checkOperation(tt.td, tt.op, 3)
			if tt.msg != "" {
				testSemanticError(t, err, tt.msg, 3)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckUnary(t *testing.T) {
	tests := []struct {
		td  types.TypeDim
		op  symbol.Symbol
		msg string
	}{
		{td: types.Scalar(types.Int), op: symbol.Minus},
		{td: types.Scalar(types.Float32), op: symbol.Plus},
		{td: types.Scalar(types.Uint32), op: symbol.BitXor},
		{td: types.Scalar(types.Float64), op: symbol.BitXor, msg: "Invalid operation for floating point type"},
		{td: types.Scalar(types.Bool), op: symbol.Not},
		{td: types.Scalar(types.Int), op: symbol.Not, msg: "Invalid operation for integer type"},
		{td: types.Scalar(types.String), op: symbol.Minus, msg: "Invalid operation for string type"},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			err := checkUnary(tt.td, tt.op, 1)
			if tt.msg != "" {
				testSemanticError(t, err, tt.msg, 1)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConvertible(t *testing.T) {
	tests := []struct {
		from types.TypeDim
		to   types.TypeDim
		ok   bool
	}{
		{from: types.Scalar(types.Int), to: types.Scalar(types.Float64), ok: true},
		{from: types.Scalar(types.Float32), to: types.Scalar(types.Uint32), ok: true},
		{from: types.Scalar(types.Rune), to: types.Scalar(types.Int32), ok: true},
		{from: types.Scalar(types.Int64), to: types.Scalar(types.Rune), ok: true},
		{from: types.Scalar(types.Rune), to: types.Scalar(types.String), ok: true},
		{from: types.Scalar(types.String), to: types.Scalar(types.String), ok: true},
		{from: types.Scalar(types.String), to: types.Scalar(types.Int), ok: false},
		{from: types.Scalar(types.Bool), to: types.Scalar(types.Int), ok: false},
		{from: types.Scalar(types.Float64), to: types.Scalar(types.Rune), ok: false},
		{from: types.TypeDim{Type: types.Int, Dims: []int{2}}, to: types.TypeDim{Type: types.Int, Dims: []int{2}}, ok: true},
		{from: types.TypeDim{Type: types.Int, Dims: []int{2}}, to: types.TypeDim{Type: types.Int64, Dims: []int{2}}, ok: false},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			if convertible(tt.from, tt.to) != tt.ok {
				t.Fatalf("unexpected result; from: %v, to: %v, want: %v", tt.from, tt.to, tt.ok)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	rules := Catalog()
	if len(rules) != 147 {
		t.Fatalf("unexpected rule count: %v", len(rules))
	}
	names := map[int]string{
		0:   "declareConst",
		1:   "setType(bool)",
		11:  "setType(string)",
		12:  "decodeInt(decimal_lit)",
		14:  "decodeInt(hex_lit)",
		15:  "forwardDims",
		16:  "backwardDims",
		17:  "backwardType",
		18:  "declareVar",
		19:  "importPath(string_lit)",
		20:  "importPath(raw_string_lit)",
		28:  "endScope",
		46:  "up(simple_stmt,simple_stmt_tail)",
		75:  "operate(or_expr_tail,or_op,and_expr)",
		103: "operate(mul_expr_tail,mul_op,unary_expr)",
		128: "resolve",
		146: "boolLiteral(kw_false)",
	}
	for id, name := range names {
		if rules[id].Name != name {
			t.Errorf("unexpected rule #%v; want: %v, got: %v", id, name, rules[id].Name)
		}
	}
	openers := map[string]bool{
		"declareFunc": true,
		"blockOpen":   true,
		"beginScope":  true,
		"elseOpen":    true,
	}
	for id, r := range rules {
		if r.Always != (r.Name == "endScope") {
			t.Errorf("only endScope may run during recovery; #%v: %v", id, r.Name)
		}
		if r.OpensScope != openers[r.Name] {
			t.Errorf("unexpected scope opener flag; #%v: %v", id, r.Name)
		}
	}
}

func testSemanticError(t *testing.T, err error, msg string, line int) {
	t.Helper()

	var semErr *Error
	if !errors.As(err, &semErr) {
		t.Fatalf("expected a semantic error; got: %v", err)
	}
	if semErr.Message != msg || semErr.Line != line {
		t.Fatalf("unexpected error; want: %v at line %v, got: %v", msg, line, semErr)
	}
}
