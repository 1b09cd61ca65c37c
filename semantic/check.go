package semantic

import (
	"github.com/nihei9/minigo/attribute"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/types"
)

// checkValue rejects operands that do not denote a value.
func checkValue(f *attribute.Frame, line int) error {
	if f.TypeDim.IsInvalid() {
		return nil
	}
	if f.IsFunction {
		return errorf(line, "Function \"%v\" used as value", f.Name)
	}
	if f.TypeDim.Type == types.Void {
		return errorf(line, "Expression has no value")
	}
	return nil
}

// checkTypes verifies that left and right can be combined and returns the
// type of the result. An untyped literal takes the type of a typed operand of
// its default family: integer literals unify with every integer type, float
// literals with every floating point type.
func checkTypes(left, right *attribute.Frame, line int) (types.TypeDim, error) {
	if left.TypeDim.IsInvalid() || right.TypeDim.IsInvalid() {
		return types.Scalar(types.Invalid), nil
	}
	if err := checkValue(left, line); err != nil {
		return types.Scalar(types.Invalid), err
	}
	if err := checkValue(right, line); err != nil {
		return types.Scalar(types.Invalid), err
	}
	if !left.TypeDim.SameDims(right.TypeDim) {
		return types.Scalar(types.Invalid), errorf(line, "Dimensions mismatch")
	}

	if left.IsLiteral == right.IsLiteral {
		if left.TypeDim.Type != right.TypeDim.Type {
			return types.Scalar(types.Invalid), errorf(line, "Types mismatch")
		}
		return left.TypeDim.Clone(), nil
	}

	lit, typed := left, right
	if right.IsLiteral {
		lit, typed = right, left
	}
	switch {
	case lit.TypeDim.Type == types.Int && typed.TypeDim.Type.IsInteger():
	case lit.TypeDim.Type == types.Float64 && typed.TypeDim.Type.IsFloat():
	case lit.TypeDim.Type == typed.TypeDim.Type:
	default:
		return types.Scalar(types.Invalid), errorf(line, "Types mismatch")
	}
	return typed.TypeDim.Clone(), nil
}

// checkAssignable checks value against a declared type.
func checkAssignable(target types.TypeDim, value *attribute.Frame, line int) error {
	_, err := checkTypes(&attribute.Frame{TypeDim: target}, value, line)
	return err
}

func isEquality(op symbol.Symbol) bool {
	return op == symbol.Eq || op == symbol.Neq
}

func isOrdering(op symbol.Symbol) bool {
	switch op {
	case symbol.Lt, symbol.Gt, symbol.Lte, symbol.Gte:
		return true
	}
	return false
}

func isComparison(op symbol.Symbol) bool {
	return isEquality(op) || isOrdering(op)
}

func isLogical(op symbol.Symbol) bool {
	switch op {
	case symbol.LogicalAnd, symbol.LogicalOr, symbol.Not:
		return true
	}
	return false
}

// integerOnly are the operators only integer operands accept.
func integerOnly(op symbol.Symbol) bool {
	switch op {
	case symbol.Mod, symbol.BitAnd, symbol.BitAndNot, symbol.BitOr, symbol.BitXor, symbol.ShiftLeft, symbol.ShiftRight:
		return true
	}
	return false
}

// checkOperation verifies that op may be applied to an operand of type td.
func checkOperation(td types.TypeDim, op symbol.Symbol, line int) error {
	if td.IsInvalid() {
		return nil
	}
	if td.IsArray() {
		return errorf(line, "Invalid operation for array type")
	}

	t := td.Type
	legal := false
	switch {
	case t == types.Void:
	case isEquality(op):
		legal = true
	case isOrdering(op):
		legal = t.IsNumeric() || t == types.Rune || t == types.String
	case isLogical(op):
		legal = t == types.Bool
	case op == symbol.Plus:
		legal = t.IsNumeric() || t == types.String
	case op == symbol.Minus, op == symbol.Times, op == symbol.Div:
		legal = t.IsNumeric()
	case integerOnly(op):
		legal = t.IsInteger()
	}
	if !legal {
		return errorf(line, "Invalid operation for %v type", t.Category())
	}
	return nil
}

// checkUnary verifies a prefix operator. Unary ^ is bitwise complement.
func checkUnary(td types.TypeDim, op symbol.Symbol, line int) error {
	if td.IsInvalid() {
		return nil
	}
	if td.IsArray() {
		return errorf(line, "Invalid operation for array type")
	}

	t := td.Type
	legal := false
	switch op {
	case symbol.Plus, symbol.Minus:
		legal = t.IsNumeric()
	case symbol.Not:
		legal = t == types.Bool
	case symbol.BitXor:
		legal = t.IsInteger()
	}
	if !legal {
		return errorf(line, "Invalid operation for %v type", t.Category())
	}
	return nil
}

var assignOps = map[symbol.Symbol]symbol.Symbol{
	symbol.PlusAssign:       symbol.Plus,
	symbol.MinusAssign:      symbol.Minus,
	symbol.TimesAssign:      symbol.Times,
	symbol.DivAssign:        symbol.Div,
	symbol.ModAssign:        symbol.Mod,
	symbol.BitAndAssign:     symbol.BitAnd,
	symbol.BitAndNotAssign:  symbol.BitAndNot,
	symbol.BitOrAssign:      symbol.BitOr,
	symbol.BitXorAssign:     symbol.BitXor,
	symbol.ShiftLeftAssign:  symbol.ShiftLeft,
	symbol.ShiftRightAssign: symbol.ShiftRight,
}
