package semantic

import (
	"errors"
	"fmt"

	"github.com/nihei9/minigo/attribute"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/types"
)

// result resets f to a computed, non-addressable value of type td.
func result(f *attribute.Frame, td types.TypeDim, line int) {
	f.TypeDim = td
	f.IsConst = false
	f.IsLvalue = false
	f.IsLiteral = false
	f.IsFunction = false
	f.IsCall = false
	f.IsAssignment = false
	f.Params = nil
	f.Record = nil
	f.Line = line
}

// operate applies the operator of a tail to the value inherited from the
// left and the operand that follows the operator.
func operate(tail, op, operand symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("operate(%v,%v,%v)", tail, op, operand), func(c *Context) error {
		left := c.get(tail, 1)
		opr := c.get(op, 0)
		right := c.get(operand, 0)
		dst := c.get(tail, 0)

		isConst := left.IsConst && right.IsConst
		isLiteral := left.IsLiteral && right.IsLiteral
		line := left.Line

		if left.TypeDim.IsInvalid() || right.TypeDim.IsInvalid() {
			result(dst, types.Scalar(types.Invalid), line)
			return nil
		}
		if err := checkValue(left, opr.Line); err != nil {
			result(dst, types.Scalar(types.Invalid), line)
			return err
		}
		if err := checkOperation(left.TypeDim, opr.Operation, opr.Line); err != nil {
			result(dst, types.Scalar(types.Invalid), line)
			return err
		}
		td, err := checkTypes(left, right, opr.Line)
		if err != nil {
			result(dst, types.Scalar(types.Invalid), line)
			return err
		}
		if isComparison(opr.Operation) || isLogical(opr.Operation) {
			td = types.Scalar(types.Bool)
		}
		result(dst, td, line)
		dst.IsConst = isConst
		dst.IsLiteral = isLiteral
		return nil
	})
}

func unary(c *Context) error {
	operand := c.get(symbol.UnaryExpr, 0)
	op := c.get(symbol.UnaryOp, 0)
	dst := c.get(symbol.UnaryExpr, 1)

	isConst := operand.IsConst
	isLiteral := operand.IsLiteral
	td := operand.TypeDim.Clone()

	if err := checkValue(operand, op.Line); err != nil {
		result(dst, types.Scalar(types.Invalid), op.Line)
		return err
	}
	if err := checkUnary(td, op.Operation, op.Line); err != nil {
		result(dst, types.Scalar(types.Invalid), op.Line)
		return err
	}
	result(dst, td, op.Line)
	dst.IsConst = isConst
	dst.IsLiteral = isLiteral
	return nil
}

// describe names an operand in diagnostics.
func describe(f *attribute.Frame) string {
	if f.Name != "" {
		return f.Name
	}
	return f.TypeDim.String()
}

func index(c *Context) error {
	base := c.get(symbol.Access, 1)
	idx := c.get(symbol.Expr, 0)
	dst := c.get(symbol.Access, 0)
	line := c.get(symbol.LBracket, 0).Line

	dst.CopyFrom(base)
	dst.IsCall = false
	dst.IsLiteral = false
	if base.TypeDim.IsInvalid() {
		return nil
	}
	if base.IsFunction || !base.TypeDim.IsArray() {
		result(dst, types.Scalar(types.Invalid), base.Line)
		return errorf(line, "\"%v\" is not an array", describe(base))
	}
	dst.TypeDim = base.TypeDim.Elem()

	if idx.TypeDim.IsInvalid() {
		return nil
	}
	if err := checkValue(idx, line); err != nil {
		return err
	}
	if idx.TypeDim.IsArray() || !idx.TypeDim.Type.IsInteger() {
		return errorf(line, "Array index must be an integer")
	}
	return nil
}

func callInh(c *Context) error {
	callee := c.get(symbol.Access, 1)
	args := c.get(symbol.Args, 0)
	args.Name = callee.Name
	args.IsFunction = callee.IsFunction
	args.Params = callee.Params
	args.Count = 0
	return nil
}

// checkArg checks the n-th argument of a call. Surplus arguments are left to
// the count check in call.
func checkArg(call *attribute.Frame, n int, arg *attribute.Frame) error {
	if !call.IsFunction || n >= len(call.Params) {
		return nil
	}
	return checkAssignable(call.Params[n], arg, arg.Line)
}

func argFirst(c *Context) error {
	args := c.get(symbol.Args, 0)
	arg := c.get(symbol.Expr, 0)
	tail := c.get(symbol.ArgsTail, 0)
	tail.Name = args.Name
	tail.IsFunction = args.IsFunction
	tail.Params = args.Params
	tail.Count = 1
	return checkArg(args, 0, arg)
}

func argNext(c *Context) error {
	parent := c.get(symbol.ArgsTail, 1)
	arg := c.get(symbol.Expr, 0)
	tail := c.get(symbol.ArgsTail, 0)
	tail.Name = parent.Name
	tail.IsFunction = parent.IsFunction
	tail.Params = parent.Params
	tail.Count = parent.Count + 1
	return checkArg(parent, parent.Count, arg)
}

func call(c *Context) error {
	callee := c.get(symbol.Access, 1)
	args := c.get(symbol.Args, 0)
	dst := c.get(symbol.Access, 0)
	line := c.get(symbol.LParen, 0).Line

	if callee.TypeDim.IsInvalid() {
		result(dst, types.Scalar(types.Invalid), callee.Line)
		return nil
	}
	if !callee.IsFunction {
		result(dst, types.Scalar(types.Invalid), callee.Line)
		return errorf(line, "\"%v\" is not a function", describe(callee))
	}
	result(dst, callee.TypeDim.Clone(), callee.Line)
	dst.Name = callee.Name
	dst.IsCall = true
	if args.Count != len(callee.Params) {
		return errorf(line, "Wrong number of arguments in call to \"%v\"", callee.Name)
	}
	return nil
}

func resolve(c *Context) error {
	ident := c.get(symbol.Ident, 0)
	dst := c.get(symbol.Operand, 0)
	result(dst, types.Scalar(types.Invalid), ident.Line)
	dst.Name = ident.Lexeme
	if ident.Lexeme == "" {
		return nil
	}

	rec, ok := c.Symbols.Record(ident.Lexeme)
	if !ok {
		return errorf(ident.Line, "Unknown identifier \"%v\"", ident.Lexeme)
	}
	dst.TypeDim = rec.TypeDim.Clone()
	dst.IsConst = rec.IsConst
	dst.IsLvalue = !rec.IsFunction
	dst.IsFunction = rec.IsFunction
	dst.Params = rec.Params
	dst.Record = rec
	return nil
}

func convertible(from, to types.TypeDim) bool {
	if from.Equal(to) {
		return true
	}
	if from.IsArray() || to.IsArray() {
		return false
	}
	f, t := from.Type, to.Type
	switch {
	case f.IsNumeric() && t.IsNumeric():
		return true
	case f == types.Rune && t.IsInteger(), f.IsInteger() && t == types.Rune:
		return true
	case f == types.Rune && t == types.String:
		return true
	}
	return false
}

func conversion(c *Context) error {
	dst := c.get(symbol.TypedExpr, 0)
	src := c.get(symbol.Expr, 0)
	target := dst.TypeDim.Clone()
	isConst := src.IsConst
	result(dst, target, dst.Line)
	dst.IsConst = isConst

	if src.TypeDim.IsInvalid() || target.IsInvalid() {
		return nil
	}
	if err := checkValue(src, dst.Line); err != nil {
		return err
	}
	if !convertible(src.TypeDim, target) {
		return errorf(dst.Line, "Cannot convert %v to %v", src.TypeDim, target)
	}
	return nil
}

func elementsInh(c *Context) error {
	lit := c.get(symbol.TypedExpr, 0)
	elems := c.get(symbol.Elements, 0)
	elems.TypeDim = lit.TypeDim.Clone()
	elems.Line = lit.Line
	elems.Count = 0
	return nil
}

// checkElement checks one element of an array literal against the element
// type. Literals of a non-array type are reported once, by arrayLiteral.
func checkElement(arr types.TypeDim, elem *attribute.Frame) error {
	if !arr.IsArray() {
		return nil
	}
	return checkAssignable(arr.Elem(), elem, elem.Line)
}

func elementFirst(c *Context) error {
	elems := c.get(symbol.Elements, 0)
	elem := c.get(symbol.Expr, 0)
	tail := c.get(symbol.ElementsTail, 0)
	tail.TypeDim = elems.TypeDim.Clone()
	tail.Line = elems.Line
	tail.Count = 1
	return checkElement(elems.TypeDim, elem)
}

func elementNext(c *Context) error {
	parent := c.get(symbol.ElementsTail, 1)
	elem := c.get(symbol.Expr, 0)
	tail := c.get(symbol.ElementsTail, 0)
	tail.TypeDim = parent.TypeDim.Clone()
	tail.Line = parent.Line
	tail.Count = parent.Count + 1
	return checkElement(parent.TypeDim, elem)
}

func arrayLiteral(c *Context) error {
	dst := c.get(symbol.TypedExpr, 0)
	elems := c.get(symbol.Elements, 0)
	td := dst.TypeDim.Clone()
	result(dst, td, dst.Line)

	if td.IsInvalid() {
		return nil
	}
	if !td.IsArray() {
		dst.TypeDim = types.Scalar(types.Invalid)
		return errorf(dst.Line, "Invalid composite literal type %v", td)
	}
	if elems.Count > td.Dims[0] {
		return errorf(dst.Line, "Too many elements in array literal")
	}
	return nil
}

// literal marks f as an untyped constant of its default type.
func literal(f *attribute.Frame, t types.Type, v attribute.Value, line int) {
	result(f, types.Scalar(t), line)
	f.IsLiteral = true
	f.IsConst = true
	f.Value = v
}

func intLiteral(c *Context) error {
	lit := c.get(symbol.IntLit, 0)
	literal(c.get(symbol.Literal, 0), types.Int, lit.Value, lit.Line)
	return nil
}

func floatLiteral(c *Context) error {
	src := c.get(symbol.FloatLit, 0)
	dst := c.get(symbol.Literal, 0)
	v, err := attribute.DecodeFloat(src.Lexeme)
	if err != nil && src.Lexeme != "" {
		if errors.Is(err, attribute.ErrOutOfRange) {
			literal(dst, types.Float64, attribute.Value{Kind: attribute.ValueFloat}, src.Line)
			return errorf(src.Line, "Invalid float literal \"%v\"", src.Lexeme)
		}
		c.fail(err)
		return nil
	}
	literal(dst, types.Float64, attribute.Value{Kind: attribute.ValueFloat, Float: v}, src.Line)
	return nil
}

func runeLiteral(c *Context) error {
	src := c.get(symbol.RuneLit, 0)
	dst := c.get(symbol.Literal, 0)
	v, err := attribute.DecodeRune(src.Lexeme)
	if err != nil && src.Lexeme != "" {
		c.fail(err)
		return nil
	}
	literal(dst, types.Rune, attribute.Value{Kind: attribute.ValueRune, Rune: v}, src.Line)
	return nil
}

func stringLiteral(lit symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("stringLiteral(%v)", lit), func(c *Context) error {
		src := c.get(lit, 0)
		dst := c.get(symbol.Literal, 0)
		var v string
		var err error
		if lit == symbol.RawStringLit {
			v, err = attribute.DecodeRawString(src.Lexeme)
		} else {
			v, err = attribute.DecodeString(src.Lexeme)
		}
		if err != nil && src.Lexeme != "" {
			c.fail(err)
			return nil
		}
		literal(dst, types.String, attribute.Value{Kind: attribute.ValueString, String: v}, src.Line)
		return nil
	})
}

func boolLiteral(kw symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("boolLiteral(%v)", kw), func(c *Context) error {
		v := attribute.Value{
			Kind: attribute.ValueBool,
			Bool: kw == symbol.KwTrue,
		}
		literal(c.get(symbol.Literal, 0), types.Bool, v, c.get(kw, 0).Line)
		return nil
	})
}
