package semantic

import (
	"errors"
	"fmt"
	"math"

	"github.com/nihei9/minigo/attribute"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/symtab"
	"github.com/nihei9/minigo/types"
)

func importPath(lit symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("importPath(%v)", lit), func(c *Context) error {
		src := c.get(lit, 0)
		var path string
		var err error
		if lit == symbol.RawStringLit {
			path, err = attribute.DecodeRawString(src.Lexeme)
		} else {
			path, err = attribute.DecodeString(src.Lexeme)
		}
		if err != nil {
			if src.Lexeme == "" {
				return nil
			}
			c.fail(err)
			return nil
		}
		dst := c.get(symbol.ImportPath, 0)
		dst.Value = attribute.Value{
			Kind:   attribute.ValueString,
			String: path,
		}
		dst.Line = src.Line
		return nil
	})
}

// setType sets the element type. Dimensions forwarded by an enclosing array
// type are kept.
func setType(t types.Type, kw symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("setType(%v)", t), func(c *Context) error {
		f := c.get(symbol.Type, 0)
		f.TypeDim.Type = t
		f.Line = c.get(kw, 0).Line
		return nil
	})
}

func decodeInt(lit symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("decodeInt(%v)", lit), func(c *Context) error {
		src := c.get(lit, 0)
		dst := c.get(symbol.IntLit, 0)
		dst.Line = src.Line
		dst.Lexeme = src.Lexeme
		if src.Lexeme == "" {
			return nil
		}
		v, err := attribute.DecodeInt(src.Lexeme)
		if err != nil {
			if errors.Is(err, attribute.ErrOutOfRange) {
				dst.Value = attribute.Value{
					Kind: attribute.ValueInt,
				}
				return errorf(src.Line, "Invalid integer literal \"%v\"", src.Lexeme)
			}
			c.fail(err)
			return nil
		}
		dst.Value = attribute.Value{
			Kind: attribute.ValueInt,
			Int:  v,
		}
		return nil
	})
}

// forwardDims passes the dimensions collected so far, extended by the
// bracketed length, down to the element type.
func forwardDims(c *Context) error {
	arr := c.get(symbol.Type, 1)
	length := c.get(symbol.IntLit, 0)
	elem := c.get(symbol.Type, 0)

	if length.Value.Int > math.MaxInt {
		arr.TypeDim = types.Scalar(types.Invalid)
		return errorf(length.Line, "Invalid integer literal \"%v\"", length.Lexeme)
	}
	dims := make([]int, 0, len(arr.TypeDim.Dims)+1)
	dims = append(dims, arr.TypeDim.Dims...)
	dims = append(dims, int(length.Value.Int))
	elem.TypeDim.Dims = dims
	return nil
}

// backwardDims and backwardType hand the completed type back to the array
// occurrence. An occurrence whose length was rejected stays invalid.
func backwardDims(c *Context) error {
	arr := c.get(symbol.Type, 1)
	if arr.TypeDim.IsInvalid() {
		return nil
	}
	arr.TypeDim.Dims = c.get(symbol.Type, 0).TypeDim.Clone().Dims
	arr.Line = c.get(symbol.LBracket, 0).Line
	return nil
}

func backwardType(c *Context) error {
	arr := c.get(symbol.Type, 1)
	if arr.TypeDim.IsInvalid() {
		return nil
	}
	elem := c.get(symbol.Type, 0)
	if elem.TypeDim.IsInvalid() {
		arr.TypeDim = types.Scalar(types.Invalid)
		return nil
	}
	arr.TypeDim.Type = elem.TypeDim.Type
	return nil
}

func specType(c *Context) error {
	t := c.get(symbol.Type, 0)
	spec := c.get(symbol.DeclSpec, 0)
	spec.TypeDim = t.TypeDim.Clone()
	spec.Line = t.Line
	c.get(symbol.DeclInit, 0).TypeDim = t.TypeDim.Clone()
	return nil
}

func specInit(c *Context) error {
	init := c.get(symbol.DeclInit, 0)
	spec := c.get(symbol.DeclSpec, 0)
	spec.HasValue = init.HasValue
	spec.IsConst = init.IsConst
	return nil
}

// specInfer gives a declaration without a type the type of its initializer.
// Untyped literals take their default type.
func specInfer(c *Context) error {
	expr := c.get(symbol.Expr, 0)
	spec := c.get(symbol.DeclSpec, 0)
	spec.HasValue = true
	spec.IsConst = expr.IsConst
	spec.Line = expr.Line
	if err := checkValue(expr, expr.Line); err != nil {
		spec.TypeDim = types.Scalar(types.Invalid)
		return err
	}
	spec.TypeDim = expr.TypeDim.Clone()
	return nil
}

func checkInit(c *Context) error {
	expr := c.get(symbol.Expr, 0)
	init := c.get(symbol.DeclInit, 0)
	init.HasValue = true
	init.IsConst = expr.IsConst
	return checkAssignable(init.TypeDim, expr, c.get(symbol.Assign, 0).Line)
}

// declare adds the identifier of the current occurrence to the innermost
// scope. An empty lexeme means the identifier was missing and a syntax error
// has already been reported.
func declare(c *Context, spec *attribute.Frame) (*symtab.Record, string, error) {
	ident := c.get(symbol.Ident, 0)
	if ident.Lexeme == "" {
		return nil, "", nil
	}
	rec, ok := c.Symbols.AddSymbol(ident.Lexeme)
	if !ok {
		return nil, ident.Lexeme, errorf(ident.Line, "Redeclaration of \"%v\"", ident.Lexeme)
	}
	rec.TypeDim = spec.TypeDim.Clone()
	rec.Line = ident.Line
	return rec, ident.Lexeme, nil
}

func declareConst(c *Context) error {
	spec := c.get(symbol.DeclSpec, 0)
	rec, name, err := declare(c, spec)
	if rec == nil {
		return err
	}
	rec.IsConst = true
	line := c.get(symbol.Ident, 0).Line
	if !spec.HasValue {
		return errorf(line, "Missing initializer for constant \"%v\"", name)
	}
	if !spec.IsConst && !spec.TypeDim.IsInvalid() {
		return errorf(line, "Constant initializer is not constant")
	}
	return nil
}

func declareVar(c *Context) error {
	_, _, err := declare(c, c.get(symbol.DeclSpec, 0))
	return err
}

// declareFunc declares the function in the enclosing scope and opens the
// scope its parameters and body share.
func declareFunc(c *Context) error {
	fn := c.get(symbol.FuncDecl, 0)
	ident := c.get(symbol.Ident, 0)
	defer c.Symbols.StartScope()

	fn.Name = ident.Lexeme
	fn.Line = ident.Line
	if ident.Lexeme == "" {
		return nil
	}
	rec, ok := c.Symbols.AddSymbol(ident.Lexeme)
	if !ok {
		return errorf(ident.Line, "Redeclaration of \"%v\"", ident.Lexeme)
	}
	rec.IsFunction = true
	rec.Line = ident.Line
	fn.Record = rec
	return nil
}

func funcParams(c *Context) error {
	fn := c.get(symbol.FuncDecl, 0)
	params := c.get(symbol.ParamList, 0).Params
	fn.Params = params
	if fn.Record != nil {
		fn.Record.Params = params
	}
	return nil
}

func funcSignature(c *Context) error {
	fn := c.get(symbol.FuncDecl, 0)
	result := c.get(symbol.FuncResult, 0).TypeDim.Clone()
	fn.ReturnType = result
	if fn.Record != nil {
		fn.Record.TypeDim = result.Clone()
	}
	body := c.get(symbol.Block, 0)
	body.ReturnType = result
	body.InLoop = false
	return nil
}

func endScope(c *Context) error {
	err := c.Symbols.EndScope()
	if err != nil {
		c.fail(fmt.Errorf("%w: %v", attribute.ErrInternal, err))
	}
	return nil
}

func paramFirst(c *Context) error {
	param := c.get(symbol.Param, 0)
	tail := c.get(symbol.ParamListTail, 0)
	tail.Params = []types.TypeDim{param.TypeDim.Clone()}
	return nil
}

func paramListUp(c *Context) error {
	c.get(symbol.ParamList, 0).Params = c.get(symbol.ParamListTail, 0).Params
	return nil
}

func paramNext(c *Context) error {
	parent := c.get(symbol.ParamListTail, 1)
	param := c.get(symbol.Param, 0)
	params := make([]types.TypeDim, 0, len(parent.Params)+1)
	params = append(params, parent.Params...)
	params = append(params, param.TypeDim.Clone())
	c.get(symbol.ParamListTail, 0).Params = params
	return nil
}

func paramListTailUp(c *Context) error {
	c.get(symbol.ParamListTail, 1).Params = c.get(symbol.ParamListTail, 0).Params
	return nil
}

func declareParam(c *Context) error {
	t := c.get(symbol.Type, 0)
	param := c.get(symbol.Param, 0)
	param.TypeDim = t.TypeDim.Clone()
	_, _, err := declare(c, param)
	return err
}

func resultType(c *Context) error {
	c.get(symbol.FuncResult, 0).TypeDim = c.get(symbol.Type, 0).TypeDim.Clone()
	return nil
}
