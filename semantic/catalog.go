package semantic

import (
	"fmt"

	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/types"
)

var catalog = []*Rule{
	rule("declareConst", declareConst), // 0
	setType(types.Bool, symbol.KwBool),
	setType(types.Int, symbol.KwInt),
	setType(types.Int32, symbol.KwInt32),
	setType(types.Int64, symbol.KwInt64),
	setType(types.Uint, symbol.KwUint),
	setType(types.Uint32, symbol.KwUint32),
	setType(types.Uint64, symbol.KwUint64),
	setType(types.Float32, symbol.KwFloat32),
	setType(types.Float64, symbol.KwFloat64),
	setType(types.Rune, symbol.KwRune), // 10
	setType(types.String, symbol.KwString),
	decodeInt(symbol.DecimalLit),
	decodeInt(symbol.OctalLit),
	decodeInt(symbol.HexLit),
	rule("forwardDims", forwardDims),
	rule("backwardDims", backwardDims),
	rule("backwardType", backwardType),
	rule("declareVar", declareVar),
	importPath(symbol.StringLit),
	importPath(symbol.RawStringLit), // 20
	rule("specType", specType),
	rule("specInit", specInit),
	rule("specInfer", specInfer),
	rule("checkInit", checkInit),
	opener("declareFunc", declareFunc),
	rule("funcParams", funcParams),
	rule("funcSignature", funcSignature),
	always("endScope", endScope),
	rule("paramFirst", paramFirst),
	rule("paramListUp", paramListUp), // 30
	rule("paramNext", paramNext),
	rule("paramListTailUp", paramListTailUp),
	rule("declareParam", declareParam),
	rule("resultType", resultType),
	rule("blockInh", blockInh),
	rule("stmtInh", stmtInh),
	exprStmt(symbol.SimpleStmt),
	rule("ifInh", ifInh),
	rule("forInh", forInh),
	opener("blockOpen", blockOpen), // 40
	loopCheck(symbol.KwBreak),
	loopCheck(symbol.KwContinue),
	rule("returnCheck", returnCheck),
	rule("returnExpr", returnExpr),
	rule("simpleInh", simpleInh),
	up(symbol.SimpleStmt, symbol.SimpleStmtTail),
	rule("assign", assign),
	incDec(symbol.Incr),
	incDec(symbol.Decr),
	setOperation(symbol.AssignOp, symbol.Assign), // 50
	setOperation(symbol.AssignOp, symbol.PlusAssign),
	setOperation(symbol.AssignOp, symbol.MinusAssign),
	setOperation(symbol.AssignOp, symbol.TimesAssign),
	setOperation(symbol.AssignOp, symbol.DivAssign),
	setOperation(symbol.AssignOp, symbol.ModAssign),
	setOperation(symbol.AssignOp, symbol.BitAndAssign),
	setOperation(symbol.AssignOp, symbol.BitAndNotAssign),
	setOperation(symbol.AssignOp, symbol.BitOrAssign),
	setOperation(symbol.AssignOp, symbol.BitXorAssign),
	setOperation(symbol.AssignOp, symbol.ShiftLeftAssign), // 60
	setOperation(symbol.AssignOp, symbol.ShiftRightAssign),
	opener("beginScope", beginScope),
	rule("ifCond", ifCond),
	rule("elseInh", elseInh),
	rule("elseIfInh", elseIfInh),
	opener("elseOpen", elseOpen),
	rule("forBody", forBody),
	rule("forInit", forInit),
	exprStmt(symbol.ForTail),
	rule("forCondOnly", forCondOnly), // 70
	checkCond(symbol.Expr),
	up(symbol.Expr, symbol.OrExpr),
	inherit(symbol.OrExprTail, symbol.AndExpr),
	up(symbol.OrExpr, symbol.OrExprTail),
	operate(symbol.OrExprTail, symbol.OrOp, symbol.AndExpr),
	pass(symbol.OrExprTail),
	setOperation(symbol.OrOp, symbol.LogicalOr),
	inherit(symbol.AndExprTail, symbol.RelExpr),
	up(symbol.AndExpr, symbol.AndExprTail),
	operate(symbol.AndExprTail, symbol.AndOp, symbol.RelExpr), // 80
	pass(symbol.AndExprTail),
	setOperation(symbol.AndOp, symbol.LogicalAnd),
	inherit(symbol.RelExprTail, symbol.AddExpr),
	up(symbol.RelExpr, symbol.RelExprTail),
	operate(symbol.RelExprTail, symbol.RelOp, symbol.AddExpr),
	pass(symbol.RelExprTail),
	setOperation(symbol.RelOp, symbol.Eq),
	setOperation(symbol.RelOp, symbol.Neq),
	setOperation(symbol.RelOp, symbol.Lt),
	setOperation(symbol.RelOp, symbol.Gt), // 90
	setOperation(symbol.RelOp, symbol.Lte),
	setOperation(symbol.RelOp, symbol.Gte),
	inherit(symbol.AddExprTail, symbol.MulExpr),
	up(symbol.AddExpr, symbol.AddExprTail),
	operate(symbol.AddExprTail, symbol.AddOp, symbol.MulExpr),
	pass(symbol.AddExprTail),
	setOperation(symbol.AddOp, symbol.Plus),
	setOperation(symbol.AddOp, symbol.Minus),
	setOperation(symbol.AddOp, symbol.BitOr),
	setOperation(symbol.AddOp, symbol.BitXor), // 100
	inherit(symbol.MulExprTail, symbol.UnaryExpr),
	up(symbol.MulExpr, symbol.MulExprTail),
	operate(symbol.MulExprTail, symbol.MulOp, symbol.UnaryExpr),
	pass(symbol.MulExprTail),
	setOperation(symbol.MulOp, symbol.Times),
	setOperation(symbol.MulOp, symbol.Div),
	setOperation(symbol.MulOp, symbol.Mod),
	setOperation(symbol.MulOp, symbol.ShiftLeft),
	setOperation(symbol.MulOp, symbol.ShiftRight),
	setOperation(symbol.MulOp, symbol.BitAnd), // 110
	setOperation(symbol.MulOp, symbol.BitAndNot),
	rule("unary", unary),
	up(symbol.UnaryExpr, symbol.Primary),
	setOperation(symbol.UnaryOp, symbol.Plus),
	setOperation(symbol.UnaryOp, symbol.Minus),
	setOperation(symbol.UnaryOp, symbol.Not),
	setOperation(symbol.UnaryOp, symbol.BitXor),
	inherit(symbol.Access, symbol.Operand),
	up(symbol.Primary, symbol.Access),
	rule("index", index), // 120
	pass(symbol.Access),
	rule("callInh", callInh),
	rule("call", call),
	rule("argFirst", argFirst),
	up(symbol.Args, symbol.ArgsTail),
	rule("argNext", argNext),
	pass(symbol.ArgsTail),
	rule("resolve", resolve),
	up(symbol.Operand, symbol.Literal),
	up(symbol.Operand, symbol.Expr), // 130
	inherit(symbol.TypedExpr, symbol.Type),
	up(symbol.Operand, symbol.TypedExpr),
	rule("conversion", conversion),
	rule("elementsInh", elementsInh),
	rule("arrayLiteral", arrayLiteral),
	rule("elementFirst", elementFirst),
	up(symbol.Elements, symbol.ElementsTail),
	rule("elementNext", elementNext),
	pass(symbol.ElementsTail),
	rule("intLiteral", intLiteral), // 140
	rule("floatLiteral", floatLiteral),
	rule("runeLiteral", runeLiteral),
	stringLiteral(symbol.StringLit),
	stringLiteral(symbol.RawStringLit),
	boolLiteral(symbol.KwTrue),
	boolLiteral(symbol.KwFalse),
}

// Catalog returns the rules in the order productions refer to them. Rules
// keep no state of their own, so the catalog is shared.
func Catalog() []*Rule {
	return catalog
}

func rule(name string, fn func(c *Context) error) *Rule {
	return &Rule{
		Name: name,
		fn:   fn,
	}
}

// opener marks a rule that starts a scope. Its closing rule is skipped when the
// opener itself is discarded.
func opener(name string, fn func(c *Context) error) *Rule {
	return &Rule{
		Name:       name,
		OpensScope: true,
		fn:         fn,
	}
}

func always(name string, fn func(c *Context) error) *Rule {
	return &Rule{
		Name:   name,
		Always: true,
		fn:     fn,
	}
}

// up copies the attributes of a child into the left-hand side.
func up(dst, src symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("up(%v,%v)", dst, src), func(c *Context) error {
		c.get(dst, 0).CopyFrom(c.get(src, 0))
		return nil
	})
}

// inherit hands the attributes of a symbol to a sibling on its right.
func inherit(dst, src symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("inherit(%v,%v)", dst, src), func(c *Context) error {
		c.get(dst, 0).CopyFrom(c.get(src, 0))
		return nil
	})
}

// pass copies the attributes of a right-recursive occurrence into the
// enclosing occurrence of the same symbol.
func pass(sym symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("pass(%v)", sym), func(c *Context) error {
		c.get(sym, 1).CopyFrom(c.get(sym, 0))
		return nil
	})
}

func setOperation(dst, op symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("setOperation(%v,%v)", dst, op), func(c *Context) error {
		f := c.get(dst, 0)
		f.Operation = op
		f.Line = c.get(op, 0).Line
		return nil
	})
}
