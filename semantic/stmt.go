package semantic

import (
	"fmt"

	"github.com/nihei9/minigo/attribute"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/types"
)

func beginScope(c *Context) error {
	c.Symbols.StartScope()
	return nil
}

func blockInh(c *Context) error {
	c.get(symbol.StmtList, 0).SetContext(c.get(symbol.Block, 0))
	return nil
}

func stmtInh(c *Context) error {
	list := c.get(symbol.StmtList, 1)
	c.get(symbol.Stmt, 0).SetContext(list)
	c.get(symbol.StmtList, 0).SetContext(list)
	return nil
}

func ifInh(c *Context) error {
	c.get(symbol.IfStmt, 0).SetContext(c.get(symbol.Stmt, 0))
	return nil
}

func forInh(c *Context) error {
	c.get(symbol.ForStmt, 0).SetContext(c.get(symbol.Stmt, 0))
	return nil
}

func blockOpen(c *Context) error {
	c.Symbols.StartScope()
	c.get(symbol.Block, 0).SetContext(c.get(symbol.Stmt, 0))
	return nil
}

func ifCond(c *Context) error {
	stmt := c.get(symbol.IfStmt, 0)
	c.get(symbol.Block, 0).SetContext(stmt)
	c.get(symbol.ElsePart, 0).SetContext(stmt)
	return checkCondition(c.get(symbol.Expr, 0))
}

func elseInh(c *Context) error {
	c.get(symbol.ElseBody, 0).SetContext(c.get(symbol.ElsePart, 0))
	return nil
}

func elseIfInh(c *Context) error {
	c.get(symbol.IfStmt, 0).SetContext(c.get(symbol.ElseBody, 0))
	return nil
}

func elseOpen(c *Context) error {
	c.Symbols.StartScope()
	c.get(symbol.Block, 0).SetContext(c.get(symbol.ElseBody, 0))
	return nil
}

func forBody(c *Context) error {
	body := c.get(symbol.Block, 0)
	body.SetContext(c.get(symbol.ForStmt, 0))
	body.InLoop = true
	return nil
}

func forInit(c *Context) error {
	c.get(symbol.ForTail, 0).CopyFrom(c.get(symbol.SimpleStmt, 0))
	return nil
}

// forCondOnly checks the simple statement of "for cond {}", which turned out
// to be the condition.
func forCondOnly(c *Context) error {
	cond := c.get(symbol.ForTail, 0)
	if cond.IsAssignment {
		return errorf(cond.Line, "Condition must be a boolean expression")
	}
	return checkCondition(cond)
}

func checkCond(sym symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("checkCond(%v)", sym), func(c *Context) error {
		return checkCondition(c.get(sym, 0))
	})
}

func checkCondition(cond *attribute.Frame) error {
	if cond.TypeDim.IsInvalid() {
		return nil
	}
	if err := checkValue(cond, cond.Line); err != nil {
		return err
	}
	if !cond.TypeDim.IsScalar(types.Bool) {
		return errorf(cond.Line, "Condition must be a boolean expression")
	}
	return nil
}

// exprStmt rejects a statement that computes a value and drops it.
func exprStmt(sym symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("exprStmt(%v)", sym), func(c *Context) error {
		f := c.get(sym, 0)
		if f.IsAssignment || f.IsCall || f.TypeDim.IsInvalid() {
			return nil
		}
		return errorf(f.Line, "Expression evaluated but not used")
	})
}

func loopCheck(kw symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("loopCheck(%v)", kw), func(c *Context) error {
		if c.get(symbol.Stmt, 0).InLoop {
			return nil
		}
		return errorf(c.get(kw, 0).Line, "Statement not inside a loop")
	})
}

func returnExpr(c *Context) error {
	ret := c.get(symbol.ReturnExpr, 0)
	ret.CopyFrom(c.get(symbol.Expr, 0))
	ret.HasValue = true
	return nil
}

func returnCheck(c *Context) error {
	want := c.get(symbol.Stmt, 0).ReturnType
	ret := c.get(symbol.ReturnExpr, 0)
	line := c.get(symbol.KwReturn, 0).Line
	if want.IsInvalid() {
		return nil
	}
	if want.Type == types.Void {
		if ret.HasValue {
			return errorf(line, "Unexpected return value")
		}
		return nil
	}
	if !ret.HasValue {
		return errorf(line, "Missing return value")
	}
	return checkAssignable(want, ret, line)
}

func simpleInh(c *Context) error {
	c.get(symbol.SimpleStmtTail, 0).CopyFrom(c.get(symbol.Expr, 0))
	return nil
}

// checkTarget verifies that lhs can be assigned to.
func checkTarget(lhs *attribute.Frame, line int) error {
	if lhs.TypeDim.IsInvalid() {
		return nil
	}
	if !lhs.IsLvalue {
		return errorf(line, "Cannot assign to non-lvalue expression")
	}
	if lhs.IsConst {
		return errorf(line, "Cannot assign to constant \"%v\"", lhs.Name)
	}
	return nil
}

func assign(c *Context) error {
	stmt := c.get(symbol.SimpleStmtTail, 0)
	op := c.get(symbol.AssignOp, 0)
	rhs := c.get(symbol.Expr, 0)
	line := op.Line

	lhs := &attribute.Frame{}
	lhs.CopyFrom(stmt)
	stmt.IsAssignment = true
	stmt.IsCall = false

	if err := checkTarget(lhs, line); err != nil {
		return err
	}
	if binOp, ok := assignOps[op.Operation]; ok {
		if err := checkOperation(lhs.TypeDim, binOp, line); err != nil {
			return err
		}
	}
	lhs.IsLiteral = false
	_, err := checkTypes(lhs, rhs, line)
	return err
}

func incDec(op symbol.Symbol) *Rule {
	return rule(fmt.Sprintf("incDec(%v)", op), func(c *Context) error {
		stmt := c.get(symbol.SimpleStmtTail, 0)
		line := c.get(op, 0).Line
		stmt.IsAssignment = true
		stmt.IsCall = false

		if err := checkTarget(stmt, line); err != nil {
			return err
		}
		if stmt.TypeDim.IsInvalid() {
			return nil
		}
		if stmt.TypeDim.IsArray() {
			return errorf(line, "Invalid operation for array type")
		}
		if !stmt.TypeDim.Type.IsNumeric() {
			return errorf(line, "Invalid operation for %v type", stmt.TypeDim.Type.Category())
		}
		return nil
	})
}
