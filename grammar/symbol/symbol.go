package symbol

import "fmt"

// Symbol is a grammar symbol. Terminals and non-terminals share one id space;
// terminals occupy [0, TerminalCount) and non-terminals follow immediately.
type Symbol uint16

// Terminals. The order is fixed: it is the column order of the parse table.
const (
	EOF Symbol = iota
	Comma
	Dot
	Semicolon
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Plus
	Minus
	Times
	Div
	Mod
	BitAnd
	BitAndNot
	BitOr
	BitXor
	ShiftLeft
	ShiftRight
	PlusAssign
	MinusAssign
	TimesAssign
	DivAssign
	ModAssign
	BitAndAssign
	BitAndNotAssign
	BitOrAssign
	BitXorAssign
	ShiftLeftAssign
	ShiftRightAssign
	Incr
	Decr
	Assign
	Eq
	Neq
	Lt
	Gt
	Lte
	Gte
	LogicalOr
	LogicalAnd
	Not
	Ident
	DecimalLit
	OctalLit
	HexLit
	FloatLit
	RuneLit
	StringLit
	RawStringLit
	KwTrue
	KwFalse
	KwConst
	KwVar
	KwFor
	KwIf
	KwElse
	KwBreak
	KwContinue
	KwReturn
	KwFunc
	KwPackage
	KwImport
	KwBool
	KwInt
	KwInt32
	KwInt64
	KwUint
	KwUint32
	KwUint64
	KwFloat32
	KwFloat64
	KwRune
	KwString

	terminalEnd
)

// Non-terminals, in parse table row order.
const (
	Package Symbol = iota + terminalEnd
	PackageClause
	ImportDecls
	ImportPath
	PackageDecls
	OptSemicolon
	TopDecl
	ConstDecl
	Type
	IntLit
	VarDecl
	DeclSpec
	DeclInit
	FuncDecl
	ParamList
	ParamListTail
	Param
	FuncResult
	Block
	StmtList
	Stmt
	ReturnExpr
	SimpleStmt
	SimpleStmtTail
	AssignOp
	IfStmt
	ElsePart
	ElseBody
	ForStmt
	ForHeader
	ForTail
	ForCond
	ForPost
	Expr
	OrExpr
	OrExprTail
	OrOp
	AndExpr
	AndExprTail
	AndOp
	RelExpr
	RelExprTail
	RelOp
	AddExpr
	AddExprTail
	AddOp
	MulExpr
	MulExprTail
	MulOp
	UnaryExpr
	UnaryOp
	Primary
	Access
	Args
	ArgsTail
	Operand
	TypedExpr
	Elements
	ElementsTail
	Literal

	symbolEnd
)

const (
	TerminalCount    = int(terminalEnd)
	NonTerminalCount = int(symbolEnd - terminalEnd)
	Count            = int(symbolEnd)

	// Start is the start symbol of the grammar.
	Start = Package
)

var names = [Count]string{
	EOF:              "eof",
	Comma:            "comma",
	Dot:              "dot",
	Semicolon:        "semicolon",
	LParen:           "l_paren",
	RParen:           "r_paren",
	LBrace:           "l_brace",
	RBrace:           "r_brace",
	LBracket:         "l_bracket",
	RBracket:         "r_bracket",
	Plus:             "plus",
	Minus:            "minus",
	Times:            "times",
	Div:              "div",
	Mod:              "mod",
	BitAnd:           "bit_and",
	BitAndNot:        "bit_and_not",
	BitOr:            "bit_or",
	BitXor:           "bit_xor",
	ShiftLeft:        "shift_left",
	ShiftRight:       "shift_right",
	PlusAssign:       "plus_assign",
	MinusAssign:      "minus_assign",
	TimesAssign:      "times_assign",
	DivAssign:        "div_assign",
	ModAssign:        "mod_assign",
	BitAndAssign:     "bit_and_assign",
	BitAndNotAssign:  "bit_and_not_assign",
	BitOrAssign:      "bit_or_assign",
	BitXorAssign:     "bit_xor_assign",
	ShiftLeftAssign:  "shift_left_assign",
	ShiftRightAssign: "shift_right_assign",
	Incr:             "incr",
	Decr:             "decr",
	Assign:           "assign",
	Eq:               "eq",
	Neq:              "neq",
	Lt:               "lt",
	Gt:               "gt",
	Lte:              "lte",
	Gte:              "gte",
	LogicalOr:        "logical_or",
	LogicalAnd:       "logical_and",
	Not:              "not",
	Ident:            "ident",
	DecimalLit:       "decimal_lit",
	OctalLit:         "octal_lit",
	HexLit:           "hex_lit",
	FloatLit:         "float_lit",
	RuneLit:          "rune_lit",
	StringLit:        "string_lit",
	RawStringLit:     "raw_string_lit",
	KwTrue:           "kw_true",
	KwFalse:          "kw_false",
	KwConst:          "kw_const",
	KwVar:            "kw_var",
	KwFor:            "kw_for",
	KwIf:             "kw_if",
	KwElse:           "kw_else",
	KwBreak:          "kw_break",
	KwContinue:       "kw_continue",
	KwReturn:         "kw_return",
	KwFunc:           "kw_func",
	KwPackage:        "kw_package",
	KwImport:         "kw_import",
	KwBool:           "kw_bool",
	KwInt:            "kw_int",
	KwInt32:          "kw_int32",
	KwInt64:          "kw_int64",
	KwUint:           "kw_uint",
	KwUint32:         "kw_uint32",
	KwUint64:         "kw_uint64",
	KwFloat32:        "kw_float32",
	KwFloat64:        "kw_float64",
	KwRune:           "kw_rune",
	KwString:         "kw_string",

	Package:        "package",
	PackageClause:  "package_clause",
	ImportDecls:    "import_decls",
	ImportPath:     "import_path",
	PackageDecls:   "package_decls",
	OptSemicolon:   "opt_semicolon",
	TopDecl:        "top_decl",
	ConstDecl:      "const_decl",
	Type:           "type",
	IntLit:         "int_lit",
	VarDecl:        "var_decl",
	DeclSpec:       "decl_spec",
	DeclInit:       "decl_init",
	FuncDecl:       "func_decl",
	ParamList:      "param_list",
	ParamListTail:  "param_list_tail",
	Param:          "param",
	FuncResult:     "func_result",
	Block:          "block",
	StmtList:       "stmt_list",
	Stmt:           "stmt",
	ReturnExpr:     "return_expr",
	SimpleStmt:     "simple_stmt",
	SimpleStmtTail: "simple_stmt_tail",
	AssignOp:       "assign_op",
	IfStmt:         "if_stmt",
	ElsePart:       "else_part",
	ElseBody:       "else_body",
	ForStmt:        "for_stmt",
	ForHeader:      "for_header",
	ForTail:        "for_tail",
	ForCond:        "for_cond",
	ForPost:        "for_post",
	Expr:           "expr",
	OrExpr:         "or_expr",
	OrExprTail:     "or_expr_tail",
	OrOp:           "or_op",
	AndExpr:        "and_expr",
	AndExprTail:    "and_expr_tail",
	AndOp:          "and_op",
	RelExpr:        "rel_expr",
	RelExprTail:    "rel_expr_tail",
	RelOp:          "rel_op",
	AddExpr:        "add_expr",
	AddExprTail:    "add_expr_tail",
	AddOp:          "add_op",
	MulExpr:        "mul_expr",
	MulExprTail:    "mul_expr_tail",
	MulOp:          "mul_op",
	UnaryExpr:      "unary_expr",
	UnaryOp:        "unary_op",
	Primary:        "primary",
	Access:         "access",
	Args:           "args",
	ArgsTail:       "args_tail",
	Operand:        "operand",
	TypedExpr:      "typed_expr",
	Elements:       "elements",
	ElementsTail:   "elements_tail",
	Literal:        "literal",
}

// spellings holds the source text of terminals whose lexeme never varies.
var spellings = map[Symbol]string{
	Comma:            ",",
	Dot:              ".",
	Semicolon:        ";",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Plus:             "+",
	Minus:            "-",
	Times:            "*",
	Div:              "/",
	Mod:              "%",
	BitAnd:           "&",
	BitAndNot:        "&^",
	BitOr:            "|",
	BitXor:           "^",
	ShiftLeft:        "<<",
	ShiftRight:       ">>",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	TimesAssign:      "*=",
	DivAssign:        "/=",
	ModAssign:        "%=",
	BitAndAssign:     "&=",
	BitAndNotAssign:  "&^=",
	BitOrAssign:      "|=",
	BitXorAssign:     "^=",
	ShiftLeftAssign:  "<<=",
	ShiftRightAssign: ">>=",
	Incr:             "++",
	Decr:             "--",
	Assign:           "=",
	Eq:               "==",
	Neq:              "!=",
	Lt:               "<",
	Gt:               ">",
	Lte:              "<=",
	Gte:              ">=",
	LogicalOr:        "||",
	LogicalAnd:       "&&",
	Not:              "!",
	KwTrue:           "true",
	KwFalse:          "false",
	KwConst:          "const",
	KwVar:            "var",
	KwFor:            "for",
	KwIf:             "if",
	KwElse:           "else",
	KwBreak:          "break",
	KwContinue:       "continue",
	KwReturn:         "return",
	KwFunc:           "func",
	KwPackage:        "package",
	KwImport:         "import",
	KwBool:           "bool",
	KwInt:            "int",
	KwInt32:          "int32",
	KwInt64:          "int64",
	KwUint:           "uint",
	KwUint32:         "uint32",
	KwUint64:         "uint64",
	KwFloat32:        "float32",
	KwFloat64:        "float64",
	KwRune:           "rune",
	KwString:         "string",
}

var name2Sym = func() map[string]Symbol {
	m := make(map[string]Symbol, Count)
	for i, n := range names {
		m[n] = Symbol(i)
	}
	return m
}()

// ToSymbol looks a symbol up by its name.
func ToSymbol(name string) (Symbol, bool) {
	sym, ok := name2Sym[name]
	return sym, ok
}

func (s Symbol) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("<symbol %d>", uint16(s))
	}
	return names[s]
}

// Spelling returns the fixed source text of a terminal, or "" when the terminal
// carries a variable lexeme or the symbol is a non-terminal.
func (s Symbol) Spelling() string {
	return spellings[s]
}

func (s Symbol) IsValid() bool {
	return s < symbolEnd
}

func (s Symbol) IsTerminal() bool {
	return s < terminalEnd
}

func (s Symbol) IsNonTerminal() bool {
	return s >= terminalEnd && s < symbolEnd
}

// HasLexeme reports whether the terminal carries a variable lexeme.
func (s Symbol) HasLexeme() bool {
	switch s {
	case Ident, DecimalLit, OctalLit, HexLit, FloatLit, RuneLit, StringLit, RawStringLit:
		return true
	}
	return false
}

// Row returns the parse table row of a non-terminal.
func (s Symbol) Row() int {
	return int(s - terminalEnd)
}

// NonTerminalAt is the inverse of Row.
func NonTerminalAt(row int) Symbol {
	return Symbol(row) + terminalEnd
}

// Terminals returns every terminal in column order.
func Terminals() []Symbol {
	syms := make([]Symbol, 0, TerminalCount)
	for s := Symbol(0); s < terminalEnd; s++ {
		syms = append(syms, s)
	}
	return syms
}

// NonTerminals returns every non-terminal in row order.
func NonTerminals() []Symbol {
	syms := make([]Symbol, 0, NonTerminalCount)
	for s := terminalEnd; s < symbolEnd; s++ {
		syms = append(syms, s)
	}
	return syms
}
