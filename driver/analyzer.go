package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nihei9/minigo/attribute"
	"github.com/nihei9/minigo/grammar"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/semantic"
	"github.com/nihei9/minigo/symtab"
	"github.com/nihei9/minigo/types"
)

type AnalyzerOption func(a *Analyzer) error

// Logger makes the analyzer write debug records of its steps to logger.
func Logger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		a.logger = logger.With("component", "analyzer")
		return nil
	}
}

// MaxDiagnostics stops the analysis once n diagnostics are recorded. Zero
// means no limit.
func MaxDiagnostics(n int) AnalyzerOption {
	return func(a *Analyzer) error {
		if n < 0 {
			return fmt.Errorf("the maximum number of diagnostics must be >= 0: %v", n)
		}
		a.maxDiags = n
		return nil
	}
}

// StrictLookahead makes a lookahead with no parse table entry a syntax error
// even when the non-terminal on top of the stack is nullable. By default such
// a non-terminal derives the empty string and the mismatch is reported at the
// next terminal.
func StrictLookahead() AnalyzerOption {
	return func(a *Analyzer) error {
		a.strict = true
		return nil
	}
}

func MakeCST() AnalyzerOption {
	return func(a *Analyzer) error {
		a.makeCST = true
		return nil
	}
}

type stackItemKind int

const (
	stackItemSymbol stackItemKind = iota
	stackItemAction
	stackItemProductionEnd
)

// stackItem is an entry of the parse stack. A symbol item points at the frame
// of its own occurrence; a production end owns the frames of the production's
// symbols, in creation order.
type stackItem struct {
	kind   stackItemKind
	sym    symbol.Symbol
	frame  *attribute.Frame
	node   *Node
	action int
	prod   *grammar.Production
	frames []*attribute.Frame

	// skip is set on a closing action whose opening action was discarded.
	skip bool
}

// Analyzer checks one source: it parses the tokens predictively and runs the
// semantic rules embedded in the productions as they come to the top of the
// parse stack.
type Analyzer struct {
	toks  TokenSource
	gram  *grammar.Grammar
	rules []*semantic.Rule
	attrs *attribute.Store
	syms  *symtab.Table
	ctx   *semantic.Context

	stack    []*stackItem
	tok      *Token
	diags    []*Diagnostic
	cst      *Node
	analyzed bool

	logger   *slog.Logger
	debug    bool
	maxDiags int
	strict   bool
	makeCST  bool
}

func NewAnalyzer(toks TokenSource, gram *grammar.Grammar, opts ...AnalyzerOption) (*Analyzer, error) {
	rules := semantic.Catalog()
	err := gram.CheckActions(len(rules))
	if err != nil {
		return nil, err
	}

	attrs := attribute.NewStore()
	syms := symtab.New()
	a := &Analyzer{
		toks:   toks,
		gram:   gram,
		rules:  rules,
		attrs:  attrs,
		syms:   syms,
		ctx:    semantic.NewContext(attrs, syms),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		err := opt(a)
		if err != nil {
			return nil, err
		}
	}
	a.debug = a.logger.Enabled(context.Background(), slog.LevelDebug)

	return a, nil
}

// Analyze runs the analysis. It returns true when the whole input was parsed
// and no diagnostic was recorded. An error means the analyzer itself failed,
// for instance because the grammar tables and the rule catalog disagree.
func (a *Analyzer) Analyze() (bool, error) {
	if a.analyzed {
		return false, fmt.Errorf("the analyzer has already run")
	}
	a.analyzed = true

	eofFrame, err := a.attrs.NewFrame(symbol.EOF)
	if err != nil {
		return false, err
	}
	startFrame, err := a.attrs.NewFrame(symbol.Start)
	if err != nil {
		return false, err
	}
	root := a.newNode(symbol.Start)
	a.cst = root
	a.stack = []*stackItem{
		{
			kind:  stackItemSymbol,
			sym:   symbol.EOF,
			frame: eofFrame,
		},
		{
			kind:  stackItemSymbol,
			sym:   symbol.Start,
			frame: startFrame,
			node:  root,
		},
	}

	accepted, err := a.run()
	if err != nil {
		return false, err
	}

	err = a.drain()
	if err != nil {
		return false, err
	}
	err = a.attrs.ReleaseFrame(startFrame)
	if err != nil {
		return false, err
	}
	err = a.attrs.ReleaseFrame(eofFrame)
	if err != nil {
		return false, err
	}

	return accepted && len(a.diags) == 0, nil
}

// run executes the parse loop. It reports whether the end of input was
// matched.
func (a *Analyzer) run() (bool, error) {
	err := a.nextToken()
	if err != nil {
		return false, err
	}

	for len(a.stack) > 0 && !a.limitReached() {
		top := a.stack[len(a.stack)-1]
		switch top.kind {
		case stackItemAction:
			a.pop()
			if top.skip {
				continue
			}
			err := a.applyRule(top.action)
			if err != nil {
				return false, err
			}
		case stackItemProductionEnd:
			a.pop()
			err := a.releaseFrames(top)
			if err != nil {
				return false, err
			}
		case stackItemSymbol:
			if top.sym.IsTerminal() {
				if top.sym == a.tok.Kind {
					a.pop()
					a.match(top)
					if a.tok.EOF() {
						return true, nil
					}
					err := a.nextToken()
					if err != nil {
						return false, err
					}
					continue
				}

				a.syntaxError(top.sym)
				a.pop()
				if top.node != nil {
					top.node.Missing = true
				}
				if a.tok.EOF() {
					return false, nil
				}
				continue
			}

			prod, ok := a.gram.Table.Lookup(top.sym, a.tok.Kind)
			if !ok && !a.strict {
				prod, ok = a.gram.Table.EmptyProduction(top.sym)
			}
			if ok {
				a.pop()
				err := a.expand(top, prod)
				if err != nil {
					return false, err
				}
				continue
			}

			a.noViableProduction(top.sym)
			if a.tok.EOF() {
				return false, nil
			}
			err := a.recoverFromError()
			if err != nil {
				return false, err
			}
		}
	}

	return false, nil
}

func (a *Analyzer) nextToken() error {
	for {
		tok, err := a.toks.Next()
		if err != nil {
			var lexErr *LexicalError
			if !errors.As(err, &lexErr) {
				return err
			}
			a.addDiagnostic(&Diagnostic{
				Kind:    DiagnosticKindLexical,
				Line:    lexErr.Line,
				Message: fmt.Sprintf("Unknown lexeme \"%v\"", lexErr.Text),
				Err:     lexErr,
			})
			if a.debug {
				a.logger.Debug("lexical error", "text", lexErr.Text, "line", lexErr.Line)
			}
			continue
		}
		a.tok = tok
		return nil
	}
}

func (a *Analyzer) match(item *stackItem) {
	item.frame.Line = a.tok.Line
	if item.sym.HasLexeme() {
		item.frame.Lexeme = a.tok.Lexeme
	}
	if item.node != nil {
		item.node.Text = a.tok.Text()
		item.node.Line = a.tok.Line
		item.node.Col = a.tok.Col
	}
	if a.debug {
		a.logger.Debug("match", "terminal", item.sym, "text", a.tok.Text(), "line", a.tok.Line)
	}
}

// expand replaces a non-terminal with the items of prod. The frames are created
// right to left so that the leftmost occurrence of a symbol is the most recent
// one.
func (a *Analyzer) expand(item *stackItem, prod *grammar.Production) error {
	if a.debug {
		a.logger.Debug("expand", "production", prod.Num+1, "rule", prod, "lookahead", a.tok.Kind, "line", a.tok.Line)
	}

	end := &stackItem{
		kind: stackItemProductionEnd,
		prod: prod,
	}
	a.push(end)

	var children []*Node
	if item.node != nil {
		children = make([]*Node, len(prod.Items))
	}
	for i := len(prod.Items) - 1; i >= 0; i-- {
		it := prod.Items[i]
		if it.Kind == grammar.ItemAction {
			a.push(&stackItem{
				kind:   stackItemAction,
				action: it.Action,
			})
			continue
		}

		f, err := a.attrs.NewFrame(it.Symbol)
		if err != nil {
			return err
		}
		end.frames = append(end.frames, f)
		si := &stackItem{
			kind:  stackItemSymbol,
			sym:   it.Symbol,
			frame: f,
		}
		if item.node != nil {
			si.node = a.newNode(it.Symbol)
			children[i] = si.node
		}
		a.push(si)
	}
	if item.node != nil {
		for _, child := range children {
			if child != nil {
				item.node.Children = append(item.node.Children, child)
			}
		}
	}

	return nil
}

func (a *Analyzer) releaseFrames(end *stackItem) error {
	for i := len(end.frames) - 1; i >= 0; i-- {
		err := a.attrs.ReleaseFrame(end.frames[i])
		if err != nil {
			return fmt.Errorf("production %v: %w", end.prod.Num+1, err)
		}
	}
	return nil
}

func (a *Analyzer) applyRule(id int) error {
	if id < 0 || id >= len(a.rules) {
		return fmt.Errorf("%w: undefined action: %v", attribute.ErrInternal, id)
	}
	rule := a.rules[id]
	if a.debug {
		a.logger.Debug("action", "id", id, "rule", rule.Name)
	}

	err := rule.Apply(a.ctx)
	if err == nil {
		return nil
	}
	var semErr *semantic.Error
	if !errors.As(err, &semErr) {
		return fmt.Errorf("action %v: %w", id, err)
	}
	a.addDiagnostic(&Diagnostic{
		Kind:    DiagnosticKindSemantic,
		Line:    semErr.Line,
		Message: semErr.Message,
		Err:     semErr,
	})
	if a.debug {
		a.logger.Debug("semantic error", "rule", rule.Name, "message", semErr.Message, "line", semErr.Line)
	}
	return nil
}

func (a *Analyzer) syntaxError(expected symbol.Symbol) {
	synErr := &SyntaxError{
		Token:       a.tok,
		Expected:    expected,
		HasExpected: true,
	}
	a.addDiagnostic(&Diagnostic{
		Kind:    DiagnosticKindSyntax,
		Line:    a.tok.Line,
		Message: synErr.Message(),
		Err:     synErr,
	})
	if a.debug {
		a.logger.Debug("syntax error", "lookahead", a.tok.Kind, "line", a.tok.Line, "expected", expected)
	}
}

func (a *Analyzer) noViableProduction(nt symbol.Symbol) {
	synErr := &SyntaxError{
		Token:  a.tok,
		Viable: a.gram.Table.Expected(nt),
	}
	a.addDiagnostic(&Diagnostic{
		Kind:    DiagnosticKindSyntax,
		Line:    a.tok.Line,
		Message: synErr.Message(),
		Err:     synErr,
	})
	if a.debug {
		a.logger.Debug("no viable production", "non_terminal", nt, "lookahead", a.tok.Kind, "line", a.tok.Line, "viable", synErr.Viable)
	}
}

// recoverFromError discards parse stack items until the top can consume the lookahead:
// a terminal equal to it or a non-terminal with a production for it.
func (a *Analyzer) recoverFromError() error {
	for len(a.stack) > 0 {
		top := a.stack[len(a.stack)-1]
		if top.kind == stackItemSymbol {
			if top.sym.IsTerminal() && top.sym == a.tok.Kind {
				break
			}
			if top.sym.IsNonTerminal() {
				if _, ok := a.gram.Table.Lookup(top.sym, a.tok.Kind); ok {
					// The actions that would have set its inherited attributes
					// were discarded.
					poison(top.frame)
					break
				}
			}
		}
		a.pop()
		err := a.discard(top)
		if err != nil {
			return err
		}
	}
	if a.debug {
		a.logger.Debug("recovered", "lookahead", a.tok.Kind, "line", a.tok.Line, "depth", len(a.stack))
	}
	return nil
}

// drain discards whatever is left on the parse stack.
func (a *Analyzer) drain() error {
	if a.debug && len(a.stack) > 0 {
		a.logger.Debug("drain", "depth", len(a.stack))
	}
	for len(a.stack) > 0 {
		top := a.pop()
		err := a.discard(top)
		if err != nil {
			return err
		}
	}
	return nil
}

// discard drops an item without processing it. Frames are still released and
// rules marked Always still run. The frame of a discarded symbol is poisoned.
func (a *Analyzer) discard(item *stackItem) error {
	switch item.kind {
	case stackItemAction:
		if item.action < 0 || item.action >= len(a.rules) || item.skip {
			return nil
		}
		rule := a.rules[item.action]
		if rule.Always {
			return a.applyRule(item.action)
		}
		if rule.OpensScope {
			a.skipCloser()
		}
	case stackItemProductionEnd:
		return a.releaseFrames(item)
	case stackItemSymbol:
		poison(item.frame)
		if item.node != nil {
			item.node.Missing = true
		}
	}
	return nil
}

// skipCloser marks the first Always action remaining from the production on
// top of the stack so that it does not end a scope that was never started.
func (a *Analyzer) skipCloser() {
	for i := len(a.stack) - 1; i >= 0; i-- {
		item := a.stack[i]
		if item.kind == stackItemProductionEnd {
			return
		}
		if item.kind == stackItemAction && a.rules[item.action].Always {
			item.skip = true
			if a.debug {
				a.logger.Debug("skip closer", "id", item.action, "rule", a.rules[item.action].Name)
			}
			return
		}
	}
}

// poison gives f the invalid type so that rules reading it stay silent.
func poison(f *attribute.Frame) {
	f.TypeDim = types.Scalar(types.Invalid)
}

func (a *Analyzer) limitReached() bool {
	return a.maxDiags > 0 && len(a.diags) >= a.maxDiags
}

func (a *Analyzer) addDiagnostic(d *Diagnostic) {
	a.diags = append(a.diags, d)
}

func (a *Analyzer) push(item *stackItem) {
	a.stack = append(a.stack, item)
}

func (a *Analyzer) pop() *stackItem {
	top := a.stack[len(a.stack)-1]
	a.stack[len(a.stack)-1] = nil
	a.stack = a.stack[:len(a.stack)-1]
	return top
}

func (a *Analyzer) newNode(sym symbol.Symbol) *Node {
	if !a.makeCST {
		return nil
	}
	return &Node{
		KindName: sym.String(),
	}
}

// Diagnostics returns the diagnostics in the order they were found.
func (a *Analyzer) Diagnostics() []*Diagnostic {
	return a.diags
}

// SymbolTable returns the symbol table. After Analyze it holds the global
// declarations.
func (a *Analyzer) SymbolTable() *symtab.Table {
	return a.syms
}

func (a *Analyzer) Attributes() *attribute.Store {
	return a.attrs
}

// CST returns the concrete syntax tree when the MakeCST option is set.
func (a *Analyzer) CST() *Node {
	return a.cst
}
