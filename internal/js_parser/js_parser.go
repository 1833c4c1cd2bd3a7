// Package js_parser turns a token stream from internal/js_lexer into an
// internal/js_ast tree, resolving every identifier to an ast.Ref as it goes.
// Modeled on esbuild's internal/js_parser in overall shape -- a single
// recursive-descent Parser with a precedence-climbing expression parser --
// but trimmed to the ES2022 subset this tool's ten passes pattern-match
// against. Class bodies, import/export declarations, and template/regex
// literal internals are intentionally parsed as opaque raw text (js_ast.SRaw
// / SClass.BodyRaw / ERaw): spec.md's passes never look inside any of them,
// so decomposing them structurally would be unexercised complexity.
//
// Scope resolution happens in the same pass as parsing rather than in a
// separate binder pass: a binding is declared the moment its declarator,
// parameter, or function name is parsed, and a reference resolves against
// whatever has been declared so far. This means a forward reference to a
// `function` or `var` declared later in the same scope resolves as unbound
// (ast.UnboundScope) rather than to that later declaration -- true
// hoisting semantics would need a pre-pass scan of each scope before
// parsing its statements, which this tool's domain (rewriting minifier
// idioms that are always locally well-formed, e.g. a parameter used inside
// its own function body) doesn't exercise.
package js_parser

import (
	"fmt"
	"strings"

	"github.com/jsreadable/unminify/internal/ast"
	"github.com/jsreadable/unminify/internal/config"
	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/jsreadable/unminify/internal/js_lexer"
	"github.com/jsreadable/unminify/internal/logger"
)

type Parser struct {
	log    logger.Log
	source *logger.Source
	cfg    config.Config
	toks   []js_lexer.Token
	i      int
	tags   *ast.TagGenerator
	scope  *ast.Scope
}

// Parse tokenizes and parses source into an AST. Lexer and parser errors are
// both reported through log; callers should check log.HasErrors() afterward
// per spec.md §7's ParseError category.
func Parse(log logger.Log, source *logger.Source, cfg config.Config) *js_ast.AST {
	lex := js_lexer.NewLexer(log, source)
	toks := lex.Tokenize()
	p := &Parser{log: log, source: source, cfg: cfg, toks: toks, tags: ast.NewTagGenerator()}
	p.scope = ast.NewScope(ast.ScopeModule, nil)

	var stmts []js_ast.Stmt
	for !p.isEOF() {
		stmts = append(stmts, p.parseStmt())
	}

	kind := js_ast.ModuleScript
	for _, s := range stmts {
		if _, ok := s.Data.(*js_ast.SRaw); ok {
			kind = js_ast.ModuleESM
			break
		}
	}
	return &js_ast.AST{Stmts: stmts, ModuleKind: kind}
}

// ---------------------------------------------------------------------------
// Token helpers

func (p *Parser) cur() js_lexer.Token {
	if p.i >= len(p.toks) {
		return js_lexer.Token{Kind: js_lexer.TEOF}
	}
	return p.toks[p.i]
}

func (p *Parser) peekAt(n int) js_lexer.Token {
	if p.i+n >= len(p.toks) {
		return js_lexer.Token{Kind: js_lexer.TEOF}
	}
	return p.toks[p.i+n]
}

func (p *Parser) isEOF() bool { return p.cur().Kind == js_lexer.TEOF }

func (p *Parser) advance() js_lexer.Token {
	t := p.cur()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *Parser) isPunct(s string) bool {
	t := p.cur()
	return t.Kind == js_lexer.TPunctuation && t.Raw == s
}

func (p *Parser) isKeyword(s string) bool {
	t := p.cur()
	return t.Kind == js_lexer.TKeyword && t.Raw == s
}

func (p *Parser) eatPunct(s string) bool {
	if p.isPunct(s) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatKeyword(s string) bool {
	if p.isKeyword(s) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectPunct(s string) {
	if !p.eatPunct(s) {
		p.errorf("expected %q but found %q", s, p.cur().Raw)
	}
}

// eatSemi consumes a `;` if present; this parser does not implement
// automatic semicolon insertion beyond tolerating its absence here, since
// minified/compiled input always terminates statements explicitly.
func (p *Parser) eatSemi() { p.eatPunct(";") }

func (p *Parser) errorf(format string, args ...interface{}) {
	p.log.AddError(p.source, p.cur().Loc, fmt.Sprintf(format, args...))
}

// ---------------------------------------------------------------------------
// Scope helpers

func (p *Parser) pushScope(kind ast.ScopeKind) {
	p.scope = ast.NewScope(kind, p.scope)
}

func (p *Parser) popScope() {
	p.scope = p.scope.Parent
}

// declare binds name in the appropriate scope: function-scoped (var) bindings
// hoist to the nearest enclosing function/module scope; block-scoped
// (let/const, catch params, function params) bindings land in the current
// scope.
func (p *Parser) declare(name string, hoist bool) ast.Ref {
	scope := p.scope
	if hoist {
		for scope.Kind == ast.ScopeBlock {
			scope = scope.Parent
		}
	}
	scope.Declare(name, p.tags.Next())
	return ast.Ref{Name: name, Scope: scope.Members[name]}
}

func (p *Parser) resolve(name string) ast.Ref {
	if tag, ok := p.scope.Lookup(name); ok {
		return ast.Ref{Name: name, Scope: tag}
	}
	return ast.Ref{Name: name, Scope: ast.UnboundScope}
}

// ---------------------------------------------------------------------------
// Statements

func (p *Parser) parseStmt() js_ast.Stmt {
	loc := p.cur().Loc

	if p.isPunct(";") {
		p.advance()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}
	}
	if p.isPunct("{") {
		return js_ast.Stmt{Loc: loc, Data: p.parseBlock()}
	}
	if p.isKeyword("var") || p.isKeyword("let") || p.isKeyword("const") {
		decl := p.parseVarDecl()
		p.eatSemi()
		return js_ast.Stmt{Loc: loc, Data: decl}
	}
	if p.isKeyword("function") {
		return js_ast.Stmt{Loc: loc, Data: p.parseFunctionDecl()}
	}
	if p.isKeyword("async") && p.peekAt(1).Kind == js_lexer.TKeyword && p.peekAt(1).Raw == "function" {
		p.advance()
		fn := p.parseFunctionDecl()
		fn.(*js_ast.SFunction).Fn.IsAsync = true
		return js_ast.Stmt{Loc: loc, Data: fn}
	}
	if p.isKeyword("class") {
		return js_ast.Stmt{Loc: loc, Data: p.parseClass()}
	}
	if p.isKeyword("return") {
		p.advance()
		var val js_ast.Expr
		if !p.isPunct(";") && !p.isPunct("}") && !p.isEOF() {
			val = p.parseExpr(js_ast.LComma)
		}
		p.eatSemi()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{Value: val}}
	}
	if p.isKeyword("if") {
		return js_ast.Stmt{Loc: loc, Data: p.parseIf()}
	}
	if p.isKeyword("for") {
		return p.parseFor(loc)
	}
	if p.isKeyword("while") {
		p.advance()
		p.expectPunct("(")
		test := p.parseExpr(js_ast.LLowest)
		p.expectPunct(")")
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}
	}
	if p.isKeyword("do") {
		p.advance()
		body := p.parseStmt()
		if !p.eatKeyword("while") {
			p.errorf("expected 'while' after 'do' body")
		}
		p.expectPunct("(")
		test := p.parseExpr(js_ast.LLowest)
		p.expectPunct(")")
		p.eatSemi()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}
	}
	if p.isKeyword("break") {
		p.advance()
		label := ""
		if p.cur().Kind == js_lexer.TIdentifier {
			label = p.advance().Raw
		}
		p.eatSemi()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{Label: label}}
	}
	if p.isKeyword("continue") {
		p.advance()
		label := ""
		if p.cur().Kind == js_lexer.TIdentifier {
			label = p.advance().Raw
		}
		p.eatSemi()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{Label: label}}
	}
	if p.isKeyword("throw") {
		p.advance()
		val := p.parseExpr(js_ast.LComma)
		p.eatSemi()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: val}}
	}
	if p.isKeyword("try") {
		return js_ast.Stmt{Loc: loc, Data: p.parseTry()}
	}
	if p.isKeyword("switch") {
		return js_ast.Stmt{Loc: loc, Data: p.parseSwitch()}
	}
	if p.isKeyword("import") || p.isKeyword("export") {
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SRaw{Text: p.captureRawStmt()}}
	}

	// Labeled statement: `identifier ':' stmt`.
	if p.cur().Kind == js_lexer.TIdentifier && p.peekAt(1).Kind == js_lexer.TPunctuation && p.peekAt(1).Raw == ":" {
		name := p.advance().Raw
		p.advance() // ':'
		inner := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLabel{Name: name, Stmt: inner}}
	}

	expr := p.parseExpr(js_ast.LLowest)
	p.eatSemi()
	if str, ok := expr.Data.(*js_ast.EString); ok {
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDirective{Value: str.Value}}
	}
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
}

// captureRawStmt consumes tokens up to and including the statement's closing
// `;` (or a closing `}` for a declaration whose body is itself a brace
// block, e.g. `export { ... }` re-export lists don't nest braces further
// here) and returns the exact source text spanned.
func (p *Parser) captureRawStmt() string {
	start := p.cur().Loc.Start
	depth := 0
	for !p.isEOF() {
		if p.isPunct("{") {
			depth++
		} else if p.isPunct("}") {
			if depth == 0 {
				break
			}
			depth--
		}
		if p.isPunct(";") && depth == 0 {
			end := p.cur().Loc.Start + 1
			p.advance()
			return p.source.Contents[start:end]
		}
		p.advance()
	}
	end := p.cur().Loc.Start
	return strings.TrimRight(p.source.Contents[start:end], " \t\r\n")
}

func (p *Parser) parseBlock() *js_ast.SBlock {
	p.expectPunct("{")
	p.pushScope(ast.ScopeBlock)
	var stmts []js_ast.Stmt
	for !p.isPunct("}") && !p.isEOF() {
		stmts = append(stmts, p.parseStmt())
	}
	p.expectPunct("}")
	p.popScope()
	return &js_ast.SBlock{Stmts: stmts}
}

func (p *Parser) parseVarDecl() *js_ast.SVarDecl {
	kind := js_ast.VarVar
	switch p.advance().Raw {
	case "let":
		kind = js_ast.VarLet
	case "const":
		kind = js_ast.VarConst
	}
	hoist := kind == js_ast.VarVar
	var decls []js_ast.Declarator
	for {
		binding := p.parseBindingTarget(hoist)
		var init js_ast.Expr
		if p.eatPunct("=") {
			init = p.parseExpr(js_ast.LAssign)
		}
		decls = append(decls, js_ast.Declarator{Binding: binding, Init: init})
		if !p.eatPunct(",") {
			break
		}
	}
	return &js_ast.SVarDecl{Kind: kind, Decls: decls}
}

// parseBindingTarget parses a binding position: a bare identifier, or an
// array/object destructuring pattern (represented with the same EArray/
// EObject nodes used for literals, with defaults carried as EAssign values
// -- this tool never needs to distinguish a pattern from a literal
// structurally since no pass matches into destructuring patterns).
func (p *Parser) parseBindingTarget(hoist bool) js_ast.Expr {
	loc := p.cur().Loc
	if p.isPunct("[") {
		p.advance()
		var items []js_ast.Expr
		for !p.isPunct("]") && !p.isEOF() {
			if p.eatPunct(",") {
				continue
			}
			if p.eatPunct("...") {
				items = append(items, js_ast.Expr{Data: &js_ast.ESpread{Value: p.parseBindingTarget(hoist)}})
			} else {
				items = append(items, p.parseBindingElement(hoist))
			}
			if !p.isPunct("]") {
				p.eatPunct(",")
			}
		}
		p.expectPunct("]")
		return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items}}
	}
	if p.isPunct("{") {
		p.advance()
		var props []js_ast.Property
		for !p.isPunct("}") && !p.isEOF() {
			if p.eatPunct("...") {
				props = append(props, js_ast.Property{Kind: js_ast.PropertySpread, Value: p.parseBindingTarget(hoist)})
			} else {
				name := p.advance().Raw
				key := js_ast.Expr{Data: &js_ast.EString{Value: name}}
				var value js_ast.Expr
				if p.eatPunct(":") {
					value = p.parseBindingElement(hoist)
				} else {
					value = p.bindingIdentifier(name, hoist)
					if p.eatPunct("=") {
						value = js_ast.Expr{Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: value, Value: p.parseExpr(js_ast.LAssign)}}
					}
				}
				props = append(props, js_ast.Property{Key: key, Value: value, Shorthand: true})
			}
			if !p.isPunct("}") {
				p.eatPunct(",")
			}
		}
		p.expectPunct("}")
		return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: props}}
	}
	name := p.advance().Raw
	return p.bindingIdentifier(name, hoist)
}

func (p *Parser) parseBindingElement(hoist bool) js_ast.Expr {
	target := p.parseBindingTarget(hoist)
	if p.eatPunct("=") {
		return js_ast.Expr{Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: target, Value: p.parseExpr(js_ast.LAssign)}}
	}
	return target
}

func (p *Parser) bindingIdentifier(name string, hoist bool) js_ast.Expr {
	ref := p.declare(name, hoist)
	return js_ast.Expr{Data: &js_ast.EIdentifier{Ref: ref}}
}

func (p *Parser) parseFunctionDecl() js_ast.S {
	p.advance() // 'function'
	isGenerator := p.eatPunct("*")
	name := ""
	if p.cur().Kind == js_lexer.TIdentifier {
		name = p.advance().Raw
	}
	ref := p.declare(name, true)
	fn := p.parseFunctionRest(isGenerator)
	if name != "" {
		fn.Name = &ref
	}
	return &js_ast.SFunction{Fn: *fn}
}

// parseFunctionRest parses `(params) { body }`, assuming the `function`
// keyword, optional `*`, and optional name have already been consumed.
func (p *Parser) parseFunctionRest(isGenerator bool) *js_ast.Fn {
	p.pushScope(ast.ScopeFunction)
	args := p.parseParams()
	body := p.parseFunctionBody()
	p.popScope()
	return &js_ast.Fn{Args: args, Body: body, IsGenerator: isGenerator}
}

func (p *Parser) parseParams() []js_ast.Arg {
	p.expectPunct("(")
	var args []js_ast.Arg
	for !p.isPunct(")") && !p.isEOF() {
		isRest := p.eatPunct("...")
		binding := p.parseBindingTarget(false)
		var def js_ast.Expr
		if !isRest && p.eatPunct("=") {
			def = p.parseExpr(js_ast.LAssign)
		}
		args = append(args, js_ast.Arg{Binding: binding, Default: def, IsRest: isRest})
		if !p.isPunct(")") {
			p.eatPunct(",")
		}
	}
	p.expectPunct(")")
	return args
}

func (p *Parser) parseFunctionBody() []js_ast.Stmt {
	p.expectPunct("{")
	var stmts []js_ast.Stmt
	for !p.isPunct("}") && !p.isEOF() {
		stmts = append(stmts, p.parseStmt())
	}
	p.expectPunct("}")
	return stmts
}

// parseClass captures the class body as raw text: spec.md's ten passes
// never rewrite inside a class, so there is no value in decomposing it.
func (p *Parser) parseClass() js_ast.S {
	p.advance() // 'class'
	var ref *ast.Ref
	if p.cur().Kind == js_lexer.TIdentifier {
		r := p.declare(p.advance().Raw, false)
		ref = &r
	}
	var super js_ast.Expr
	if p.eatKeyword("extends") {
		super = p.parseExpr(js_ast.LCall)
	}
	p.expectPunct("{")
	start := p.cur().Loc.Start
	depth := 0
	for !p.isEOF() {
		if p.isPunct("{") {
			depth++
		} else if p.isPunct("}") {
			if depth == 0 {
				break
			}
			depth--
		}
		p.advance()
	}
	end := p.cur().Loc.Start
	body := p.source.Contents[start:end]
	p.expectPunct("}")
	return &js_ast.SClass{Name: ref, SuperClass: super, BodyRaw: body}
}

func (p *Parser) parseIf() js_ast.S {
	p.advance() // 'if'
	p.expectPunct("(")
	test := p.parseExpr(js_ast.LLowest)
	p.expectPunct(")")
	yes := p.parseStmt()
	var no js_ast.Stmt
	if p.eatKeyword("else") {
		no = p.parseStmt()
	}
	return &js_ast.SIf{Test: test, Yes: yes, No: no}
}

func (p *Parser) parseFor(loc logger.Loc) js_ast.Stmt {
	p.advance() // 'for'
	p.expectPunct("(")
	p.pushScope(ast.ScopeBlock)

	var init js_ast.S
	if p.isKeyword("var") || p.isKeyword("let") || p.isKeyword("const") {
		init = p.parseVarDecl()
	} else if !p.isPunct(";") {
		init = &js_ast.SExpr{Value: p.parseExpr(js_ast.LLowest)}
	}

	if p.eatKeyword("in") {
		value := p.parseExpr(js_ast.LLowest)
		p.expectPunct(")")
		body := p.parseStmt()
		p.popScope()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: init, Value: value, Body: body}}
	}
	if p.eatKeyword("of") {
		value := p.parseExpr(js_ast.LAssign)
		p.expectPunct(")")
		body := p.parseStmt()
		p.popScope()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: init, Value: value, Body: body}}
	}

	p.expectPunct(";")
	var test js_ast.Expr
	if !p.isPunct(";") {
		test = p.parseExpr(js_ast.LLowest)
	}
	p.expectPunct(";")
	var update js_ast.Expr
	if !p.isPunct(")") {
		update = p.parseExpr(js_ast.LLowest)
	}
	p.expectPunct(")")
	body := p.parseStmt()
	p.popScope()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}

func (p *Parser) parseTry() js_ast.S {
	p.advance() // 'try'
	block := p.parseBlock().Stmts
	var catch *js_ast.Catch
	var finally []js_ast.Stmt
	if p.eatKeyword("catch") {
		p.pushScope(ast.ScopeBlock)
		var binding js_ast.Expr
		if p.eatPunct("(") {
			binding = p.parseBindingTarget(false)
			p.expectPunct(")")
		}
		p.expectPunct("{")
		var stmts []js_ast.Stmt
		for !p.isPunct("}") && !p.isEOF() {
			stmts = append(stmts, p.parseStmt())
		}
		p.expectPunct("}")
		p.popScope()
		catch = &js_ast.Catch{Binding: binding, Body: stmts}
	}
	if p.eatKeyword("finally") {
		finally = p.parseBlock().Stmts
	}
	return &js_ast.STry{Block: block, Catch: catch, Finally: finally}
}

func (p *Parser) parseSwitch() js_ast.S {
	p.advance() // 'switch'
	p.expectPunct("(")
	test := p.parseExpr(js_ast.LLowest)
	p.expectPunct(")")
	p.expectPunct("{")
	p.pushScope(ast.ScopeBlock)
	var cases []js_ast.Case
	for !p.isPunct("}") && !p.isEOF() {
		var c js_ast.Case
		if p.eatKeyword("case") {
			test := p.parseExpr(js_ast.LLowest)
			c.Test = test
		} else if !p.eatKeyword("default") {
			p.errorf("expected 'case' or 'default' in switch body")
			break
		}
		p.expectPunct(":")
		for !p.isKeyword("case") && !p.isKeyword("default") && !p.isPunct("}") && !p.isEOF() {
			c.Body = append(c.Body, p.parseStmt())
		}
		cases = append(cases, c)
	}
	p.expectPunct("}")
	p.popScope()
	return &js_ast.SSwitch{Test: test, Cases: cases}
}
