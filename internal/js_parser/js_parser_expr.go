package js_parser

import (
	"github.com/jsreadable/unminify/internal/ast"
	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/jsreadable/unminify/internal/js_lexer"
)

// parseExpr parses an expression, stopping at the first operator whose
// precedence is below level -- the standard precedence-climbing shape
// esbuild's own expression parser uses, just over a much smaller operator
// table.
func (p *Parser) parseExpr(level js_ast.L) js_ast.Expr {
	left := p.parsePrefix()
	return p.parseSuffix(left, level)
}

var prefixUnaryPunct = map[string]js_ast.UOp{
	"+": js_ast.UnOpPos, "-": js_ast.UnOpNeg, "~": js_ast.UnOpCpl, "!": js_ast.UnOpNot,
}

var prefixUnaryKeyword = map[string]js_ast.UOp{
	"typeof": js_ast.UnOpTypeof, "void": js_ast.UnOpVoid, "delete": js_ast.UnOpDelete,
}

func (p *Parser) parsePrefix() js_ast.Expr {
	tok := p.cur()
	loc := tok.Loc

	if tok.Kind == js_lexer.TPunctuation {
		switch tok.Raw {
		case "(":
			return p.parseParenOrArrow()
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		case "...":
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ESpread{Value: p.parseExpr(js_ast.LAssign)}}
		case "++", "--":
			op := js_ast.UnOpPreInc
			if tok.Raw == "--" {
				op = js_ast.UnOpPreDec
			}
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: p.parseExpr(js_ast.LPrefix)}}
		}
		if op, ok := prefixUnaryPunct[tok.Raw]; ok {
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: p.parseExpr(js_ast.LPrefix)}}
		}
	}

	if tok.Kind == js_lexer.TKeyword {
		if op, ok := prefixUnaryKeyword[tok.Raw]; ok {
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: p.parseExpr(js_ast.LPrefix)}}
		}
		switch tok.Raw {
		case "this":
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}
		case "super":
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ESuper{}}
		case "true", "false":
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: tok.Raw == "true"}}
		case "null":
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENull{}}
		case "function":
			return p.parseFunctionExpr(false)
		case "async":
			if p.peekAt(1).Kind == js_lexer.TKeyword && p.peekAt(1).Raw == "function" {
				p.advance()
				expr := p.parseFunctionExpr(false)
				expr.Data.(*js_ast.EFunction).Fn.IsAsync = true
				return expr
			}
			if p.peekAt(1).Kind == js_lexer.TIdentifier && p.peekAt(2).Kind == js_lexer.TPunctuation && p.peekAt(2).Raw == "=>" {
				p.advance()
				return p.parseArrowFromIdent(true)
			}
			if p.peekAt(1).Kind == js_lexer.TPunctuation && p.peekAt(1).Raw == "(" {
				if arrow, ok := p.tryParseAsyncArrowParen(); ok {
					return arrow
				}
			}
			p.advance()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: p.resolve("async")}}
		case "new":
			p.advance()
			callee := p.parseExpr(js_ast.LMember)
			var args []js_ast.Expr
			if p.isPunct("(") {
				args = p.parseArgs()
			}
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENew{Target: callee, Args: args}}
		case "yield":
			p.advance()
			p.eatPunct("*")
			if !p.isPunct(";") && !p.isPunct(")") && !p.isPunct(",") && !p.isPunct("}") && !p.isEOF() {
				p.parseExpr(js_ast.LAssign) // parsed only to find its end; kept as source text
			}
			last := p.toks[p.i-1]
			end := int(last.Loc.Start) + len(last.Raw)
			return js_ast.Expr{Loc: loc, Data: &js_ast.ERaw{Text: p.source.Contents[loc.Start:end]}}
		}
	}

	if tok.Kind == js_lexer.TIdentifier {
		if p.peekAt(1).Kind == js_lexer.TPunctuation && p.peekAt(1).Raw == "=>" {
			return p.parseArrowFromIdent(false)
		}
		p.advance()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: p.resolve(tok.Raw)}}
	}

	switch tok.Kind {
	case js_lexer.TNumericLiteral:
		p.advance()
		if tok.Raw[len(tok.Raw)-1] == 'n' {
			return js_ast.Expr{Loc: loc, Data: &js_ast.EBigInt{Value: tok.Raw[:len(tok.Raw)-1]}}
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: parseNumericLiteral(tok.Raw)}}
	case js_lexer.TStringLiteral:
		p.advance()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: decodeStringLiteral(tok.Raw)}}
	case js_lexer.TTemplateLiteral, js_lexer.TRegExpLiteral:
		p.advance()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ERaw{Text: tok.Raw}}
	}

	p.errorf("unexpected token %q", tok.Raw)
	p.advance()
	return js_ast.Expr{Loc: loc, Data: &js_ast.EMissing{}}
}

var assignOps = map[string]js_ast.AOp{
	"=": js_ast.AssignEq, "+=": js_ast.AssignAdd, "-=": js_ast.AssignSub, "*=": js_ast.AssignMul,
	"/=": js_ast.AssignDiv, "%=": js_ast.AssignMod, "**=": js_ast.AssignPow,
	"<<=": js_ast.AssignShl, ">>=": js_ast.AssignShr, ">>>=": js_ast.AssignUShr,
	"&=": js_ast.AssignBitAnd, "|=": js_ast.AssignBitOr, "^=": js_ast.AssignBitXor,
	"&&=": js_ast.AssignLogicalAnd, "||=": js_ast.AssignLogicalOr, "??=": js_ast.AssignNullish,
}

var binOpPunct = map[string]js_ast.BOp{
	"+": js_ast.BinOpAdd, "-": js_ast.BinOpSub, "*": js_ast.BinOpMul, "/": js_ast.BinOpDiv, "%": js_ast.BinOpMod,
	"**": js_ast.BinOpPow, "<<": js_ast.BinOpShl, ">>": js_ast.BinOpShr, ">>>": js_ast.BinOpUShr,
	"&": js_ast.BinOpBitwiseAnd, "|": js_ast.BinOpBitwiseOr, "^": js_ast.BinOpBitwiseXor,
	"<": js_ast.BinOpLt, "<=": js_ast.BinOpLe, ">": js_ast.BinOpGt, ">=": js_ast.BinOpGe,
	"==": js_ast.BinOpLooseEq, "!=": js_ast.BinOpLooseNe, "===": js_ast.BinOpStrictEq, "!==": js_ast.BinOpStrictNe,
	"&&": js_ast.BinOpLogicalAnd, "||": js_ast.BinOpLogicalOr, "??": js_ast.BinOpNullishCoalescing,
}

func (p *Parser) parseSuffix(left js_ast.Expr, level js_ast.L) js_ast.Expr {
	for {
		tok := p.cur()

		if tok.Kind == js_lexer.TPunctuation {
			switch {
			case tok.Raw == "." && level <= js_ast.LMember:
				p.advance()
				name := p.advance().Raw
				left = js_ast.Expr{Data: &js_ast.EDot{Target: left, Name: name}}
				continue
			case tok.Raw == "?." && level <= js_ast.LMember:
				p.advance()
				switch {
				case p.isPunct("("):
					args := p.parseArgs()
					left = js_ast.Expr{Data: &js_ast.ECall{Target: left, Args: args, OptionalChain: true}}
				case p.isPunct("["):
					p.advance()
					idx := p.parseExpr(js_ast.LLowest)
					p.expectPunct("]")
					left = js_ast.Expr{Data: &js_ast.EIndex{Target: left, Index: idx, Optional: true}}
				default:
					name := p.advance().Raw
					left = js_ast.Expr{Data: &js_ast.EDot{Target: left, Name: name, Optional: true}}
				}
				continue
			case tok.Raw == "[" && level <= js_ast.LMember:
				p.advance()
				idx := p.parseExpr(js_ast.LLowest)
				p.expectPunct("]")
				left = js_ast.Expr{Data: &js_ast.EIndex{Target: left, Index: idx}}
				continue
			case tok.Raw == "(" && level <= js_ast.LCall:
				args := p.parseArgs()
				left = js_ast.Expr{Data: &js_ast.ECall{Target: left, Args: args}}
				continue
			case (tok.Raw == "++" || tok.Raw == "--") && level <= js_ast.LPostfix:
				op := js_ast.UnOpPostInc
				if tok.Raw == "--" {
					op = js_ast.UnOpPostDec
				}
				p.advance()
				left = js_ast.Expr{Data: &js_ast.EUnary{Op: op, Value: left}}
				continue
			case tok.Raw == "?" && level <= js_ast.LConditional:
				p.advance()
				yes := p.parseExpr(js_ast.LAssign)
				p.expectPunct(":")
				no := p.parseExpr(js_ast.LAssign)
				left = js_ast.Expr{Data: &js_ast.EConditional{Test: left, Yes: yes, No: no}}
				continue
			case tok.Raw == "," && level <= js_ast.LComma:
				exprs := []js_ast.Expr{left}
				for p.eatPunct(",") {
					exprs = append(exprs, p.parseExpr(js_ast.LAssign))
				}
				left = js_ast.Expr{Data: &js_ast.ESequence{Exprs: exprs}}
				continue
			}

			if aop, ok := assignOps[tok.Raw]; ok && level <= js_ast.LAssign {
				p.advance()
				value := p.parseExpr(js_ast.LAssign)
				left = js_ast.Expr{Data: &js_ast.EAssign{Op: aop, Target: left, Value: value}}
				continue
			}
			if bop, ok := binOpPunct[tok.Raw]; ok {
				blevel := bop.Level()
				if blevel < level {
					return left
				}
				p.advance()
				rightLevel := blevel + 1
				if bop == js_ast.BinOpPow {
					rightLevel = blevel // right-associative
				}
				right := p.parseExpr(rightLevel)
				left = js_ast.Expr{Data: &js_ast.EBinary{Op: bop, Left: left, Right: right}}
				continue
			}
		}

		if tok.Kind == js_lexer.TKeyword && (tok.Raw == "in" || tok.Raw == "instanceof") {
			bop := js_ast.BinOpIn
			if tok.Raw == "instanceof" {
				bop = js_ast.BinOpInstanceof
			}
			if bop.Level() < level {
				return left
			}
			p.advance()
			right := p.parseExpr(bop.Level() + 1)
			left = js_ast.Expr{Data: &js_ast.EBinary{Op: bop, Left: left, Right: right}}
			continue
		}

		return left
	}
}

func (p *Parser) parseArgs() []js_ast.Expr {
	p.expectPunct("(")
	var args []js_ast.Expr
	for !p.isPunct(")") && !p.isEOF() {
		args = append(args, p.parseExpr(js_ast.LAssign))
		if !p.isPunct(")") {
			p.eatPunct(",")
		}
	}
	p.expectPunct(")")
	return args
}

func (p *Parser) parseArrayLiteral() js_ast.Expr {
	loc := p.cur().Loc
	p.advance() // '['
	var items []js_ast.Expr
	for !p.isPunct("]") && !p.isEOF() {
		if p.isPunct(",") {
			p.advance()
			items = append(items, js_ast.Expr{Data: &js_ast.EMissing{}})
			continue
		}
		items = append(items, p.parseExpr(js_ast.LAssign))
		if !p.isPunct("]") {
			p.eatPunct(",")
		}
	}
	p.expectPunct("]")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items}}
}

func (p *Parser) parseObjectLiteral() js_ast.Expr {
	loc := p.cur().Loc
	p.advance() // '{'
	var props []js_ast.Property
	for !p.isPunct("}") && !p.isEOF() {
		props = append(props, p.parseObjectProperty())
		if !p.isPunct("}") {
			p.eatPunct(",")
		}
	}
	p.expectPunct("}")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: props}}
}

func (p *Parser) parseObjectProperty() js_ast.Property {
	if p.eatPunct("...") {
		return js_ast.Property{Kind: js_ast.PropertySpread, Value: p.parseExpr(js_ast.LAssign)}
	}

	kind := js_ast.PropertyNormal
	if (p.isKeyword("get") || p.isKeyword("set")) && !isPropertyTerminator(p.peekAt(1)) {
		if p.cur().Raw == "get" {
			kind = js_ast.PropertyGet
		} else {
			kind = js_ast.PropertySet
		}
		p.advance()
	}

	computed := false
	var key js_ast.Expr
	if p.eatPunct("[") {
		computed = true
		key = p.parseExpr(js_ast.LAssign)
		p.expectPunct("]")
	} else {
		tok := p.advance()
		switch tok.Kind {
		case js_lexer.TStringLiteral:
			key = js_ast.Expr{Data: &js_ast.EString{Value: decodeStringLiteral(tok.Raw)}}
		case js_lexer.TNumericLiteral:
			key = js_ast.Expr{Data: &js_ast.EString{Value: tok.Raw}}
		default:
			key = js_ast.Expr{Data: &js_ast.EString{Value: tok.Raw}}
		}
	}

	if kind == js_ast.PropertyGet || kind == js_ast.PropertySet || p.isPunct("(") {
		p.pushScope(ast.ScopeFunction)
		args := p.parseParams()
		body := p.parseFunctionBody()
		p.popScope()
		if kind == js_ast.PropertyNormal {
			kind = js_ast.PropertyMethod
		}
		return js_ast.Property{Kind: kind, Key: key, Computed: computed, Value: js_ast.Expr{Data: &js_ast.EFunction{Fn: js_ast.Fn{Args: args, Body: body}}}}
	}

	if p.eatPunct(":") {
		return js_ast.Property{Key: key, Computed: computed, Value: p.parseExpr(js_ast.LAssign)}
	}

	// Shorthand `{ x }` or `{ x = default }` (the latter only valid in a
	// destructuring-pattern position, but accepted here uniformly).
	name, _ := key.Data.(*js_ast.EString)
	value := js_ast.Expr{Data: &js_ast.EIdentifier{Ref: p.resolve(name.Value)}}
	if p.eatPunct("=") {
		value = js_ast.Expr{Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: value, Value: p.parseExpr(js_ast.LAssign)}}
	}
	return js_ast.Property{Key: key, Value: value, Shorthand: true}
}

func isPropertyTerminator(t js_lexer.Token) bool {
	return t.Kind == js_lexer.TPunctuation && (t.Raw == ":" || t.Raw == "(" || t.Raw == "," || t.Raw == "}")
}

func (p *Parser) parseFunctionExpr(isGenerator bool) js_ast.Expr {
	loc := p.cur().Loc
	p.advance() // 'function'
	isGen := isGenerator || p.eatPunct("*")
	var ref *ast.Ref
	p.pushScope(ast.ScopeFunction)
	if p.cur().Kind == js_lexer.TIdentifier {
		r := p.declare(p.advance().Raw, false)
		ref = &r
	}
	args := p.parseParams()
	body := p.parseFunctionBody()
	p.popScope()
	return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: js_ast.Fn{Name: ref, Args: args, Body: body, IsGenerator: isGen}}}
}

func (p *Parser) parseParenOrArrow() js_ast.Expr {
	depth := 0
	j := p.i
	for j < len(p.toks) {
		t := p.toks[j]
		if t.Kind == js_lexer.TPunctuation && t.Raw == "(" {
			depth++
		} else if t.Kind == js_lexer.TPunctuation && t.Raw == ")" {
			depth--
			if depth == 0 {
				break
			}
		}
		j++
	}
	isArrow := j+1 < len(p.toks) && p.toks[j+1].Kind == js_lexer.TPunctuation && p.toks[j+1].Raw == "=>"
	if isArrow {
		p.pushScope(ast.ScopeFunction)
		args := p.parseParams()
		p.expectPunct("=>")
		return p.finishArrowBody(args, false)
	}
	p.advance() // '('
	inner := p.parseExpr(js_ast.LLowest)
	p.expectPunct(")")
	return inner
}

func (p *Parser) tryParseAsyncArrowParen() (js_ast.Expr, bool) {
	depth := 0
	j := p.i + 1 // skip 'async', land on '('
	for j < len(p.toks) {
		t := p.toks[j]
		if t.Kind == js_lexer.TPunctuation && t.Raw == "(" {
			depth++
		} else if t.Kind == js_lexer.TPunctuation && t.Raw == ")" {
			depth--
			if depth == 0 {
				break
			}
		}
		j++
	}
	if !(j+1 < len(p.toks) && p.toks[j+1].Kind == js_lexer.TPunctuation && p.toks[j+1].Raw == "=>") {
		return js_ast.Expr{}, false
	}
	p.advance() // 'async'
	p.pushScope(ast.ScopeFunction)
	args := p.parseParams()
	p.expectPunct("=>")
	return p.finishArrowBody(args, true), true
}

func (p *Parser) parseArrowFromIdent(isAsync bool) js_ast.Expr {
	p.pushScope(ast.ScopeFunction)
	ref := p.declare(p.advance().Raw, false)
	p.expectPunct("=>")
	args := []js_ast.Arg{{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: ref}}}}
	return p.finishArrowBody(args, isAsync)
}

func (p *Parser) finishArrowBody(args []js_ast.Arg, isAsync bool) js_ast.Expr {
	if p.isPunct("{") {
		body := p.parseFunctionBody()
		p.popScope()
		return js_ast.Expr{Data: &js_ast.EArrow{Args: args, Body: body, IsAsync: isAsync}}
	}
	exprBody := p.parseExpr(js_ast.LAssign)
	p.popScope()
	return js_ast.Expr{Data: &js_ast.EArrow{Args: args, PreferExpr: true, ExprBody: exprBody, IsAsync: isAsync}}
}
