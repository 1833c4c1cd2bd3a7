// Package js_printer renders an internal/js_ast tree back to source text.
// Modeled on esbuild's internal/js_printer in spirit -- a single Printer
// walking the tree and writing directly into a string builder, deciding
// parenthesization from operator precedence rather than from an explicit
// paren AST node -- but esbuild's version handles source maps, minification,
// and every target's feature-downleveling; this one only needs to produce
// readable, re-parseable JavaScript for a rewrite tool's output, so all of
// that machinery is gone.
package js_printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsreadable/unminify/internal/helpers"
	"github.com/jsreadable/unminify/internal/js_ast"
)

// Print renders ast as JavaScript source text, two-space indented.
func Print(ast *js_ast.AST) string {
	p := &printer{indentWith: "  "}
	p.printStmts(ast.Stmts, 0)
	return p.sb.String()
}

type printer struct {
	sb         strings.Builder
	indentWith string
}

func (p *printer) writeIndent(level int) {
	for i := 0; i < level; i++ {
		p.sb.WriteString(p.indentWith)
	}
}

// ---------------------------------------------------------------------------
// Statements

func (p *printer) printStmts(stmts []js_ast.Stmt, indent int) {
	for _, s := range stmts {
		p.printStmt(s, indent)
	}
}

func (p *printer) printStmt(s js_ast.Stmt, indent int) {
	for _, c := range s.LeadingComments {
		p.writeIndent(indent)
		p.sb.WriteString("// ")
		p.sb.WriteString(c)
		p.sb.WriteString("\n")
	}
	p.writeIndent(indent)

	switch d := s.Data.(type) {
	case *js_ast.SEmpty:
		p.sb.WriteString(";\n")

	case *js_ast.SRaw:
		p.sb.WriteString(d.Text)
		p.sb.WriteString("\n")

	case *js_ast.SDirective:
		p.sb.WriteString(quoteString(d.Value))
		p.sb.WriteString(";\n")

	case *js_ast.SExpr:
		if needsStmtParens(d.Value) {
			p.sb.WriteString("(")
			p.sb.WriteString(p.expr(d.Value, js_ast.LLowest))
			p.sb.WriteString(")")
		} else {
			p.sb.WriteString(p.expr(d.Value, js_ast.LLowest))
		}
		p.sb.WriteString(";\n")

	case *js_ast.SBlock:
		p.sb.WriteString("{\n")
		p.printStmts(d.Stmts, indent+1)
		p.writeIndent(indent)
		p.sb.WriteString("}\n")

	case *js_ast.SVarDecl:
		p.sb.WriteString(d.Kind.String())
		p.sb.WriteString(" ")
		for i, decl := range d.Decls {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(p.expr(decl.Binding, js_ast.LAssign))
			if decl.Init.Data != nil {
				p.sb.WriteString(" = ")
				p.sb.WriteString(p.expr(decl.Init, js_ast.LAssign))
			}
		}
		p.sb.WriteString(";\n")

	case *js_ast.SFunction:
		p.printFnHeader("function", d.Fn)
		p.sb.WriteString(" {\n")
		p.printStmts(d.Fn.Body, indent+1)
		p.writeIndent(indent)
		p.sb.WriteString("}\n")

	case *js_ast.SClass:
		p.sb.WriteString("class")
		if d.Name != nil {
			p.sb.WriteString(" ")
			p.sb.WriteString(d.Name.Name)
		}
		if d.SuperClass.Data != nil {
			p.sb.WriteString(" extends ")
			p.sb.WriteString(p.expr(d.SuperClass, js_ast.LCall))
		}
		p.sb.WriteString(" {")
		p.sb.WriteString(d.BodyRaw)
		p.sb.WriteString("}\n")

	case *js_ast.SReturn:
		p.sb.WriteString("return")
		if d.Value.Data != nil {
			p.sb.WriteString(" ")
			p.sb.WriteString(p.expr(d.Value, js_ast.LComma))
		}
		p.sb.WriteString(";\n")

	case *js_ast.SIf:
		p.sb.WriteString("if (")
		p.sb.WriteString(p.expr(d.Test, js_ast.LLowest))
		p.sb.WriteString(") ")
		p.printClauseBody(d.Yes, indent)
		if d.No.Data != nil {
			p.writeIndent(indent)
			p.sb.WriteString("else ")
			p.printClauseBody(d.No, indent)
		}

	case *js_ast.SFor:
		p.sb.WriteString("for (")
		p.printForInit(d.Init)
		p.sb.WriteString("; ")
		if d.Test.Data != nil {
			p.sb.WriteString(p.expr(d.Test, js_ast.LLowest))
		}
		p.sb.WriteString("; ")
		if d.Update.Data != nil {
			p.sb.WriteString(p.expr(d.Update, js_ast.LLowest))
		}
		p.sb.WriteString(") ")
		p.printClauseBody(d.Body, indent)

	case *js_ast.SForIn:
		p.sb.WriteString("for (")
		p.printForInit(d.Init)
		p.sb.WriteString(" in ")
		p.sb.WriteString(p.expr(d.Value, js_ast.LLowest))
		p.sb.WriteString(") ")
		p.printClauseBody(d.Body, indent)

	case *js_ast.SForOf:
		p.sb.WriteString("for (")
		if d.IsAwait {
			p.sb.WriteString("await ")
		}
		p.printForInit(d.Init)
		p.sb.WriteString(" of ")
		p.sb.WriteString(p.expr(d.Value, js_ast.LAssign))
		p.sb.WriteString(") ")
		p.printClauseBody(d.Body, indent)

	case *js_ast.SWhile:
		p.sb.WriteString("while (")
		p.sb.WriteString(p.expr(d.Test, js_ast.LLowest))
		p.sb.WriteString(") ")
		p.printClauseBody(d.Body, indent)

	case *js_ast.SDoWhile:
		p.sb.WriteString("do ")
		p.printClauseBody(d.Body, indent)
		p.writeIndent(indent)
		p.sb.WriteString("while (")
		p.sb.WriteString(p.expr(d.Test, js_ast.LLowest))
		p.sb.WriteString(");\n")

	case *js_ast.SBreak:
		p.sb.WriteString("break")
		if d.Label != "" {
			p.sb.WriteString(" ")
			p.sb.WriteString(d.Label)
		}
		p.sb.WriteString(";\n")

	case *js_ast.SContinue:
		p.sb.WriteString("continue")
		if d.Label != "" {
			p.sb.WriteString(" ")
			p.sb.WriteString(d.Label)
		}
		p.sb.WriteString(";\n")

	case *js_ast.SLabel:
		p.sb.WriteString(d.Name)
		p.sb.WriteString(": ")
		// the inner statement already writes its own indent; drop back so
		// the label and its statement share one line-start.
		saved := p.sb.Len()
		_ = saved
		p.printStmtNoIndent(d.Stmt, indent)

	case *js_ast.SThrow:
		p.sb.WriteString("throw ")
		p.sb.WriteString(p.expr(d.Value, js_ast.LComma))
		p.sb.WriteString(";\n")

	case *js_ast.STry:
		p.sb.WriteString("try {\n")
		p.printStmts(d.Block, indent+1)
		p.writeIndent(indent)
		p.sb.WriteString("}")
		if d.Catch != nil {
			p.sb.WriteString(" catch ")
			if d.Catch.Binding.Data != nil {
				p.sb.WriteString("(")
				p.sb.WriteString(p.expr(d.Catch.Binding, js_ast.LAssign))
				p.sb.WriteString(") ")
			}
			p.sb.WriteString("{\n")
			p.printStmts(d.Catch.Body, indent+1)
			p.writeIndent(indent)
			p.sb.WriteString("}")
		}
		if d.Finally != nil {
			p.sb.WriteString(" finally {\n")
			p.printStmts(d.Finally, indent+1)
			p.writeIndent(indent)
			p.sb.WriteString("}")
		}
		p.sb.WriteString("\n")

	case *js_ast.SSwitch:
		p.sb.WriteString("switch (")
		p.sb.WriteString(p.expr(d.Test, js_ast.LLowest))
		p.sb.WriteString(") {\n")
		for _, c := range d.Cases {
			p.writeIndent(indent + 1)
			if c.Test.Data != nil {
				p.sb.WriteString("case ")
				p.sb.WriteString(p.expr(c.Test, js_ast.LLowest))
				p.sb.WriteString(":\n")
			} else {
				p.sb.WriteString("default:\n")
			}
			p.printStmts(c.Body, indent+2)
		}
		p.writeIndent(indent)
		p.sb.WriteString("}\n")

	case *js_ast.SEnum:
		p.sb.WriteString("enum ")
		p.sb.WriteString(d.Name)
		p.sb.WriteString(" {\n")
		for i, m := range d.Members {
			p.writeIndent(indent + 1)
			p.sb.WriteString(m.Name)
			p.sb.WriteString(" = ")
			p.sb.WriteString(p.expr(m.Value, js_ast.LAssign))
			if i < len(d.Members)-1 {
				p.sb.WriteString(",")
			}
			p.sb.WriteString("\n")
		}
		p.writeIndent(indent)
		p.sb.WriteString("}\n")

	default:
		panic(fmt.Sprintf("js_printer: unhandled statement %T", d))
	}
}

// printStmtNoIndent prints s as printStmt would, but without its own leading
// indentation -- used right after a label's "name: " prefix.
func (p *printer) printStmtNoIndent(s js_ast.Stmt, indent int) {
	saved := p.indentWith
	_ = saved
	full := p.capture(func() { p.printStmt(s, indent) })
	p.sb.WriteString(strings.TrimPrefix(full, strings.Repeat(p.indentWith, indent)))
}

func (p *printer) capture(f func()) string {
	saved := p.sb
	p.sb = strings.Builder{}
	f()
	out := p.sb.String()
	p.sb = saved
	return out
}

func (p *printer) printForInit(init js_ast.S) {
	switch d := init.(type) {
	case nil:
	case *js_ast.SVarDecl:
		p.sb.WriteString(d.Kind.String())
		p.sb.WriteString(" ")
		for i, decl := range d.Decls {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(p.expr(decl.Binding, js_ast.LAssign))
			if decl.Init.Data != nil {
				p.sb.WriteString(" = ")
				p.sb.WriteString(p.expr(decl.Init, js_ast.LAssign))
			}
		}
	case *js_ast.SExpr:
		p.sb.WriteString(p.expr(d.Value, js_ast.LLowest))
	}
}

// printClauseBody prints the body of an if/for/while/do as a block if it
// already is one, or as an indented single statement otherwise.
func (p *printer) printClauseBody(s js_ast.Stmt, indent int) {
	if _, ok := s.Data.(*js_ast.SBlock); ok {
		p.printStmt(s, indent)
		return
	}
	p.sb.WriteString("\n")
	p.printStmt(s, indent+1)
}

func (p *printer) printFnHeader(keyword string, fn js_ast.Fn) {
	if fn.IsAsync {
		p.sb.WriteString("async ")
	}
	p.sb.WriteString(keyword)
	if fn.IsGenerator {
		p.sb.WriteString("*")
	}
	if fn.Name != nil {
		p.sb.WriteString(" ")
		p.sb.WriteString(fn.Name.Name)
	}
	p.sb.WriteString("(")
	p.printArgs(fn.Args)
	p.sb.WriteString(")")
}

func (p *printer) printArgs(args []js_ast.Arg) {
	for i, a := range args {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		if a.IsRest {
			p.sb.WriteString("...")
		}
		p.sb.WriteString(p.expr(a.Binding, js_ast.LAssign))
		if a.Default.Data != nil {
			p.sb.WriteString(" = ")
			p.sb.WriteString(p.expr(a.Default, js_ast.LAssign))
		}
	}
}

// ---------------------------------------------------------------------------
// Expressions

// expr renders e, wrapping it in parens when its own precedence is lower
// than minLevel -- the same pattern esbuild's printer uses, just driven off
// the trimmed BOp/UOp/AOp level tables in internal/js_ast instead of a
// binder-aware flags bitmask.
func (p *printer) expr(e js_ast.Expr, minLevel js_ast.L) string {
	text, level := p.exprText(e)
	if level < minLevel {
		return "(" + text + ")"
	}
	return text
}

func (p *printer) exprText(e js_ast.Expr) (string, js_ast.L) {
	switch d := e.Data.(type) {
	case *js_ast.EMissing:
		return "", js_ast.LMember
	case *js_ast.ENull:
		return "null", js_ast.LMember
	case *js_ast.EUndefined:
		return "undefined", js_ast.LMember
	case *js_ast.EThis:
		return "this", js_ast.LMember
	case *js_ast.ESuper:
		return "super", js_ast.LMember
	case *js_ast.EBoolean:
		if d.Value {
			return "true", js_ast.LMember
		}
		return "false", js_ast.LMember
	case *js_ast.ENumber:
		return formatNumber(d.Value), js_ast.LMember
	case *js_ast.EBigInt:
		return d.Value + "n", js_ast.LMember
	case *js_ast.EString:
		return quoteString(d.Value), js_ast.LMember
	case *js_ast.ERaw:
		return d.Text, js_ast.LMember
	case *js_ast.EIdentifier:
		return d.Ref.Name, js_ast.LMember

	case *js_ast.EArray:
		var b strings.Builder
		b.WriteString("[")
		for i, item := range d.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			if _, ok := item.Data.(*js_ast.EMissing); ok {
				continue
			}
			b.WriteString(p.expr(item, js_ast.LAssign))
		}
		b.WriteString("]")
		return b.String(), js_ast.LMember

	case *js_ast.EObject:
		var b strings.Builder
		b.WriteString("{")
		for i, prop := range d.Properties {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.property(prop))
		}
		b.WriteString("}")
		return b.String(), js_ast.LMember

	case *js_ast.ESpread:
		return "..." + p.expr(d.Value, js_ast.LAssign), js_ast.LMember

	case *js_ast.EFunction:
		var b strings.Builder
		saved := p.sb
		p.sb = strings.Builder{}
		p.printFnHeader("function", d.Fn)
		b.WriteString(p.sb.String())
		p.sb = saved
		b.WriteString(" {\n")
		p.sbAppendBody(&b, d.Fn.Body)
		b.WriteString("}")
		return b.String(), js_ast.LMember

	case *js_ast.EArrow:
		var b strings.Builder
		if d.IsAsync {
			b.WriteString("async ")
		}
		b.WriteString("(")
		b.WriteString(p.capture(func() { p.printArgs(d.Args) }))
		b.WriteString(") => ")
		if d.PreferExpr {
			b.WriteString(p.expr(d.ExprBody, js_ast.LAssign))
		} else {
			b.WriteString("{\n")
			p.sbAppendBody(&b, d.Body)
			b.WriteString("}")
		}
		return b.String(), js_ast.LAssign

	case *js_ast.EUnary:
		operand := d.Value
		if d.Op.IsPrefix() {
			text := d.Op.String()
			needsSpace := isWordOp(text)
			operandText := p.expr(operand, js_ast.LPrefix)
			if (text == "-" || text == "+") && strings.HasPrefix(operandText, text) {
				needsSpace = true // keep `- -x` from reading back as `--x`
			}
			if needsSpace {
				return text + " " + operandText, js_ast.LPrefix
			}
			return text + operandText, js_ast.LPrefix
		}
		return p.expr(operand, js_ast.LPostfix) + d.Op.String(), js_ast.LPostfix

	case *js_ast.EBinary:
		level := d.Op.Level()
		leftLevel, rightLevel := level, level+1
		if d.Op == js_ast.BinOpPow {
			leftLevel, rightLevel = level+1, level
		}
		text := p.expr(d.Left, leftLevel) + " " + d.Op.String() + " " + p.expr(d.Right, rightLevel)
		return text, level

	case *js_ast.ESequence:
		parts := make([]string, len(d.Exprs))
		for i, sub := range d.Exprs {
			parts[i] = p.expr(sub, js_ast.LAssign)
		}
		return strings.Join(parts, ", "), js_ast.LComma

	case *js_ast.EConditional:
		text := p.expr(d.Test, js_ast.LNullishCoalescing+1) + " ? " + p.expr(d.Yes, js_ast.LAssign) + " : " + p.expr(d.No, js_ast.LAssign)
		return text, js_ast.LConditional

	case *js_ast.EAssign:
		text := p.expr(d.Target, js_ast.LConditional+1) + " " + d.Op.String() + " " + p.expr(d.Value, js_ast.LAssign)
		return text, js_ast.LAssign

	case *js_ast.ECall:
		target := p.expr(d.Target, js_ast.LCall)
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = p.expr(a, js_ast.LAssign)
		}
		sep := "("
		if d.OptionalChain {
			sep = "?.("
		}
		return target + sep + strings.Join(args, ", ") + ")", js_ast.LCall

	case *js_ast.ENew:
		target := p.expr(d.Target, js_ast.LMember)
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = p.expr(a, js_ast.LAssign)
		}
		return "new " + target + "(" + strings.Join(args, ", ") + ")", js_ast.LMember

	case *js_ast.EDot:
		dot := "."
		if d.Optional {
			dot = "?."
		}
		return p.expr(d.Target, js_ast.LMember) + dot + d.Name, js_ast.LMember

	case *js_ast.EIndex:
		br := "["
		if d.Optional {
			br = "?.["
		}
		return p.expr(d.Target, js_ast.LMember) + br + p.expr(d.Index, js_ast.LLowest) + "]", js_ast.LMember
	}
	panic(fmt.Sprintf("js_printer: unhandled expression %T", e.Data))
}

func (p *printer) sbAppendBody(b *strings.Builder, stmts []js_ast.Stmt) {
	inner := p.capture(func() { p.printStmts(stmts, 1) })
	b.WriteString(inner)
}

func (p *printer) property(prop js_ast.Property) string {
	if prop.Kind == js_ast.PropertySpread {
		return "..." + p.expr(prop.Value, js_ast.LAssign)
	}

	key := p.propertyKey(prop)

	switch prop.Kind {
	case js_ast.PropertyGet, js_ast.PropertySet, js_ast.PropertyMethod:
		fn := prop.Value.Data.(*js_ast.EFunction).Fn
		prefix := ""
		if prop.Kind == js_ast.PropertyGet {
			prefix = "get "
		} else if prop.Kind == js_ast.PropertySet {
			prefix = "set "
		}
		var b strings.Builder
		b.WriteString(prefix)
		if fn.IsAsync {
			b.WriteString("async ")
		}
		b.WriteString(key)
		if fn.IsGenerator {
			b.WriteString("*")
		}
		b.WriteString("(")
		b.WriteString(p.capture(func() { p.printArgs(fn.Args) }))
		b.WriteString(") {\n")
		p.sbAppendBody(&b, fn.Body)
		b.WriteString("}")
		return b.String()
	}

	if prop.Shorthand {
		return key
	}
	return key + ": " + p.expr(prop.Value, js_ast.LAssign)
}

func (p *printer) propertyKey(prop js_ast.Property) string {
	if prop.Computed {
		return "[" + p.expr(prop.Key, js_ast.LAssign) + "]"
	}
	if s, ok := prop.Key.Data.(*js_ast.EString); ok {
		if isValidIdentifier(s.Value) {
			return s.Value
		}
		return quoteString(s.Value)
	}
	return p.expr(prop.Key, js_ast.LAssign)
}

// ---------------------------------------------------------------------------
// Lexical helpers

func isWordOp(s string) bool {
	switch s {
	case "typeof", "void", "delete":
		return true
	}
	return false
}

// isValidIdentifier reports whether s can be printed as a bare property key
// or binding name rather than a quoted string -- delegates to js_ast's
// identifier-classification tables so a non-ASCII identifier (legal in
// source the parser accepted) prints bare instead of being needlessly
// string-quoted.
func isValidIdentifier(s string) bool {
	return js_ast.IsIdentifier(s)
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// quoteString renders s as a double-quoted JS string literal, escaping
// control characters, quotes and backslashes; non-ASCII code points are
// written as is, except U+FEFF and lone surrogates, which are escaped.
func quoteString(s string) string {
	return string(helpers.QuoteForJSON(s, false))
}

// needsStmtParens reports whether e's leftmost token would be ambiguous with
// a statement-starting keyword or brace (an object literal read as a block,
// a function expression read as a declaration) if printed bare at the start
// of an expression statement.
func needsStmtParens(e js_ast.Expr) bool {
	switch d := e.Data.(type) {
	case *js_ast.EObject:
		return true
	case *js_ast.EFunction:
		return true
	case *js_ast.EBinary:
		return needsStmtParens(d.Left)
	case *js_ast.EAssign:
		return needsStmtParens(d.Target)
	case *js_ast.ESequence:
		return len(d.Exprs) > 0 && needsStmtParens(d.Exprs[0])
	case *js_ast.EConditional:
		return needsStmtParens(d.Test)
	case *js_ast.ECall:
		return needsStmtParens(d.Target)
	case *js_ast.ENew:
		return false
	case *js_ast.EDot:
		return needsStmtParens(d.Target)
	case *js_ast.EIndex:
		return needsStmtParens(d.Target)
	}
	return false
}
