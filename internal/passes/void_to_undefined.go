package passes

import (
	"github.com/jsreadable/unminify/internal/ast"
	"github.com/jsreadable/unminify/internal/js_ast"
)

// VoidToUndefined rewrites `void <literal>` to the identifier `undefined`.
// Literals are known side-effect-free, so evaluating and discarding one is
// observationally identical to never evaluating it at all -- the rewrite is
// sound. A non-literal operand (`void console.log(...)`) is left alone since
// it may have a side effect the `void` operator exists to trigger.
type VoidToUndefined struct{}

func (VoidToUndefined) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt { return stmts }

func (VoidToUndefined) RewriteExpr(e js_ast.Expr) js_ast.Expr {
	unary, ok := e.Data.(*js_ast.EUnary)
	if !ok || unary.Op != js_ast.UnOpVoid {
		return e
	}
	if !isSyntacticLiteral(unary.Value) {
		return e
	}
	return js_ast.Expr{Loc: e.Loc, Data: &js_ast.EIdentifier{Ref: ast.Ref{Name: "undefined"}}}
}

// isSyntacticLiteral reports whether e is a literal the parser produced
// directly (number, string, boolean, null, bigint, or undefined itself) --
// never a computed value, so duplicating or discarding its evaluation is
// always safe.
func isSyntacticLiteral(e js_ast.Expr) bool {
	switch e.Data.(type) {
	case *js_ast.ENumber, *js_ast.EString, *js_ast.EBoolean, *js_ast.ENull, *js_ast.EBigInt, *js_ast.EUndefined:
		return true
	}
	return false
}
