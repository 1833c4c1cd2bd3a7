package passes

import "github.com/jsreadable/unminify/internal/js_ast"

// NotIife rewrites an expression statement `!fn-expr(args);` to
// `(fn-expr)(args);`. The leading `!` is a minifier trick that forces
// function-expression parsing context; at statement position the discarded
// boolean result is unobservable, so dropping it is sound. Only fires when
// the call's callee is a function expression written directly in place
// (ported from jsmagi's `not_iife.rs`, which unwraps exactly one level and
// no further -- it does not recurse through other wrapping expressions).
type NotIife struct{}

func (NotIife) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt {
	out := make([]js_ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = rewriteNotIifeStmt(s)
	}
	return out
}

func rewriteNotIifeStmt(s js_ast.Stmt) js_ast.Stmt {
	expr, ok := s.Data.(*js_ast.SExpr)
	if !ok {
		return s
	}
	unary, ok := expr.Value.Data.(*js_ast.EUnary)
	if !ok || unary.Op != js_ast.UnOpNot {
		return s
	}
	call, ok := unary.Value.Data.(*js_ast.ECall)
	if !ok {
		return s
	}
	if _, ok := call.Target.Data.(*js_ast.EFunction); !ok {
		return s
	}
	return js_ast.Stmt{
		Loc:             s.Loc,
		LeadingComments: s.LeadingComments,
		Data:            &js_ast.SExpr{Value: js_ast.Expr{Loc: unary.Value.Loc, Data: call}},
	}
}

func (NotIife) RewriteExpr(e js_ast.Expr) js_ast.Expr { return e }
