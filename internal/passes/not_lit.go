package passes

import "github.com/jsreadable/unminify/internal/js_ast"

// NotLit rewrites a unary logical-not of a numeric literal to the boolean
// literal its truthiness implies: `!0` is always `true`, `!n` for any other
// number is always `false`. Any other operand (`!'x'`, `!obj`, `!fn()`) is
// left untouched -- only a literal number's truthiness is known statically.
type NotLit struct{}

func (NotLit) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt { return stmts }

func (NotLit) RewriteExpr(e js_ast.Expr) js_ast.Expr {
	unary, ok := e.Data.(*js_ast.EUnary)
	if !ok || unary.Op != js_ast.UnOpNot {
		return e
	}
	num, ok := unary.Value.Data.(*js_ast.ENumber)
	if !ok {
		return e
	}
	return js_ast.Expr{Loc: e.Loc, Data: &js_ast.EBoolean{Value: num.Value == 0}}
}
