package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/ast"
	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/jsreadable/unminify/internal/namegen"
	"github.com/stretchr/testify/require"
)

func newIifeExpand() *IifeExpand {
	return NewIifeExpand(ast.NewTagGenerator(), namegen.New())
}

func iifeCall(fn js_ast.Fn, args ...js_ast.Expr) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.ECall{
		Target: js_ast.Expr{Data: &js_ast.EFunction{Fn: fn}},
		Args:   args,
	}}
}

func TestIifeExpandShapeAEmptyBodyErasesStatement(t *testing.T) {
	p := newIifeExpand()
	stmts := []js_ast.Stmt{exprStmt(iifeCall(js_ast.Fn{}))}
	out := p.RewriteStmts(stmts)
	require.Len(t, out, 0)
}

func TestIifeExpandShapeAReturnBodyInlinesValue(t *testing.T) {
	p := newIifeExpand()
	five := js_ast.Expr{Data: &js_ast.ENumber{Value: 5}}
	fn := js_ast.Fn{Body: []js_ast.Stmt{{Data: &js_ast.SReturn{Value: five}}}}
	stmts := []js_ast.Stmt{exprStmt(iifeCall(fn))}
	out := p.RewriteStmts(stmts)
	require.Len(t, out, 1)
	num := out[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.ENumber)
	require.Equal(t, float64(5), num.Value)
}

func TestIifeExpandShapeBExpandsLazyHolderParam(t *testing.T) {
	p := newIifeExpand()
	param := ast.Ref{Name: "e", Scope: 7}
	fn := js_ast.Fn{
		Args: []js_ast.Arg{{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: param}}}},
		Body: []js_ast.Stmt{exprStmt(js_ast.Expr{Data: &js_ast.EAssign{
			Op:     js_ast.AssignEq,
			Target: js_ast.Expr{Data: &js_ast.EDot{Target: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: param}}, Name: "j"}},
			Value:  js_ast.Expr{Data: &js_ast.ENumber{Value: 5}},
		}})},
	}
	arg := lazyHolderAssign("_unused", "a") // x || (x = {}) shape, reusing helper with n="a"
	// lazyHolderAssign builds `target = n || (n = {})`; the IIFE argument
	// itself is just the `n || (n = {})` part, so unwrap one level.
	argExpr := arg.Data.(*js_ast.EAssign).Value

	stmts := []js_ast.Stmt{exprStmt(iifeCall(fn, argExpr))}
	out := p.RewriteStmts(stmts)
	require.Len(t, out, 2, "init-or statement, then one member assignment")

	init := out[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EAssign)
	require.Equal(t, "a", init.Target.Data.(*js_ast.EIdentifier).Ref.Name)

	memberAssign := out[1].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EAssign)
	dot := memberAssign.Target.Data.(*js_ast.EDot)
	require.Equal(t, "a", dot.Target.Data.(*js_ast.EIdentifier).Ref.Name)
	require.Equal(t, "j", dot.Name)
	require.Equal(t, float64(5), memberAssign.Value.Data.(*js_ast.ENumber).Value)
}

func TestIifeExpandLeavesNonIifeCallsAlone(t *testing.T) {
	p := newIifeExpand()
	stmts := []js_ast.Stmt{exprStmt(js_ast.Expr{Data: &js_ast.ECall{Target: ident("f")}})}
	out := p.RewriteStmts(stmts)
	require.Equal(t, stmts, out)
}
