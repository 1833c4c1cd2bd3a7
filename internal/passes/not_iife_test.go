package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func TestNotIifeUnwrapsLeadingBang(t *testing.T) {
	fn := js_ast.Expr{Data: &js_ast.EFunction{Fn: js_ast.Fn{}}}
	call := &js_ast.ECall{Target: fn}
	stmt := exprStmt(js_ast.Expr{Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: js_ast.Expr{Data: call}}})

	out := NotIife{}.RewriteStmts([]js_ast.Stmt{stmt})
	require.Len(t, out, 1)
	got, ok := out[0].Data.(*js_ast.SExpr)
	require.True(t, ok)
	require.Same(t, call, got.Value.Data.(*js_ast.ECall))
}

func TestNotIifeLeavesOtherCalleesAlone(t *testing.T) {
	call := js_ast.Expr{Data: &js_ast.ECall{Target: ident("f")}}
	stmt := exprStmt(js_ast.Expr{Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: call}})
	out := NotIife{}.RewriteStmts([]js_ast.Stmt{stmt})
	require.Equal(t, []js_ast.Stmt{stmt}, out)
}
