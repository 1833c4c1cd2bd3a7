package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func assign(target, value js_ast.Expr) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: target, Value: value}}
}

func TestNestedAssignmentSplitsChainEndingInLiteral(t *testing.T) {
	one := js_ast.Expr{Data: &js_ast.ENumber{Value: 1}}
	chain := assign(ident("a"), assign(ident("b"), assign(ident("c"), one)))
	stmts := []js_ast.Stmt{exprStmt(chain)}

	out := NestedAssignment{}.RewriteStmts(stmts)
	require.Len(t, out, 3)
	for i, name := range []string{"a", "b", "c"} {
		a := out[i].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EAssign)
		require.Equal(t, name, a.Target.Data.(*js_ast.EIdentifier).Ref.Name)
		require.Equal(t, float64(1), a.Value.Data.(*js_ast.ENumber).Value)
	}
}

func TestNestedAssignmentLeavesChainEndingInCallAlone(t *testing.T) {
	call := js_ast.Expr{Data: &js_ast.ECall{Target: ident("f")}}
	chain := assign(ident("a"), assign(ident("b"), call))
	stmts := []js_ast.Stmt{exprStmt(chain)}

	out := NestedAssignment{}.RewriteStmts(stmts)
	require.Equal(t, stmts, out)
}

func TestNestedAssignmentRequiresPlainEqualsThroughout(t *testing.T) {
	one := js_ast.Expr{Data: &js_ast.ENumber{Value: 1}}
	compound := js_ast.Expr{Data: &js_ast.EAssign{Op: js_ast.AssignAdd, Target: ident("b"), Value: one}}
	chain := assign(ident("a"), compound)
	stmts := []js_ast.Stmt{exprStmt(chain)}

	out := NestedAssignment{}.RewriteStmts(stmts)
	require.Equal(t, stmts, out)
}
