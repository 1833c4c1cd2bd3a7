package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func TestVoidToUndefinedRewritesLiteralOperand(t *testing.T) {
	e := js_ast.Expr{Data: &js_ast.EUnary{Op: js_ast.UnOpVoid, Value: js_ast.Expr{Data: &js_ast.ENumber{Value: 0}}}}
	out := VoidToUndefined{}.RewriteExpr(e)
	ident, ok := out.Data.(*js_ast.EIdentifier)
	require.True(t, ok)
	require.Equal(t, "undefined", ident.Ref.Name)
}

func TestVoidToUndefinedLeavesSideEffectingOperandAlone(t *testing.T) {
	call := js_ast.Expr{Data: &js_ast.ECall{Target: ident("f")}}
	e := js_ast.Expr{Data: &js_ast.EUnary{Op: js_ast.UnOpVoid, Value: call}}
	require.Equal(t, e, VoidToUndefined{}.RewriteExpr(e))
}
