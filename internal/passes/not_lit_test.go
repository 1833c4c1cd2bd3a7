package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func TestNotLitRewritesNumericLiterals(t *testing.T) {
	zero := js_ast.Expr{Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: js_ast.Expr{Data: &js_ast.ENumber{Value: 0}}}}
	out := NotLit{}.RewriteExpr(zero)
	require.Equal(t, true, out.Data.(*js_ast.EBoolean).Value)

	one := js_ast.Expr{Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: js_ast.Expr{Data: &js_ast.ENumber{Value: 1}}}}
	out = NotLit{}.RewriteExpr(one)
	require.Equal(t, false, out.Data.(*js_ast.EBoolean).Value)

	two := js_ast.Expr{Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: js_ast.Expr{Data: &js_ast.ENumber{Value: 2}}}}
	out = NotLit{}.RewriteExpr(two)
	require.Equal(t, false, out.Data.(*js_ast.EBoolean).Value)
}

func TestNotLitLeavesNonNumericOperandsAlone(t *testing.T) {
	str := js_ast.Expr{Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: js_ast.Expr{Data: &js_ast.EString{Value: "x"}}}}
	require.Equal(t, str, NotLit{}.RewriteExpr(str))
}
