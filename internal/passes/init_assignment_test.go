package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func lazyHolderAssign(target, n string) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.EAssign{
		Op:     js_ast.AssignEq,
		Target: ident(target),
		Value: js_ast.Expr{Data: &js_ast.EBinary{
			Op:   js_ast.BinOpLogicalOr,
			Left: ident(n),
			Right: js_ast.Expr{Data: &js_ast.EAssign{
				Op:     js_ast.AssignEq,
				Target: ident(n),
				Value:  js_ast.Expr{Data: &js_ast.EObject{}},
			}},
		}},
	}}
}

func TestInitAssignmentExpandsLazyHolderDotAssignment(t *testing.T) {
	// (c = n || (n = {})).p = 5;
	dotAssign := js_ast.Expr{Data: &js_ast.EAssign{
		Op:     js_ast.AssignEq,
		Target: js_ast.Expr{Data: &js_ast.EDot{Target: lazyHolderAssign("c", "n"), Name: "p"}},
		Value:  js_ast.Expr{Data: &js_ast.ENumber{Value: 5}},
	}}
	stmts := []js_ast.Stmt{exprStmt(dotAssign)}

	out := InitAssignment{}.RewriteStmts(stmts)
	require.Len(t, out, 3)

	s1 := out[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EAssign)
	require.Equal(t, "n", s1.Target.Data.(*js_ast.EIdentifier).Ref.Name)
	or := s1.Value.Data.(*js_ast.EBinary)
	require.Equal(t, js_ast.BinOpLogicalOr, or.Op)

	s2 := out[1].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EAssign)
	require.Equal(t, "c", s2.Target.Data.(*js_ast.EIdentifier).Ref.Name)
	require.Equal(t, "n", s2.Value.Data.(*js_ast.EIdentifier).Ref.Name)

	s3 := out[2].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EAssign)
	dot := s3.Target.Data.(*js_ast.EDot)
	require.Equal(t, "c", dot.Target.Data.(*js_ast.EIdentifier).Ref.Name)
	require.Equal(t, "p", dot.Name)
}

func TestInitAssignmentRejectsNonEmptyDefaultObject(t *testing.T) {
	withProp := js_ast.Expr{Data: &js_ast.EAssign{
		Op:     js_ast.AssignEq,
		Target: ident("n"),
		Value: js_ast.Expr{Data: &js_ast.EObject{Properties: []js_ast.Property{
			{Key: js_ast.Expr{Data: &js_ast.EString{Value: "x"}}, Value: js_ast.Expr{Data: &js_ast.ENumber{Value: 1}}},
		}}},
	}}
	or := js_ast.Expr{Data: &js_ast.EBinary{Op: js_ast.BinOpLogicalOr, Left: ident("n"), Right: withProp}}
	inner := js_ast.Expr{Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: ident("c"), Value: or}}
	dotAssign := js_ast.Expr{Data: &js_ast.EAssign{
		Op:     js_ast.AssignEq,
		Target: js_ast.Expr{Data: &js_ast.EDot{Target: inner, Name: "p"}},
		Value:  js_ast.Expr{Data: &js_ast.ENumber{Value: 5}},
	}}
	stmts := []js_ast.Stmt{exprStmt(dotAssign)}

	out := InitAssignment{}.RewriteStmts(stmts)
	require.Equal(t, stmts, out, "a non-empty default object must leave the whole statement untouched")
}
