package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func ident(name string) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.EIdentifier{Ref: js_ast.Ref{Name: name}}}
}

func exprStmt(e js_ast.Expr) js_ast.Stmt {
	return js_ast.Stmt{Data: &js_ast.SExpr{Value: e}}
}

func TestSeqExpandSplitsStatementPositionSequence(t *testing.T) {
	stmts := []js_ast.Stmt{
		exprStmt(js_ast.Expr{Data: &js_ast.ESequence{Exprs: []js_ast.Expr{ident("a"), ident("b"), ident("c")}}}),
	}
	out := SeqExpand{}.RewriteStmts(stmts)
	require.Len(t, out, 3)
	for i, name := range []string{"a", "b", "c"} {
		require.Equal(t, name, out[i].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EIdentifier).Ref.Name)
	}
}

func TestSeqExpandLeavesNonSequenceStatementsAlone(t *testing.T) {
	stmts := []js_ast.Stmt{exprStmt(ident("a"))}
	out := SeqExpand{}.RewriteStmts(stmts)
	require.Equal(t, stmts, out)
}

func TestSeqExpandDoesNotTouchNestedSequences(t *testing.T) {
	// A sequence used as a call argument is not at statement position, so
	// SeqExpand's RewriteStmts hook never sees it in isolation; its
	// RewriteExpr hook is a no-op, per spec.md §4.2.
	nested := js_ast.Expr{Data: &js_ast.ECall{
		Target: ident("f"),
		Args:   []js_ast.Expr{{Data: &js_ast.ESequence{Exprs: []js_ast.Expr{ident("a"), ident("b")}}}},
	}}
	require.Equal(t, nested, SeqExpand{}.RewriteExpr(nested))
}
