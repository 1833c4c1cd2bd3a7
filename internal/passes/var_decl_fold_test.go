package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func TestVarDeclFoldMergesBareDeclAndLazyInit(t *testing.T) {
	decl := js_ast.Stmt{Data: &js_ast.SVarDecl{Kind: js_ast.VarVar, Decls: []js_ast.Declarator{{Binding: ident("l")}}}}
	initStmt := exprStmt(lazyHolderAssign("_unused", "l"))
	// lazyHolderAssign builds `_unused = l || (l = {})`; VarDeclFold matches
	// the bare `l = l || (l = {})` shape, so rebuild the assignment target.
	initStmt = exprStmt(js_ast.Expr{Data: &js_ast.EAssign{
		Op:     js_ast.AssignEq,
		Target: ident("l"),
		Value:  lazyHolderAssign("_unused", "l").Data.(*js_ast.EAssign).Value,
	}})

	out := VarDeclFold{}.RewriteStmts([]js_ast.Stmt{decl, initStmt})
	require.Len(t, out, 1)
	folded := out[0].Data.(*js_ast.SVarDecl)
	require.Equal(t, js_ast.VarVar, folded.Kind)
	require.Len(t, folded.Decls, 1)
	require.Equal(t, "l", folded.Decls[0].Binding.Data.(*js_ast.EIdentifier).Ref.Name)
	obj, ok := folded.Decls[0].Init.Data.(*js_ast.EObject)
	require.True(t, ok)
	require.Empty(t, obj.Properties)
}

func TestVarDeclFoldLeavesUnrelatedPairAlone(t *testing.T) {
	decl := js_ast.Stmt{Data: &js_ast.SVarDecl{Kind: js_ast.VarVar, Decls: []js_ast.Declarator{{Binding: ident("l")}}}}
	other := exprStmt(ident("x"))
	stmts := []js_ast.Stmt{decl, other}
	out := VarDeclFold{}.RewriteStmts(stmts)
	require.Equal(t, stmts, out)
}
