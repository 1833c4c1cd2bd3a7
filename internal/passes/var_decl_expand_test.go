package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func varDecl(kind js_ast.VarKind, names ...string) js_ast.Stmt {
	decls := make([]js_ast.Declarator, len(names))
	for i, n := range names {
		decls[i] = js_ast.Declarator{Binding: ident(n)}
	}
	return js_ast.Stmt{Data: &js_ast.SVarDecl{Kind: kind, Decls: decls}}
}

func TestVarDeclExpandSplitsMultiDeclarator(t *testing.T) {
	stmts := []js_ast.Stmt{varDecl(js_ast.VarLet, "n", "o", "b")}
	out := VarDeclExpand{}.RewriteStmts(stmts)
	require.Len(t, out, 3)
	for i, name := range []string{"n", "o", "b"} {
		decl := out[i].Data.(*js_ast.SVarDecl)
		require.Len(t, decl.Decls, 1)
		require.Equal(t, js_ast.VarLet, decl.Kind)
		require.Equal(t, name, decl.Decls[0].Binding.Data.(*js_ast.EIdentifier).Ref.Name)
	}
}

func TestVarDeclExpandLeavesSingleDeclaratorAlone(t *testing.T) {
	stmts := []js_ast.Stmt{varDecl(js_ast.VarLet, "n")}
	out := VarDeclExpand{}.RewriteStmts(stmts)
	require.Equal(t, stmts, out)
}
