package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/stretchr/testify/require"
)

func esModuleMarkerCall(target js_ast.Ref) js_ast.Stmt {
	return exprStmt(js_ast.Expr{Data: &js_ast.ECall{
		Target: js_ast.Expr{Data: &js_ast.EDot{
			Target: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: js_ast.Ref{Name: "Object"}}},
			Name:   "defineProperty",
		}},
		Args: []js_ast.Expr{
			{Data: &js_ast.EIdentifier{Ref: target}},
			{Data: &js_ast.EString{Value: "__esModule"}},
			{Data: &js_ast.EObject{}},
		},
	}})
}

func TestEsModuleRenameRenamesThreeParamFactory(t *testing.T) {
	e, t2, n := js_ast.Ref{Name: "e", Scope: 1}, js_ast.Ref{Name: "t", Scope: 1}, js_ast.Ref{Name: "n", Scope: 1}
	fn := js_ast.Fn{
		Args: []js_ast.Arg{
			{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: e}}},
			{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: t2}}},
			{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: n}}},
		},
		Body: []js_ast.Stmt{
			esModuleMarkerCall(t2),
			exprStmt(js_ast.Expr{Data: &js_ast.EAssign{
				Op:     js_ast.AssignEq,
				Target: js_ast.Expr{Data: &js_ast.EDot{Target: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: t2}}, Name: "x"}},
				Value:  js_ast.Expr{Data: &js_ast.ENumber{Value: 5}},
			}}),
		},
	}
	arrow := js_ast.Expr{Data: &js_ast.EArrow{Args: fn.Args, Body: fn.Body}}

	p := &EsModuleRename{}
	out := p.RewriteExpr(arrow)

	got := out.Data.(*js_ast.EArrow)
	require.Equal(t, "module", got.Args[0].Binding.Data.(*js_ast.EIdentifier).Ref.Name)
	require.Equal(t, "exports", got.Args[1].Binding.Data.(*js_ast.EIdentifier).Ref.Name)
	require.Equal(t, "require", got.Args[2].Binding.Data.(*js_ast.EIdentifier).Ref.Name)

	assign := got.Body[1].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EAssign)
	dot := assign.Target.Data.(*js_ast.EDot)
	require.Equal(t, "exports", dot.Target.Data.(*js_ast.EIdentifier).Ref.Name)
}

func TestEsModuleRenameDeclinesWithoutMarkerUnlessAssumed(t *testing.T) {
	e, t2, n := js_ast.Ref{Name: "e", Scope: 2}, js_ast.Ref{Name: "t", Scope: 2}, js_ast.Ref{Name: "n", Scope: 2}
	fn := js_ast.Fn{Args: []js_ast.Arg{
		{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: e}}},
		{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: t2}}},
		{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: n}}},
	}}
	arrow := js_ast.Expr{Data: &js_ast.EArrow{Args: fn.Args, Body: fn.Body}}

	out := (&EsModuleRename{}).RewriteExpr(arrow)
	require.Equal(t, "e", out.Data.(*js_ast.EArrow).Args[0].Binding.Data.(*js_ast.EIdentifier).Ref.Name)

	out = (&EsModuleRename{AssumeESModules: true}).RewriteExpr(arrow)
	require.Equal(t, "module", out.Data.(*js_ast.EArrow).Args[0].Binding.Data.(*js_ast.EIdentifier).Ref.Name)
}
