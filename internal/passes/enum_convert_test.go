package passes

import (
	"testing"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/jsreadable/unminify/internal/namegen"
	"github.com/stretchr/testify/require"
)

func enumMemberStmt(param js_ast.Ref, name string, value float64) js_ast.Stmt {
	return exprStmt(js_ast.Expr{Data: &js_ast.EAssign{
		Op: js_ast.AssignEq,
		Target: js_ast.Expr{Data: &js_ast.EIndex{
			Target: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: param}},
			Index: js_ast.Expr{Data: &js_ast.EAssign{
				Op:     js_ast.AssignEq,
				Target: js_ast.Expr{Data: &js_ast.EDot{Target: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: param}}, Name: name}},
				Value:  js_ast.Expr{Data: &js_ast.ENumber{Value: value}},
			}},
		}},
		Value: js_ast.Expr{Data: &js_ast.EString{Value: name}},
	}})
}

func TestEnumConvertUsesExportsFieldAsEnumName(t *testing.T) {
	p := NewEnumConvert(namegen.New())
	param := js_ast.Ref{Name: "p", Scope: 3}
	fn := js_ast.Fn{
		Args: []js_ast.Arg{{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: param}}}},
		Body: []js_ast.Stmt{
			enumMemberStmt(param, "A", 0),
			enumMemberStmt(param, "B", 1),
		},
	}
	holderTarget := js_ast.Expr{Data: &js_ast.EDot{
		Target: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: js_ast.Ref{Name: "exports"}}},
		Name:   "Color",
	}}
	arg := js_ast.Expr{Data: &js_ast.EBinary{
		Op:   js_ast.BinOpLogicalOr,
		Left: holderTarget,
		Right: js_ast.Expr{Data: &js_ast.EAssign{
			Op: js_ast.AssignEq, Target: holderTarget, Value: js_ast.Expr{Data: &js_ast.EObject{}},
		}},
	}}

	stmts := []js_ast.Stmt{exprStmt(iifeCall(fn, arg))}
	out := p.RewriteStmts(stmts)
	require.Len(t, out, 3, "holder init, enum decl, Object.assign")

	enum, ok := out[1].Data.(*js_ast.SEnum)
	require.True(t, ok)
	require.Equal(t, "Color", enum.Name)
	require.Len(t, enum.Members, 2)
	require.Equal(t, "A", enum.Members[0].Name)
	require.Equal(t, "B", enum.Members[1].Name)

	assignCall := out[2].Data.(*js_ast.SExpr).Value.Data.(*js_ast.ECall)
	require.Equal(t, "Color", assignCall.Args[1].Data.(*js_ast.EIdentifier).Ref.Name)
}

func TestEnumConvertRejectsDuplicateNumericValues(t *testing.T) {
	p := NewEnumConvert(namegen.New())
	param := js_ast.Ref{Name: "p", Scope: 4}
	fn := js_ast.Fn{
		Args: []js_ast.Arg{{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: param}}}},
		Body: []js_ast.Stmt{
			enumMemberStmt(param, "A", 0),
			enumMemberStmt(param, "B", 0),
		},
	}
	arg := lazyHolderAssign("_unused", "w").Data.(*js_ast.EAssign).Value
	stmts := []js_ast.Stmt{exprStmt(iifeCall(fn, arg))}
	out := p.RewriteStmts(stmts)
	require.Equal(t, stmts, out, "duplicate numeric values must leave the statement untouched")
}
