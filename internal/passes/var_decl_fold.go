package passes

import "github.com/jsreadable/unminify/internal/js_ast"

// VarDeclFold is an additional, opt-in eleventh pass not in the fixed
// pipeline spec.md §2 lists. It is grounded on the flat `src/` variant's
// `var_decl_simp.rs`, which folds a bare declaration immediately followed by
// its own lazy-holder initializer assignment back into one declaration:
//
//	var l; l = l || (l = {});    ->    var l = {};
//
// `transform()` never runs it as part of the default 10-pass order; a caller
// may append it explicitly when a
// diagnostic or alternate rendering wants declarations folded back together.
type VarDeclFold struct{}

func (VarDeclFold) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt {
	out := make([]js_ast.Stmt, 0, len(stmts))
	i := 0
	for i < len(stmts) {
		if init, ref, ok := matchFoldablePair(stmts, i); ok {
			decl := stmts[i].Data.(*js_ast.SVarDecl)
			folded := js_ast.Stmt{
				Loc:             stmts[i].Loc,
				LeadingComments: stmts[i].LeadingComments,
				Data: &js_ast.SVarDecl{Kind: decl.Kind, Decls: []js_ast.Declarator{
					{Binding: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: ref}}, Init: init},
				}},
			}
			out = append(out, folded)
			i += 2
			continue
		}
		out = append(out, stmts[i])
		i++
	}
	return out
}

func matchFoldablePair(stmts []js_ast.Stmt, i int) (init js_ast.Expr, ref js_ast.Ref, ok bool) {
	if i+1 >= len(stmts) {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	decl, isDecl := stmts[i].Data.(*js_ast.SVarDecl)
	if !isDecl || len(decl.Decls) != 1 || decl.Decls[0].Init.Data != nil {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	declIdent, ok := decl.Decls[0].Binding.Data.(*js_ast.EIdentifier)
	if !ok {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}

	next, isExpr := stmts[i+1].Data.(*js_ast.SExpr)
	if !isExpr {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	outer, ok := next.Value.Data.(*js_ast.EAssign)
	if !ok || outer.Op != js_ast.AssignEq {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	outerTarget, ok := outer.Target.Data.(*js_ast.EIdentifier)
	if !ok || !outerTarget.Ref.Equal(declIdent.Ref) {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	or, ok := outer.Value.Data.(*js_ast.EBinary)
	if !ok || or.Op != js_ast.BinOpLogicalOr {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	left, ok := or.Left.Data.(*js_ast.EIdentifier)
	if !ok || !left.Ref.Equal(declIdent.Ref) {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	inner, ok := or.Right.Data.(*js_ast.EAssign)
	if !ok || inner.Op != js_ast.AssignEq {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	innerTarget, ok := inner.Target.Data.(*js_ast.EIdentifier)
	if !ok || !innerTarget.Ref.Equal(declIdent.Ref) {
		return js_ast.Expr{}, js_ast.Ref{}, false
	}
	return inner.Value, declIdent.Ref, true
}

func (VarDeclFold) RewriteExpr(e js_ast.Expr) js_ast.Expr { return e }
