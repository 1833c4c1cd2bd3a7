package passes

import "github.com/jsreadable/unminify/internal/js_ast"

// InitAssignment rewrites the precisely-bracketed shape
// `(c = n || (n = {})).p = v;` into three statements:
//
//	n = n || {};
//	c = n;
//	c.p = v;
//
// `c` and `n` must be simple identifiers, the default on the right of `n ||`
// must assign back into that same `n`, and the object literal it assigns
// must be empty -- soundness depends on `c`'s value on the right of step 1
// being read-only and the object carrying no properties to duplicate or
// drop. This targets the shape a minifier emits for a lazily-initialized
// namespace object aliased to a shorter local name.
type InitAssignment struct{}

func (InitAssignment) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt {
	out := make([]js_ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if expanded, ok := expandInitAssignment(s); ok {
			out = append(out, expanded...)
			continue
		}
		out = append(out, s)
	}
	return out
}

func expandInitAssignment(s js_ast.Stmt) ([]js_ast.Stmt, bool) {
	expr, ok := s.Data.(*js_ast.SExpr)
	if !ok {
		return nil, false
	}
	outer, ok := expr.Value.Data.(*js_ast.EAssign)
	if !ok || outer.Op != js_ast.AssignEq {
		return nil, false
	}
	dot, ok := outer.Target.Data.(*js_ast.EDot)
	if !ok || dot.Optional {
		return nil, false
	}
	inner, ok := dot.Target.Data.(*js_ast.EAssign)
	if !ok || inner.Op != js_ast.AssignEq {
		return nil, false
	}
	c, ok := inner.Target.Data.(*js_ast.EIdentifier)
	if !ok {
		return nil, false
	}
	or, ok := inner.Value.Data.(*js_ast.EBinary)
	if !ok || or.Op != js_ast.BinOpLogicalOr {
		return nil, false
	}
	n, ok := or.Left.Data.(*js_ast.EIdentifier)
	if !ok {
		return nil, false
	}
	defaultAssign, ok := or.Right.Data.(*js_ast.EAssign)
	if !ok || defaultAssign.Op != js_ast.AssignEq {
		return nil, false
	}
	n2, ok := defaultAssign.Target.Data.(*js_ast.EIdentifier)
	if !ok || !n2.Ref.Equal(n.Ref) {
		return nil, false
	}
	obj, ok := defaultAssign.Value.Data.(*js_ast.EObject)
	if !ok || len(obj.Properties) != 0 {
		return nil, false
	}

	nExpr := js_ast.Expr{Loc: or.Left.Loc, Data: &js_ast.EIdentifier{Ref: n.Ref}}
	cExpr := js_ast.Expr{Loc: inner.Target.Loc, Data: &js_ast.EIdentifier{Ref: c.Ref}}

	stmt1 := js_ast.Stmt{Loc: s.Loc, LeadingComments: s.LeadingComments, Data: &js_ast.SExpr{Value: js_ast.Expr{
		Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: nExpr, Value: js_ast.Expr{Data: &js_ast.EBinary{
			Op: js_ast.BinOpLogicalOr, Left: nExpr, Right: js_ast.Expr{Data: &js_ast.EObject{}},
		}}},
	}}}
	stmt2 := js_ast.Stmt{Data: &js_ast.SExpr{Value: js_ast.Expr{
		Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: cExpr, Value: nExpr},
	}}}
	stmt3 := js_ast.Stmt{Data: &js_ast.SExpr{Value: js_ast.Expr{
		Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: js_ast.Expr{Data: &js_ast.EDot{Target: cExpr, Name: dot.Name}}, Value: outer.Value},
	}}}
	return []js_ast.Stmt{stmt1, stmt2, stmt3}, true
}

func (InitAssignment) RewriteExpr(e js_ast.Expr) js_ast.Expr { return e }
