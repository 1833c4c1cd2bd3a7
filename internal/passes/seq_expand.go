package passes

import "github.com/jsreadable/unminify/internal/js_ast"

// SeqExpand splits a statement-position comma expression into N statements,
// preserving order. The comma operator already evaluates left-to-right and
// discards intermediate values, so splitting it is a pure reshaping with no
// effect on observable behavior. It only fires at statement position -- a
// sequence nested inside a larger expression (a call argument, say) is left
// alone, per spec.md §4.2.
type SeqExpand struct{}

func (SeqExpand) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt {
	out := make([]js_ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		expr, ok := s.Data.(*js_ast.SExpr)
		if !ok {
			out = append(out, s)
			continue
		}
		seq, ok := expr.Value.Data.(*js_ast.ESequence)
		if !ok {
			out = append(out, s)
			continue
		}
		for i, e := range seq.Exprs {
			ns := js_ast.Stmt{Loc: e.Loc, Data: &js_ast.SExpr{Value: e}}
			if i == 0 {
				ns.LeadingComments = s.LeadingComments
			}
			out = append(out, ns)
		}
	}
	return out
}

func (SeqExpand) RewriteExpr(e js_ast.Expr) js_ast.Expr { return e }
