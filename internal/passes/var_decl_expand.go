package passes

import "github.com/jsreadable/unminify/internal/js_ast"

// VarDeclExpand splits a multi-declarator `kind x1[=i1], x2[=i2], ...;` into
// one single-declarator statement per name, preserving declaration kind and
// source order of initializers.
type VarDeclExpand struct{}

func (VarDeclExpand) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt {
	out := make([]js_ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		decl, ok := s.Data.(*js_ast.SVarDecl)
		if !ok || len(decl.Decls) < 2 {
			out = append(out, s)
			continue
		}
		for i, d := range decl.Decls {
			ns := js_ast.Stmt{Data: &js_ast.SVarDecl{Kind: decl.Kind, Decls: []js_ast.Declarator{d}}}
			if i == 0 {
				ns.Loc = s.Loc
				ns.LeadingComments = s.LeadingComments
			}
			out = append(out, ns)
		}
	}
	return out
}

func (VarDeclExpand) RewriteExpr(e js_ast.Expr) js_ast.Expr { return e }
