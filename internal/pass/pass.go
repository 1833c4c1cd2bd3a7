// Package pass defines the shared traversal engine every rewrite pass runs
// on top of. Rather than one Visitor interface with a method per node kind
// (which esbuild's own parser uses internally, but which would force every
// pass to stub out ~40 no-op methods, a bad fit for ten small independent
// passes), each Pass supplies exactly two hooks -- one for a statement list,
// one for a single expression -- mirroring the shape of jsmagi's SWC
// `VisitMut` passes, where most of a pass is `noop_visit_mut_type!` and only
// a couple of methods are actually overridden.
//
// Traversal order is pre-order, per spec.md §5: a hook runs on a node before
// the walker descends into that node's (possibly just-rewritten) children, so a
// freshly inserted subtree is itself subject to the same pass.
package pass

import "github.com/jsreadable/unminify/internal/js_ast"

// Pass rewrites one file's AST. RewriteStmts is called once per statement
// list (a program body, a block body, a function body); it may reorder,
// expand, or collapse statements, returning the list to recurse into next.
// RewriteExpr is called on every expression slot the walker visits; binding
// patterns, parameter default values, for-in/for-of heads and class
// declarations are not visited. Both default to
// "return the input unchanged" for any shape the pass doesn't recognize --
// the all-or-nothing contract in spec.md §7 is the implementer's job inside
// each hook, not the engine's.
type Pass interface {
	RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt
	RewriteExpr(e js_ast.Expr) js_ast.Expr
}

// Apply runs p over the whole AST in place and returns it (the same value,
// mutated) for chaining convenience.
func Apply(ast *js_ast.AST, p Pass) *js_ast.AST {
	ast.Stmts = walkStmts(ast.Stmts, p)
	return ast
}

func walkStmts(stmts []js_ast.Stmt, p Pass) []js_ast.Stmt {
	stmts = p.RewriteStmts(stmts)
	out := make([]js_ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = walkStmt(s, p)
	}
	return out
}

func walkStmt(s js_ast.Stmt, p Pass) js_ast.Stmt {
	switch d := s.Data.(type) {
	case *js_ast.SExpr:
		d.Value = walkExpr(d.Value, p)
	case *js_ast.SVarDecl:
		for i := range d.Decls {
			if d.Decls[i].Init.Data != nil {
				d.Decls[i].Init = walkExpr(d.Decls[i].Init, p)
			}
		}
	case *js_ast.SFunction:
		d.Fn.Body = walkStmts(d.Fn.Body, p)
	case *js_ast.SReturn:
		if d.Value.Data != nil {
			d.Value = walkExpr(d.Value, p)
		}
	case *js_ast.SBlock:
		d.Stmts = walkStmts(d.Stmts, p)
	case *js_ast.SIf:
		d.Test = walkExpr(d.Test, p)
		d.Yes = walkStmt(d.Yes, p)
		if d.No.Data != nil {
			d.No = walkStmt(d.No, p)
		}
	case *js_ast.SFor:
		// The init clause of a classic for-loop is never itself a statement
		// list, so it only gets expression-level rewriting, not the
		// list-level RewriteStmts hook (which e.g. SeqExpand.RewriteStmts
		// expects to apply to a real statement sequence).
		switch init := d.Init.(type) {
		case *js_ast.SVarDecl:
			for i := range init.Decls {
				if init.Decls[i].Init.Data != nil {
					init.Decls[i].Init = walkExpr(init.Decls[i].Init, p)
				}
			}
		case *js_ast.SExpr:
			init.Value = walkExpr(init.Value, p)
		}
		if d.Test.Data != nil {
			d.Test = walkExpr(d.Test, p)
		}
		if d.Update.Data != nil {
			d.Update = walkExpr(d.Update, p)
		}
		d.Body = walkStmt(d.Body, p)
	case *js_ast.SForIn:
		d.Value = walkExpr(d.Value, p)
		d.Body = walkStmt(d.Body, p)
	case *js_ast.SForOf:
		d.Value = walkExpr(d.Value, p)
		d.Body = walkStmt(d.Body, p)
	case *js_ast.SWhile:
		d.Test = walkExpr(d.Test, p)
		d.Body = walkStmt(d.Body, p)
	case *js_ast.SDoWhile:
		d.Body = walkStmt(d.Body, p)
		d.Test = walkExpr(d.Test, p)
	case *js_ast.SLabel:
		d.Stmt = walkStmt(d.Stmt, p)
	case *js_ast.SThrow:
		d.Value = walkExpr(d.Value, p)
	case *js_ast.STry:
		d.Block = walkStmts(d.Block, p)
		if d.Catch != nil {
			d.Catch.Body = walkStmts(d.Catch.Body, p)
		}
		if d.Finally != nil {
			d.Finally = walkStmts(d.Finally, p)
		}
	case *js_ast.SSwitch:
		d.Test = walkExpr(d.Test, p)
		for i := range d.Cases {
			if d.Cases[i].Test.Data != nil {
				d.Cases[i].Test = walkExpr(d.Cases[i].Test, p)
			}
			d.Cases[i].Body = walkStmts(d.Cases[i].Body, p)
		}
	}
	return s
}

func walkExpr(e js_ast.Expr, p Pass) js_ast.Expr {
	e = p.RewriteExpr(e)
	switch d := e.Data.(type) {
	case *js_ast.EArray:
		for i := range d.Items {
			d.Items[i] = walkExpr(d.Items[i], p)
		}
	case *js_ast.EObject:
		for i := range d.Properties {
			if d.Properties[i].Key.Data != nil {
				d.Properties[i].Key = walkExpr(d.Properties[i].Key, p)
			}
			d.Properties[i].Value = walkExpr(d.Properties[i].Value, p)
		}
	case *js_ast.ESpread:
		d.Value = walkExpr(d.Value, p)
	case *js_ast.EUnary:
		d.Value = walkExpr(d.Value, p)
	case *js_ast.EBinary:
		d.Left = walkExpr(d.Left, p)
		d.Right = walkExpr(d.Right, p)
	case *js_ast.ESequence:
		for i := range d.Exprs {
			d.Exprs[i] = walkExpr(d.Exprs[i], p)
		}
	case *js_ast.EConditional:
		d.Test = walkExpr(d.Test, p)
		d.Yes = walkExpr(d.Yes, p)
		d.No = walkExpr(d.No, p)
	case *js_ast.EAssign:
		d.Target = walkExpr(d.Target, p)
		d.Value = walkExpr(d.Value, p)
	case *js_ast.ECall:
		d.Target = walkExpr(d.Target, p)
		for i := range d.Args {
			d.Args[i] = walkExpr(d.Args[i], p)
		}
	case *js_ast.ENew:
		d.Target = walkExpr(d.Target, p)
		for i := range d.Args {
			d.Args[i] = walkExpr(d.Args[i], p)
		}
	case *js_ast.EDot:
		d.Target = walkExpr(d.Target, p)
	case *js_ast.EIndex:
		d.Target = walkExpr(d.Target, p)
		d.Index = walkExpr(d.Index, p)
	case *js_ast.EFunction:
		d.Fn.Body = walkStmts(d.Fn.Body, p)
	case *js_ast.EArrow:
		if d.PreferExpr {
			d.ExprBody = walkExpr(d.ExprBody, p)
		} else {
			d.Body = walkStmts(d.Body, p)
		}
	}
	return e
}
