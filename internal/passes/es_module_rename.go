package passes

import (
	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/jsreadable/unminify/internal/renamer"
)

// EsModuleRename renames the parameters of a three-argument module-factory
// closure to `module, exports, require` when its body invokes
// `Object.defineProperty(<param 2>, "__esModule", ...)` -- the CommonJS
// interop marker a TS/Babel-compiled ES module leaves behind. Per
// spec.md §4.10 the match is positional: the defined-property target must be
// exactly the function's *second* parameter, regardless of what it was
// originally called.
//
// Fires on both a plain `function` expression and an arrow function with a
// block body -- the distilled spec's worked example (scenario 8) only shows
// the arrow form, but both produce the same internal Fn shape here, so there
// is no reason to special-case one over the other.
type EsModuleRename struct {
	AssumeESModules bool
}

func (p *EsModuleRename) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt { return stmts }

func (p *EsModuleRename) RewriteExpr(e js_ast.Expr) js_ast.Expr {
	fn := asModuleFactoryFn(e)
	if fn == nil || len(fn.Args) != 3 {
		return e
	}
	params := make([]*js_ast.EIdentifier, 3)
	for i, a := range fn.Args {
		id, ok := a.Binding.Data.(*js_ast.EIdentifier)
		if !ok {
			return e
		}
		params[i] = id
	}
	if !p.AssumeESModules && !bodyDefinesEsModuleOn(fn.Body, params[1].Ref) {
		return e
	}

	names := [3]string{"module", "exports", "require"}
	if collidesWithUnrelatedBinding(fn.Body, names, params) {
		return e
	}

	for i, id := range params {
		newRef := id.Ref
		newRef.Name = names[i]
		fn.Body = renamer.RenameRefStmts(fn.Body, js_ast.Expr{Data: &js_ast.EIdentifier{Ref: id.Ref}}, js_ast.Expr{Data: &js_ast.EIdentifier{Ref: newRef}})
		id.Ref = newRef
	}
	return e
}

func asModuleFactoryFn(e js_ast.Expr) *js_ast.Fn {
	switch d := e.Data.(type) {
	case *js_ast.EFunction:
		return &d.Fn
	case *js_ast.EArrow:
		if d.PreferExpr {
			return nil
		}
		return &js_ast.Fn{Args: d.Args, Body: d.Body}
	}
	return nil
}

func bodyDefinesEsModuleOn(stmts []js_ast.Stmt, target js_ast.Ref) bool {
	found := false
	var walk func(js_ast.Expr)
	walk = func(e js_ast.Expr) {
		if found || e.Data == nil {
			return
		}
		if call, ok := e.Data.(*js_ast.ECall); ok {
			if isObjectDefinePropertyEsModule(call, target) {
				found = true
				return
			}
			walk(call.Target)
			for _, a := range call.Args {
				walk(a)
			}
		}
	}
	for _, s := range stmts {
		if expr, ok := s.Data.(*js_ast.SExpr); ok {
			walk(expr.Value)
		}
	}
	return found
}

func isObjectDefinePropertyEsModule(call *js_ast.ECall, target js_ast.Ref) bool {
	dot, ok := call.Target.Data.(*js_ast.EDot)
	if !ok || dot.Name != "defineProperty" {
		return false
	}
	obj, ok := dot.Target.Data.(*js_ast.EIdentifier)
	if !ok || obj.Ref.Name != "Object" {
		return false
	}
	if len(call.Args) < 2 {
		return false
	}
	id, ok := call.Args[0].Data.(*js_ast.EIdentifier)
	if !ok || !id.Ref.Equal(target) {
		return false
	}
	str, ok := call.Args[1].Data.(*js_ast.EString)
	return ok && str.Value == "__esModule"
}

// collidesWithUnrelatedBinding reports whether any candidate name is already
// used in the body by a binding that isn't one of the three params being
// renamed -- renaming would then make two distinct bindings print
// identically, a conflicting shadow spec.md §4.10 says to skip silently.
func collidesWithUnrelatedBinding(stmts []js_ast.Stmt, names [3]string, params []*js_ast.EIdentifier) bool {
	isParam := func(ref js_ast.Ref) bool {
		for _, p := range params {
			if p.Ref.Equal(ref) {
				return true
			}
		}
		return false
	}
	isCandidateName := func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
	found := false
	var walkExpr func(js_ast.Expr)
	var walkStmts func([]js_ast.Stmt)
	walkExpr = func(e js_ast.Expr) {
		if found || e.Data == nil {
			return
		}
		if id, ok := e.Data.(*js_ast.EIdentifier); ok {
			if isCandidateName(id.Ref.Name) && !isParam(id.Ref) {
				found = true
			}
			return
		}
		switch d := e.Data.(type) {
		case *js_ast.ECall:
			walkExpr(d.Target)
			for _, a := range d.Args {
				walkExpr(a)
			}
		case *js_ast.EDot:
			walkExpr(d.Target)
		case *js_ast.EIndex:
			walkExpr(d.Target)
			walkExpr(d.Index)
		case *js_ast.EAssign:
			walkExpr(d.Target)
			walkExpr(d.Value)
		case *js_ast.EBinary:
			walkExpr(d.Left)
			walkExpr(d.Right)
		case *js_ast.EUnary:
			walkExpr(d.Value)
		case *js_ast.EFunction:
			walkStmts(d.Fn.Body)
		case *js_ast.EArrow:
			if d.PreferExpr {
				walkExpr(d.ExprBody)
			} else {
				walkStmts(d.Body)
			}
		}
	}
	walkStmts = func(stmts []js_ast.Stmt) {
		for _, s := range stmts {
			if found {
				return
			}
			switch d := s.Data.(type) {
			case *js_ast.SExpr:
				walkExpr(d.Value)
			case *js_ast.SVarDecl:
				for _, decl := range d.Decls {
					if decl.Init.Data != nil {
						walkExpr(decl.Init)
					}
				}
			case *js_ast.SReturn:
				if d.Value.Data != nil {
					walkExpr(d.Value)
				}
			case *js_ast.SBlock:
				walkStmts(d.Stmts)
			}
		}
	}
	walkStmts(stmts)
	return found
}
