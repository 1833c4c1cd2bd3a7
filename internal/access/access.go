// Package access implements the restricted, side-effect-free access-pattern
// abstraction spec.md calls NiceAccess, and the lazy-holder extraction helper
// shared by IifeExpand and EnumConvert (through IifeExpand's
// extractShapeBArg); InitAssignment matches its own shape directly. Grounded on
// `jsmagi/src/util.rs`'s `NiceAccess` enum and its single
// `extract_or_initializer_with_assign` helper -- one helper, several callers,
// rather than three copies of the same pattern match.
package access

import "github.com/jsreadable/unminify/internal/js_ast"

// Kind distinguishes the two shapes NiceAccess allows.
type Kind uint8

const (
	KindIdent Kind = iota
	KindMember
)

// NiceAccess is either a bare identifier or a non-computed, non-private
// member expression (`o.p`). Anything else -- computed access, optional
// chaining, private names -- doesn't qualify, and From reports !ok for it.
type NiceAccess struct {
	Kind   Kind
	Ident  js_ast.Expr // EIdentifier, when Kind == KindIdent
	Target js_ast.Expr // the `o` in `o.p`, when Kind == KindMember
	Name   string      // the `p` in `o.p`, when Kind == KindMember
}

// From reports whether e is a NiceAccess, and if so, which shape.
func From(e js_ast.Expr) (NiceAccess, bool) {
	switch d := e.Data.(type) {
	case *js_ast.EIdentifier:
		return NiceAccess{Kind: KindIdent, Ident: e}, true
	case *js_ast.EDot:
		if d.Optional {
			return NiceAccess{}, false
		}
		return NiceAccess{Kind: KindMember, Target: d.Target, Name: d.Name}, true
	}
	return NiceAccess{}, false
}

// Expr rebuilds the plain expression this NiceAccess denotes.
func (a NiceAccess) Expr() js_ast.Expr {
	if a.Kind == KindIdent {
		return a.Ident
	}
	return js_ast.Expr{Data: &js_ast.EDot{Target: a.Target, Name: a.Name}}
}

// Equal reports whether two NiceAccess values denote the same access path
// syntactically (same identifier ref, or same target-ref + field name).
func Equal(a, b NiceAccess) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindIdent {
		ai, aok := a.Ident.Data.(*js_ast.EIdentifier)
		bi, bok := b.Ident.Data.(*js_ast.EIdentifier)
		return aok && bok && ai.Ref.Equal(bi.Ref)
	}
	if a.Name != b.Name {
		return false
	}
	at, aok := a.Target.Data.(*js_ast.EIdentifier)
	bt, bok := b.Target.Data.(*js_ast.EIdentifier)
	return aok && bok && at.Ref.Equal(bt.Ref)
}

// LazyHolder is the `x || (x = {})` shape recognized by EnumConvert and
// IifeExpand: a NiceAccess, OR'd against an assignment of a
// fresh object/initializer expression back into that exact same access path.
type LazyHolder struct {
	Holder      NiceAccess
	Initializer js_ast.Expr
}

// ExtractLazyHolder matches `access || (access = initializer)`, requiring the
// left and right sides of the assignment to denote the same NiceAccess.
// Ported from jsmagi's `extract_or_initializer_with_assign`.
func ExtractLazyHolder(e js_ast.Expr) (LazyHolder, bool) {
	bin, ok := e.Data.(*js_ast.EBinary)
	if !ok || bin.Op != js_ast.BinOpLogicalOr {
		return LazyHolder{}, false
	}
	left, ok := From(bin.Left)
	if !ok {
		return LazyHolder{}, false
	}
	assign, ok := bin.Right.Data.(*js_ast.EAssign)
	if !ok || assign.Op != js_ast.AssignEq {
		return LazyHolder{}, false
	}
	right, ok := From(assign.Target)
	if !ok || !Equal(left, right) {
		return LazyHolder{}, false
	}
	return LazyHolder{Holder: left, Initializer: assign.Value}, true
}
