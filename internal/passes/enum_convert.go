package passes

import (
	"github.com/jsreadable/unminify/internal/access"
	"github.com/jsreadable/unminify/internal/ast"
	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/jsreadable/unminify/internal/namegen"
)

// EnumConvert reconstructs a TypeScript numeric `enum` declaration from the
// reverse-indexed idiom a TS/Babel compiler emits for one:
//
//	(function (p) {
//	    p[p.A = 0] = "A";
//	    p[p.B = 1] = "B";
//	})(target);
//
// `target` is the same lazy-holder shape IifeExpand's Shape B matches
// (`x || (x = {})`, or `a = x || (x = {})`). It emits the holder
// reinitialization, the reconstructed `enum` declaration, and an
// `Object.assign` call that preserves the reverse-indexing TS enums carry at
// runtime (`p[0] === "A"` alongside `p.A === 0`), per spec.md §4.11.
type EnumConvert struct {
	Names *namegen.RandomName
}

func NewEnumConvert(names *namegen.RandomName) *EnumConvert {
	return &EnumConvert{Names: names}
}

func (p *EnumConvert) RewriteStmts(stmts []js_ast.Stmt) []js_ast.Stmt {
	out := make([]js_ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if expanded, ok := p.tryConvert(s); ok {
			out = append(out, expanded...)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (p *EnumConvert) tryConvert(s js_ast.Stmt) ([]js_ast.Stmt, bool) {
	expr, ok := s.Data.(*js_ast.SExpr)
	if !ok {
		return nil, false
	}
	call, fn, ok := asIife(expr.Value)
	if !ok || len(fn.Args) != 1 || len(call.Args) != 1 {
		return nil, false
	}
	if _, ok := call.Args[0].Data.(*js_ast.ESpread); ok {
		return nil, false
	}
	paramIdent, ok := fn.Args[0].Binding.Data.(*js_ast.EIdentifier)
	if !ok {
		return nil, false
	}
	holder, aRef, ok := extractShapeBArg(call.Args[0])
	if !ok {
		return nil, false
	}

	members := make([]js_ast.EnumMember, 0, len(fn.Body))
	seen := make(map[float64]bool)
	for _, bs := range fn.Body {
		member, value, ok := matchEnumMemberStmt(bs, paramIdent.Ref)
		if !ok {
			return nil, false
		}
		if seen[value] {
			return nil, false // duplicated numeric values
		}
		seen[value] = true
		members = append(members, js_ast.EnumMember{Name: member, Value: js_ast.Expr{Data: &js_ast.ENumber{Value: value}}})
	}
	if len(members) == 0 {
		return nil, false
	}

	xExpr := holder.Holder.Expr()
	var out []js_ast.Stmt
	out = append(out, js_ast.Stmt{Loc: s.Loc, LeadingComments: s.LeadingComments, Data: &js_ast.SExpr{Value: js_ast.Expr{
		Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: xExpr, Value: js_ast.Expr{Data: &js_ast.EBinary{
			Op: js_ast.BinOpLogicalOr, Left: xExpr, Right: holder.Initializer,
		}},
	}}}})
	if aRef != nil {
		out = append(out, js_ast.Stmt{Data: &js_ast.SExpr{Value: js_ast.Expr{
			Data: &js_ast.EAssign{Op: js_ast.AssignEq, Target: *aRef, Value: xExpr},
		}}})
	}

	name := enumName(holder.Holder, p.Names)
	out = append(out, js_ast.Stmt{Data: &js_ast.SEnum{Name: name, Members: members}})
	out = append(out, js_ast.Stmt{Data: &js_ast.SExpr{Value: js_ast.Expr{Data: &js_ast.ECall{
		Target: js_ast.Expr{Data: &js_ast.EDot{Target: js_ast.Expr{Data: &js_ast.EIdentifier{Ref: ast.Ref{Name: "Object"}}}, Name: "assign"}},
		Args: []js_ast.Expr{xExpr, {Data: &js_ast.EIdentifier{Ref: ast.Ref{Name: name}}}},
	}}}})

	return out, true
}

// enumName derives the enum's name from `exports.<Name>` when the holder is
// exactly that shape (jsmagi/src/passes/ts/enum_convert.rs checks the
// object identifier's symbol text is literally "exports"); otherwise it asks
// the RandomName generator for a fresh name with prefix "en".
func enumName(holder access.NiceAccess, names *namegen.RandomName) string {
	if holder.Kind == access.KindMember {
		if id, ok := holder.Target.Data.(*js_ast.EIdentifier); ok && id.Ref.Name == "exports" {
			return holder.Name
		}
	}
	return names.Get("en")
}

// matchEnumMemberStmt matches `p[p.MEMBER = LITERAL] = "MEMBER";` exactly,
// requiring the string literal to equal the member name (case-sensitive)
// and the literal value to be numeric.
func matchEnumMemberStmt(s js_ast.Stmt, param js_ast.Ref) (member string, value float64, ok bool) {
	expr, isExpr := s.Data.(*js_ast.SExpr)
	if !isExpr {
		return "", 0, false
	}
	outer, ok := expr.Value.Data.(*js_ast.EAssign)
	if !ok || outer.Op != js_ast.AssignEq {
		return "", 0, false
	}
	outerIndex, ok := outer.Target.Data.(*js_ast.EIndex)
	if !ok || outerIndex.Optional {
		return "", 0, false
	}
	outerTarget, ok := outerIndex.Target.Data.(*js_ast.EIdentifier)
	if !ok || !outerTarget.Ref.Equal(param) {
		return "", 0, false
	}
	inner, ok := outerIndex.Index.Data.(*js_ast.EAssign)
	if !ok || inner.Op != js_ast.AssignEq {
		return "", 0, false
	}
	innerDot, ok := inner.Target.Data.(*js_ast.EDot)
	if !ok || innerDot.Optional {
		return "", 0, false
	}
	innerTarget, ok := innerDot.Target.Data.(*js_ast.EIdentifier)
	if !ok || !innerTarget.Ref.Equal(param) {
		return "", 0, false
	}
	num, ok := inner.Value.Data.(*js_ast.ENumber)
	if !ok {
		return "", 0, false
	}
	str, ok := outer.Value.Data.(*js_ast.EString)
	if !ok || str.Value != innerDot.Name {
		return "", 0, false
	}
	return innerDot.Name, num.Value, true
}

func (p *EnumConvert) RewriteExpr(e js_ast.Expr) js_ast.Expr { return e }
