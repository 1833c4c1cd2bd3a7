// Package ast holds the identifier-binding model shared by every pass: the
// (symbol, scope-tag) key that makes hygienic rewriting possible, and the
// scope tree + tag generator that produce those keys.
//
// This plays the role esbuild's internal/ast.Ref + js_ast.Symbol/Scope play
// for the bundler's cross-file renamer, but scaled down to what a one-file,
// no-linking tool needs: there is no SourceIndex (single file), no symbol
// table indirection (a Ref carries its own name), and no import/export
// bookkeeping (no bundler).
package ast

// Ref is the identifier binding key described in the spec: a name paired
// with an opaque scope tag. Two Refs denote the same binding iff both fields
// are equal. UnboundScope marks a reference that didn't resolve to any
// declaration in the file (a global, or a name the parser didn't bother
// tracking) -- those are never candidates for renaming.
type Ref struct {
	Name  string
	Scope uint32
}

// UnboundScope is the scope tag used for identifiers that resolve to nothing
// declared in the current file (globals like "console", "exports" treated as
// ambient, or names referenced before any matching declaration was found).
const UnboundScope uint32 = 0

func (r Ref) IsUnbound() bool { return r.Scope == UnboundScope }

// Equal reports whether two refs denote the same binding.
func (r Ref) Equal(other Ref) bool {
	return r.Name == other.Name && r.Scope == other.Scope
}

// ScopeKind distinguishes the few lexical scope shapes this tool needs to
// reason about: whether `var` hoists through a boundary or not.
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

// Scope is one lexical scope. Members maps a declared name to the scope tag
// minted for that declaration; Lookup walks up Parent to resolve a reference.
type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	Children []*Scope
	Members  map[string]uint32

	// ContainsDirectEval marks a scope holding a literal `eval(...)` call;
	// ContainsEval reads it. The parser does not set it, so it stays false
	// unless a caller sets it. The pipeline's eval guard does not use this
	// field: it calls renamer.ContainsDirectEval on the statement tree.
	ContainsDirectEval bool
}

func NewScope(kind ScopeKind, parent *Scope) *Scope {
	s := &Scope{Kind: kind, Parent: parent, Members: make(map[string]uint32)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Declare records that `name` is bound in this scope under the given tag.
// If `name` was already declared in this exact scope (e.g. "var" appearing
// twice), the later declaration reuses the same tag rather than minting a
// new one -- re-declaration is not a new binding.
func (s *Scope) Declare(name string, tag uint32) {
	if _, ok := s.Members[name]; !ok {
		s.Members[name] = tag
	}
}

// Lookup resolves `name` by walking from this scope up through Parent,
// returning the tag of the nearest enclosing declaration. ok is false for a
// free/global reference, in which case the caller should use UnboundScope.
func (s *Scope) Lookup(name string) (tag uint32, ok bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if tag, ok := sc.Members[name]; ok {
			return tag, true
		}
	}
	return 0, false
}

// ContainsEval reports whether this scope or any descendant scope contains a
// direct eval, mirroring esbuild's recursive computeReservedNamesForScope
// walk but phrased as a simple predicate since we only need a yes/no answer.
func (s *Scope) ContainsEval() bool {
	if s.ContainsDirectEval {
		return true
	}
	for _, c := range s.Children {
		if c.ContainsEval() {
			return true
		}
	}
	return false
}

// TagGenerator mints fresh, unique scope tags. The spec calls this the
// "Scope tag generator": used whenever a rewrite introduces a binding that
// must not collide with anything pre-existing. Tag 0 (UnboundScope) is never
// issued, so it stays a safe "no binding" sentinel.
type TagGenerator struct {
	next uint32
}

func NewTagGenerator() *TagGenerator {
	return &TagGenerator{next: 1}
}

func (g *TagGenerator) Next() uint32 {
	tag := g.next
	g.next++
	return tag
}
