// Package namegen generates the fresh identifier names a rewrite sometimes
// needs to introduce (IifeExpand's temporary holder when a Shape B target has
// no usable bare identifier; EnumConvert's synthesized enum binding when none
// is visible). Format and counter behavior are ported from jsmagi/src/lib.rs's
// RandomName::get, which this spec's distillation left implicit.
package namegen

import "fmt"

// RandomName mints names of the form "<prefix>_$NNNN", a monotonic 4-digit
// counter shared across every prefix so two calls never collide regardless
// of prefix. jsmagi holds this counter in an `Rc<Cell<usize>>` shared between
// clones of the pass chain; a single owned *RandomName passed by pointer is
// the direct Go equivalent.
type RandomName struct {
	next int
}

func New() *RandomName { return &RandomName{} }

// Get returns the next name for the given prefix and advances the counter.
func (r *RandomName) Get(prefix string) string {
	name := fmt.Sprintf("%s_$%04d", prefix, r.next)
	r.next++
	return name
}
