package blocks

import "github.com/comalice/blockx/signal"

// newElements builds one scalar block per element of out.
func newElements[T signal.Element, B any](out *signal.Matrix[T], mk func() B) []B {
	elems := make([]B, out.Len())
	for i := range elems {
		elems[i] = mk()
	}
	return elems
}

// elementOf returns element i of m, or the zero value when m is nil.
func elementOf[T signal.Element](m *signal.Matrix[T], i int) T {
	if m == nil {
		var zero T
		return zero
	}
	return m.Index(i)
}

// mustMatchIC panics when a non-nil initial condition does not have the
// block's output shape.
func mustMatchIC[T signal.Element](out, ic *signal.Matrix[T]) {
	if ic != nil {
		signal.MustSameShape(out, ic)
	}
}
