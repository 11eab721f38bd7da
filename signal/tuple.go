package signal

import "github.com/pkg/errors"

const (
	minTupleLen = 2
	maxTupleLen = 8
)

// Tuple groups 2 to 8 signals on one wire. Each element keeps its own pass-by
// convention.
type Tuple struct {
	elems []Value
}

// NewTuple builds a tuple from elems.
func NewTuple(elems ...Value) (Tuple, error) {
	if n := len(elems); n < minTupleLen || n > maxTupleLen {
		return Tuple{}, errors.Errorf("tuple arity %d outside [%d,%d]", n, minTupleLen, maxTupleLen)
	}
	for i, e := range elems {
		if e == nil {
			return Tuple{}, errors.Errorf("tuple element %d is nil", i)
		}
	}
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Tuple{elems: cp}, nil
}

// MustTuple is like NewTuple but panics on error.
func MustTuple(elems ...Value) Tuple {
	t, err := NewTuple(elems...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tuple) Len() int { return len(t.elems) }

func (t Tuple) At(i int) Value { return t.elems[i] }

func (t Tuple) Kind() Kind { return KindTuple }

func (t Tuple) PassBy() PassBy { return ByElement }

// ElementPassBy returns the convention of element i. Nested tuples report
// ByElement.
func (t Tuple) ElementPassBy(i int) PassBy {
	return t.elems[i].PassBy()
}

// Conventions returns the concrete convention of every leaf value in storage
// order, descending into nested tuples.
func (t Tuple) Conventions() []PassBy {
	var out []PassBy
	for _, e := range t.elems {
		if nested, ok := e.(Tuple); ok {
			out = append(out, nested.Conventions()...)
			continue
		}
		out = append(out, e.PassBy())
	}
	return out
}

func (t Tuple) AppendFloats(dst []float64) []float64 {
	for _, e := range t.elems {
		dst = e.AppendFloats(dst)
	}
	return dst
}
