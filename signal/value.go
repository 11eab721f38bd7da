package signal

import (
	"fmt"
	"strings"
)

// Kind identifies the shape family of a Value.
type Kind uint8

const (
	KindScalar Kind = iota + 1
	KindMatrix
	KindBytes
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMatrix:
		return "matrix"
	case KindBytes:
		return "bytes"
	case KindTuple:
		return "tuple"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// PassBy is the convention used to hand a value to a downstream block.
type PassBy uint8

const (
	// ByValue copies the value. Used for scalars.
	ByValue PassBy = iota + 1
	// ByReference hands over a read-only view of storage owned by the producer.
	ByReference
	// ByElement applies each tuple element's own convention.
	ByElement
)

func (p PassBy) String() string {
	switch p {
	case ByValue:
		return "value"
	case ByReference:
		return "reference"
	case ByElement:
		return "element"
	}
	return fmt.Sprintf("PassBy(%d)", uint8(p))
}

// Value is implemented by every shape that may flow on a wire.
type Value interface {
	Kind() Kind
	PassBy() PassBy
	// AppendFloats appends the value's elements, flattened in storage order,
	// to dst and returns the extended slice. Booleans flatten to 0 or 1.
	AppendFloats(dst []float64) []float64
}

// Flatten concatenates the flattened elements of vs in order. This is the
// layout handed to telemetry collaborators once per tick.
func Flatten(vs ...Value) []float64 {
	var out []float64
	for _, v := range vs {
		out = v.AppendFloats(out)
	}
	return out
}

// Shape describes the fixed layout of a Value.
type Shape struct {
	Kind  Kind
	Type  ScalarType // scalar and matrix element type
	Rows  int
	Cols  int
	Len   int     // byte buffer length
	Elems []Shape // tuple elements
}

// ShapeOf returns the shape of v, which must not be nil.
func ShapeOf(v Value) Shape {
	switch v := v.(type) {
	case Scalar:
		return Shape{Kind: KindScalar, Type: v.Type()}
	case interface{ shape() Shape }:
		return v.shape()
	case Bytes:
		return Shape{Kind: KindBytes, Len: len(v)}
	case Tuple:
		elems := make([]Shape, v.Len())
		for i := range elems {
			elems[i] = ShapeOf(v.At(i))
		}
		return Shape{Kind: KindTuple, Elems: elems}
	}
	return Shape{Kind: v.Kind()}
}

// Equal reports whether s and o describe the same layout.
func (s Shape) Equal(o Shape) bool {
	if s.Kind != o.Kind || s.Type != o.Type || s.Rows != o.Rows || s.Cols != o.Cols || s.Len != o.Len {
		return false
	}
	if len(s.Elems) != len(o.Elems) {
		return false
	}
	for i := range s.Elems {
		if !s.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	switch s.Kind {
	case KindScalar:
		return s.Type.String()
	case KindMatrix:
		return fmt.Sprintf("matrix<%d,%d,%s>", s.Rows, s.Cols, s.Type)
	case KindBytes:
		return fmt.Sprintf("bytes[%d]", s.Len)
	case KindTuple:
		parts := make([]string, len(s.Elems))
		for i, e := range s.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return s.Kind.String()
}
