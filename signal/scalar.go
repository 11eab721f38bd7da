package signal

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ScalarType tags the element type of a scalar or matrix signal.
type ScalarType uint8

const (
	Bool ScalarType = iota + 1
	U8
	I8
	U16
	I16
	U32
	I32
	F32
	F64
)

var scalarNames = [...]string{
	Bool: "bool",
	U8:   "u8",
	I8:   "i8",
	U16:  "u16",
	I16:  "i16",
	U32:  "u32",
	I32:  "i32",
	F32:  "f32",
	F64:  "f64",
}

// ScalarTypes lists every supported scalar type in declaration order.
var ScalarTypes = []ScalarType{Bool, U8, I8, U16, I16, U32, I32, F32, F64}

func (t ScalarType) String() string {
	if t.Valid() {
		return scalarNames[t]
	}
	return fmt.Sprintf("ScalarType(%d)", uint8(t))
}

// Valid reports whether t is one of the supported scalar types.
func (t ScalarType) Valid() bool { return t >= Bool && t <= F64 }

func (t ScalarType) IsFloat() bool { return t == F32 || t == F64 }

func (t ScalarType) IsSigned() bool {
	switch t {
	case I8, I16, I32, F32, F64:
		return true
	}
	return false
}

// Bits returns the storage width of t.
func (t ScalarType) Bits() int {
	switch t {
	case Bool, U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32, F32:
		return 32
	case F64:
		return 64
	}
	return 0
}

// ParseScalarType parses the names produced by String as well as the Go
// spellings (uint8, float64, ...).
func ParseScalarType(s string) (ScalarType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool":
		return Bool, nil
	case "u8", "uint8", "byte":
		return U8, nil
	case "i8", "int8":
		return I8, nil
	case "u16", "uint16":
		return U16, nil
	case "i16", "int16":
		return I16, nil
	case "u32", "uint32":
		return U32, nil
	case "i32", "int32":
		return I32, nil
	case "f32", "float32":
		return F32, nil
	case "f64", "float64":
		return F64, nil
	}
	return 0, errors.Errorf("unknown scalar type %q", s)
}

// Number is the set of numeric scalar element types.
type Number interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~float32 | ~float64
}

// Float is the set of floating point element types.
type Float interface {
	constraints.Float
}

// Element is the set of every scalar element type, booleans included.
type Element interface {
	Number | ~bool
}

// TypeOf returns the tag for the Go type T.
func TypeOf[T Element]() ScalarType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Uint8:
		return U8
	case reflect.Int8:
		return I8
	case reflect.Uint16:
		return U16
	case reflect.Int16:
		return I16
	case reflect.Uint32:
		return U32
	case reflect.Int32:
		return I32
	case reflect.Float32:
		return F32
	case reflect.Float64:
		return F64
	}
	panic("unreachable")
}

// Scalar is a type-tagged scalar. Every supported type round-trips exactly
// through the float64 payload.
type Scalar struct {
	typ ScalarType
	v   float64
}

// NewScalar wraps v with the tag matching its Go type.
func NewScalar[T Element](v T) Scalar {
	return Scalar{typ: TypeOf[T](), v: toFloat(v)}
}

// ScalarOf builds a scalar of type t from a float64, applying the usual
// conversion rules for t.
func ScalarOf(t ScalarType, v float64) Scalar {
	return Scalar{typ: F64, v: v}.Convert(t)
}

func (s Scalar) Type() ScalarType { return s.typ }

func (s Scalar) Float64() float64 { return s.v }

// Bool reports whether s is non-zero.
func (s Scalar) Bool() bool { return s.v != 0 }

func (s Scalar) Kind() Kind { return KindScalar }

func (s Scalar) PassBy() PassBy { return ByValue }

func (s Scalar) AppendFloats(dst []float64) []float64 { return append(dst, s.v) }

func (s Scalar) String() string {
	if s.typ == Bool {
		return fmt.Sprintf("%t", s.Bool())
	}
	return fmt.Sprintf("%v%s", s.v, s.typ)
}

// Convert returns s converted to type t. Integer targets truncate toward zero
// and wrap to the target width; NaN converts to zero.
func (s Scalar) Convert(t ScalarType) Scalar {
	v := s.v
	switch t {
	case Bool:
		if v != 0 && !math.IsNaN(v) {
			v = 1
		} else {
			v = 0
		}
	case F32:
		v = float64(float32(v))
	case F64:
	default:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
			break
		}
		i := int64(v)
		switch t {
		case U8:
			v = float64(uint8(i))
		case I8:
			v = float64(int8(i))
		case U16:
			v = float64(uint16(i))
		case I16:
			v = float64(int16(i))
		case U32:
			v = float64(uint32(i))
		case I32:
			v = float64(int32(i))
		}
	}
	return Scalar{typ: t, v: v}
}

// ScalarAs extracts the payload of s as a T. It panics when the tag of s does
// not match T.
func ScalarAs[T Element](s Scalar) T {
	if want := TypeOf[T](); s.typ != want {
		panic(fmt.Sprintf("signal: scalar of type %s read as %s", s.typ, want))
	}
	return fromFloat[T](s.v)
}

// Truthy reports whether v is non-zero (or true).
func Truthy[T comparable](v T) bool {
	var zero T
	return v != zero
}

func toFloat[T Element](v T) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return float64(rv.Int())
	default:
		return float64(rv.Uint())
	}
}

func fromFloat[T Element](f float64) T {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	switch rv.Kind() {
	case reflect.Bool:
		rv.SetBool(f != 0)
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(f)
	case reflect.Int8, reflect.Int16, reflect.Int32:
		rv.SetInt(int64(f))
	default:
		rv.SetUint(uint64(f))
	}
	return out
}
