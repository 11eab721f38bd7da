package signal

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnsupportedPromotion is returned when two scalar types have no common
// output type in the promotion table.
var ErrUnsupportedPromotion = errors.New("unsupported promotion")

// Promotion is one row of the promotion table: arithmetic between a Left and
// a Right operand is carried out, and produces, an Output value.
type Promotion struct {
	Left   ScalarType
	Right  ScalarType
	Output ScalarType
}

type typePair struct{ l, r ScalarType }

var promotions = buildPromotions()

func buildPromotions() map[typePair]ScalarType {
	table := make(map[typePair]ScalarType)
	for _, l := range ScalarTypes {
		for _, r := range ScalarTypes {
			if out, ok := widen(l, r); ok {
				table[typePair{l, r}] = out
			}
		}
	}
	return table
}

// widen picks the narrowest supported type that represents every value of
// both l and r exactly.
func widen(l, r ScalarType) (ScalarType, bool) {
	switch {
	case l == r:
		return l, true
	case l == Bool || r == Bool:
		return 0, false
	case l.IsFloat() && r.IsFloat():
		return F64, true
	case l.IsFloat() || r.IsFloat():
		f, i := l, r
		if r.IsFloat() {
			f, i = r, l
		}
		if f == F64 || i.Bits() <= 16 {
			return f, true
		}
		return 0, false
	}

	// both integers
	if l.IsSigned() == r.IsSigned() {
		if l.Bits() >= r.Bits() {
			return l, true
		}
		return r, true
	}
	s, u := l, r
	if r.IsSigned() {
		s, u = r, l
	}
	if s.Bits() > u.Bits() {
		return s, true
	}
	switch u.Bits() {
	case 8:
		return I16, true
	case 16:
		return I32, true
	}
	return 0, false
}

// Resolve looks up the promotion for a (left, right) pair.
func Resolve(left, right ScalarType) (Promotion, error) {
	out, ok := promotions[typePair{left, right}]
	if !ok {
		return Promotion{}, errors.Wrapf(ErrUnsupportedPromotion, "%s with %s", left, right)
	}
	return Promotion{Left: left, Right: right, Output: out}, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve(left, right ScalarType) Promotion {
	p, err := Resolve(left, right)
	if err != nil {
		panic(err)
	}
	return p
}

// SupportedPromotions returns the whole table ordered by (Left, Right).
func SupportedPromotions() []Promotion {
	out := make([]Promotion, 0, len(promotions))
	for k, v := range promotions {
		out = append(out, Promotion{Left: k.l, Right: k.r, Output: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Left != out[j].Left {
			return out[i].Left < out[j].Left
		}
		return out[i].Right < out[j].Right
	})
	return out
}

// PromoteLeft converts a left operand to the output type.
func (p Promotion) PromoteLeft(s Scalar) Scalar {
	if s.typ != p.Left {
		panic(errors.Errorf("signal: left operand %s, promotion expects %s", s.typ, p.Left))
	}
	return s.Convert(p.Output)
}

// PromoteRight converts a right operand to the output type.
func (p Promotion) PromoteRight(s Scalar) Scalar {
	if s.typ != p.Right {
		panic(errors.Errorf("signal: right operand %s, promotion expects %s", s.typ, p.Right))
	}
	return s.Convert(p.Output)
}

// Promoter is the statically typed form of a promotion, checked against the
// table once when it is created.
type Promoter[L, R, O Number] struct{}

// NewPromoter validates that L with R promotes to O.
func NewPromoter[L, R, O Number]() (Promoter[L, R, O], error) {
	p, err := Resolve(TypeOf[L](), TypeOf[R]())
	if err != nil {
		return Promoter[L, R, O]{}, err
	}
	if want := TypeOf[O](); p.Output != want {
		return Promoter[L, R, O]{}, errors.Wrapf(ErrUnsupportedPromotion,
			"%s with %s promotes to %s, not %s", p.Left, p.Right, p.Output, want)
	}
	return Promoter[L, R, O]{}, nil
}

// MustPromoter is like NewPromoter but panics on error.
func MustPromoter[L, R, O Number]() Promoter[L, R, O] {
	p, err := NewPromoter[L, R, O]()
	if err != nil {
		panic(err)
	}
	return p
}

func (Promoter[L, R, O]) Left(v L) O { return O(v) }

func (Promoter[L, R, O]) Right(v R) O { return O(v) }

// BinaryOp applies a float64 kernel to two promoted scalars and converts the
// result to the promotion's output type.
type BinaryOp struct {
	promotion Promotion
	fn        func(a, b float64) float64
}

// NewBinaryOp resolves the promotion for (left, right) and binds fn to it.
func NewBinaryOp(left, right ScalarType, fn func(a, b float64) float64) (*BinaryOp, error) {
	if fn == nil {
		return nil, errors.New("nil binary kernel")
	}
	p, err := Resolve(left, right)
	if err != nil {
		return nil, err
	}
	return &BinaryOp{promotion: p, fn: fn}, nil
}

// NewGain returns the product operation used by gain blocks.
func NewGain(left, right ScalarType) (*BinaryOp, error) {
	return NewBinaryOp(left, right, func(a, b float64) float64 { return a * b })
}

// NewBias returns the sum operation used by bias blocks.
func NewBias(left, right ScalarType) (*BinaryOp, error) {
	return NewBinaryOp(left, right, func(a, b float64) float64 { return a + b })
}

func (op *BinaryOp) Promotion() Promotion { return op.promotion }

func (op *BinaryOp) Output() ScalarType { return op.promotion.Output }

// Apply evaluates the operation.
func (op *BinaryOp) Apply(a, b Scalar) Scalar {
	a = op.promotion.PromoteLeft(a)
	b = op.promotion.PromoteRight(b)
	return ScalarOf(op.promotion.Output, op.fn(a.v, b.v))
}
