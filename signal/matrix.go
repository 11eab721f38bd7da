package signal

import (
	"fmt"

	"github.com/pkg/errors"
)

// Matrix is a fixed ROWS x COLS grid stored column-major: element (r, c)
// lives at data[c*rows+r]. Matrices cross block boundaries by pointer and
// receivers treat them as read-only.
type Matrix[T Element] struct {
	rows, cols int
	data       []T
}

// NewMatrix returns a zeroed rows x cols matrix. It panics when either
// dimension is smaller than one: matrix shapes come from the diagram and a bad
// one is a generation defect.
func NewMatrix[T Element](rows, cols int) *Matrix[T] {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("signal: invalid matrix shape %dx%d", rows, cols))
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// FilledMatrix returns a rows x cols matrix with every element set to v.
func FilledMatrix[T Element](rows, cols int, v T) *Matrix[T] {
	m := NewMatrix[T](rows, cols)
	m.Fill(v)
	return m
}

// MatrixFromRows builds a matrix from row-major literals, which read more
// naturally in source than the column-major storage order.
func MatrixFromRows[T Element](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("empty matrix literal")
	}
	m := NewMatrix[T](len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != m.cols {
			return nil, errors.Errorf("row %d has %d columns, want %d", r, len(row), m.cols)
		}
		for c, v := range row {
			m.Set(r, c, v)
		}
	}
	return m, nil
}

// MustMatrixFromRows is like MatrixFromRows but panics on error.
func MustMatrixFromRows[T Element](rows [][]T) *Matrix[T] {
	m, err := MatrixFromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Matrix[T]) Rows() int { return m.rows }

func (m *Matrix[T]) Cols() int { return m.cols }

// Len returns rows*cols.
func (m *Matrix[T]) Len() int { return len(m.data) }

func (m *Matrix[T]) At(r, c int) T { return m.data[m.index(r, c)] }

func (m *Matrix[T]) Set(r, c int, v T) { m.data[m.index(r, c)] = v }

// Index returns the i-th element in storage (column-major) order.
func (m *Matrix[T]) Index(i int) T { return m.data[i] }

// SetIndex sets the i-th element in storage order.
func (m *Matrix[T]) SetIndex(i int, v T) { m.data[i] = v }

// Col returns a view of column c.
func (m *Matrix[T]) Col(c int) []T {
	if c < 0 || c >= m.cols {
		panic(fmt.Sprintf("signal: column %d out of range [0,%d)", c, m.cols))
	}
	return m.data[c*m.rows : (c+1)*m.rows : (c+1)*m.rows]
}

// Data returns the backing storage in column-major order. The slice aliases
// the matrix.
func (m *Matrix[T]) Data() []T { return m.data }

func (m *Matrix[T]) Fill(v T) {
	for i := range m.data {
		m.data[i] = v
	}
}

// SameShape reports whether m and o have the same dimensions.
func (m *Matrix[T]) SameShape(o *Matrix[T]) bool {
	return m.rows == o.rows && m.cols == o.cols
}

// CopyFrom overwrites m with the contents of src. Shapes must match.
func (m *Matrix[T]) CopyFrom(src *Matrix[T]) {
	if !m.SameShape(src) {
		panic(fmt.Sprintf("signal: copy %dx%d into %dx%d", src.rows, src.cols, m.rows, m.cols))
	}
	copy(m.data, src.data)
}

// Clone returns a deep copy of m.
func (m *Matrix[T]) Clone() *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	copy(out.data, m.data)
	return out
}

func (m *Matrix[T]) Kind() Kind { return KindMatrix }

func (m *Matrix[T]) PassBy() PassBy { return ByReference }

func (m *Matrix[T]) AppendFloats(dst []float64) []float64 {
	for _, v := range m.data {
		dst = append(dst, toFloat(v))
	}
	return dst
}

func (m *Matrix[T]) shape() Shape {
	return Shape{Kind: KindMatrix, Type: TypeOf[T](), Rows: m.rows, Cols: m.cols}
}

func (m *Matrix[T]) String() string {
	return fmt.Sprintf("%dx%d%v", m.rows, m.cols, m.data)
}

func (m *Matrix[T]) index(r, c int) int {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("signal: index (%d,%d) out of range for %dx%d matrix", r, c, m.rows, m.cols))
	}
	return c*m.rows + r
}

// MustSameShape panics unless a and b have identical dimensions. Blocks call
// it when an input first meets their state so a mis-wired diagram fails on the
// first tick instead of reading out of bounds later.
func MustSameShape[A, B Element](a *Matrix[A], b *Matrix[B]) {
	if a.rows != b.rows || a.cols != b.cols {
		panic(fmt.Sprintf("signal: shape mismatch %dx%d vs %dx%d", a.rows, a.cols, b.rows, b.cols))
	}
}
