package prototype

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/stylealign/distance"
	"github.com/hupe1980/stylealign/mask"
)

// Bank is an immutable set of P unit-norm prototypes of dimension D.
// It is safe for concurrent use.
type Bank struct {
	m *mat.Dense
}

// NewBank copies rows into a new Bank and L2-normalizes each of them.
// All rows must share one non-zero dimension and have non-zero norm.
func NewBank(rows [][]float64) (*Bank, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyBank
	}
	dim := len(rows[0])
	data := make([]float64, 0, len(rows)*dim)
	for _, r := range rows {
		if len(r) != dim {
			return nil, &DimensionMismatchError{Expected: dim, Actual: len(r)}
		}
		data = append(data, r...)
	}
	return newBank(data, len(rows), dim)
}

// NewBankFromMatrix copies m into a new Bank, normalizing each row.
func NewBankFromMatrix(m mat.Matrix) (*Bank, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyBank
	}
	data := make([]float64, r*c)
	mat.NewDense(r, c, data).Copy(m)
	return newBank(data, r, c)
}

// newBank takes ownership of data.
func newBank(data []float64, rows, dim int) (*Bank, error) {
	if rows == 0 || dim == 0 {
		return nil, ErrEmptyBank
	}
	for i := 0; i < rows; i++ {
		if !distance.NormalizeL2InPlace(data[i*dim : (i+1)*dim]) {
			return nil, &ZeroVectorError{Row: i}
		}
	}
	return &Bank{m: mat.NewDense(rows, dim, data)}, nil
}

// Len returns the number of prototypes P.
func (b *Bank) Len() int {
	r, _ := b.m.Dims()
	return r
}

// Dim returns the prototype dimension D.
func (b *Bank) Dim() int {
	_, c := b.m.Dims()
	return c
}

// Row returns a copy of prototype i.
func (b *Bank) Row(i int) []float64 {
	return mat.Row(nil, i, b.m)
}

// Matrix returns a read-only view of the bank.
func (b *Bank) Matrix() mat.Matrix {
	return b.m
}

// Scores returns the dot product of v against every prototype.
func (b *Bank) Scores(v []float64) ([]float64, error) {
	if len(v) != b.Dim() {
		return nil, &DimensionMismatchError{Expected: b.Dim(), Actual: len(v)}
	}
	out := make([]float64, b.Len())
	dst := mat.NewVecDense(len(out), out)
	dst.MulVec(b.m, mat.NewVecDense(len(v), v))
	return out, nil
}

// Stack returns copies of the prototypes selected by m in ascending index order.
func (b *Bank) Stack(m mask.IndexMask) [][]float64 {
	out := make([][]float64, 0, m.Len())
	for i := range m.All() {
		if i < b.Len() {
			out = append(out, b.Row(i))
		}
	}
	return out
}

// WeightedStack returns weights[i]·prototype[i] for every i in m, each row
// L2-normalized, in ascending index order. A zero weight yields a zero row.
// weights is indexed by prototype, so it must have Len entries.
func (b *Bank) WeightedStack(m mask.IndexMask, weights []float64) ([][]float64, error) {
	if len(weights) != b.Len() {
		return nil, &DimensionMismatchError{Expected: b.Len(), Actual: len(weights)}
	}
	out := make([][]float64, 0, m.Len())
	for i := range m.All() {
		if i >= b.Len() {
			continue
		}
		row := b.Row(i)
		for j := range row {
			row[j] *= weights[i]
		}
		distance.NormalizeL2InPlace(row)
		out = append(out, row)
	}
	return out, nil
}
