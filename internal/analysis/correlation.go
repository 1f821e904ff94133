package analysis

import (
	"math"

	"liftdash/domain/survey"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Correlation is a Pearson correlation matrix over the num_* columns
type Correlation struct {
	Columns []string
	Matrix  *mat.SymDense
}

// At returns the coefficient for columns i and j; NaN when undefined
func (c *Correlation) At(i, j int) float64 {
	return c.Matrix.At(i, j)
}

// Rows returns the matrix as nested slices
func (c *Correlation) Rows() [][]float64 {
	n := len(c.Columns)
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = c.Matrix.At(i, j)
		}
	}
	return out
}

// CorrelationMatrix computes pairwise-complete Pearson coefficients between the num_*
// columns. With fewer than two numeric columns, or no rows, there is nothing to
// correlate and ok is false.
func CorrelationMatrix(view *survey.Table) (*Correlation, bool) {
	cols := view.NumericColumns()
	if len(cols) < 2 || view.Len() == 0 {
		return nil, false
	}

	n := len(cols)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			x, y := pairedValues(view, cols[i], cols[j])
			m.SetSym(i, j, pearson(x, y, i == j))
		}
	}
	return &Correlation{Columns: cols, Matrix: m}, true
}

func pairedValues(view *survey.Table, a, b string) ([]float64, []float64) {
	x := make([]float64, 0, view.Len())
	y := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		r := view.Row(i)
		va, okA := r.Number(a)
		vb, okB := r.Number(b)
		if !okA || !okB {
			continue
		}
		x = append(x, va)
		y = append(y, vb)
	}
	return x, y
}

// pearson is NaN for fewer than two pairs or a constant column
func pearson(x, y []float64, diagonal bool) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN()
	}
	if diagonal {
		return 1
	}
	r := stat.Correlation(x, y, nil)
	return math.Max(-1, math.Min(1, r))
}
