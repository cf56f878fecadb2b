// Package normalize rescales sketch matrices before orthogonalization.
package normalize

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateColumn reports a column whose maximum entry is zero; such a
// column cannot be rescaled to a maximum of 1.
var ErrDegenerateColumn = errors.New("column maximum is zero")

// Columns returns a copy of x with each column divided by its maximum
// entry, so that the maximum of every output column is exactly 1.
// Rescaling a column by a constant does not change the space spanned by the
// set of columns, but it improves the conditioning of a subsequent
// factorization. x is not modified.
//
// A column whose maximum entry is exactly zero returns ErrDegenerateColumn
// rather than producing non-finite values.
func Columns(x mat.Matrix) (*mat.Dense, error) {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)
	for j := range cols {
		mat.Col(col, j, x)
		max := floats.Max(col)
		if max == 0 {
			return nil, fmt.Errorf("%w: column %d", ErrDegenerateColumn, j)
		}
		// True division keeps the column maximum exactly 1; scaling by the
		// reciprocal would not.
		for i := range col {
			col[i] /= max
		}
		out.SetCol(j, col)
	}
	return out, nil
}
