package forecast

import (
    "errors"
    "fmt"
    "math"

    "gonum.org/v1/gonum/mat"
)

var (
    errRankDeficient    = errors.New("design matrix is rank deficient")
    errDegreesOfFreedom = errors.New("not enough observations for the number of regressors")
    errNonFinite        = errors.New("non-finite value")
)

// rankTolerance is the smallest accepted ratio between the extreme singular
// values of the column-normalized design matrix.
const rankTolerance = 1e-10

// leastSquares solves min ||X·b - y|| by QR and rejects rank-deficient designs.
func leastSquares(x *mat.Dense, y []float64) ([]float64, error) {
    rows, cols := x.Dims()
    if rows <= cols {
        return nil, fmt.Errorf("%w: %d rows, %d columns", errDegreesOfFreedom, rows, cols)
    }
    if len(y) != rows {
        return nil, fmt.Errorf("target has %d values, design has %d rows", len(y), rows)
    }
    for _, v := range y {
        if !finite(v) {
            return nil, fmt.Errorf("target: %w", errNonFinite)
        }
    }

    scaled := mat.DenseCopyOf(x)
    for j := 0; j < cols; j++ {
        norm := mat.Norm(scaled.ColView(j), 2)
        if norm == 0 || !finite(norm) {
            return nil, fmt.Errorf("%w: column %d", errRankDeficient, j)
        }
        for i := 0; i < rows; i++ {
            scaled.Set(i, j, scaled.At(i, j)/norm)
        }
    }
    var svd mat.SVD
    if !svd.Factorize(scaled, mat.SVDNone) {
        return nil, errors.New("singular value decomposition did not converge")
    }
    sv := svd.Values(nil)
    if sv[len(sv)-1] <= rankTolerance*sv[0] {
        return nil, fmt.Errorf("%w: singular values %.3g / %.3g", errRankDeficient, sv[len(sv)-1], sv[0])
    }

    var beta mat.VecDense
    if err := beta.SolveVec(x, mat.NewVecDense(rows, y)); err != nil {
        return nil, fmt.Errorf("solve: %w", err)
    }
    out := make([]float64, cols)
    for i := range out {
        out[i] = beta.AtVec(i)
        if !finite(out[i]) {
            return nil, fmt.Errorf("coefficient %d: %w", i, errNonFinite)
        }
    }
    return out, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
