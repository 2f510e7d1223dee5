package forecast

import (
    "fmt"

    "gonum.org/v1/gonum/mat"

    domsvc "StockSight/internal/domain/service"
    "StockSight/internal/services/features"
)

// FeatureRegression regresses the next price on trailing moving averages and a
// time index, then rolls forward on a window that absorbs its own predictions.
type FeatureRegression struct {
    Windows []int
}

func NewFeatureRegression() *FeatureRegression {
    return &FeatureRegression{Windows: []int{5, 10, 20}}
}

func (f *FeatureRegression) Name() string { return "Linear Regression" }

func (f *FeatureRegression) longest() int {
    m := 0
    for _, w := range f.Windows {
        if w > m {
            m = w
        }
    }
    return m
}

func (f *FeatureRegression) Predict(prices []float64, horizon int) ([]float64, error) {
    n := len(prices)
    span := f.longest()
    if span < 1 {
        return nil, fmt.Errorf("linear regression: no moving-average windows")
    }
    // rows t = span-1 .. n-2, target y_{t+1}
    rows := n - span
    cols := len(f.Windows) + 2
    if rows <= cols {
        return nil, fmt.Errorf("linear regression: %w", errDegreesOfFreedom)
    }

    averages := make([][]float64, len(f.Windows))
    for k, w := range f.Windows {
        averages[k] = features.SMA(prices, w)
    }
    x := mat.NewDense(rows, cols, nil)
    y := make([]float64, rows)
    for r := 0; r < rows; r++ {
        t := r + span - 1
        x.Set(r, 0, 1)
        for k := range f.Windows {
            x.Set(r, 1+k, averages[k][t])
        }
        x.Set(r, cols-1, float64(t+1))
        y[r] = prices[t+1]
    }
    beta, err := leastSquares(x, y)
    if err != nil {
        return nil, fmt.Errorf("linear regression fit: %w", err)
    }

    window := make([]float64, span, span+horizon)
    copy(window, prices[n-span:])
    out := make([]float64, horizon)
    for i := 0; i < horizon; i++ {
        v := beta[0] + beta[cols-1]*float64(n+i)
        for k, w := range f.Windows {
            v += beta[1+k] * features.TrailingMean(window, w)
        }
        out[i] = v
        window = append(window[1:], v)
    }
    return out, nil
}

var _ domsvc.Predictor = (*FeatureRegression)(nil)
