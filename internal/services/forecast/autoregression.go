package forecast

import (
    "fmt"

    "gonum.org/v1/gonum/mat"

    domsvc "StockSight/internal/domain/service"
)

// AutoRegression fits y_t = c + d·(t+1) + Σ a_i·y_{t-i} by least squares and
// forecasts recursively, feeding each prediction back as a lag.
type AutoRegression struct {
    MaxLag int
}

func NewAutoRegression() *AutoRegression { return &AutoRegression{MaxLag: 20} }

func (a *AutoRegression) Name() string { return "AutoRegression" }

// Lags is min(MaxLag, n/5).
func (a *AutoRegression) Lags(n int) int {
    lags := n / 5
    if lags > a.MaxLag {
        lags = a.MaxLag
    }
    return lags
}

func (a *AutoRegression) Predict(prices []float64, horizon int) ([]float64, error) {
    n := len(prices)
    lags := a.Lags(n)
    if lags < 1 || n-lags <= lags+2 {
        return nil, fmt.Errorf("autoregression: %w", errDegreesOfFreedom)
    }

    rows, cols := n-lags, lags+2
    x := mat.NewDense(rows, cols, nil)
    y := make([]float64, rows)
    for r := 0; r < rows; r++ {
        t := r + lags
        x.Set(r, 0, 1)
        x.Set(r, 1, float64(t+1))
        for i := 1; i <= lags; i++ {
            x.Set(r, 1+i, prices[t-i])
        }
        y[r] = prices[t]
    }
    beta, err := leastSquares(x, y)
    if err != nil {
        return nil, fmt.Errorf("autoregression fit: %w", err)
    }

    path := make([]float64, n, n+horizon)
    copy(path, prices)
    out := make([]float64, horizon)
    for h := 0; h < horizon; h++ {
        t := n + h
        v := beta[0] + beta[1]*float64(t+1)
        for i := 1; i <= lags; i++ {
            v += beta[1+i] * path[t-i]
        }
        path = append(path, v)
        out[h] = v
    }
    return out, nil
}

var _ domsvc.Predictor = (*AutoRegression)(nil)
