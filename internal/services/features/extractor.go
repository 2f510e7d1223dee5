package features

import (
    "math"

    "github.com/markcheno/go-talib"
    "gonum.org/v1/gonum/stat"

    "StockSight/internal/domain/models"
)

// Closes extracts closing prices from bars, dropping non-positive or non-finite values.
func Closes(bars []models.PriceBar) []float64 {
    out := make([]float64, 0, len(bars))
    for _, b := range bars {
        if b.Close <= 0 || math.IsInf(b.Close, 0) || math.IsNaN(b.Close) {
            continue
        }
        out = append(out, b.Close)
    }
    return out
}

// SimpleReturns computes r_t = (C_t - C_{t-1}) / C_{t-1}.
// It returns a slice of length len(prices)-1, or nil if insufficient data.
func SimpleReturns(prices []float64) []float64 {
    if len(prices) < 2 {
        return nil
    }
    out := make([]float64, 0, len(prices)-1)
    for i := 1; i < len(prices); i++ {
        out = append(out, (prices[i]-prices[i-1])/prices[i-1])
    }
    return out
}

// Volatility is the population standard deviation of simple returns over the whole series.
func Volatility(prices []float64) float64 {
    rets := SimpleReturns(prices)
    if len(rets) == 0 {
        return 0
    }
    _, std := stat.PopMeanStdDev(rets, nil)
    return std
}

// SMA returns the trailing simple moving average aligned with prices.
// The first period-1 entries are NaN since the average is undefined there.
func SMA(prices []float64, period int) []float64 {
    out := make([]float64, len(prices))
    if period <= 0 || len(prices) < period {
        for i := range out {
            out[i] = math.NaN()
        }
        return out
    }
    copy(out, talib.Sma(prices, period))
    for i := 0; i < period-1; i++ {
        out[i] = math.NaN()
    }
    return out
}

// TrailingMean averages the last n values of xs (all of them if n exceeds the length).
func TrailingMean(xs []float64, n int) float64 {
    if len(xs) == 0 {
        return math.NaN()
    }
    if n > len(xs) || n <= 0 {
        n = len(xs)
    }
    return stat.Mean(xs[len(xs)-n:], nil)
}
