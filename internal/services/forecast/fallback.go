package forecast

// trendWindow is how many trailing observations the fallback slope is measured over.
const trendWindow = 10

// TrendFallback extrapolates the average per-step change over the last ten prices.
// It never fails: shorter series measure the slope from the first price, empty ones yield zeros.
func TrendFallback(prices []float64, horizon int) []float64 {
    if horizon < 1 {
        return nil
    }
    out := make([]float64, horizon)
    n := len(prices)
    if n == 0 {
        return out
    }
    last := prices[n-1]
    base := prices[0]
    if n >= trendWindow {
        base = prices[n-trendWindow]
    }
    trend := (last - base) / trendWindow
    for i := range out {
        out[i] = last + trend*float64(i+1)
    }
    return out
}
