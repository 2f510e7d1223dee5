package forecast

import (
    "errors"
    "fmt"
    "math"

    "gonum.org/v1/gonum/optimize"
    "gonum.org/v1/gonum/stat"

    domsvc "StockSight/internal/domain/service"
)

var (
    errDegenerateSeries = errors.New("differenced series has no variance")
    errNotConverged     = errors.New("optimizer did not converge")
)

// ARIMA is an ARIMA(1,1,1) without constant, fitted by conditional sum of
// squares on the first differences. Coefficients are kept inside (-1, 1)
// through a tanh reparameterization.
type ARIMA struct {
    MaxIterations int
}

func NewARIMA() *ARIMA { return &ARIMA{MaxIterations: 1000} }

func (a *ARIMA) Name() string { return "ARIMA" }

func (a *ARIMA) Predict(prices []float64, horizon int) ([]float64, error) {
    w := difference(prices)
    if len(w) < 3 {
        return nil, fmt.Errorf("arima: %w", errDegreesOfFreedom)
    }
    mean, std := stat.PopMeanStdDev(w, nil)
    if !finite(std) || std <= 1e-12*(1+math.Abs(mean)) {
        return nil, fmt.Errorf("arima: %w", errDegenerateSeries)
    }

    phi, theta, err := a.fit(w)
    if err != nil {
        return nil, fmt.Errorf("arima fit: %w", err)
    }
    resid := make([]float64, len(w))
    conditionalSSE(w, phi, theta, resid)

    m := len(w)
    step := phi*w[m-1] + theta*resid[m-1]
    level := prices[len(prices)-1]
    out := make([]float64, horizon)
    for h := 0; h < horizon; h++ {
        if h > 0 {
            step *= phi
        }
        level += step
        out[h] = level
    }
    return out, nil
}

func (a *ARIMA) fit(w []float64) (phi, theta float64, err error) {
    problem := optimize.Problem{
        Func: func(x []float64) float64 {
            return conditionalSSE(w, math.Tanh(x[0]), math.Tanh(x[1]), nil)
        },
    }
    settings := &optimize.Settings{
        MajorIterations: a.MaxIterations,
        Converger: &optimize.FunctionConverge{
            Absolute:   1e-10,
            Relative:   1e-10,
            Iterations: 50,
        },
    }
    res, err := optimize.Minimize(problem, []float64{0, 0}, settings, &optimize.NelderMead{})
    if err != nil {
        return 0, 0, err
    }
    switch res.Status {
    case optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.RuntimeLimit, optimize.Failure:
        return 0, 0, fmt.Errorf("%w: %v", errNotConverged, res.Status)
    }
    phi, theta = math.Tanh(res.X[0]), math.Tanh(res.X[1])
    if !finite(phi) || !finite(theta) {
        return 0, 0, errNonFinite
    }
    return phi, theta, nil
}

// conditionalSSE runs e_t = w_t - φ·w_{t-1} - θ·e_{t-1} with e_0 = 0 and returns Σe².
// When resid is non-nil it receives the residuals.
func conditionalSSE(w []float64, phi, theta float64, resid []float64) float64 {
    var sse, prev float64
    for t := 1; t < len(w); t++ {
        e := w[t] - phi*w[t-1] - theta*prev
        sse += e * e
        prev = e
        if resid != nil {
            resid[t] = e
        }
    }
    return sse
}

func difference(prices []float64) []float64 {
    if len(prices) < 2 {
        return nil
    }
    out := make([]float64, len(prices)-1)
    for i := 1; i < len(prices); i++ {
        out[i-1] = prices[i] - prices[i-1]
    }
    return out
}

var _ domsvc.Predictor = (*ARIMA)(nil)
