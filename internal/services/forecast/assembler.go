package forecast

import (
    "errors"
    "fmt"
    "math"
    "time"

    "github.com/shopspring/decimal"
    "gonum.org/v1/gonum/stat"

    "StockSight/internal/domain/models"
    "StockSight/internal/services/features"
    "StockSight/pkg/util"
)

const (
    // DefaultUncertaintyDamping scales the sqrt-of-time volatility band down to a usable width.
    DefaultUncertaintyDamping = 0.1

    confidenceZ    = 1.96
    accuracyWindow = 30

    EnsembleDescription = "Simple average of all methods"
)

// MethodsUsed lists the ensemble members as reported to clients.
var MethodsUsed = []string{"AutoRegression", "Linear Regression", "ARIMA"}

var (
    errNoResults           = errors.New("no predictor results")
    errInvalidCurrentPrice = errors.New("current price must be positive and finite")
)

// Assembler turns per-predictor paths into the dated, rounded response.
type Assembler struct {
    damping float64
    now     func() time.Time
}

func NewAssembler(damping float64) *Assembler {
    if damping <= 0 || !finite(damping) {
        damping = DefaultUncertaintyDamping
    }
    return &Assembler{damping: damping, now: time.Now}
}

// Ensemble is the element-wise mean of the result paths.
func Ensemble(results []Result, horizon int) []float64 {
    out := make([]float64, horizon)
    if len(results) == 0 {
        return out
    }
    for _, r := range results {
        for i := 0; i < horizon && i < len(r.Values); i++ {
            out[i] += r.Values[i]
        }
    }
    for i := range out {
        out[i] /= float64(len(results))
    }
    return out
}

// Bounds returns the lower and upper 95% band around ensemble, widening with sqrt(step).
// The band scales with |ensemble| so lower <= ensemble <= upper holds for negative paths too.
func Bounds(closes, ensemble []float64, damping float64) (lower, upper []float64) {
    vol := features.Volatility(closes)
    lower = make([]float64, len(ensemble))
    upper = make([]float64, len(ensemble))
    for i, v := range ensemble {
        u := vol * math.Sqrt(float64(i+1)) * math.Abs(v) * damping
        lower[i] = v - confidenceZ*u
        upper[i] = v + confidenceZ*u
    }
    return lower, upper
}

// Accuracy summarizes the last thirty closes.
func Accuracy(closes []float64) models.AccuracyMetrics {
    n := len(closes)
    m := models.AccuracyMetrics{DataPointsUsed: n, TrendDirection: "downward"}
    if n == 0 {
        return m
    }
    window := closes
    if n > accuracyWindow {
        window = closes[n-accuracyWindow:]
    }
    mean, std := stat.PopMeanStdDev(window, nil)
    if mean != 0 && finite(std/mean) {
        m.RecentVolatilityPercent = round2(std / mean * 100)
    }
    if closes[n-1] > window[0] {
        m.TrendDirection = "upward"
    }
    return m
}

func (a *Assembler) Assemble(series Series, horizon int, results []Result) (*models.ForecastResponse, error) {
    if err := series.validate(horizon); err != nil {
        return nil, err
    }
    fail := func(err error) error {
        return &models.PredictionFailedError{Symbol: series.Symbol, Horizon: horizon, Err: err}
    }
    if len(results) == 0 {
        return nil, fail(errNoResults)
    }
    for _, r := range results {
        if len(r.Values) != horizon {
            return nil, fail(fmt.Errorf("%s: %w", r.Predictor, errBadOutput))
        }
    }
    current := series.Last()
    if current <= 0 || !finite(current) {
        return nil, fail(errInvalidCurrentPrice)
    }

    ensemble := Ensemble(results, horizon)
    lower, upper := Bounds(series.Closes, ensemble, a.damping)
    dates := util.NextBusinessDays(series.LastDate, horizon)

    points := make([]models.PredictionPoint, horizon)
    for i := range ensemble {
        if !finite(ensemble[i]) || !finite(lower[i]) || !finite(upper[i]) {
            return nil, fail(fmt.Errorf("step %d: %w", i+1, errNonFinite))
        }
        predicted := round2(ensemble[i])
        change := predicted - current
        points[i] = models.PredictionPoint{
            Date:              util.FormatDate(dates[i]),
            PredictedPrice:    predicted,
            LowerBound:        round2(lower[i]),
            UpperBound:        round2(upper[i]),
            ChangeFromCurrent: round2(change),
            ChangePercent:     round2(change / current * 100),
        }
    }

    return &models.ForecastResponse{
        Symbol:           series.Symbol,
        CurrentPrice:     round2(current),
        PredictionPeriod: fmt.Sprintf("%d business days", horizon),
        Predictions:      points,
        ModelInfo: models.ModelInfo{
            MethodsUsed:     append([]string(nil), MethodsUsed...),
            Ensemble:        EnsembleDescription,
            AccuracyMetrics: Accuracy(series.Closes),
        },
        Timestamp: a.now().UTC(),
    }, nil
}

func round2(v float64) float64 {
    return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
