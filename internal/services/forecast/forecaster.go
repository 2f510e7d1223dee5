package forecast

import (
    "context"
    "errors"
    "fmt"
    "sync"

    domrepo "StockSight/internal/domain/repository"
    domsvc "StockSight/internal/domain/service"
    applogger "StockSight/pkg/logger"
)

var (
    errPredictorPanic = errors.New("predictor panicked")
    errBadOutput      = errors.New("predictor returned unusable output")
)

// Result is the outcome of one predictor run. When Fallback is set, Values holds the
// trend extrapolation and Reason carries the error that caused the substitution.
type Result struct {
    Predictor string
    Values    []float64
    Fallback  bool
    Reason    error
}

// Forecaster runs every predictor concurrently over the same series and always
// yields exactly one usable result per predictor.
type Forecaster struct {
    predictors []domsvc.Predictor
    l          *applogger.Logger
    metrics    domrepo.Metrics
}

type Option func(*Forecaster)

// WithPredictors replaces the default autoregression, feature regression and ARIMA set.
func WithPredictors(ps ...domsvc.Predictor) Option {
    return func(f *Forecaster) { f.predictors = ps }
}

func WithLogger(l *applogger.Logger) Option {
    return func(f *Forecaster) { f.l = l }
}

func WithMetrics(m domrepo.Metrics) Option {
    return func(f *Forecaster) { f.metrics = m }
}

func NewForecaster(opts ...Option) *Forecaster {
    f := &Forecaster{
        predictors: []domsvc.Predictor{NewAutoRegression(), NewFeatureRegression(), NewARIMA()},
    }
    for _, opt := range opts {
        opt(f)
    }
    return f
}

// Predictors returns the predictor names in result order.
func (f *Forecaster) Predictors() []string {
    names := make([]string, len(f.predictors))
    for i, p := range f.predictors {
        names[i] = p.Name()
    }
    return names
}

// Forecast validates the series and fans the predictors out, one goroutine each.
// Result order matches predictor order regardless of completion order.
func (f *Forecaster) Forecast(ctx context.Context, series Series, horizon int) ([]Result, error) {
    if err := series.validate(horizon); err != nil {
        return nil, err
    }
    if err := ctx.Err(); err != nil {
        return nil, err
    }

    results := make([]Result, len(f.predictors))
    var wg sync.WaitGroup
    for i, p := range f.predictors {
        wg.Add(1)
        go func(i int, p domsvc.Predictor) {
            defer wg.Done()
            results[i] = f.run(series, p, horizon)
        }(i, p)
    }
    wg.Wait()

    if err := ctx.Err(); err != nil {
        return nil, err
    }
    return results, nil
}

func (f *Forecaster) run(series Series, p domsvc.Predictor, horizon int) Result {
    res := Result{Predictor: p.Name()}
    input := make([]float64, len(series.Closes))
    copy(input, series.Closes)

    values, err := safePredict(p, input, horizon)
    if err == nil {
        err = checkOutput(values, horizon)
    }
    if err == nil {
        res.Values = values
        return res
    }

    res.Values = TrendFallback(series.Closes, horizon)
    res.Fallback = true
    res.Reason = err
    if f.l != nil {
        f.l.Warn("predictor failed, using trend fallback",
            applogger.String("predictor", res.Predictor),
            applogger.String("symbol", series.Symbol),
            applogger.Int("horizon", horizon),
            applogger.Error(err),
        )
    }
    if f.metrics != nil {
        f.metrics.RecordFallback(res.Predictor)
    }
    return res
}

func safePredict(p domsvc.Predictor, prices []float64, horizon int) (values []float64, err error) {
    defer func() {
        if r := recover(); r != nil {
            values = nil
            err = fmt.Errorf("%w: %v", errPredictorPanic, r)
        }
    }()
    return p.Predict(prices, horizon)
}

func checkOutput(values []float64, horizon int) error {
    if len(values) != horizon {
        return fmt.Errorf("%w: %d values for horizon %d", errBadOutput, len(values), horizon)
    }
    for i, v := range values {
        if !finite(v) {
            return fmt.Errorf("%w: step %d is %v", errBadOutput, i+1, v)
        }
    }
    return nil
}
