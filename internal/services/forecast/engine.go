package forecast

import (
    "context"
    "errors"
    "time"

    "StockSight/internal/domain/models"
    domrepo "StockSight/internal/domain/repository"
    domsvc "StockSight/internal/domain/service"
    applogger "StockSight/pkg/logger"
)

// Engine combines the concurrent forecaster with the response assembler.
type Engine struct {
    forecaster *Forecaster
    assembler  *Assembler
    l          *applogger.Logger
    metrics    domrepo.Metrics
}

func NewEngine(f *Forecaster, a *Assembler, l *applogger.Logger, m domrepo.Metrics) *Engine {
    return &Engine{forecaster: f, assembler: a, l: l, metrics: m}
}

func (e *Engine) Predict(ctx context.Context, symbol string, closes []float64, lastDate time.Time, horizon int) (*models.ForecastResponse, error) {
    start := time.Now()
    series := Series{Symbol: symbol, Closes: closes, LastDate: lastDate}

    results, err := e.forecaster.Forecast(ctx, series, horizon)
    if err != nil {
        var insufficient *models.InsufficientDataError
        if errors.As(err, &insufficient) || errors.Is(err, ErrInvalidHorizon) {
            return nil, err
        }
        return nil, &models.PredictionFailedError{Symbol: symbol, Horizon: horizon, Err: err}
    }

    resp, err := e.assembler.Assemble(series, horizon, results)
    if err != nil {
        return nil, err
    }

    fallbacks := 0
    for _, r := range results {
        if r.Fallback {
            fallbacks++
        }
    }
    if e.metrics != nil {
        e.metrics.RecordLatency("forecast", time.Since(start).Seconds())
    }
    if e.l != nil {
        e.l.Debug("forecast generated",
            applogger.String("symbol", symbol),
            applogger.Int("horizon", horizon),
            applogger.Int("points", len(closes)),
            applogger.Int("fallbacks", fallbacks),
            applogger.Duration("took_ms", time.Since(start)),
        )
    }
    return resp, nil
}

var _ domsvc.ForecastEngine = (*Engine)(nil)
