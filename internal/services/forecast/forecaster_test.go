package forecast

import (
    "context"
    "errors"
    "math"
    "sync/atomic"
    "testing"
    "time"

    "StockSight/internal/domain/models"
)

func TestForecastInsufficientDataSkipsPredictors(t *testing.T) {
    p := constantPredictor("c", 1)
    f := NewForecaster(WithPredictors(p))
    _, err := f.Forecast(context.Background(), Series{Symbol: "AAPL", Closes: randomWalk(49, 1)}, 5)
    var insufficient *models.InsufficientDataError
    if !errors.As(err, &insufficient) {
        t.Fatalf("expected insufficient data error, got %v", err)
    }
    if insufficient.Got != 49 || insufficient.Need != MinObservations || insufficient.Symbol != "AAPL" {
        t.Fatalf("unexpected error fields %+v", insufficient)
    }
    if p.calls.Load() != 0 {
        t.Fatalf("predictor should not run, ran %d times", p.calls.Load())
    }
}

func TestForecastAcceptsMinimumLength(t *testing.T) {
    f := NewForecaster(WithPredictors(constantPredictor("c", 1)))
    res, err := f.Forecast(context.Background(), Series{Closes: randomWalk(MinObservations, 1)}, 1)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(res) != 1 || len(res[0].Values) != 1 {
        t.Fatalf("unexpected results %+v", res)
    }
}

func TestForecastRejectsNonPositiveHorizon(t *testing.T) {
    f := NewForecaster(WithPredictors(constantPredictor("c", 1)))
    if _, err := f.Forecast(context.Background(), Series{Closes: randomWalk(60, 1)}, 0); !errors.Is(err, ErrInvalidHorizon) {
        t.Fatalf("expected invalid horizon, got %v", err)
    }
}

func TestForecastSubstitutesFallback(t *testing.T) {
    prices := randomWalk(80, 5)
    panicking := &stubPredictor{name: "panic", fn: func([]float64, int) ([]float64, error) {
        panic("index out of range")
    }}
    short := &stubPredictor{name: "short", fn: func([]float64, int) ([]float64, error) {
        return []float64{1}, nil
    }}
    nan := &stubPredictor{name: "nan", fn: func(_ []float64, h int) ([]float64, error) {
        out := make([]float64, h)
        out[h-1] = math.NaN()
        return out, nil
    }}
    m := newStubMetrics()
    f := NewForecaster(
        WithPredictors(constantPredictor("ok", 7), failingPredictor("err"), panicking, short, nan),
        WithMetrics(m),
    )

    res, err := f.Forecast(context.Background(), Series{Closes: prices}, 4)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(res) != 5 {
        t.Fatalf("expected 5 results, got %d", len(res))
    }
    if res[0].Predictor != "ok" || res[0].Fallback || res[0].Values[3] != 7 {
        t.Fatalf("healthy predictor result altered: %+v", res[0])
    }
    want := TrendFallback(prices, 4)
    for _, r := range res[1:] {
        if !r.Fallback || r.Reason == nil {
            t.Fatalf("%s: expected fallback with reason, got %+v", r.Predictor, r)
        }
        for i := range want {
            if r.Values[i] != want[i] {
                t.Fatalf("%s: step %d expected %v, got %v", r.Predictor, i+1, want[i], r.Values[i])
            }
        }
    }
    if !errors.Is(res[2].Reason, errPredictorPanic) {
        t.Fatalf("expected panic reason, got %v", res[2].Reason)
    }
    if !errors.Is(res[3].Reason, errBadOutput) || !errors.Is(res[4].Reason, errBadOutput) {
        t.Fatalf("expected bad output reasons, got %v / %v", res[3].Reason, res[4].Reason)
    }
    if got := m.totalFallbacks(); got != 4 {
        t.Fatalf("expected 4 recorded fallbacks, got %d", got)
    }
}

func TestForecastRunsPredictorsConcurrently(t *testing.T) {
    const n = 3
    var started atomic.Int32
    release := make(chan struct{})
    barrier := func(_ []float64, h int) ([]float64, error) {
        if started.Add(1) == n {
            close(release)
        }
        select {
        case <-release:
        case <-time.After(2 * time.Second):
            return nil, errors.New("predictors ran sequentially")
        }
        return make([]float64, h), nil
    }
    f := NewForecaster(WithPredictors(
        &stubPredictor{name: "a", fn: barrier},
        &stubPredictor{name: "b", fn: barrier},
        &stubPredictor{name: "c", fn: barrier},
    ))
    res, err := f.Forecast(context.Background(), Series{Closes: randomWalk(60, 1)}, 2)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    for i, name := range []string{"a", "b", "c"} {
        if res[i].Predictor != name || res[i].Fallback {
            t.Fatalf("result %d: unexpected %+v", i, res[i])
        }
    }
}

func TestForecastGivesEachPredictorItsOwnCopy(t *testing.T) {
    prices := randomWalk(60, 9)
    orig := append([]float64(nil), prices...)
    mutating := &stubPredictor{name: "m", fn: func(p []float64, h int) ([]float64, error) {
        for i := range p {
            p[i] = -1
        }
        return make([]float64, h), nil
    }}
    f := NewForecaster(WithPredictors(mutating, constantPredictor("c", 1)))
    if _, err := f.Forecast(context.Background(), Series{Closes: prices}, 3); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    for i := range orig {
        if prices[i] != orig[i] {
            t.Fatalf("caller series modified at %d", i)
        }
    }
}

func TestForecastCanceledContext(t *testing.T) {
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    f := NewForecaster(WithPredictors(constantPredictor("c", 1)))
    if _, err := f.Forecast(ctx, Series{Closes: randomWalk(60, 1)}, 3); !errors.Is(err, context.Canceled) {
        t.Fatalf("expected context canceled, got %v", err)
    }
}

func TestDefaultPredictorNames(t *testing.T) {
    got := NewForecaster().Predictors()
    for i, name := range MethodsUsed {
        if got[i] != name {
            t.Fatalf("predictor %d: expected %s, got %s", i, name, got[i])
        }
    }
}
