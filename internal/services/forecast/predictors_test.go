package forecast

import (
    "errors"
    "math"
    "math/rand"
    "testing"

    "gonum.org/v1/gonum/mat"
)

func TestTrendFallback(t *testing.T) {
    prices := linearSeries(60, 1, 1) // last 60, ten back 51
    got := TrendFallback(prices, 3)
    want := []float64{60.9, 61.8, 62.7}
    for i := range want {
        if !almostEqual(got[i], want[i], 1e-9) {
            t.Fatalf("step %d: expected %v, got %v", i+1, want[i], got[i])
        }
    }
}

func TestTrendFallbackShortSeries(t *testing.T) {
    got := TrendFallback([]float64{10, 20}, 2)
    if !almostEqual(got[0], 21, 1e-9) || !almostEqual(got[1], 22, 1e-9) {
        t.Fatalf("unexpected fallback %v", got)
    }
    if got := TrendFallback(nil, 2); len(got) != 2 || got[0] != 0 {
        t.Fatalf("expected zeros for empty series, got %v", got)
    }
}

func TestLeastSquaresRecoversCoefficients(t *testing.T) {
    rows := 40
    x := mat.NewDense(rows, 3, nil)
    y := make([]float64, rows)
    for i := 0; i < rows; i++ {
        ti := float64(i)
        x.Set(i, 0, 1)
        x.Set(i, 1, ti)
        x.Set(i, 2, ti*ti)
        y[i] = 2 + 3*ti - 0.5*ti*ti
    }
    beta, err := leastSquares(x, y)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    want := []float64{2, 3, -0.5}
    for i := range want {
        if !almostEqual(beta[i], want[i], 1e-6) {
            t.Fatalf("coefficient %d: expected %v, got %v", i, want[i], beta[i])
        }
    }
}

func TestLeastSquaresRejectsCollinearColumns(t *testing.T) {
    rows := 30
    x := mat.NewDense(rows, 3, nil)
    y := make([]float64, rows)
    for i := 0; i < rows; i++ {
        x.Set(i, 0, 1)
        x.Set(i, 1, float64(i))
        x.Set(i, 2, 100+0.5*float64(i))
        y[i] = float64(i)
    }
    if _, err := leastSquares(x, y); !errors.Is(err, errRankDeficient) {
        t.Fatalf("expected rank deficiency, got %v", err)
    }
}

func TestLeastSquaresTooFewRows(t *testing.T) {
    x := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
    if _, err := leastSquares(x, []float64{1, 2}); !errors.Is(err, errDegreesOfFreedom) {
        t.Fatalf("expected degrees of freedom error, got %v", err)
    }
}

func TestAutoRegressionLags(t *testing.T) {
    ar := NewAutoRegression()
    cases := map[int]int{50: 10, 60: 12, 100: 20, 500: 20}
    for n, want := range cases {
        if got := ar.Lags(n); got != want {
            t.Fatalf("n=%d: expected %d lags, got %d", n, want, got)
        }
    }
}

func TestPredictorsRejectLinearSeries(t *testing.T) {
    prices := linearSeries(60, 100, 0.5)
    if _, err := NewAutoRegression().Predict(prices, 5); !errors.Is(err, errRankDeficient) {
        t.Fatalf("autoregression: expected rank deficiency, got %v", err)
    }
    if _, err := NewFeatureRegression().Predict(prices, 5); !errors.Is(err, errRankDeficient) {
        t.Fatalf("linear regression: expected rank deficiency, got %v", err)
    }
    if _, err := NewARIMA().Predict(prices, 5); !errors.Is(err, errDegenerateSeries) {
        t.Fatalf("arima: expected degenerate series, got %v", err)
    }
}

func TestPredictorsOnRandomWalk(t *testing.T) {
    prices := randomWalk(300, 42)
    last := prices[len(prices)-1]
    predictors := []interface {
        Name() string
        Predict([]float64, int) ([]float64, error)
    }{NewAutoRegression(), NewFeatureRegression(), NewARIMA()}

    for _, p := range predictors {
        got, err := p.Predict(prices, 10)
        if err != nil {
            t.Fatalf("%s: unexpected error: %v", p.Name(), err)
        }
        if len(got) != 10 {
            t.Fatalf("%s: expected 10 values, got %d", p.Name(), len(got))
        }
        for i, v := range got {
            if math.IsNaN(v) || math.IsInf(v, 0) {
                t.Fatalf("%s: step %d not finite", p.Name(), i+1)
            }
            if v < last*0.5 || v > last*1.5 {
                t.Fatalf("%s: step %d implausible %v (last %v)", p.Name(), i+1, v, last)
            }
        }
    }
}

func TestPredictorsDoNotModifyInput(t *testing.T) {
    prices := randomWalk(120, 3)
    orig := append([]float64(nil), prices...)
    _, _ = NewAutoRegression().Predict(prices, 5)
    _, _ = NewFeatureRegression().Predict(prices, 5)
    _, _ = NewARIMA().Predict(prices, 5)
    for i := range orig {
        if prices[i] != orig[i] {
            t.Fatalf("input modified at %d", i)
        }
    }
}

func TestARIMARecoversAR1Coefficient(t *testing.T) {
    r := rand.New(rand.NewSource(11))
    w := make([]float64, 2000)
    for i := 1; i < len(w); i++ {
        w[i] = 0.6*w[i-1] + r.NormFloat64()
    }
    phi, _, err := NewARIMA().fit(w)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if !almostEqual(phi, 0.6, 0.15) {
        t.Fatalf("expected phi near 0.6, got %v", phi)
    }
}

func TestConditionalSSE(t *testing.T) {
    w := []float64{1, 2, 1, 2}
    resid := make([]float64, len(w))
    conditionalSSE(w, 0.5, 0, resid)
    if resid[3] != 2-0.5*1 {
        t.Fatalf("unexpected residual %v", resid[3])
    }
    if sse := conditionalSSE(w, 0, 0, nil); sse != 4+1+4 {
        t.Fatalf("unexpected sse %v", sse)
    }
}

func TestFeatureRegressionTooShort(t *testing.T) {
    if _, err := NewFeatureRegression().Predict(randomWalk(24, 1), 3); !errors.Is(err, errDegreesOfFreedom) {
        t.Fatalf("expected degrees of freedom error, got %v", err)
    }
}
