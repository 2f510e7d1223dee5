package forecast

import (
    "errors"
    "math"
    "math/rand"
    "sync"
    "sync/atomic"
)

func linearSeries(n int, start, step float64) []float64 {
    out := make([]float64, n)
    for i := range out {
        out[i] = start + step*float64(i)
    }
    return out
}

func constantSeries(n int, v float64) []float64 {
    out := make([]float64, n)
    for i := range out {
        out[i] = v
    }
    return out
}

// randomWalk is a seeded geometric random walk with roughly 1% daily moves.
func randomWalk(n int, seed int64) []float64 {
    r := rand.New(rand.NewSource(seed))
    out := make([]float64, n)
    out[0] = 100
    for i := 1; i < n; i++ {
        out[i] = out[i-1] * (1 + 0.01*r.NormFloat64())
    }
    return out
}

type stubPredictor struct {
    name  string
    calls atomic.Int32
    fn    func(prices []float64, horizon int) ([]float64, error)
}

func (s *stubPredictor) Name() string { return s.name }

func (s *stubPredictor) Predict(prices []float64, horizon int) ([]float64, error) {
    s.calls.Add(1)
    return s.fn(prices, horizon)
}

func constantPredictor(name string, v float64) *stubPredictor {
    return &stubPredictor{name: name, fn: func(_ []float64, h int) ([]float64, error) {
        out := make([]float64, h)
        for i := range out {
            out[i] = v
        }
        return out, nil
    }}
}

func failingPredictor(name string) *stubPredictor {
    return &stubPredictor{name: name, fn: func([]float64, int) ([]float64, error) {
        return nil, errors.New("boom")
    }}
}

type stubMetrics struct {
    mu        sync.Mutex
    fallbacks map[string]int
    latencies map[string]int
}

func newStubMetrics() *stubMetrics {
    return &stubMetrics{fallbacks: map[string]int{}, latencies: map[string]int{}}
}

func (m *stubMetrics) RecordFallback(predictor string) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.fallbacks[predictor]++
}

func (m *stubMetrics) RecordError(string)             {}
func (m *stubMetrics) RecordLastPrice(string, float64) {}
func (m *stubMetrics) RecordCache(string, bool)       {}

func (m *stubMetrics) RecordLatency(op string, _ float64) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.latencies[op]++
}

func (m *stubMetrics) totalFallbacks() int {
    m.mu.Lock()
    defer m.mu.Unlock()
    n := 0
    for _, c := range m.fallbacks {
        n += c
    }
    return n
}

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func hasTwoDecimals(v float64) bool {
    return math.Abs(v*100-math.Round(v*100)) < 1e-6
}
