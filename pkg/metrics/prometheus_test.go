package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordFallback("ARIMA")
	r.RecordFallback("ARIMA")
	r.RecordCache("forecast", true)
	r.RecordCache("forecast", false)
	r.RecordLastPrice("AAPL", 190.25)

	if v := counterValue(t, reg, "stocksight_predictor_fallbacks_total", map[string]string{"predictor": "ARIMA"}); v != 2 {
		t.Fatalf("expected 2 fallbacks, got %v", v)
	}
	if v := counterValue(t, reg, "stocksight_cache_lookups_total", map[string]string{"cache": "forecast", "result": "hit"}); v != 1 {
		t.Fatalf("expected 1 hit, got %v", v)
	}
	if v := counterValue(t, reg, "stocksight_last_price", map[string]string{"symbol": "AAPL"}); v != 190.25 {
		t.Fatalf("expected last price gauge, got %v", v)
	}
}
