package metrics

import (
    "sync"

    "github.com/prometheus/client_golang/prometheus"
)

var (
    once sync.Once

    EndpointLatency = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "stocksight",
            Subsystem: "api",
            Name:      "latency_seconds",
            Help:      "Latency of stock and prediction endpoints",
            Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
        },
        []string{"endpoint"},
    )

    EndpointErrors = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "stocksight",
            Subsystem: "api",
            Name:      "errors_total",
            Help:      "Errors by endpoint and HTTP status",
        },
        []string{"endpoint", "status"},
    )

    QuoteStreams = prometheus.NewGauge(
        prometheus.GaugeOpts{
            Namespace: "stocksight",
            Subsystem: "ws",
            Name:      "quote_streams",
            Help:      "Open WebSocket quote streams",
        },
    )
)

func Register() {
    once.Do(func() {
        prometheus.MustRegister(EndpointLatency, EndpointErrors, QuoteStreams)
    })
}
