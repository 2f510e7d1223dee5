package models

import "time"

// PredictionPoint is a single forecast step mapped to a business date.
type PredictionPoint struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	PredictedPrice    float64 `json:"predicted_price"`
	LowerBound        float64 `json:"lower_bound"`
	UpperBound        float64 `json:"upper_bound"`
	ChangeFromCurrent float64 `json:"change_from_current"`
	ChangePercent     float64 `json:"change_percent"`
}

type AccuracyMetrics struct {
	RecentVolatilityPercent float64 `json:"recent_volatility_percent"`
	TrendDirection          string  `json:"trend_direction"` // "upward" | "downward"
	DataPointsUsed          int     `json:"data_points_used"`
}

type ModelInfo struct {
	MethodsUsed     []string        `json:"methods_used"`
	Ensemble        string          `json:"ensemble"`
	AccuracyMetrics AccuracyMetrics `json:"accuracy_metrics"`
}

// ForecastResponse is built once per forecast request and never mutated afterwards.
type ForecastResponse struct {
	Symbol           string            `json:"symbol"`
	CurrentPrice     float64           `json:"current_price"`
	PredictionPeriod string            `json:"prediction_period"`
	Predictions      []PredictionPoint `json:"predictions"`
	ModelInfo        ModelInfo         `json:"model_info"`
	Timestamp        time.Time         `json:"timestamp"`
}

// ForecastEvent is the message published for downstream consumers after a forecast is generated.
type ForecastEvent struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Days         int       `json:"days"`
	CurrentPrice float64   `json:"current_price"`
	First        float64   `json:"first"`
	Last         float64   `json:"last"`
	Trend        string    `json:"trend"`
	GeneratedAt  time.Time `json:"generated_at"`
}
