package service

import (
	"context"
	"time"

	"StockSight/internal/domain/models"
)

// Predictor fits a model to a price series and forecasts horizon steps ahead.
// Implementations must not modify prices.
type Predictor interface {
	Name() string
	Predict(prices []float64, horizon int) ([]float64, error)
}

// ForecastEngine produces an ensemble forecast from a normalized closing price series.
type ForecastEngine interface {
	Predict(ctx context.Context, symbol string, closes []float64, lastDate time.Time, horizon int) (*models.ForecastResponse, error)
}
