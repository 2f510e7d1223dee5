package repository

import (
	"context"

	"StockSight/internal/domain/models"
)

// MarketData provides read-only access to quotes and daily bars from an external provider.
type MarketData interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetHistory(ctx context.Context, symbol string, period Period) ([]models.PriceBar, error)
}

// ForecastPublisher emits generated forecasts to downstream consumers.
type ForecastPublisher interface {
	PublishForecast(ctx context.Context, ev *models.ForecastEvent) error
	Close() error
}

type Metrics interface {
	RecordFallback(predictor string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordCache(name string, hit bool)
}
