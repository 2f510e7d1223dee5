package usecase

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"StockSight/internal/domain/models"
	domrepo "StockSight/internal/domain/repository"
	domsvc "StockSight/internal/domain/service"
	"StockSight/internal/services/features"
	"StockSight/pkg/cache"
	applogger "StockSight/pkg/logger"
)

const defaultPublishTimeout = 3 * time.Second

// PredictionUseCase turns cached history into an ensemble forecast and announces it downstream.
type PredictionUseCase struct {
	stocks         *StockUseCase
	engine         domsvc.ForecastEngine
	publisher      domrepo.ForecastPublisher
	cache          cache.Service
	metrics        domrepo.Metrics
	l              *applogger.Logger
	timeout        time.Duration
	ttl            time.Duration
	publishTimeout time.Duration
}

func NewPredictionUseCase(
	stocks *StockUseCase,
	engine domsvc.ForecastEngine,
	publisher domrepo.ForecastPublisher,
	c cache.Service,
	m domrepo.Metrics,
	l *applogger.Logger,
	timeout, ttl time.Duration,
) *PredictionUseCase {
	return &PredictionUseCase{
		stocks:         stocks,
		engine:         engine,
		publisher:      publisher,
		cache:          c,
		metrics:        m,
		l:              l,
		timeout:        timeout,
		ttl:            ttl,
		publishTimeout: defaultPublishTimeout,
	}
}

// Predict forecasts days business days ahead for symbol.
// Cached responses are returned as-is and are not republished.
func (uc *PredictionUseCase) Predict(ctx context.Context, symbol string, days int) (*models.ForecastResponse, error) {
	symbol = NormalizeSymbol(symbol)
	key := cache.GenerateKeyWithParams("forecast", symbol, days)

	var cached models.ForecastResponse
	if err := uc.cache.Get(ctx, key, &cached); err == nil {
		uc.stocks.recordCache("forecast", true)
		return &cached, nil
	}
	uc.stocks.recordCache("forecast", false)

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	bars, err := uc.stocks.Bars(ctx, symbol, domrepo.ForecastPeriod())
	if err != nil {
		return nil, err
	}
	closes := features.Closes(bars)
	lastDate, ok := lastTradingDate(bars)
	if !ok {
		return nil, &models.InsufficientDataError{Symbol: symbol, Got: 0, Need: 1}
	}

	resp, err := uc.engine.Predict(ctx, symbol, closes, lastDate, days)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("forecast")
		}
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.RecordLastPrice(symbol, closes[len(closes)-1])
	}
	if err := uc.cache.Set(ctx, key, resp, uc.ttl); err != nil && uc.l != nil {
		uc.l.Warn("cache forecast failed", applogger.String("symbol", symbol), applogger.Error(err))
	}
	uc.publish(ctx, resp, days)
	return resp, nil
}

// publish is best effort; a broker outage never fails the request.
func (uc *PredictionUseCase) publish(ctx context.Context, resp *models.ForecastResponse, days int) {
	if uc.publisher == nil || len(resp.Predictions) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.publishTimeout)
	defer cancel()

	ev := &models.ForecastEvent{
		ID:           uuid.NewString(),
		Symbol:       resp.Symbol,
		Days:         days,
		CurrentPrice: resp.CurrentPrice,
		First:        resp.Predictions[0].PredictedPrice,
		Last:         resp.Predictions[len(resp.Predictions)-1].PredictedPrice,
		Trend:        resp.ModelInfo.AccuracyMetrics.TrendDirection,
		GeneratedAt:  resp.Timestamp,
	}
	if err := uc.publisher.PublishForecast(ctx, ev); err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("publish")
		}
		if uc.l != nil {
			uc.l.Warn("publish forecast failed", applogger.String("symbol", ev.Symbol), applogger.Error(err))
		}
	}
}

// lastTradingDate is the date of the newest bar with a usable close.
func lastTradingDate(bars []models.PriceBar) (time.Time, bool) {
	for i := len(bars) - 1; i >= 0; i-- {
		c := bars[i].Close
		if c > 0 && !math.IsInf(c, 0) && !math.IsNaN(c) {
			return bars[i].Date, true
		}
	}
	return time.Time{}, false
}
