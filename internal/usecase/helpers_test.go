package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"StockSight/internal/domain/models"
	domrepo "StockSight/internal/domain/repository"
	"StockSight/pkg/cache"
	applogger "StockSight/pkg/logger"
)

type fakeMarket struct {
	mu           sync.Mutex
	quotes       map[string]*models.Quote
	bars         map[string][]models.PriceBar
	quoteCalls   int
	historyCalls int
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{quotes: map[string]*models.Quote{}, bars: map[string][]models.PriceBar{}}
}

func (f *fakeMarket) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quoteCalls++
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, models.ErrSymbolNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeMarket) GetHistory(_ context.Context, symbol string, _ domrepo.Period) ([]models.PriceBar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls++
	b, ok := f.bars[symbol]
	if !ok {
		return nil, models.ErrSymbolNotFound
	}
	return b, nil
}

// walkBars returns n weekday bars ending on Friday 2024-03-15.
func walkBars(n int, seed int64) []models.PriceBar {
	r := rand.New(rand.NewSource(seed))
	bars := make([]models.PriceBar, n)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	price := 100.0
	closes := make([]float64, n)
	for i := range closes {
		price += r.NormFloat64()
		if price < 1 {
			price = 1
		}
		closes[i] = price
	}
	for i := n - 1; i >= 0; i-- {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, -1)
		}
		c := closes[i]
		bars[i] = models.PriceBar{Date: day, Open: c, High: c + 0.5, Low: c - 0.5, Close: c, Volume: 1000}
		day = day.AddDate(0, 0, -1)
	}
	return bars
}

type fakeMetrics struct {
	mu     sync.Mutex
	hits   map[string]int
	misses map[string]int
	errors map[string]int
	last   map[string]float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{hits: map[string]int{}, misses: map[string]int{}, errors: map[string]int{}, last: map[string]float64{}}
}

func (m *fakeMetrics) RecordFallback(string)          {}
func (m *fakeMetrics) RecordLatency(string, float64) {}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordLastPrice(symbol string, price float64) {
	m.mu.Lock()
	m.last[symbol] = price
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordCache(name string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits[name]++
	} else {
		m.misses[name]++
	}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*models.ForecastEvent
	err    error
}

func (p *fakePublisher) PublishForecast(_ context.Context, ev *models.ForecastEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

var errBroker = errors.New("broker down")

func newStocks(market *fakeMarket, m *fakeMetrics) (*StockUseCase, *cache.MemoryCache) {
	c := cache.NewMemoryCache()
	return NewStockUseCase(market, c, m, applogger.NewNop(), time.Minute, 15*time.Minute, 10*time.Minute), c
}
