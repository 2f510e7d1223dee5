package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"StockSight/internal/domain/models"
	domrepo "StockSight/internal/domain/repository"
	"StockSight/pkg/cache"
	applogger "StockSight/pkg/logger"
	"StockSight/pkg/util"
)

const trendingKey = "trending"

// errNoTrendingQuotes means every popular symbol failed, usually a provider outage.
var errNoTrendingQuotes = errors.New("no trending quotes available")

// StockUseCase serves quotes, history, trending and search from the provider through the cache.
type StockUseCase struct {
	market      domrepo.MarketData
	cache       cache.Service
	metrics     domrepo.Metrics
	l           *applogger.Logger
	quoteTTL    time.Duration
	historyTTL  time.Duration
	trendingTTL time.Duration
	now         func() time.Time
}

func NewStockUseCase(market domrepo.MarketData, c cache.Service, m domrepo.Metrics, l *applogger.Logger, quoteTTL, historyTTL, trendingTTL time.Duration) *StockUseCase {
	return &StockUseCase{
		market:      market,
		cache:       c,
		metrics:     m,
		l:           l,
		quoteTTL:    quoteTTL,
		historyTTL:  historyTTL,
		trendingTTL: trendingTTL,
		now:         time.Now,
	}
}

// Quote returns the latest quote with money values rounded to cents.
func (uc *StockUseCase) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = NormalizeSymbol(symbol)
	q, hit, err := cache.Fetch(ctx, uc.cache, cache.GenerateKey("quote", symbol), uc.quoteTTL,
		func(ctx context.Context) (models.Quote, error) {
			q, err := uc.market.GetQuote(ctx, symbol)
			if err != nil {
				return models.Quote{}, err
			}
			q.CurrentPrice = money(q.CurrentPrice)
			q.Change = money(q.Change)
			q.ChangePercent = money(q.ChangePercent)
			return *q, nil
		})
	uc.recordCache("quote", hit)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	return &q, nil
}

// Bars returns cached daily bars for period, oldest first.
func (uc *StockUseCase) Bars(ctx context.Context, symbol string, period domrepo.Period) ([]models.PriceBar, error) {
	symbol = NormalizeSymbol(symbol)
	bars, hit, err := cache.Fetch(ctx, uc.cache, cache.GenerateKeyWithParams("history", symbol, period), uc.historyTTL,
		func(ctx context.Context) ([]models.PriceBar, error) {
			bars, err := uc.market.GetHistory(ctx, symbol, period)
			if err != nil {
				return nil, err
			}
			if len(bars) == 0 {
				return nil, models.ErrSymbolNotFound
			}
			return bars, nil
		})
	uc.recordCache("history", hit)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	return bars, nil
}

// History returns the display form of daily bars for period.
func (uc *StockUseCase) History(ctx context.Context, symbol string, period domrepo.Period) (*models.PriceHistory, error) {
	symbol = NormalizeSymbol(symbol)
	bars, err := uc.Bars(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	views := make([]models.PriceBarView, len(bars))
	for i, b := range bars {
		views[i] = models.PriceBarView{
			Date:   util.FormatDate(b.Date),
			Open:   money(b.Open),
			High:   money(b.High),
			Low:    money(b.Low),
			Close:  money(b.Close),
			Volume: b.Volume,
		}
	}
	return &models.PriceHistory{Symbol: symbol, Period: string(period), Data: views}, nil
}

// Trending returns quotes for the popular symbols, served from cache when warm.
// An empty list is returned, and not cached, when no quote could be fetched.
func (uc *StockUseCase) Trending(ctx context.Context) (*models.TrendingList, error) {
	list, hit, err := cache.Fetch(ctx, uc.cache, trendingKey, uc.trendingTTL, uc.loadTrending)
	uc.recordCache("trending", hit)
	if errors.Is(err, errNoTrendingQuotes) {
		return &models.TrendingList{Trending: []models.Quote{}, Timestamp: uc.now().UTC()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// WarmTrending refreshes the cached trending list and reports how many quotes it holds.
// A failed refresh leaves the previously cached list in place.
func (uc *StockUseCase) WarmTrending(ctx context.Context) (int, error) {
	list, err := uc.loadTrending(ctx)
	if err != nil {
		return 0, err
	}
	if err := uc.cache.Set(ctx, trendingKey, list, uc.trendingTTL); err != nil {
		return 0, fmt.Errorf("cache trending: %w", err)
	}
	return len(list.Trending), nil
}

func (uc *StockUseCase) loadTrending(ctx context.Context) (models.TrendingList, error) {
	quotes := uc.quotes(ctx, PopularSymbols)
	if len(quotes) == 0 {
		return models.TrendingList{}, errNoTrendingQuotes
	}
	return models.TrendingList{Trending: quotes, Timestamp: uc.now().UTC()}, nil
}

// Search matches the static directory and returns quotes for the hits.
func (uc *StockUseCase) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	matches := matchSymbols(query)
	results := uc.quotes(ctx, matches)
	return &models.SearchResult{Query: query, Results: results, Count: len(results)}, nil
}

// SupportedSymbols lists every symbol the service is known to handle well.
func (uc *StockUseCase) SupportedSymbols() *models.SupportedSymbols {
	symbols := make([]string, 0, len(PopularSymbols)+len(IndexSymbols))
	symbols = append(symbols, PopularSymbols...)
	symbols = append(symbols, IndexSymbols...)
	return &models.SupportedSymbols{
		PopularSymbols: symbols,
		Note:           "Any symbol listed on Yahoo Finance can be requested; these are tested regularly.",
	}
}

// quotes fetches in parallel, keeps input order and skips symbols that fail.
func (uc *StockUseCase) quotes(ctx context.Context, symbols []string) []models.Quote {
	slots := make([]*models.Quote, len(symbols))
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			q, err := uc.Quote(ctx, sym)
			if err != nil {
				if uc.l != nil {
					uc.l.Warn("quote fetch failed", applogger.String("symbol", sym), applogger.Error(err))
				}
				return
			}
			slots[i] = q
		}(i, sym)
	}
	wg.Wait()

	out := make([]models.Quote, 0, len(symbols))
	for _, q := range slots {
		if q != nil {
			out = append(out, *q)
		}
	}
	return out
}

func (uc *StockUseCase) recordCache(name string, hit bool) {
	if uc.metrics != nil {
		uc.metrics.RecordCache(name, hit)
	}
}

func money(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
