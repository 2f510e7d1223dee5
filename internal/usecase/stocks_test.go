package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockSight/internal/domain/models"
	domrepo "StockSight/internal/domain/repository"
)

func TestQuoteNormalizesRoundsAndCaches(t *testing.T) {
	market := newFakeMarket()
	market.quotes["AAPL"] = &models.Quote{Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 172.456, Change: 1.234, ChangePercent: 0.7189}
	m := newFakeMetrics()
	uc, c := newStocks(market, m)
	defer c.Close()

	q, err := uc.Quote(context.Background(), " aapl ")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.CurrentPrice != 172.46 || q.Change != 1.23 || q.ChangePercent != 0.72 {
		t.Fatalf("unexpected rounding: %+v", q)
	}
	if _, err := uc.Quote(context.Background(), "AAPL"); err != nil {
		t.Fatalf("second Quote: %v", err)
	}
	if market.quoteCalls != 1 {
		t.Fatalf("expected 1 provider call, got %d", market.quoteCalls)
	}
	if m.hits["quote"] != 1 || m.misses["quote"] != 1 {
		t.Fatalf("unexpected cache metrics hits=%v misses=%v", m.hits, m.misses)
	}
}

func TestQuoteUnknownSymbol(t *testing.T) {
	uc, c := newStocks(newFakeMarket(), newFakeMetrics())
	defer c.Close()

	_, err := uc.Quote(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestHistoryFormatsBars(t *testing.T) {
	market := newFakeMarket()
	market.bars["MSFT"] = []models.PriceBar{
		{Date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), Open: 1.005, High: 2.349, Low: 0.991, Close: 1.5, Volume: 10},
		{Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Open: 1.5, High: 1.6, Low: 1.4, Close: 1.55, Volume: 20},
	}
	uc, c := newStocks(market, newFakeMetrics())
	defer c.Close()

	h, err := uc.History(context.Background(), "msft", domrepo.Period1mo)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if h.Symbol != "MSFT" || h.Period != "1mo" || len(h.Data) != 2 {
		t.Fatalf("unexpected history: %+v", h)
	}
	if h.Data[0].Date != "2024-03-14" || h.Data[0].High != 2.35 || h.Data[1].Volume != 20 {
		t.Fatalf("unexpected first bars: %+v", h.Data)
	}
}

func TestHistoryEmptyIsNotFound(t *testing.T) {
	market := newFakeMarket()
	market.bars["EMPTY"] = nil
	uc, c := newStocks(market, newFakeMetrics())
	defer c.Close()

	_, err := uc.History(context.Background(), "EMPTY", domrepo.Period1y)
	if !errors.Is(err, models.ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestTrendingKeepsOrderAndSkipsFailures(t *testing.T) {
	market := newFakeMarket()
	for _, s := range PopularSymbols {
		if s == "TSLA" {
			continue
		}
		market.quotes[s] = &models.Quote{Symbol: s, CurrentPrice: 10}
	}
	uc, c := newStocks(market, newFakeMetrics())
	defer c.Close()

	list, err := uc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(list.Trending) != len(PopularSymbols)-1 {
		t.Fatalf("expected %d quotes, got %d", len(PopularSymbols)-1, len(list.Trending))
	}
	want := make([]string, 0, len(PopularSymbols))
	for _, s := range PopularSymbols {
		if s != "TSLA" {
			want = append(want, s)
		}
	}
	for i, q := range list.Trending {
		if q.Symbol != want[i] {
			t.Fatalf("position %d: want %s got %s", i, want[i], q.Symbol)
		}
	}
}

func TestWarmTrendingServesFromCache(t *testing.T) {
	market := newFakeMarket()
	market.quotes["AAPL"] = &models.Quote{Symbol: "AAPL", CurrentPrice: 10}
	m := newFakeMetrics()
	uc, c := newStocks(market, m)
	defer c.Close()

	n, err := uc.WarmTrending(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("WarmTrending = %d, %v", n, err)
	}
	if _, err := uc.Trending(context.Background()); err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if m.hits["trending"] != 1 {
		t.Fatalf("expected trending cache hit, got %v", m.hits)
	}
}

func TestSearchMatchesNameAndSymbol(t *testing.T) {
	market := newFakeMarket()
	market.quotes["MSFT"] = &models.Quote{Symbol: "MSFT"}
	market.quotes["META"] = &models.Quote{Symbol: "META"}
	uc, c := newStocks(market, newFakeMetrics())
	defer c.Close()

	res, err := uc.Search(context.Background(), "micro")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Microsoft and Advanced Micro Devices match; AMD has no quote and is skipped.
	if res.Count != 1 || res.Results[0].Symbol != "MSFT" {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, _ = uc.Search(context.Background(), "zzzz")
	if res.Count != 0 {
		t.Fatalf("expected no results, got %+v", res)
	}
}

func TestSupportedSymbolsIncludesIndexes(t *testing.T) {
	uc, c := newStocks(newFakeMarket(), newFakeMetrics())
	defer c.Close()

	s := uc.SupportedSymbols()
	if len(s.PopularSymbols) != len(PopularSymbols)+len(IndexSymbols) {
		t.Fatalf("unexpected symbols: %v", s.PopularSymbols)
	}
	if s.PopularSymbols[len(s.PopularSymbols)-1] != "VOO" || s.Note == "" {
		t.Fatalf("unexpected supported symbols: %+v", s)
	}
}

func TestTrendingOutageReturnsEmptyUncached(t *testing.T) {
	market := newFakeMarket()
	uc, c := newStocks(market, newFakeMetrics())
	defer c.Close()

	list, err := uc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if list.Trending == nil || len(list.Trending) != 0 {
		t.Fatalf("expected empty list, got %+v", list.Trending)
	}
	if ok, _ := c.Exists(context.Background(), trendingKey); ok {
		t.Fatalf("empty trending list must not be cached")
	}
}
