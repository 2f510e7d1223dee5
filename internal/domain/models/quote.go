package models

import "time"

type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	CurrentPrice  float64   `json:"current_price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Currency      string    `json:"currency,omitempty"`
	Exchange      string    `json:"exchange,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// PriceBar represents a daily OHLCV record.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceBarView is the wire shape of a bar with prices rounded for display.
type PriceBarView struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

type PriceHistory struct {
	Symbol string         `json:"symbol"`
	Period string         `json:"period"`
	Data   []PriceBarView `json:"data"`
}

type TrendingList struct {
	Trending  []Quote   `json:"trending"`
	Timestamp time.Time `json:"timestamp"`
}

type SearchResult struct {
	Query   string  `json:"query"`
	Results []Quote `json:"results"`
	Count   int     `json:"count"`
}

type SupportedSymbols struct {
	PopularSymbols []string `json:"popular_symbols"`
	Note           string   `json:"note"`
}
