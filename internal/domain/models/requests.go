package models

// Requests for stock HTTP endpoints. Defined in domain for consistency and reuse.

// Defaults for numeric query params are preset before binding so an explicit 0 still fails validation.
const (
	DefaultForecastDays   = 30
	DefaultStreamInterval = 5
)

type QuoteRequest struct {
	Symbol string `param:"symbol" validate:"required,max=15"`
}

type HistoryRequest struct {
	Symbol string `param:"symbol" validate:"required,max=15"`
	Period string `query:"period" default:"1y" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
}

type PredictRequest struct {
	Symbol string `param:"symbol" validate:"required,max=15"`
	Days   int    `query:"days" validate:"gte=1,lte=365"`
}

type SearchRequest struct {
	Query string `param:"query" validate:"required,max=64"`
}

type QuoteStreamRequest struct {
	Symbol   string `param:"symbol" validate:"required,max=15"`
	Interval int    `query:"interval" validate:"gte=1,lte=60"`
}
