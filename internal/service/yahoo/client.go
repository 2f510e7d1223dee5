package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"StockSight/internal/domain/models"
	drepo "StockSight/internal/domain/repository"
	xhttp "StockSight/pkg/http"
)

// DefaultBaseURL is the public Yahoo Finance chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

var errTooFewCloses = errors.New("insufficient data: fewer than two closes")

// Client implements MarketData over the Yahoo Finance chart API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a Yahoo client rooted at baseURL.
func New(baseURL string, hc *xhttp.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol           string  `json:"symbol"`
		Currency         string  `json:"currency"`
		ExchangeName     string  `json:"exchangeName"`
		FullExchangeName string  `json:"fullExchangeName"`
		LongName         string  `json:"longName"`
		ShortName        string  `json:"shortName"`
		GMTOffset        int     `json:"gmtoffset"`
		Timezone         string  `json:"timezone"`
		RegularPrice     float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (c *Client) fetchChart(ctx context.Context, symbol, rng string) (*chartResult, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol)),
		QueryParams: map[string][]string{
			"range":    {rng},
			"interval": {"1d"},
		},
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("yahoo chart %s: %w", symbol, models.ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	if e := resp.Chart.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return nil, fmt.Errorf("yahoo chart %s: %w", symbol, models.ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo api error: %s", e.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, models.ErrSymbolNotFound)
	}
	return &resp.Chart.Result[0], nil
}

// bars converts the chart arrays into ascending daily bars, dropping rows without a close.
func (r *chartResult) bars() []models.PriceBar {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	q := r.Indicators.Quote[0]
	loc := time.FixedZone(r.Meta.Timezone, r.Meta.GMTOffset)
	out := make([]models.PriceBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		closePx := at(q.Close, i)
		if closePx <= 0 {
			continue
		}
		y, m, d := time.Unix(ts, 0).In(loc).Date()
		out = append(out, models.PriceBar{
			Date:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  closePx,
			Volume: int64(at(q.Volume, i)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func at(xs []*float64, i int) float64 {
	if i >= len(xs) || xs[i] == nil {
		return 0
	}
	return *xs[i]
}

// GetQuote derives the latest price and day change from the last two daily closes.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	res, err := c.fetchChart(ctx, symbol, string(drepo.Period5d))
	if err != nil {
		return nil, err
	}
	bars := res.bars()
	if len(bars) < 2 {
		return nil, fmt.Errorf("quote %s: %w", symbol, errTooFewCloses)
	}
	last, prev := bars[len(bars)-1], bars[len(bars)-2]
	change := last.Close - prev.Close

	name := res.Meta.LongName
	if name == "" {
		name = res.Meta.ShortName
	}
	if name == "" {
		name = symbol
	}
	exchange := res.Meta.FullExchangeName
	if exchange == "" {
		exchange = res.Meta.ExchangeName
	}

	return &models.Quote{
		Symbol:        symbol,
		Name:          name,
		CurrentPrice:  last.Close,
		Change:        change,
		ChangePercent: change / prev.Close * 100,
		Volume:        last.Volume,
		Currency:      res.Meta.Currency,
		Exchange:      exchange,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// GetHistory returns daily bars over period, oldest first.
func (c *Client) GetHistory(ctx context.Context, symbol string, period drepo.Period) ([]models.PriceBar, error) {
	if !drepo.IsValidPeriod(period) {
		return nil, fmt.Errorf("unsupported period %q", period)
	}
	res, err := c.fetchChart(ctx, symbol, string(period))
	if err != nil {
		return nil, err
	}
	bars := res.bars()
	if len(bars) == 0 {
		return nil, fmt.Errorf("history %s: %w", symbol, models.ErrSymbolNotFound)
	}
	return bars, nil
}

var _ drepo.MarketData = (*Client)(nil)
