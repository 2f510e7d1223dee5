package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"StockSight/internal/domain/models"
	domrepo "StockSight/internal/domain/repository"
	"StockSight/internal/service/metrics"
	"StockSight/internal/usecase"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
)

// StocksHandler serves quotes, history, trending and search.
type StocksHandler struct {
	l      *applogger.Logger
	stocks *usecase.StockUseCase
}

func NewStocksHandler(l *applogger.Logger, stocks *usecase.StockUseCase) *StocksHandler {
	metrics.Register()
	return &StocksHandler{l: l, stocks: stocks}
}

func (h *StocksHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock/:symbol", h.Quote)
	g.GET("/stock/:symbol/history", h.History)
	g.GET("/stocks/trending", h.Trending)
	g.GET("/search/:query", h.Search)
}

func (h *StocksHandler) Quote(c echo.Context) error {
	defer observe("quote", time.Now())
	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return invalid(c, "quote", verr)
	}
	q, err := h.stocks.Quote(c.Request().Context(), req.Symbol)
	if err != nil {
		return fail(c, h.l, "quote", err)
	}
	return xhttp.SuccessResponse(c, q)
}

func (h *StocksHandler) History(c echo.Context) error {
	defer observe("history", time.Now())
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return invalid(c, "history", verr)
	}
	res, err := h.stocks.History(c.Request().Context(), req.Symbol, domrepo.NormalizePeriod(req.Period))
	if err != nil {
		return fail(c, h.l, "history", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Trending(c echo.Context) error {
	defer observe("trending", time.Now())
	res, err := h.stocks.Trending(c.Request().Context())
	if err != nil {
		return fail(c, h.l, "trending", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Search(c echo.Context) error {
	defer observe("search", time.Now())
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return invalid(c, "search", verr)
	}
	res, err := h.stocks.Search(c.Request().Context(), req.Query)
	if err != nil {
		return fail(c, h.l, "search", err)
	}
	return xhttp.SuccessResponse(c, res)
}
