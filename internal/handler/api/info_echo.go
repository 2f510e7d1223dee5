package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"StockSight/internal/services/forecast"
	"StockSight/internal/usecase"
	xhttp "StockSight/pkg/http"
)

const ServiceName = "StockSight"

// Version is set at build time with -ldflags "-X StockSight/internal/handler/api.Version=...".
var Version = "1.0.0"

type modelDescription struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InfoHandler serves service metadata, health and model descriptions.
type InfoHandler struct {
	stocks  *usecase.StockUseCase
	metrics string
	now     func() time.Time
}

func NewInfoHandler(stocks *usecase.StockUseCase, metricsPath string) *InfoHandler {
	return &InfoHandler{stocks: stocks, metrics: metricsPath, now: time.Now}
}

func (h *InfoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/api/health", h.Health)
	e.GET("/models/info", h.ModelsInfo)
	e.GET("/supported-symbols", h.SupportedSymbols)
}

func (h *InfoHandler) Root(c echo.Context) error {
	endpoints := map[string]string{
		"quote":             "/api/stock/{symbol}",
		"history":           "/api/stock/{symbol}/history?period=1y",
		"predict":           "/api/stock/{symbol}/predict?days=30",
		"predict_service":   "/predict/{symbol}?days=30",
		"trending":          "/api/stocks/trending",
		"search":            "/api/search/{query}",
		"models":            "/models/info",
		"supported_symbols": "/supported-symbols",
		"quote_stream":      "/ws/quotes/{symbol}?interval=5",
		"health":            "/health",
	}
	if h.metrics != "" {
		endpoints["metrics"] = h.metrics
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"message":   ServiceName + " stock data and price forecast API",
		"version":   Version,
		"endpoints": endpoints,
	})
}

func (h *InfoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":    "healthy",
		"timestamp": h.now().UTC(),
		"service":   ServiceName,
		"version":   Version,
	})
}

func (h *InfoHandler) ModelsInfo(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"models": []modelDescription{
			{Name: "AutoRegression", Description: "Least-squares autoregression on up to 20 lags with intercept and trend, forecast recursively"},
			{Name: "Linear Regression", Description: "Regression of the next close on SMA 5/10/20 and a time index over a rolling window"},
			{Name: "ARIMA", Description: "ARIMA(1,1,1) fitted by conditional sum of squares"},
		},
		"ensemble":            forecast.EnsembleDescription,
		"fallback":            "Linear trend over the last 10 closes when a model fails",
		"confidence_interval": "95% band from return volatility, damped and widened by sqrt of horizon",
		"min_data_points":     forecast.MinObservations,
		"max_forecast_days":   365,
	})
}

func (h *InfoHandler) SupportedSymbols(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.stocks.SupportedSymbols())
}
