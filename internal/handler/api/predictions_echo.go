package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"StockSight/internal/domain/models"
	"StockSight/internal/service/metrics"
	"StockSight/internal/usecase"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
)

// PredictionsHandler exposes the ensemble forecast on both the stock API and the prediction-service path.
type PredictionsHandler struct {
	l           *applogger.Logger
	predictions *usecase.PredictionUseCase
}

func NewPredictionsHandler(l *applogger.Logger, predictions *usecase.PredictionUseCase) *PredictionsHandler {
	metrics.Register()
	return &PredictionsHandler{l: l, predictions: predictions}
}

func (h *PredictionsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/stock/:symbol/predict", h.Predict)
	e.GET("/predict/:symbol", h.Predict)
}

func (h *PredictionsHandler) Predict(c echo.Context) error {
	defer observe("predict", time.Now())
	req := &models.PredictRequest{Days: models.DefaultForecastDays}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return invalid(c, "predict", verr)
	}
	res, err := h.predictions.Predict(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		return fail(c, h.l, "predict", err)
	}
	return xhttp.SuccessResponse(c, res)
}
