package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"StockSight/internal/domain/models"
	"StockSight/internal/service/metrics"
	"StockSight/internal/services/forecast"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
)

// toAppError maps domain errors onto HTTP errors.
func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var insufficient *models.InsufficientDataError
	switch {
	case errors.As(err, &insufficient):
		return xhttp.NewAppError("ERR_INSUFFICIENT_DATA", "symbol", insufficient.Error(), http.StatusBadRequest).
			WithParam("got", insufficient.Got).
			WithParam("need", insufficient.Need).
			WithError(err)
	case errors.Is(err, forecast.ErrInvalidHorizon):
		return xhttp.NewAppError("ERR_INVALID_HORIZON", "days", err.Error(), http.StatusBadRequest).WithError(err)
	case errors.Is(err, models.ErrSymbolNotFound):
		return xhttp.NotFoundError("Stock symbol not found").WithError(err)
	default:
		return xhttp.InternalError(err.Error()).WithError(err)
	}
}

// fail logs and counts an endpoint error and writes the envelope.
func fail(c echo.Context, l *applogger.Logger, endpoint string, err error) error {
	appErr := toAppError(err)
	metrics.EndpointErrors.WithLabelValues(endpoint, strconv.Itoa(appErr.Status)).Inc()
	if appErr.Status >= http.StatusInternalServerError {
		l.Error(endpoint+" failed", applogger.String("symbol", c.Param("symbol")), applogger.Error(err))
	} else {
		l.Debug(endpoint+" rejected", applogger.String("symbol", c.Param("symbol")), applogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func invalid(c echo.Context, endpoint string, verr interface{}) error {
	metrics.EndpointErrors.WithLabelValues(endpoint, "400").Inc()
	return xhttp.BadRequestResponse(c, verr)
}

func observe(endpoint string, start time.Time) {
	metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
