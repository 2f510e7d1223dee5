package models

import (
	"errors"
	"fmt"
)

// ErrSymbolNotFound is returned when the market-data provider knows nothing about a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// InsufficientDataError reports a price series too short to forecast from.
type InsufficientDataError struct {
	Symbol string
	Got    int
	Need   int
}

func (e *InsufficientDataError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("insufficient historical data: got %d points, need at least %d", e.Got, e.Need)
	}
	return fmt.Sprintf("insufficient historical data for %s: got %d points, need at least %d", e.Symbol, e.Got, e.Need)
}

// PredictionFailedError wraps any unexpected failure while building a forecast.
type PredictionFailedError struct {
	Symbol  string
	Horizon int
	Err     error
}

func (e *PredictionFailedError) Error() string {
	return fmt.Sprintf("prediction failed for %s (%d days): %v", e.Symbol, e.Horizon, e.Err)
}

func (e *PredictionFailedError) Unwrap() error { return e.Err }
