package forecast

import (
    "errors"
    "time"

    "StockSight/internal/domain/models"
)

// MinObservations is the shortest closing-price series the engine accepts.
const MinObservations = 50

// ErrInvalidHorizon is returned for a non-positive forecast horizon.
var ErrInvalidHorizon = errors.New("forecast horizon must be positive")

// Series is a symbol's chronological closing prices and the date of the last one.
type Series struct {
    Symbol   string
    Closes   []float64
    LastDate time.Time
}

func (s Series) validate(horizon int) error {
    if horizon < 1 {
        return ErrInvalidHorizon
    }
    if len(s.Closes) < MinObservations {
        return &models.InsufficientDataError{Symbol: s.Symbol, Got: len(s.Closes), Need: MinObservations}
    }
    return nil
}

// Last returns the most recent closing price.
func (s Series) Last() float64 { return s.Closes[len(s.Closes)-1] }
