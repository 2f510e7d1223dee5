package repository

// Period is a history range understood by the market-data provider.
type Period string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
	Period10y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period1d, Period5d, Period1mo, Period3mo, Period6mo, Period1y,
		Period2y, Period5y, Period10y, PeriodYTD, PeriodMax:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default history period.
func DefaultPeriod() Period { return Period1y }

// ForecastPeriod is the history window used to train forecasting models.
func ForecastPeriod() Period { return Period2y }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}
