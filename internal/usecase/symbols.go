package usecase

import "strings"

// PopularSymbols is the trending list, in display order.
var PopularSymbols = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "META", "NVDA", "NFLX", "AMD", "PYPL"}

// IndexSymbols are broad-market ETFs that are also supported.
var IndexSymbols = []string{"SPY", "QQQ", "IWM", "DIA", "VOO"}

// companyNames is the static directory searched by symbol or company name.
var companyNames = map[string]string{
	"AAPL":  "Apple Inc.",
	"GOOGL": "Alphabet Inc.",
	"MSFT":  "Microsoft Corporation",
	"AMZN":  "Amazon.com, Inc.",
	"TSLA":  "Tesla, Inc.",
	"META":  "Meta Platforms, Inc.",
	"NVDA":  "NVIDIA Corporation",
	"NFLX":  "Netflix, Inc.",
	"AMD":   "Advanced Micro Devices, Inc.",
	"PYPL":  "PayPal Holdings, Inc.",
	"SPY":   "SPDR S&P 500 ETF Trust",
	"QQQ":   "Invesco QQQ Trust",
	"IWM":   "iShares Russell 2000 ETF",
	"DIA":   "SPDR Dow Jones Industrial Average ETF",
	"VOO":   "Vanguard S&P 500 ETF",
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// matchSymbols returns directory symbols whose ticker or company name contains query, case-insensitively.
func matchSymbols(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []string
	for _, group := range [][]string{PopularSymbols, IndexSymbols} {
		for _, sym := range group {
			if strings.Contains(strings.ToLower(sym), q) || strings.Contains(strings.ToLower(companyNames[sym]), q) {
				out = append(out, sym)
			}
		}
	}
	return out
}
