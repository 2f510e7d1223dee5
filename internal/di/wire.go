//go:build wireinject
// +build wireinject

package di

import (
	"StockSight/pkg/config"
	"StockSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,
		ProvideMarketData,

		// Domain services and repositories
		ProvideForecastEngine,
		ProvideForecastPublisher,

		// Use cases
		ProvideStockUseCase,
		ProvidePredictionUseCase,
		ProvideTrendingWarmer,

		// Application server
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}
