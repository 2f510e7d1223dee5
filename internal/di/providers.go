package di

import (
	"fmt"

	domrepo "StockSight/internal/domain/repository"
	domsvc "StockSight/internal/domain/service"
	"StockSight/internal/handler/api"
	internalrepo "StockSight/internal/repository"
	"StockSight/internal/service/yahoo"
	"StockSight/internal/services/forecast"
	"StockSight/internal/usecase"
	"StockSight/pkg/cache"
	"StockSight/pkg/config"
	xhttp "StockSight/pkg/http"
	pkgkafka "StockSight/pkg/kafka"
	applogger "StockSight/pkg/logger"
	"StockSight/pkg/metrics"
	"StockSight/pkg/server"
)

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithAutoCreateTopics(cfg.Environment == "development"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideLogger builds the app logger and ships aggregated logs to Kafka when a log topic is set.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if producer != nil && cfg.Kafka.LogTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Kafka.LogCollector.FlushInterval,
			CountThreshold: cfg.Kafka.LogCollector.CountThreshold,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      producer,
		})
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCache returns an in-process cache, layered over Redis when Redis is enabled.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MaxItems)), nil
	}
	remote, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis cache connected", applogger.String("addr", cfg.Cache.Redis.Addr))
	return cache.NewLayeredCache(remote,
		cache.WithLayeredMemorySize(cfg.Cache.MaxItems),
		cache.WithLayeredMemoryTTL(cfg.Forecast.CacheTTL.Quote),
	), nil
}

// ProvideMarketData creates the Yahoo Finance client.
func ProvideMarketData(cfg *config.Config) domrepo.MarketData {
	hc := xhttp.NewClient(
		xhttp.WithTimeout(cfg.Provider.Timeout),
		xhttp.WithUserAgent(cfg.Provider.UserAgent),
	)
	return yahoo.New(cfg.Provider.BaseURL, hc)
}

// ProvideForecastEngine creates the ensemble engine with the default predictors.
func ProvideForecastEngine(cfg *config.Config, l *applogger.Logger, m domrepo.Metrics) domsvc.ForecastEngine {
	f := forecast.NewForecaster(forecast.WithLogger(l), forecast.WithMetrics(m))
	return forecast.NewEngine(f, forecast.NewAssembler(cfg.Forecast.UncertaintyDamping), l, m)
}

// ProvideForecastPublisher publishes to Kafka when a producer exists, otherwise drops events.
func ProvideForecastPublisher(cfg *config.Config, producer *pkgkafka.Producer) domrepo.ForecastPublisher {
	if producer == nil {
		return internalrepo.NoopForecastPublisher{}
	}
	return internalrepo.NewKafkaForecastPublisher(producer, cfg.Kafka.ForecastTopic)
}

// ProvideStockUseCase creates the quote and history use case.
func ProvideStockUseCase(cfg *config.Config, market domrepo.MarketData, c cache.Service, m domrepo.Metrics, l *applogger.Logger) *usecase.StockUseCase {
	return usecase.NewStockUseCase(market, c, m, l, cfg.Forecast.CacheTTL.Quote, cfg.Forecast.CacheTTL.History, cfg.Forecast.CacheTTL.Trending)
}

// ProvidePredictionUseCase creates the forecast use case.
func ProvidePredictionUseCase(
	cfg *config.Config,
	stocks *usecase.StockUseCase,
	engine domsvc.ForecastEngine,
	pub domrepo.ForecastPublisher,
	c cache.Service,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.PredictionUseCase {
	return usecase.NewPredictionUseCase(stocks, engine, pub, c, m, l, cfg.Forecast.Timeout, cfg.Forecast.CacheTTL.Forecast)
}

// ProvideTrendingWarmer creates the cron job that keeps trending quotes warm.
func ProvideTrendingWarmer(cfg *config.Config, stocks *usecase.StockUseCase, c cache.Service, l *applogger.Logger) *usecase.TrendingWarmer {
	return usecase.NewTrendingWarmer(cfg.Forecast.WarmCron, stocks, c, l)
}

// ProvideHTTPServer registers every API handler on the Echo server.
func ProvideHTTPServer(
	cfg *config.Config,
	l *applogger.Logger,
	stocks *usecase.StockUseCase,
	predictions *usecase.PredictionUseCase,
) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	handlers := []xhttp.Handler{
		api.NewInfoHandler(stocks, metricsPath),
		api.NewStocksHandler(l, stocks),
		api.NewPredictionsHandler(l, predictions),
		api.NewQuoteStreamHandler(l, stocks),
	}
	return xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	l *applogger.Logger,
	srv *xhttp.Server,
	warmer *usecase.TrendingWarmer,
	pub domrepo.ForecastPublisher,
	c cache.Service,
) *server.App {
	return server.New(l, srv, warmer, pub, c)
}
