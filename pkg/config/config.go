package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockSight/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Provider struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"provider"`
	Forecast struct {
		UncertaintyDamping float64       `yaml:"uncertainty_damping"`
		Timeout            time.Duration `yaml:"timeout"`
		WarmCron           string        `yaml:"warm_cron"`
		CacheTTL           struct {
			Quote    time.Duration `yaml:"quote"`
			History  time.Duration `yaml:"history"`
			Trending time.Duration `yaml:"trending"`
			Forecast time.Duration `yaml:"forecast"`
		} `yaml:"cache_ttl"`
	} `yaml:"forecast"`
	Cache struct {
		MaxItems int `yaml:"max_items"`
		Redis    struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled       bool     `yaml:"enabled"`
		Brokers       []string `yaml:"brokers"`
		ForecastTopic string   `yaml:"forecast_topic"`
		LogTopic      string   `yaml:"log_topic"`
		RequiredAcks  int      `yaml:"required_acks"`
		Compression   string   `yaml:"compression"`
		Producer      struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		LogCollector struct {
			FlushInterval  time.Duration `yaml:"flush_interval"`
			CountThreshold int           `yaml:"count_threshold"`
		} `yaml:"log_collector"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML, fills defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 10 * time.Second
	}
	if c.Provider.UserAgent == "" {
		c.Provider.UserAgent = "Mozilla/5.0 (compatible; StockSight/1.0)"
	}
	if c.Forecast.UncertaintyDamping == 0 {
		c.Forecast.UncertaintyDamping = 0.1
	}
	if c.Forecast.Timeout == 0 {
		c.Forecast.Timeout = 20 * time.Second
	}
	if c.Forecast.CacheTTL.Quote == 0 {
		c.Forecast.CacheTTL.Quote = time.Minute
	}
	if c.Forecast.CacheTTL.History == 0 {
		c.Forecast.CacheTTL.History = 15 * time.Minute
	}
	if c.Forecast.CacheTTL.Trending == 0 {
		c.Forecast.CacheTTL.Trending = 10 * time.Minute
	}
	if c.Forecast.CacheTTL.Forecast == 0 {
		c.Forecast.CacheTTL.Forecast = 10 * time.Minute
	}
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 1000
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "stocksight"
	}
	if c.Kafka.ForecastTopic == "" {
		c.Kafka.ForecastTopic = "forecast.generated"
	}
	if c.Kafka.LogCollector.FlushInterval == 0 {
		c.Kafka.LogCollector.FlushInterval = 30 * time.Second
	}
	if c.Kafka.LogCollector.CountThreshold == 0 {
		c.Kafka.LogCollector.CountThreshold = 100
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be 'json' or 'console', got '%s'", c.Log.Format)
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Forecast.UncertaintyDamping <= 0 {
		return fmt.Errorf("forecast.uncertainty_damping must be positive")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
		}
		if c.Kafka.ForecastTopic == "" {
			return fmt.Errorf("kafka.forecast_topic is required when kafka is enabled")
		}
	}
	return nil
}
