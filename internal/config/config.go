package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/prathameshmate/ClickShop/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Upstream order API
	OrderAPIURL     string        `env:"ORDER_API_URL" envDefault:"http://localhost:9090"`
	OrderAPITimeout time.Duration `env:"ORDER_API_TIMEOUT" envDefault:"10s"`
	OrderAPIRetries int           `env:"ORDER_API_RETRIES" envDefault:"2"`

	// Delivery fee charged per order, in minor currency units.
	DeliveryFee int64  `env:"DELIVERY_FEE" envDefault:"6000"`
	Currency    string `env:"CURRENCY" envDefault:"INR"`

	// Tracing
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.DeliveryFee < 0 {
		return fmt.Errorf("delivery fee must not be negative: %d", c.DeliveryFee)
	}
	if c.OrderAPIURL == "" {
		return fmt.Errorf("order API URL is required")
	}
	return nil
}
