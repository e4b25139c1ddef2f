package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Carrier CarrierConfig
	Workers WorkerConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=merchant_ops"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type CarrierConfig struct {
	Token   string        `env:"CARRIER_API_TOKEN"`
	BaseURL string        `env:"CARRIER_BASE_URL"`
	Timeout time.Duration `env:"CARRIER_TIMEOUT, default=30s"`
	// RegisteredPickups is the comma-separated allow-list of pickup location
	// names registered on the carrier account.
	RegisteredPickups []string `env:"CARRIER_REGISTERED_PICKUPS"`
	DefaultPickup     string   `env:"CARRIER_DEFAULT_PICKUP"`
}

type WorkerConfig struct {
	TrackingWorkers int `env:"TRACKING_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
