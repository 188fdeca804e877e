package config

import (
	"fmt"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/decoder"
	"github.com/caarlos0/env/v6"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTP     HTTP
	Feed     Feed
	Sync     Sync
	Cleanup  Cleanup
	RabbitMQ RabbitMQ
	MinIO    MinIO
}

// HTTP holds HTTP server and client configuration.
type HTTP struct {
	Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

// Feed holds supplier feed configuration.
type Feed struct {
	BaseURL           string   `env:"FEED_BASE_URL"`
	PriceList         string   `env:"FEED_PRICE_LIST"`
	Token             string   `env:"FEED_TOKEN"`
	DaysBack          int      `env:"FEED_DAYS_BACK" envDefault:"0"`
	PageSize          int      `env:"FEED_PAGE_SIZE" envDefault:"50"`
	Variations        bool     `env:"FEED_VARIATIONS" envDefault:"false"`
	VariationImages   bool     `env:"FEED_VARIATION_IMAGES" envDefault:"false"`
	PlaceholderImages []string `env:"FEED_PLACEHOLDER_IMAGES" envDefault:"noimage,nofoto,placeholder" envSeparator:","`
	Retries           uint     `env:"FEED_RETRIES" envDefault:"3"`
}

// Sync holds sync cycle configuration.
type Sync struct {
	StockType               decoder.StockType `env:"SYNC_STOCK_TYPE" envDefault:"giacenza"`
	AddVAT                  bool              `env:"SYNC_ADD_VAT" envDefault:"false"`
	Rounding                decoder.Rounding  `env:"SYNC_ROUNDING" envDefault:"none"`
	NormalizeBrand          bool              `env:"SYNC_NORMALIZE_BRAND" envDefault:"false"`
	UpdateImages            bool              `env:"SYNC_UPDATE_IMAGES" envDefault:"false"`
	UpdateCategories        bool              `env:"SYNC_UPDATE_CATEGORIES" envDefault:"true"`
	UpdateBrand             bool              `env:"SYNC_UPDATE_BRAND" envDefault:"true"`
	OnlyWithVariationImages bool              `env:"SYNC_ONLY_WITH_VARIATION_IMAGES" envDefault:"false"`
	MinInterval             time.Duration     `env:"SYNC_MIN_INTERVAL" envDefault:"1h"`
	TimeBudget              time.Duration     `env:"SYNC_TIME_BUDGET" envDefault:"9m"`
	MemoryLimitMB           uint64            `env:"SYNC_MEMORY_LIMIT_MB" envDefault:"0"`
	SizeAttribute           string            `env:"SYNC_SIZE_ATTRIBUTE" envDefault:"Taglia"`
	ColorAttribute          string            `env:"SYNC_COLOR_ATTRIBUTE" envDefault:"Colore"`
	Schedule                string            `env:"SYNC_SCHEDULE" envDefault:"0 */5 * * * *"`
}

// Cleanup holds cleanup cycle configuration.
type Cleanup struct {
	Enabled     bool          `env:"CLEANUP_ENABLED" envDefault:"true"`
	Interval    time.Duration `env:"CLEANUP_INTERVAL" envDefault:"24h"`
	FetchBatch  int           `env:"CLEANUP_FETCH_BATCH" envDefault:"1000"`
	DeleteBatch int           `env:"CLEANUP_DELETE_BATCH" envDefault:"50"`
	Schedule    string        `env:"CLEANUP_SCHEDULE" envDefault:"30 */2 * * * *"`
}

// RabbitMQ holds RabbitMQ configuration. Empty URL disables commands consumer.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"feedsync-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"supplier-feed-sync.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"supplier-feed-sync"`
}

// MinIO holds image bucket configuration. Empty endpoint attaches images by source url.
type MinIO struct {
	Endpoint    string  `env:"MINIO_ENDPOINT"`
	AccessKey   string  `env:"MINIO_ACCESS_KEY"`
	SecretKey   string  `env:"MINIO_SECRET_KEY"`
	Bucket      string  `env:"MINIO_BUCKET" envDefault:"product-images"`
	UseSSL      bool    `env:"MINIO_USE_SSL" envDefault:"false"`
	PublicURL   string  `env:"MINIO_PUBLIC_URL"`
	DownloadRPS float64 `env:"IMAGE_DOWNLOAD_RPS" envDefault:"5"`
}

// Parse parses configuration from env variables.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse env variables: %w", err)
	}

	return cfg, nil
}

// MemoryLimit returns sync heap limit in bytes.
func (s Sync) MemoryLimit() uint64 {
	return s.MemoryLimitMB * 1024 * 1024
}
