package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreMemory   = "memory"
	StorePebble   = "pebble"
	StorePostgres = "postgres"
)

type ServerConfig struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	PostgresDSN string `env:"POSTGRES_DSN"`
	PebbleDir   string `env:"PEBBLE_DIR" envDefault:"data"`

	// RNGSeed of 0 seeds the hero generator from the clock.
	RNGSeed      int64         `env:"RNG_SEED" envDefault:"0"`
	MintPriceSTG int64         `env:"MINT_PRICE_STG" envDefault:"2000000"`
	ChainLatency time.Duration `env:"CHAIN_LATENCY" envDefault:"0s"`

	TxPushEnabled     bool          `env:"TX_PUSH_ENABLED" envDefault:"false"`
	TxPushConfigPath  string        `env:"TX_PUSH_CONFIG_PATH"`
	TxPushConfigJSON  string        `env:"TX_PUSH_CONFIG_JSON"`
	TxPushWorkers     int           `env:"TX_PUSH_WORKERS" envDefault:"2"`
	TxPushRetryMax    int           `env:"TX_PUSH_RETRY_MAX" envDefault:"3"`
	TxPushRetryBase   time.Duration `env:"TX_PUSH_RETRY_BASE" envDefault:"500ms"`
	TxPushHTTPTimeout time.Duration `env:"TX_PUSH_HTTP_TIMEOUT" envDefault:"5s"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}

func (c ServerConfig) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StorePebble:
		if c.PebbleDir == "" {
			return fmt.Errorf("PEBBLE_DIR is required for store driver %q", c.StoreDriver)
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.MintPriceSTG <= 0 {
		return fmt.Errorf("MINT_PRICE_STG must be positive, got %d", c.MintPriceSTG)
	}
	if c.ChainLatency < 0 {
		return fmt.Errorf("CHAIN_LATENCY must not be negative")
	}
	return nil
}
