package config

import (
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("StoreDriver = %q, want memory", cfg.StoreDriver)
	}
	if cfg.MintPriceSTG != 2_000_000 {
		t.Fatalf("MintPriceSTG = %d, want 2000000", cfg.MintPriceSTG)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("STORE_DRIVER", "pebble")
	t.Setenv("PEBBLE_DIR", "/tmp/heroes")
	t.Setenv("RNG_SEED", "42")
	t.Setenv("MINT_PRICE_STG", "1500")
	t.Setenv("CHAIN_LATENCY", "250ms")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.RNGSeed != 42 {
		t.Fatalf("RNGSeed = %d, want 42", cfg.RNGSeed)
	}
	if cfg.MintPriceSTG != 1500 {
		t.Fatalf("MintPriceSTG = %d, want 1500", cfg.MintPriceSTG)
	}
	if cfg.ChainLatency != 250*time.Millisecond {
		t.Fatalf("ChainLatency = %v, want 250ms", cfg.ChainLatency)
	}
	if cfg.PebbleDir != "/tmp/heroes" {
		t.Fatalf("PebbleDir = %q", cfg.PebbleDir)
	}
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServerConfig
		wantErr bool
	}{
		{name: "memory", cfg: ServerConfig{StoreDriver: StoreMemory, MintPriceSTG: 1}},
		{name: "postgres requires dsn", cfg: ServerConfig{StoreDriver: StorePostgres, MintPriceSTG: 1}, wantErr: true},
		{name: "postgres with dsn", cfg: ServerConfig{StoreDriver: StorePostgres, PostgresDSN: "postgres://x", MintPriceSTG: 1}},
		{name: "pebble requires dir", cfg: ServerConfig{StoreDriver: StorePebble, MintPriceSTG: 1}, wantErr: true},
		{name: "unknown driver", cfg: ServerConfig{StoreDriver: "redis", MintPriceSTG: 1}, wantErr: true},
		{name: "zero price", cfg: ServerConfig{StoreDriver: StoreMemory}, wantErr: true},
		{name: "negative latency", cfg: ServerConfig{StoreDriver: StoreMemory, MintPriceSTG: 1, ChainLatency: -time.Second}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadServerTxPush(t *testing.T) {
	t.Setenv("TX_PUSH_ENABLED", "true")
	t.Setenv("TX_PUSH_WORKERS", "4")
	t.Setenv("TX_PUSH_RETRY_BASE", "1s")
	t.Setenv("TX_PUSH_CONFIG_JSON", `[{"endpoint":"https://hooks.test"}]`)

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if !cfg.TxPushEnabled || cfg.TxPushWorkers != 4 || cfg.TxPushRetryBase != time.Second {
		t.Fatalf("unexpected tx push config: %+v", cfg)
	}
	if cfg.TxPushRetryMax != 3 || cfg.TxPushHTTPTimeout != 5*time.Second {
		t.Fatalf("tx push defaults not applied: %+v", cfg)
	}
}
