package txpush

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hero-staking/internal/config"
)

func TestConfigFromServerFiltersTargets(t *testing.T) {
	cfg, err := ConfigFromServer(config.ServerConfig{
		TxPushEnabled:   true,
		TxPushWorkers:   0,
		TxPushRetryBase: 0,
		TxPushConfigJSON: `[
		  {"platform":"Discord","endpoint":"https://a","enabled":true},
		  {"endpoint":" https://b ","tx_types":[" Claim "],"enabled":true},
		  {"platform":"webhook","endpoint":"","enabled":true},
		  {"platform":"webhook","endpoint":"https://c","enabled":false}
		]`,
	})
	if err != nil {
		t.Fatalf("config parse failed: %v", err)
	}
	if len(cfg.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(cfg.Targets))
	}
	if cfg.Targets[0].Platform != "discord" || cfg.Targets[1].Platform != "webhook" {
		t.Fatalf("unexpected platforms: %+v", cfg.Targets)
	}
	if cfg.Targets[1].Endpoint != "https://b" || cfg.Targets[1].TxTypes[0] != "claim" {
		t.Fatalf("target not normalized: %+v", cfg.Targets[1])
	}
	if cfg.Workers != 2 || cfg.RetryBase != 500*time.Millisecond {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestConfigFromServerUsesConfigPathFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.json")
	if err := os.WriteFile(path, []byte(`[{"endpoint":"https://from-file","enabled":true}]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := ConfigFromServer(config.ServerConfig{
		TxPushEnabled:    true,
		TxPushConfigPath: path,
		TxPushConfigJSON: `[{"endpoint":"https://from-env","enabled":true}]`,
	})
	if err != nil {
		t.Fatalf("config parse failed: %v", err)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0].Endpoint != "https://from-file" {
		t.Fatalf("expected file target, got %+v", cfg.Targets)
	}
}

func TestConfigFromServerRejectsBadJSON(t *testing.T) {
	if _, err := ConfigFromServer(config.ServerConfig{TxPushEnabled: true, TxPushConfigJSON: `{`}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigFromServerDisabledSkipsTargets(t *testing.T) {
	cfg, err := ConfigFromServer(config.ServerConfig{TxPushConfigJSON: `{`})
	if err != nil {
		t.Fatalf("disabled config should not parse targets: %v", err)
	}
	if cfg.Enabled || len(cfg.Targets) != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
