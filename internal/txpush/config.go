package txpush

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"hero-staking/internal/config"
)

func ConfigFromServer(cfg config.ServerConfig) (Config, error) {
	out := Config{
		Enabled:             cfg.TxPushEnabled,
		Workers:             cfg.TxPushWorkers,
		RetryMax:            cfg.TxPushRetryMax,
		RetryBase:           cfg.TxPushRetryBase,
		FailureThreshold:    3,
		CircuitOpenDuration: 30 * time.Second,
		RequestTimeout:      cfg.TxPushHTTPTimeout,
		DispatchBuffer:      1024,
	}
	if !out.Enabled {
		return out, nil
	}
	if out.Workers <= 0 {
		out.Workers = 2
	}
	if out.RetryMax < 0 {
		out.RetryMax = 0
	}
	if out.RetryBase <= 0 {
		out.RetryBase = 500 * time.Millisecond
	}

	raw, err := loadTargetsJSON(cfg)
	if err != nil {
		return Config{}, err
	}
	if raw == "" {
		return out, nil
	}
	targets, err := parseTargetsJSON(raw)
	if err != nil {
		return Config{}, err
	}
	out.Targets = targets
	return out, nil
}

func loadTargetsJSON(cfg config.ServerConfig) (string, error) {
	path := strings.TrimSpace(cfg.TxPushConfigPath)
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read tx push config path %q: %w", path, err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return strings.TrimSpace(cfg.TxPushConfigJSON), nil
}

func parseTargetsJSON(raw string) ([]Target, error) {
	var targets []Target
	if err := json.Unmarshal([]byte(raw), &targets); err != nil {
		return nil, fmt.Errorf("parse tx push targets: %w", err)
	}
	filtered := make([]Target, 0, len(targets))
	for _, t := range targets {
		t.Platform = strings.ToLower(strings.TrimSpace(t.Platform))
		if t.Platform == "" {
			t.Platform = "webhook"
		}
		t.Endpoint = strings.TrimSpace(t.Endpoint)
		if t.Endpoint == "" || !t.Enabled {
			continue
		}
		for i := range t.TxTypes {
			t.TxTypes[i] = strings.ToLower(strings.TrimSpace(t.TxTypes[i]))
		}
		filtered = append(filtered, t)
	}
	return filtered, nil
}

func (t Target) accepts(typ string, amount int64) bool {
	if amount < 0 {
		amount = -amount
	}
	if amount < t.MinAbsSTG {
		return false
	}
	if len(t.TxTypes) == 0 {
		return true
	}
	for _, allowed := range t.TxTypes {
		if allowed == typ {
			return true
		}
	}
	return false
}
