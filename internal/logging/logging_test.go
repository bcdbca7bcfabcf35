package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hero-staking/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	closer, err := Init(config.LogConfig{Level: "debug", File: path, MaxMB: 1, Service: "hero-server"})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() {
		_ = closer.Close()
		setWriter(os.Stdout)
	})

	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %v, want debug", zerolog.GlobalLevel())
	}
	log.Info().Str("owner", "0xabc").Msg("hero minted")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"owner":"0xabc"`) {
		t.Fatalf("log file missing entry: %s", b)
	}
	if !strings.Contains(string(b), `"service":"hero-server"`) {
		t.Fatalf("log file missing service: %s", b)
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	closer, err := Init(config.LogConfig{Level: "chatty"})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer closer.Close()
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info", zerolog.GlobalLevel())
	}
}
