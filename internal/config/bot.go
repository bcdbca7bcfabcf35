package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type BotConfig struct {
	BaseURL  string        `env:"BOT_BASE_URL" envDefault:"http://localhost:8080"`
	Owner    string        `env:"BOT_OWNER" envDefault:"bot"`
	MintEach int           `env:"BOT_MINT_EACH" envDefault:"3"`
	Rounds   int           `env:"BOT_ROUNDS" envDefault:"5"`
	Interval time.Duration `env:"BOT_INTERVAL" envDefault:"5s"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
