package config

import "github.com/caarlos0/env/v11"

type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
	File        string `env:"LOG_FILE"`
	// MaxMB bounds LOG_FILE before it rotates to a single .1 backup.
	MaxMB int `env:"LOG_MAX_MB" envDefault:"10"`
	// Service is stamped on every line so mixed hero-server and bot logs can be split.
	Service string `env:"LOG_SERVICE" envDefault:"hero-staking"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}
