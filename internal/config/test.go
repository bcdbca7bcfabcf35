package config

import "github.com/caarlos0/env/v11"

type TestConfig struct {
	TestPostgresDSN string `env:"TEST_POSTGRES_DSN,required,notEmpty"`
	// SchemaPrefix names the throwaway schema each integration test migrates into.
	SchemaPrefix string `env:"TEST_SCHEMA_PREFIX" envDefault:"hero_test"`
	// KeepSchema leaves the schema behind for inspection after the test.
	KeepSchema bool `env:"TEST_KEEP_SCHEMA" envDefault:"false"`
}

func LoadTest() (TestConfig, error) {
	var cfg TestConfig
	err := env.Parse(&cfg)
	return cfg, err
}
