package main

import "os"

// Config holds the process-level settings; the database settings are read by
// the database package itself.
type Config struct {
	Port             string
	Env              string
	OpenFoodFactsURL string
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("APP_ENV"),
		OpenFoodFactsURL: os.Getenv("OPENFOODFACTS_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	return cfg
}
