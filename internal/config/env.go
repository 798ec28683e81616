package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loadDotEnv is a seam for tests.
var loadDotEnv = func() { _ = godotenv.Load() }

// parseEnv overlays cfg with VAULT_* environment variables. Unset variables
// keep the current value. A .env file in the working directory is loaded
// first when present; real environment variables win over it.
func parseEnv(cfg *Config) {
	loadDotEnv()
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
