package config

import (
	"os"
	"strings"
)

const (
	defaultAppName  = "banking-ledger"
	defaultLogLevel = "info"
)

// Config captures runtime configuration for the demo binary. The ledger
// library itself takes no configuration; business rules are fixed constants.
type Config struct {
	AppName  string
	LogLevel string
}

// Load reads configuration values from the environment.
func Load() Config {
	return Config{
		AppName:  getEnv("APP_NAME", defaultAppName),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
