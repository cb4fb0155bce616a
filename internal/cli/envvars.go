package cli

import (
	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from OSMCHACTL_* env vars.
type baseEnv struct {
	// ConfigPath is the config file path from OSMCHACTL_CONFIG.
	ConfigPath string `env:"OSMCHACTL_CONFIG"`
	// LogLevel is the logging level from OSMCHACTL_LOG_LEVEL.
	LogLevel string `env:"OSMCHACTL_LOG_LEVEL"`
}

// reportEnv captures OSMCHACTL_* inputs for the report command.
type reportEnv struct {
	// FromDate is the window start from OSMCHACTL_FROM_DATE.
	FromDate string `env:"OSMCHACTL_FROM_DATE"`
	// ToDate is the window end from OSMCHACTL_TO_DATE.
	ToDate string `env:"OSMCHACTL_TO_DATE"`
	// MaxPages caps pagination from OSMCHACTL_MAX_PAGES.
	MaxPages int `env:"OSMCHACTL_MAX_PAGES"`
	// Concurrency caps comment fetches from OSMCHACTL_CONCURRENCY.
	Concurrency int `env:"OSMCHACTL_CONCURRENCY"`
}

// parseEnv fills target from OSMCHACTL_* env vars via caarlos0/env.
func parseEnv(target any) error {
	return envparse.Parse(target)
}
