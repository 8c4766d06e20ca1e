// internal/workers/readiness/calculator-report/config.go
package calculatorreport

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 30 * time.Second}
}
