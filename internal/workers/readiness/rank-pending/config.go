// internal/workers/readiness/rank-pending/config.go
package rankpending

import "time"

type Config struct {
	Timeout time.Duration
	// Limit caps the returned ranking; 0 returns every pending startup.
	Limit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
