// internal/workers/workitems/generate-rnas/config.go
package generaternas

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 90 * time.Second,
	}
}
