// internal/workers/workitems/refine-item/config.go
package refineitem

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
