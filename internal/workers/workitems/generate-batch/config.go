// internal/workers/workitems/generate-batch/config.go
package generatebatch

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultCount is used when a job omits requestedCount.
	DefaultCount int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      120 * time.Second,
		DefaultCount: 1,
	}
}
