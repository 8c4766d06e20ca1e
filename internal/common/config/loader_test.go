// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const baseYAML = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: accelerator
    user: accelerator
  redis:
    address: localhost:6379
workers:
  generate-work-items:
    enabled: true
    timeout: 90000
  apply-status-transition:
    enabled: false
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, 25, cfg.Database.Postgres.MaxConnections)
	assert.Equal(t, 4096, cfg.GenAI.MaxTokens)
	assert.Equal(t, 3, cfg.GenAI.MaxConcurrency)
	assert.Equal(t, 120000, cfg.Generation.LockTTL)
	assert.Equal(t, ":8080", cfg.App.HTTPAddress)
	assert.Equal(t, "json", cfg.Logging.Format)

	gen := cfg.Workers["generate-work-items"]
	assert.True(t, gen.Enabled)
	assert.Equal(t, 90000, gen.Timeout)
	assert.Equal(t, 5, gen.MaxJobsActive)
	assert.Equal(t, 3, gen.MaxRetries)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")
	body := `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: accelerator
    user: accelerator
    password: ${TEST_PG_PASSWORD}
  redis:
    address: localhost:6379
`
	cfg, err := LoadFromFile(writeConfig(t, body))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n  redis:\n    address: r\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name:    "missing redis",
			body:    "camunda:\n  broker_address: b\ndatabase:\n  postgres:\n    host: h\n    database: d\n    user: u\n",
			wantErr: "database.redis.address is required",
		},
		{
			name:    "sns enabled without topic",
			body:    baseYAML + "events:\n  sns:\n    enabled: true\n",
			wantErr: "events.sns.topic_arn is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EVENTS_SNS_TOPIC_ARN", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWorkerHelpers(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"apply-status-transition": {Enabled: false, Timeout: 1000},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "apply-status-transition"))
	assert.True(t, IsWorkerEnabled(cfg, "reconcile-assessments"))
	assert.Equal(t, 1000, GetWorkerConfig(cfg, "apply-status-transition").Timeout)
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "unknown").Timeout)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
