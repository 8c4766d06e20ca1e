// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	GenAI         GenAIConfig             `mapstructure:"genai"`
	Readiness     ReadinessConfig         `mapstructure:"readiness"`
	Generation    GenerationConfig        `mapstructure:"generation"`
	Events        EventsConfig            `mapstructure:"events"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Registry      RegistryConfig          `mapstructure:"registry"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	HTTPAddress string `mapstructure:"http_address"`
	// ProgramName appears in qualification emails.
	ProgramName string `mapstructure:"program_name"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// GenAIConfig configures the text generator used for RNA, task, initiative and roadblock prompts.
type GenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	MaxTokens      int    `mapstructure:"max_tokens"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds
	MaxConcurrency int    `mapstructure:"max_concurrency"`
}

type ReadinessConfig struct {
	CatalogCacheTTL int `mapstructure:"catalog_cache_ttl"` // seconds
}

type GenerationConfig struct {
	LockTTL      int `mapstructure:"lock_ttl"` // milliseconds
	DefaultCount int `mapstructure:"default_count"`
}

type EventsConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

// NotificationConfig holds settings for qualification emails.
type NotificationConfig struct {
	SES struct {
		Enabled   bool   `mapstructure:"enabled"`
		Region    string `mapstructure:"region"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"ses"`
}

type ObservabilityConfig struct {
	ServiceName      string  `mapstructure:"service_name"`
	TraceSampleRatio float64 `mapstructure:"trace_sample_ratio"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
