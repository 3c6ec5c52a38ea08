// Package config loads toolkit configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Configuration holds all settings shared by the diagnostic commands.
type Configuration struct {
	Service       ServiceConfig
	Database      DatabaseConfig
	Storage       StorageConfig
	Transcription TranscriptionConfig
	API           APIConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// ServiceConfig identifies the toolkit in logs and event headers.
type ServiceConfig struct {
	Principal string
}

// DatabaseConfig holds the managed SQL instance connection settings.
type DatabaseConfig struct {
	Server   string
	Port     int
	Database string
	User     string
	Password string
}

// StorageConfig holds the blob storage account settings.
type StorageConfig struct {
	ConnectionString string
	SourceContainer  string
	// KnownContainers are the containers the pipeline is expected to have.
	KnownContainers []string
	SASExpiry       time.Duration
}

// TranscriptionConfig holds the speech-to-text provider settings.
type TranscriptionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Method selects the transcription path: rest, shortcut or mock.
	// "sdk" is accepted as an alias for rest.
	Method string
}

// APIConfig points at the transcription HTTP API under test.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// KafkaConfig holds transcript event publisher configuration.
type KafkaConfig struct {
	Enabled   bool
	Brokers   []string
	Topic     string
	Principal string
}

// ObservabilityConfig holds logging and monitoring settings.
type ObservabilityConfig struct {
	LogLevel      string
	LogFormat     string
	MetricsAddr   string
	CheckInterval time.Duration
}

// Load reads the configuration from environment variables, applying
// defaults for anything unset. Secrets (passwords, account keys, API keys)
// have no defaults and must be injected via the environment.
func Load() *Configuration {
	cfg := &Configuration{
		Service: ServiceConfig{
			Principal: envOrDefault("SERVICE_PRINCIPAL", "call-pipeline-diagnostics"),
		},
		Database: DatabaseConfig{
			Server:   envOrDefault("AZURE_SQL_SERVER", "callcenter1.database.windows.net"),
			Port:     envOrDefaultInt("AZURE_SQL_PORT", 1433),
			Database: envOrDefault("AZURE_SQL_DATABASE", "call"),
			User:     os.Getenv("AZURE_SQL_USER"),
			Password: os.Getenv("AZURE_SQL_PASSWORD"),
		},
		Storage: StorageConfig{
			ConnectionString: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
			SourceContainer:  envOrDefault("STORAGE_SOURCE_CONTAINER", "shahulin"),
			KnownContainers:  envOrDefaultList("STORAGE_KNOWN_CONTAINERS", []string{"shahulin", "shahulout", "demoin", "demoout"}),
			SASExpiry:        envOrDefaultDuration("STORAGE_SAS_EXPIRY", 240*time.Hour),
		},
		Transcription: TranscriptionConfig{
			APIKey:  os.Getenv("DEEPGRAM_API_KEY"),
			BaseURL: envOrDefault("DEEPGRAM_BASE_URL", "https://api.deepgram.com"),
			Model:   envOrDefault("DEEPGRAM_MODEL", "nova-3"),
			Method:  strings.ToLower(envOrDefault("TRANSCRIPTION_METHOD", "rest")),
		},
		API: APIConfig{
			BaseURL: envOrDefault("TRANSCRIBE_API_URL", "http://localhost:5001"),
			Timeout: envOrDefaultDuration("TRANSCRIBE_API_TIMEOUT", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Enabled: envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers: envOrDefaultList("KAFKA_BROKERS", nil),
			Topic:   envOrDefault("KAFKA_TOPIC_TRANSCRIPTS", "calls.transcripts.completed"),
		},
		Observability: ObservabilityConfig{
			LogLevel:      envOrDefault("LOG_LEVEL", "info"),
			LogFormat:     envOrDefault("LOG_FORMAT", "json"),
			MetricsAddr:   envOrDefault("METRICS_ADDR", ":9090"),
			CheckInterval: envOrDefaultDuration("CHECK_INTERVAL", 60*time.Second),
		},
	}

	// Kafka principal falls back to the service principal.
	cfg.Kafka.Principal = envOrDefault("KAFKA_PRINCIPAL", cfg.Service.Principal)

	// A DATABASE_URL in "Server=...;Database=...;User Id=...;Password=...;"
	// form overrides the individual database settings.
	if raw := os.Getenv("DATABASE_URL"); strings.Contains(raw, ";") {
		applyConnectionString(&cfg.Database, raw)
	}

	return cfg
}

// applyConnectionString overlays fields parsed from a semicolon-delimited
// SQL connection string onto db. Unknown keys are ignored.
func applyConnectionString(db *DatabaseConfig, raw string) {
	for _, part := range strings.Split(raw, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "server":
			db.Server = value
		case "database":
			db.Database = value
		case "user id", "uid":
			db.User = value
		case "password", "pwd":
			db.Password = value
		case "port":
			if p, err := strconv.Atoi(value); err == nil {
				db.Port = p
			}
		}
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
