// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig
	Logging   LoggingConfig
	Storage   StorageConfig
	Queues    QueueConfig
	WebSocket WebSocketConfig
	Pending   PendingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

// StorageConfig selects and configures the repository backend.
type StorageConfig struct {
	Backend           string
	Timeout           time.Duration
	TransactionsTable string
	LogsTable         string
	BatchesTable      string
	ExternalIDsTable  string
	ConnectionsTable  string
}

// QueueConfig holds the SQS queue URLs. An empty URL disables the queue.
type QueueConfig struct {
	EventsQueueURL string
	BatchQueueURL  string
}

// WebSocketConfig points at the API Gateway management endpoint. When empty
// the API server serves the dashboard feed itself on /ws.
type WebSocketConfig struct {
	APIEndpoint string
}

// PendingConfig tunes the stale pending sweep.
type PendingConfig struct {
	EscalationAge time.Duration
}

const (
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "json"
	defaultStoreTimeout    = 5 * time.Second
	defaultEscalationAge   = 30 * time.Minute
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format: valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
		},
		Storage: StorageConfig{
			Backend:           strings.ToLower(valueOrDefault("STORAGE_BACKEND", BackendDynamoDB)),
			TransactionsTable: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
			LogsTable:         os.Getenv("DYNAMODB_LOGS_TABLE_NAME"),
			BatchesTable:      os.Getenv("DYNAMODB_BATCHES_TABLE_NAME"),
			ExternalIDsTable:  os.Getenv("DYNAMODB_EXTERNAL_IDS_TABLE_NAME"),
			ConnectionsTable:  os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
		},
		Queues: QueueConfig{
			EventsQueueURL: os.Getenv("SQS_EVENTS_QUEUE_URL"),
			BatchQueueURL:  os.Getenv("SQS_BATCH_QUEUE_URL"),
		},
		WebSocket: WebSocketConfig{
			APIEndpoint: os.Getenv("WEBSOCKET_API_ENDPOINT"),
		},
	}

	port, err := parsePort("HTTP_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key      string
		target   *time.Duration
		fallback time.Duration
	}{
		{"HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout, defaultReadTimeout},
		{"HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout, defaultWriteTimeout},
		{"HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout, defaultShutdownTimeout},
		{"STORE_TIMEOUT", &cfg.Storage.Timeout, defaultStoreTimeout},
		{"PENDING_ESCALATION_AGE", &cfg.Pending.EscalationAge, defaultEscalationAge},
	}
	for _, d := range durations {
		v, err := parseDuration(d.key, d.fallback)
		if err != nil {
			return Config{}, err
		}
		*d.target = v
	}

	switch cfg.Storage.Backend {
	case BackendMemory:
	case BackendDynamoDB:
		if err := cfg.Storage.requireTables(); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_BACKEND %q: want %s or %s", cfg.Storage.Backend, BackendDynamoDB, BackendMemory)
	}

	return cfg, nil
}

func (s StorageConfig) requireTables() error {
	missing := []string{}
	for key, v := range map[string]string{
		"DYNAMODB_TRANSACTIONS_TABLE_NAME": s.TransactionsTable,
		"DYNAMODB_LOGS_TABLE_NAME":         s.LogsTable,
		"DYNAMODB_BATCHES_TABLE_NAME":      s.BatchesTable,
		"DYNAMODB_EXTERNAL_IDS_TABLE_NAME": s.ExternalIDsTable,
	} {
		if v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("one or more DynamoDB table name environment variables are not set: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (h HTTPConfig) Addr() string {
	return ":" + strconv.Itoa(h.Port)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
