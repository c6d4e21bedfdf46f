package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database     DatabaseConfig
	Server       ServerConfig
	Backends     BackendsConfig
	Generation   GenerationConfig
	Orchestrator OrchestratorConfig
	Device       DeviceConfig
	Queue        QueueConfig
	Log          LogConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string `validate:"required"`
	MaxConns         int32  `validate:"gte=1"`
	MinConns         int32  `validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds daemon listener configuration
type ServerConfig struct {
	GRPCAddr    string `validate:"required"`
	MetricsAddr string
	SpoolDir    string
}

// BackendsConfig holds the endpoints of the speech and generation engines
type BackendsConfig struct {
	STT           string `validate:"oneof=http cli sidecar"`
	WhisperURL    string `validate:"omitempty,url"`
	WhisperBinary string
	Threads       int `validate:"gte=0"`
	Language      string
	OllamaURL     string `validate:"required,url"`
	KeepAlive     string
	Timeout       time.Duration
}

// GenerationConfig tunes the extraction stage
type GenerationConfig struct {
	RetryDelay time.Duration
}

// OrchestratorConfig holds the job scheduling knobs
type OrchestratorConfig struct {
	DebounceWindow           time.Duration `validate:"gte=0"`
	DebounceCacheSize        int           `validate:"gte=1"`
	BatteryLowThreshold      int           `validate:"gte=0,lte=100,gtefield=BatteryCriticalThreshold"`
	BatteryCriticalThreshold int           `validate:"gte=0,lte=100"`
}

// DeviceConfig locates the device profile sources
type DeviceConfig struct {
	ProfilePath     string `validate:"required"`
	BatteryPath     string
	BatteryOverride int `validate:"gte=-1,lte=100"`
}

// QueueConfig sizes the background worker pool
type QueueConfig struct {
	Workers        int `validate:"gte=1"`
	Size           int `validate:"gte=1"`
	ProcessTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json text"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", "sqlite://./voicetasks.db"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 4),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			GRPCAddr:    getEnv("GRPC_ADDR", ":8080"),
			MetricsAddr: getEnv("METRICS_ADDR", ":9090"),
			SpoolDir:    getEnv("SPOOL_DIR", ""),
		},
		Backends: BackendsConfig{
			STT:           strings.ToLower(getEnv("STT_BACKEND", "http")),
			WhisperURL:    getEnv("WHISPER_URL", "http://127.0.0.1:8178"),
			WhisperBinary: getEnv("WHISPER_BIN", "whisper-cli"),
			Threads:       getEnvAsInt("WHISPER_THREADS", 0),
			Language:      getEnv("WHISPER_LANGUAGE", "auto"),
			OllamaURL:     getEnv("OLLAMA_URL", "http://127.0.0.1:11434"),
			KeepAlive:     getEnv("OLLAMA_KEEP_ALIVE", "5m"),
			Timeout:       getEnvAsDuration("BACKEND_TIMEOUT", 2*time.Minute),
		},
		Generation: GenerationConfig{
			RetryDelay: getEnvAsDuration("EXTRACT_RETRY_DELAY", 50*time.Millisecond),
		},
		Orchestrator: OrchestratorConfig{
			DebounceWindow:           getEnvAsDuration("DEBOUNCE_WINDOW", 2*time.Second),
			DebounceCacheSize:        getEnvAsInt("DEBOUNCE_CACHE_SIZE", 1024),
			BatteryLowThreshold:      getEnvAsInt("BATTERY_LOW_THRESHOLD", 30),
			BatteryCriticalThreshold: getEnvAsInt("BATTERY_CRITICAL_THRESHOLD", 15),
		},
		Device: DeviceConfig{
			ProfilePath:     getEnv("DEVICE_PROFILE", "./device.yaml"),
			BatteryPath:     getEnv("BATTERY_PATH", "/sys/class/power_supply/BAT0/capacity"),
			BatteryOverride: getEnvAsInt("BATTERY_OVERRIDE", -1),
		},
		Queue: QueueConfig{
			Workers:        getEnvAsInt("QUEUE_WORKERS", 1),
			Size:           getEnvAsInt("QUEUE_SIZE", 64),
			ProcessTimeout: getEnvAsDuration("QUEUE_PROCESS_TIMEOUT", 3*time.Minute),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration against its struct tags.
func (c *Config) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return NewAppError("CONFIG_ERROR", "invalid configuration", err)
	}
	return nil
}
