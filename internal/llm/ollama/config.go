package ollama

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	DefaultBaseURL = "http://127.0.0.1:11434"
	DefaultTimeout = 2 * time.Minute
)

// Config for the Ollama generation backend.
type Config struct {
	BaseURL   string        // default http://127.0.0.1:11434
	Timeout   time.Duration // http client timeout
	KeepAlive string        // how long the engine keeps a loaded model, e.g. "5m"
}

// Client is a GenerationBackend over a local Ollama server.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger

	mu    sync.Mutex
	model string // loaded model; empty when unloaded
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.KeepAlive == "" {
		cfg.KeepAlive = "5m"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
