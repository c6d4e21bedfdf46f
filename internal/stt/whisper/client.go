// Package whisper is a TranscriptionBackend over a whisper.cpp style HTTP server.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8178"
	DefaultTimeout = 2 * time.Minute

	maxResponseBytes = 4 << 20
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Language    string  // "auto" when empty
	Temperature float32 // decoding temperature
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger

	mu    sync.Mutex
	model string
}

var _ stt.TranscriptionBackend = (*Client)(nil)

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Language == "" {
		cfg.Language = "auto"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}, logger: logger}
}

type inferenceResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Error    string  `json:"error"`
}

// Load asks the server to switch to modelPath.
func (c *Client) Load(ctx context.Context, modelPath string) error {
	modelPath = strings.TrimSpace(modelPath)
	if modelPath == "" {
		return fmt.Errorf("whisper: empty model path")
	}
	start := time.Now()
	if _, err := c.post(ctx, "/load", map[string]string{"model": modelPath}, ""); err != nil {
		c.logger.Error("whisper.load.failed", "model", modelPath, "error", err)
		return fmt.Errorf("load %s: %w", modelPath, err)
	}
	c.mu.Lock()
	c.model = modelPath
	c.mu.Unlock()
	c.logger.Info("whisper.load.ok", "model", modelPath, "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

// TranscribeFile uploads the audio file to /inference and returns the recognized text.
func (c *Client) TranscribeFile(ctx context.Context, path string) (stt.Transcript, error) {
	c.mu.Lock()
	model := c.model
	c.mu.Unlock()
	if model == "" {
		return stt.Transcript{}, stt.ErrNotLoaded
	}

	start := time.Now()
	raw, err := c.post(ctx, "/inference", map[string]string{
		"response_format": "verbose_json",
		"language":        c.cfg.Language,
		"temperature":     fmt.Sprintf("%.2f", c.cfg.Temperature),
	}, path)
	if err != nil {
		c.logger.Error("whisper.transcribe.failed", "path", path, "error", err)
		return stt.Transcript{}, err
	}
	var out inferenceResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return stt.Transcript{}, fmt.Errorf("decode whisper response: %w", err)
	}
	if out.Error != "" {
		return stt.Transcript{}, fmt.Errorf("whisper: %s", out.Error)
	}
	tr := stt.Transcript{
		Text:            strings.TrimSpace(out.Text),
		Language:        out.Language,
		DurationSeconds: out.Duration,
	}
	c.logger.Debug("whisper.transcribe.ok",
		"path", path,
		"chars", len(tr.Text),
		"language", tr.Language,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return tr, nil
}

// Unload forgets the model. The server keeps its weights until the next /load.
func (c *Client) Unload(context.Context) error {
	c.mu.Lock()
	model := c.model
	c.model = ""
	c.mu.Unlock()
	if model != "" {
		c.logger.Debug("whisper.unload", "model", model)
	}
	return nil
}

// post sends a multipart form, optionally with the file at filePath attached as "file".
func (c *Client) post(ctx context.Context, path string, fields map[string]string, filePath string) ([]byte, error) {
	reqID := uuid.New().String()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("open audio: %w", err)
		}
		defer func() { _ = f.Close() }()
		part, err := w.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, fmt.Errorf("copy audio: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.logger.Debug("whisper.http.request", "req_id", reqID, "url", url, "content_length", body.Len())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper http error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return raw, fmt.Errorf("whisper status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
