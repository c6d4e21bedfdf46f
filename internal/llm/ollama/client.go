package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/llm"
)

// ErrNotLoaded is returned by Generate before a successful Load.
var ErrNotLoaded = errors.New("ollama: no model loaded")

var _ llm.GenerationBackend = (*Client)(nil)

type options struct {
	Temperature   float32  `json:"temperature"`
	TopP          float32  `json:"top_p"`
	TopK          *int     `json:"top_k,omitempty"`
	NumPredict    int      `json:"num_predict"`
	RepeatPenalty float32  `json:"repeat_penalty"`
	Stop          []string `json:"stop,omitempty"`
}

type generateRequest struct {
	Model     string   `json:"model"`
	Prompt    string   `json:"prompt,omitempty"`
	Stream    bool     `json:"stream"`
	KeepAlive any      `json:"keep_alive,omitempty"`
	Options   *options `json:"options,omitempty"`
}

type generateResponse struct {
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	EvalCount     int    `json:"eval_count"`
	TotalDuration int64  `json:"total_duration"` // nanoseconds
	Error         string `json:"error,omitempty"`
}

// Load asks the server to bring modelPath into memory. An empty prompt only loads.
func (c *Client) Load(ctx context.Context, modelPath string) error {
	modelPath = strings.TrimSpace(modelPath)
	if modelPath == "" {
		return errors.New("ollama: empty model name")
	}
	start := time.Now()
	if _, err := c.generate(ctx, generateRequest{Model: modelPath, KeepAlive: c.cfg.KeepAlive}); err != nil {
		c.logger.Error("ollama.load.failed", "model", modelPath, "error", err)
		return fmt.Errorf("load %s: %w", modelPath, err)
	}
	c.mu.Lock()
	c.model = modelPath
	c.mu.Unlock()
	c.logger.Info("ollama.load.ok", "model", modelPath, "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

// Generate runs one non-streaming completion against the loaded model.
func (c *Client) Generate(ctx context.Context, prompt string, params llm.GenerationParameters) (llm.Generation, error) {
	c.mu.Lock()
	model := c.model
	c.mu.Unlock()
	if model == "" {
		return llm.Generation{}, ErrNotLoaded
	}
	if err := params.Validate(); err != nil {
		return llm.Generation{}, fmt.Errorf("generation parameters: %w", err)
	}

	start := time.Now()
	out, err := c.generate(ctx, generateRequest{
		Model:     model,
		Prompt:    prompt,
		KeepAlive: c.cfg.KeepAlive,
		Options: &options{
			Temperature:   params.Temperature,
			TopP:          params.TopP,
			TopK:          params.TopK,
			NumPredict:    params.MaxTokens,
			RepeatPenalty: params.RepetitionPenalty,
			Stop:          params.StopSequences,
		},
	})
	if err != nil {
		c.logger.Error("ollama.generate.failed", "model", model, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return llm.Generation{}, err
	}
	gen := llm.Generation{
		Text:            out.Response,
		TokensGenerated: out.EvalCount,
		DurationMs:      time.Duration(out.TotalDuration).Milliseconds(),
	}
	if gen.DurationMs == 0 {
		gen.DurationMs = time.Since(start).Milliseconds()
	}
	c.logger.Debug("ollama.generate.ok", "model", model, "tokens", gen.TokensGenerated, "elapsed_ms", gen.DurationMs)
	return gen, nil
}

// Unload evicts the model from server memory. Unloading twice is a no-op.
func (c *Client) Unload(ctx context.Context) error {
	c.mu.Lock()
	model := c.model
	c.model = ""
	c.mu.Unlock()
	if model == "" {
		return nil
	}
	if _, err := c.generate(ctx, generateRequest{Model: model, KeepAlive: 0}); err != nil {
		c.logger.Warn("ollama.unload.failed", "model", model, "error", err)
		return fmt.Errorf("unload %s: %w", model, err)
	}
	c.logger.Info("ollama.unload.ok", "model", model)
	return nil
}

// IsAvailable reports whether the server answers on /api/tags.
func (c *Client) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/tags"), nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) generate(ctx context.Context, body generateRequest) (generateResponse, error) {
	var out generateResponse
	if err := llm.PostJSON(ctx, c.http, c.endpoint("/api/generate"), body, &out, c.logger); err != nil {
		return generateResponse{}, fmt.Errorf("ollama: %w", err)
	}
	if out.Error != "" {
		return generateResponse{}, fmt.Errorf("ollama: %s", out.Error)
	}
	return out, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}
