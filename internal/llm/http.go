package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
	"github.com/google/uuid"
)

const maxResponseBytes = 8 << 20

// StatusError is returned by PostJSON when a backend answers with a non-2xx status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend status %d", e.Status)
	}
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Body)
}

// PostJSON encodes in, posts it to url and decodes the response into out when out is non-nil.
// The request ID on ctx is forwarded as X-Request-ID; one is generated when absent.
func PostJSON(ctx context.Context, client *http.Client, url string, in, out any, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	start := time.Now()

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("llm.http.send_failed", "req_id", reqID, "url", url, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	logger.Debug("llm.http.done",
		"req_id", reqID,
		"url", url,
		"status", resp.StatusCode,
		"sent", len(payload),
		"received", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
