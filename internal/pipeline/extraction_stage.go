// Package pipeline holds the extraction and validation stages that turn a
// cleaned transcript into a validated task list.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/llm"
)

const defaultRetryDelay = 50 * time.Millisecond

// ExtractionConfig holds the defaults used by Extract.
type ExtractionConfig struct {
	ModelPath  string
	Params     llm.GenerationParameters
	RetryDelay time.Duration // pause before the reinforced attempt
}

// ExtractionOutcome is the full record of one extraction call.
type ExtractionOutcome struct {
	Result   entity.ExtractionResult
	Raw      string // canonical {"tasks":[...]} on success, last model answer otherwise
	Attempts int    // generation calls made, 0..2
	Code     string // failure code; empty on success
}

// ExtractionStage owns the single extraction model slot. A call made while
// another is in flight is rejected with extraction_busy.
type ExtractionStage struct {
	backend llm.GenerationBackend
	cfg     ExtractionConfig
	logger  *slog.Logger

	busy atomic.Bool
}

func NewExtractionStage(backend llm.GenerationBackend, cfg ExtractionConfig, logger *slog.Logger) *ExtractionStage {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.Params.MaxTokens == 0 {
		cfg.Params = llm.StructuredExtraction()
	}
	return &ExtractionStage{backend: backend, cfg: cfg, logger: logger}
}

// Params returns the stage's default generation parameters.
func (s *ExtractionStage) Params() llm.GenerationParameters {
	return s.cfg.Params.WithMaxTokens(s.cfg.Params.MaxTokens)
}

// Busy reports whether an extraction currently holds the model slot.
func (s *ExtractionStage) Busy() bool { return s.busy.Load() }

// Extract runs Run with the configured model and parameters.
func (s *ExtractionStage) Extract(ctx context.Context, text string) entity.ExtractionResult {
	return s.Run(ctx, text, s.cfg.ModelPath, s.cfg.Params).Result
}

// Run loads the model, generates (at most twice), unloads, and parses the
// answer. It never fails: every problem becomes an empty-tasks result.
func (s *ExtractionStage) Run(ctx context.Context, text, modelPath string, params llm.GenerationParameters) (out ExtractionOutcome) {
	if strings.TrimSpace(text) == "" {
		s.logger.Debug("extract.skip.empty_input")
		return fallbackOutcome(text, constants.ReasonEmptyInput, "", 0)
	}
	if !s.busy.CompareAndSwap(false, true) {
		s.logger.Warn("extract.rejected.busy")
		return fallbackOutcome(text, constants.ReasonExtractionBusy, "another extraction holds the model", 0)
	}
	defer s.busy.Store(false)

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extract.panic", "panic", r)
			out = fallbackOutcome(text, constants.ReasonGenerationFailed, fmt.Sprint(r), out.Attempts)
		}
	}()

	// Unload runs on every path once Load has been attempted.
	defer func() {
		if err := s.backend.Unload(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("extract.unload.failed", "model", modelPath, "error", err)
		}
	}()
	if err := s.backend.Load(ctx, modelPath); err != nil {
		s.logger.Error("extract.load.failed", "model", modelPath, "error", err)
		return fallbackOutcome(text, constants.ReasonModelLoadFailed, err.Error(), 0)
	}

	prompt := llm.BuildExtractionPrompt(text)
	var (
		attempts int
		lastRaw  string
	)
	raw, err := retry.DoValue(ctx, retry.WithMaxRetries(1, retry.NewConstant(s.cfg.RetryDelay)), func(ctx context.Context) (string, error) {
		attempts++
		p := prompt
		if attempts > 1 {
			p = llm.BuildReinforcedPrompt(prompt)
		}
		gen, err := s.backend.Generate(ctx, p, params)
		if err != nil {
			return "", err
		}
		lastRaw = gen.Text
		s.logger.Debug("extract.generate.ok",
			"attempt", attempts,
			"tokens", gen.TokensGenerated,
			"elapsed_ms", gen.DurationMs,
		)
		if _, err := llm.ExtractJSONObject(gen.Text); err != nil {
			s.logger.Warn("extract.generate.malformed", "attempt", attempts, "error", err)
			return "", retry.RetryableError(err)
		}
		return gen.Text, nil
	})
	if err != nil {
		code := constants.ReasonJSONParseError
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			code = constants.ReasonCanceled
		case !errors.Is(err, llm.ErrNoJSONObject) && !errors.Is(err, llm.ErrInvalidJSON):
			code = constants.ReasonGenerationFailed
		}
		s.logger.Error("extract.failed", "code", code, "attempts", attempts, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return fallbackOutcome(text, code, err.Error(), attempts, lastRaw)
	}

	parsed := llm.ParseTaskList(raw)
	if !parsed.OK() {
		s.logger.Warn("extract.invalid", "code", parsed.Code, "detail", parsed.Detail, "attempts", attempts)
		return fallbackOutcome(text, parsed.Code, parsed.Detail, attempts, raw)
	}

	canonical, err := json.Marshal(map[string]any{"tasks": parsed.Tasks})
	if err != nil {
		return fallbackOutcome(text, constants.ReasonJSONParseError, err.Error(), attempts, raw)
	}
	s.logger.Info("extract.ok",
		"tasks", len(parsed.Tasks),
		"attempts", attempts,
		"max_tokens", params.MaxTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return ExtractionOutcome{
		Result:   entity.NewValidatedResult(parsed.Tasks, text, constants.ReasonNoTasks),
		Raw:      string(canonical),
		Attempts: attempts,
	}
}

func fallbackOutcome(text, code, detail string, attempts int, raw ...string) ExtractionOutcome {
	reason := llm.Outcome{Code: code, Detail: detail}.Reason()
	out := ExtractionOutcome{
		Result:   entity.NewFallbackResult(text, reason),
		Attempts: attempts,
		Code:     code,
	}
	if len(raw) > 0 {
		out.Raw = raw[0]
	}
	return out
}
