package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/llm"
)

// RegenerateFunc produces a fresh model answer for a reinforced prompt.
type RegenerateFunc func(ctx context.Context, prompt string) (string, error)

// ValidationStage is the second-line guard over raw model text. With a
// regenerate callback it gets one more attempt before falling back.
type ValidationStage struct {
	regenerate RegenerateFunc
	logger     *slog.Logger

	regenerations atomic.Int64
}

func NewValidationStage(regenerate RegenerateFunc, logger *slog.Logger) *ValidationStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidationStage{regenerate: regenerate, logger: logger}
}

// Regenerations counts callback invocations over the stage's lifetime.
func (v *ValidationStage) Regenerations() int64 { return v.regenerations.Load() }

// ValidateAndFallback validates rawText and never fails. On failure the
// result carries originalInput and the reason of the last attempt.
func (v *ValidationStage) ValidateAndFallback(ctx context.Context, rawText, originalInput string) (res entity.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("validate.panic", "panic", r)
			res = entity.NewFallbackResult(originalInput, llm.Outcome{
				Code:   constants.ReasonSchemaViolation,
				Detail: fmt.Sprint(r),
			}.Reason())
		}
	}()

	outcome := llm.ParseTaskList(rawText)
	if outcome.OK() {
		v.logger.Debug("validate.ok", "attempt", 1, "tasks", len(outcome.Tasks))
		return entity.NewValidatedResult(outcome.Tasks, originalInput, constants.ReasonNoTasks)
	}
	v.logger.Warn("validate.failed", "attempt", 1, "code", outcome.Code, "detail", outcome.Detail)

	if v.regenerate != nil {
		v.regenerations.Add(1)
		prompt := llm.BuildReinforcedPrompt(llm.BuildExtractionPrompt(originalInput))
		raw, err := v.regenerate(ctx, prompt)
		if err != nil {
			outcome = llm.Outcome{Code: constants.ReasonGenerationFailed, Detail: err.Error()}
			v.logger.Warn("validate.regenerate.failed", "error", err)
		} else {
			outcome = llm.ParseTaskList(raw)
			if outcome.OK() {
				v.logger.Info("validate.ok", "attempt", 2, "tasks", len(outcome.Tasks))
				return entity.NewValidatedResult(outcome.Tasks, originalInput, constants.ReasonNoTasks)
			}
			v.logger.Warn("validate.failed", "attempt", 2, "code", outcome.Code, "detail", outcome.Detail)
		}
	}

	return entity.NewFallbackResult(originalInput, outcome.Reason())
}

// RegenerateWith adapts a generation backend into a RegenerateFunc. The
// backend is loaded and unloaded around the single call.
func RegenerateWith(stage *ExtractionStage, modelPath string, params llm.GenerationParameters) RegenerateFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		if !stage.busy.CompareAndSwap(false, true) {
			return "", errors.New(constants.ReasonExtractionBusy)
		}
		defer stage.busy.Store(false)
		defer func() { _ = stage.backend.Unload(context.WithoutCancel(ctx)) }()
		if err := stage.backend.Load(ctx, modelPath); err != nil {
			return "", fmt.Errorf("load: %w", err)
		}
		gen, err := stage.backend.Generate(ctx, prompt, params)
		if err != nil {
			return "", err
		}
		return gen.Text, nil
	}
}
