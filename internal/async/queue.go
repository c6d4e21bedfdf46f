package async

import (
	"context"
	"errors"
	"time"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

// ErrClosed is returned by Enqueue once Shutdown has started.
var ErrClosed = errors.New("queue is shutting down")

// Job is one audio input waiting for the orchestrator.
type Job struct {
	InputRef    string
	Mode        constants.Mode // empty defers to the device profile
	JobID       string         // empty lets the orchestrator assign one
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// InputProcessor runs one job to completion. It never fails.
type InputProcessor interface {
	ProcessInput(ctx context.Context, inputRef string, requested constants.Mode, jobID string) entity.ExtractionResult
}
