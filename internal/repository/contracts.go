package repository

import (
	"context"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

// Storage persists one orchestrated result keyed by job id.
type Storage interface {
	Save(ctx context.Context, jobID, transcript string, extractedJSON []byte, metadata map[string]any) error
}

// JobRecorder keeps the lifecycle row of every orchestrated job.
type JobRecorder interface {
	Start(ctx context.Context, job *entity.InferenceJob) error
	Finish(ctx context.Context, job *entity.InferenceJob) error
}
