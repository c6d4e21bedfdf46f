package repository

import (
	"context"
)

// TaskStorage adapts a TaskRepository to Storage.
type TaskStorage struct {
	tasks TaskRepository
}

var _ Storage = (*TaskStorage)(nil)

func NewStorage(tasks TaskRepository) *TaskStorage {
	return &TaskStorage{tasks: tasks}
}

func (s *TaskStorage) Save(ctx context.Context, jobID, transcript string, extractedJSON []byte, metadata map[string]any) error {
	return s.tasks.SaveResult(ctx, SaveResultRequest{
		JobID:         jobID,
		Transcript:    transcript,
		ExtractedJSON: extractedJSON,
		Metadata:      metadata,
	})
}
