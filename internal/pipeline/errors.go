package pipeline

import (
	"github.com/dicksarp09/AI-powered-mobile-app/constants"
)

// StageError labels the orchestrator step that failed. Its Error() is the
// fallback reason handed to callers: "<code>: <detail>".
type StageError struct {
	Stage constants.JobStatus
	Code  string
	Err   error
}

func NewStageError(stage constants.JobStatus, code string, err error) *StageError {
	return &StageError{Stage: stage, Code: code, Err: err}
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }
