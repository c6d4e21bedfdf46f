package entity

import (
	"time"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
)

// InferenceJob is the lifecycle record of one orchestrated job.
type InferenceJob struct {
	JobID          string              `json:"job_id"`
	InputRef       string              `json:"input_ref"`
	RequestedMode  constants.Mode      `json:"requested_mode"`
	ActualMode     constants.Mode      `json:"actual_mode"`
	Status         constants.JobStatus `json:"status"`
	StartTime      time.Time           `json:"start_time"`
	EndTime        *time.Time          `json:"end_time,omitempty"`
	ModelsUsed     []string            `json:"models_used"`
	BatteryAtStart int                 `json:"battery_at_start"`
	BatteryAtEnd   *int                `json:"battery_at_end,omitempty"`
	MaxTokens      int                 `json:"max_tokens"`
	Success        bool                `json:"success"`
	Error          *string             `json:"error,omitempty"`
	Result         *ExtractionResult   `json:"result,omitempty"`
}

// Duration is the wall time of a finished job, or zero while running.
func (j *InferenceJob) Duration() time.Duration {
	if j.EndTime == nil {
		return 0
	}
	return j.EndTime.Sub(j.StartTime)
}
