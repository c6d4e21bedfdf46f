package entity

import "time"

// StoredTask is a persisted task row joined with its job.
type StoredTask struct {
	ID        int64     `json:"id"`
	JobID     string    `json:"job_id"`
	Position  int       `json:"position"`
	Task      Task      `json:"task"`
	CreatedAt time.Time `json:"created_at"`
}
