package entity

import "github.com/dicksarp09/AI-powered-mobile-app/constants"

// Task is a single actionable item extracted from a transcript.
type Task struct {
	Title    string             `json:"title"`
	DueTime  *string            `json:"due_time"`
	Priority constants.Priority `json:"priority"`
}
