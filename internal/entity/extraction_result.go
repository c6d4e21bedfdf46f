package entity

// ExtractionResult is the wire shape handed to storage and callers.
// When Validated is false, Tasks is empty and FallbackTranscript carries the
// original input.
type ExtractionResult struct {
	Tasks              []Task  `json:"tasks"`
	Validated          bool    `json:"validated"`
	TaskCount          int     `json:"task_count"`
	FallbackTranscript *string `json:"fallback_transcript,omitempty"`
	FallbackReason     *string `json:"fallback_reason,omitempty"`
	JobID              string  `json:"job_id,omitempty"`
}

// NewValidatedResult builds a validated result. An empty task list still
// records the input and a reason so nothing is silently dropped.
func NewValidatedResult(tasks []Task, input, emptyReason string) ExtractionResult {
	if tasks == nil {
		tasks = []Task{}
	}
	res := ExtractionResult{
		Tasks:     tasks,
		Validated: true,
		TaskCount: len(tasks),
	}
	if len(tasks) == 0 {
		res.FallbackTranscript = &input
		res.FallbackReason = &emptyReason
	}
	return res
}

// NewFallbackResult builds the degraded, empty-tasks shape.
func NewFallbackResult(input, reason string) ExtractionResult {
	return ExtractionResult{
		Tasks:              []Task{},
		Validated:          false,
		TaskCount:          0,
		FallbackTranscript: &input,
		FallbackReason:     &reason,
	}
}

// Reason returns the fallback reason or "".
func (r ExtractionResult) Reason() string {
	if r.FallbackReason == nil {
		return ""
	}
	return *r.FallbackReason
}
