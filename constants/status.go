package constants

// JobStatus is the lifecycle state of an inference job.
type JobStatus string

// Stable values (stored as-is in inference_jobs.status).
const (
	JobStatusCreated      JobStatus = "CREATED"
	JobStatusDebounced    JobStatus = "DEBOUNCED"    // waiting out the debounce window
	JobStatusTranscribing JobStatus = "TRANSCRIBING" // speech to text
	JobStatusCleaning     JobStatus = "CLEANING"     // transcript normalization
	JobStatusExtracting   JobStatus = "EXTRACTING"   // task extraction
	JobStatusValidating   JobStatus = "VALIDATING"   // second-line validation
	JobStatusPersisting   JobStatus = "PERSISTING"   // storage write
	JobStatusCompleted    JobStatus = "COMPLETED"    // terminal success
	JobStatusFailed       JobStatus = "FAILED"       // terminal failure
)

var transitions = map[JobStatus][]JobStatus{
	JobStatusCreated:      {JobStatusDebounced, JobStatusTranscribing},
	JobStatusDebounced:    {JobStatusTranscribing},
	JobStatusTranscribing: {JobStatusCleaning},
	JobStatusCleaning:     {JobStatusExtracting},
	JobStatusExtracting:   {JobStatusValidating},
	JobStatusValidating:   {JobStatusPersisting},
	JobStatusPersisting:   {JobStatusCompleted},
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransition reports whether a job may move from one status to another.
// FAILED is reachable from every non-terminal status.
func CanTransition(from, to JobStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == JobStatusFailed {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
