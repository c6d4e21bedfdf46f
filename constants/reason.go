package constants

// Fallback reason codes carried in fallback_reason. Callers key off these.
const (
	ReasonMissingTasksKey  = "missing_tasks_key"
	ReasonTasksNotList     = "tasks_not_list"
	ReasonTaskMissingTitle = "task_missing_title"
	ReasonInvalidPriority  = "invalid_priority"
	ReasonJSONParseError   = "json_parse_error"
	ReasonSchemaViolation  = "schema_violation"
	ReasonEmptyInput       = "empty_input"
	ReasonNoTasks          = "no_tasks_found"
	ReasonExtractionBusy   = "extraction_busy"
	ReasonModelLoadFailed  = "model_load_failed"
	ReasonGenerationFailed = "generation_failed"
	ReasonCanceled         = "canceled"
)

// Orchestrator failure codes.
const (
	ReasonJobActive           = "job_active"
	ReasonConfigUnavailable   = "model_config_unavailable"
	ReasonTranscriptionFailed = "transcription_failed"
	ReasonStorageFailed       = "storage_failed"
	ReasonInternal            = "internal_error"
)

// PlaceholderTranscript stands in for the transcript when transcription produced nothing.
const PlaceholderTranscript = "[transcription unavailable]"
