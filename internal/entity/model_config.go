package entity

import "github.com/dicksarp09/AI-powered-mobile-app/constants"

// ModelConfiguration is the active model selection for the device.
// It is snapshotted per job.
type ModelConfiguration struct {
	TranscriptionModel string                 `json:"transcription_model" yaml:"transcription_model" validate:"required"`
	ExtractionModel    string                 `json:"extraction_model" yaml:"extraction_model" validate:"required"`
	Quantization       constants.Quantization `json:"quantization" yaml:"quantization" validate:"oneof=4bit 8bit"`
	MaxTokens          int                    `json:"max_tokens" yaml:"max_tokens" validate:"gte=1"`
	Mode               constants.Mode         `json:"mode" yaml:"mode" validate:"oneof=batch interactive"`
}
