package llm

import (
	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
)

// GenerationParameters is the sampling configuration for one generation call.
type GenerationParameters struct {
	Temperature       float32  `json:"temperature" validate:"gte=0,lte=2"`
	TopP              float32  `json:"top_p" validate:"gt=0,lte=1"`
	TopK              *int     `json:"top_k,omitempty" validate:"omitempty,gte=1"`
	MaxTokens         int      `json:"max_tokens" validate:"gte=1"`
	RepetitionPenalty float32  `json:"repetition_penalty" validate:"gte=1"`
	StopSequences     []string `json:"stop_sequences,omitempty" validate:"unique"`
}

// StructuredExtraction is tuned for short JSON answers: low temperature and a
// stop at the closing brace of the document.
func StructuredExtraction() GenerationParameters {
	topK := 40
	return GenerationParameters{
		Temperature:       0.1,
		TopP:              0.9,
		TopK:              &topK,
		MaxTokens:         512,
		RepetitionPenalty: 1.1,
		StopSequences:     []string{"}\n\n", "```"},
	}
}

// Strict is colder and shorter than StructuredExtraction.
func Strict() GenerationParameters {
	topK := 20
	return GenerationParameters{
		Temperature:       0.0,
		TopP:              0.8,
		TopK:              &topK,
		MaxTokens:         256,
		RepetitionPenalty: 1.15,
		StopSequences:     []string{"}\n\n", "```"},
	}
}

// WithMaxTokens returns a copy with the token budget replaced; n < 1 keeps 1.
func (p GenerationParameters) WithMaxTokens(n int) GenerationParameters {
	if n < 1 {
		n = 1
	}
	p.MaxTokens = n
	p.StopSequences = append([]string(nil), p.StopSequences...)
	return p
}

// Validate checks the parameter ranges.
func (p GenerationParameters) Validate() error {
	return common.ValidateStruct(p)
}
