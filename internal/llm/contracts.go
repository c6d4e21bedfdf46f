package llm

import "context"

// Generation is the raw output of one backend call.
type Generation struct {
	Text            string
	TokensGenerated int
	DurationMs      int64
}

// GenerationBackend is a local text generation engine with explicit
// load/generate/unload discipline. Implementations hold at most one model.
type GenerationBackend interface {
	Load(ctx context.Context, modelPath string) error
	Generate(ctx context.Context, prompt string, params GenerationParameters) (Generation, error)
	Unload(ctx context.Context) error
}
