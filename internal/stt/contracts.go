package stt

import (
	"context"
	"errors"
)

// ErrNotLoaded is returned by TranscribeFile before a successful Load.
var ErrNotLoaded = errors.New("stt: no model loaded")

// Transcript is the text recognized in one audio file.
type Transcript struct {
	Text            string
	Language        string  // empty when the engine does not report it
	DurationSeconds float64 // 0 when unknown
}

// TranscriptionBackend is the speech-to-text engine: load, transcribe, unload.
type TranscriptionBackend interface {
	Load(ctx context.Context, modelPath string) error
	TranscribeFile(ctx context.Context, path string) (Transcript, error)
	Unload(ctx context.Context) error
}
