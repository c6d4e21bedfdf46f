// Package sidecar is a TranscriptionBackend that reads a transcript stored
// next to the audio file (note.wav -> note.txt).
package sidecar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt"
)

type Backend struct {
	ext string

	mu     sync.Mutex
	loaded bool
}

var _ stt.TranscriptionBackend = (*Backend)(nil)

// New returns a backend reading "<audio base>.txt" files.
func New() *Backend { return &Backend{ext: ".txt"} }

func (b *Backend) Load(context.Context, string) error {
	b.mu.Lock()
	b.loaded = true
	b.mu.Unlock()
	return nil
}

func (b *Backend) TranscribeFile(_ context.Context, path string) (stt.Transcript, error) {
	b.mu.Lock()
	loaded := b.loaded
	b.mu.Unlock()
	if !loaded {
		return stt.Transcript{}, stt.ErrNotLoaded
	}
	side := Path(path, b.ext)
	raw, err := os.ReadFile(side)
	if err != nil {
		return stt.Transcript{}, fmt.Errorf("read transcript %s: %w", side, err)
	}
	return stt.Transcript{Text: strings.TrimSpace(string(raw))}, nil
}

func (b *Backend) Unload(context.Context) error {
	b.mu.Lock()
	b.loaded = false
	b.mu.Unlock()
	return nil
}

// Path returns the sidecar file for an audio path.
func Path(audioPath, ext string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ext
}
