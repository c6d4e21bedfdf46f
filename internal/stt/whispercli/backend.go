// Package whispercli is a TranscriptionBackend that shells out to the
// whisper.cpp command line tool once per file.
package whispercli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt"
)

type Config struct {
	Binary   string // binary name or absolute path; if empty -> "whisper-cli"
	Language string // default "auto"
	Threads  int    // 0 = engine default
}

type Backend struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	mu    sync.Mutex
	model string
}

var _ stt.TranscriptionBackend = (*Backend)(nil)

func New(cfg Config, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Binary == "" {
		cfg.Binary = "whisper-cli"
	}
	if cfg.Language == "" {
		cfg.Language = "auto"
	}
	return &Backend{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner.
func (b *Backend) WithRunner(r Runner) *Backend {
	b.runner = r
	return b
}

// Load checks the model file exists; the CLI maps it per invocation.
func (b *Backend) Load(_ context.Context, modelPath string) error {
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("stat model: %w", err)
	}
	b.mu.Lock()
	b.model = modelPath
	b.mu.Unlock()
	return nil
}

func (b *Backend) TranscribeFile(ctx context.Context, path string) (stt.Transcript, error) {
	b.mu.Lock()
	model := b.model
	b.mu.Unlock()
	if model == "" {
		return stt.Transcript{}, stt.ErrNotLoaded
	}

	args := []string{"-m", model, "-f", path, "-l", b.cfg.Language, "-nt", "-np"}
	if b.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(b.cfg.Threads))
	}
	start := time.Now()
	stdout, stderr, err := b.runner.Run(ctx, b.cfg.Binary, args...)
	if err != nil {
		return stt.Transcript{}, fmt.Errorf("%s failed: %w: %s", b.cfg.Binary, err, truncate(string(stderr), 512))
	}
	text := strings.Join(strings.Fields(string(stdout)), " ")
	b.logger.Debug("whispercli.transcribe.ok", "path", path, "chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds())
	return stt.Transcript{Text: text, Language: languageOrEmpty(b.cfg.Language)}, nil
}

func (b *Backend) Unload(context.Context) error {
	b.mu.Lock()
	b.model = ""
	b.mu.Unlock()
	return nil
}

func languageOrEmpty(lang string) string {
	if lang == "auto" {
		return ""
	}
	return lang
}
