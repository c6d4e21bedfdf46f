// Package app wires the configured components into a runnable object graph.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/async"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/device"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/export"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/llm"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/llm/ollama"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/orchestrator"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/pipeline"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/repository"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt/sidecar"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt/whisper"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt/whispercli"
)

type App struct {
	DB           *repository.DB
	Jobs         repository.InferenceJobRepository
	Tasks        repository.TaskRepository
	Profile      device.Profile
	Generator    *ollama.Client
	Extraction   *pipeline.ExtractionStage
	Orchestrator *orchestrator.Orchestrator
	Export       *export.Service
	Metrics      *orchestrator.Metrics
}

// Build opens and migrates the database and assembles the pipeline. reg may be nil.
func Build(ctx context.Context, cfg *common.Config, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	a := &App{
		DB:      db,
		Jobs:    repository.NewInferenceJobRepository(db, logger),
		Tasks:   repository.NewTaskRepository(db, logger),
		Profile: device.NewFileProfile(cfg.Device, logger),
		Metrics: orchestrator.NewMetrics(reg),
	}
	a.Export = export.NewService(a.Tasks, logger)

	transcriber, err := NewTranscriber(cfg.Backends, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.Generator = ollama.NewClient(ollama.Config{
		BaseURL:   cfg.Backends.OllamaURL,
		Timeout:   cfg.Backends.Timeout,
		KeepAlive: cfg.Backends.KeepAlive,
	}, logger)

	params := llm.StructuredExtraction()
	a.Extraction = pipeline.NewExtractionStage(a.Generator, pipeline.ExtractionConfig{
		Params:     params,
		RetryDelay: cfg.Generation.RetryDelay,
	}, logger)
	validation := pipeline.NewValidationStage(a.regenerate(params, cfg.Orchestrator.BatteryLowThreshold), logger)

	a.Orchestrator, err = orchestrator.New(logger, a.Profile, transcriber, a.Extraction, validation,
		repository.NewStorage(a.Tasks), cfg.Orchestrator,
		orchestrator.WithJobRecorder(a.Jobs),
		orchestrator.WithMetrics(a.Metrics),
	)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// regenerate resolves the extraction model and token budget from the device
// profile at call time, halving the budget on low battery like the orchestrator.
func (a *App) regenerate(params llm.GenerationParameters, lowBattery int) pipeline.RegenerateFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		mc, err := a.Profile.ModelConfiguration(ctx)
		if err != nil {
			return "", err
		}
		tokens := mc.MaxTokens
		if level, err := a.Profile.BatteryLevel(ctx); err == nil && level < lowBattery {
			tokens = max(tokens/2, 1)
		}
		return pipeline.RegenerateWith(a.Extraction, mc.ExtractionModel, params.WithMaxTokens(tokens))(ctx, prompt)
	}
}

// NewQueue starts the background workers feeding the orchestrator.
func (a *App) NewQueue(cfg common.QueueConfig, logger *slog.Logger) *async.ProcessorQueue {
	return async.NewProcessorQueue(a.Orchestrator, logger,
		async.WithWorkers(cfg.Workers),
		async.WithQueueSize(cfg.Size),
		async.WithProcessTimeout(cfg.ProcessTimeout),
	)
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// NewTranscriber picks the speech backend named by cfg.STT.
func NewTranscriber(cfg common.BackendsConfig, logger *slog.Logger) (stt.TranscriptionBackend, error) {
	switch cfg.STT {
	case "", "http":
		return whisper.NewClient(whisper.Config{
			BaseURL:  cfg.WhisperURL,
			Timeout:  cfg.Timeout,
			Language: cfg.Language,
		}, logger), nil
	case "cli":
		return whispercli.New(whispercli.Config{
			Binary:   cfg.WhisperBinary,
			Language: cfg.Language,
			Threads:  cfg.Threads,
		}, logger), nil
	case "sidecar":
		return sidecar.New(), nil
	default:
		return nil, fmt.Errorf("%w: unknown STT backend %q", common.ErrInvalidInput, cfg.STT)
	}
}
