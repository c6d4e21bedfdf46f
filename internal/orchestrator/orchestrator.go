// Package orchestrator sequences transcription, cleaning, extraction,
// validation and persistence for one audio input at a time, adapting to the
// device power state. ProcessInput never fails: every problem becomes a
// fallback result.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/device"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/normalize"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/pipeline"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/repository"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt"
)

// assumedBattery is used when the battery cannot be read.
const assumedBattery = 100

type Orchestrator struct {
	logger      *slog.Logger
	profile     device.Profile
	transcriber stt.TranscriptionBackend
	extraction  *pipeline.ExtractionStage
	validation  *pipeline.ValidationStage
	storage     repository.Storage
	cfg         common.OrchestratorConfig

	normalizer *normalize.Normalizer
	recorder   repository.JobRecorder
	metrics    *Metrics
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error

	debounce *debouncer
	sttMu    sync.Mutex // one speech model resident at a time

	mu     sync.Mutex
	active map[string]*activeJob
}

type activeJob struct {
	job      *entity.InferenceJob
	canceled bool
}

type Option func(*Orchestrator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithSleep replaces the context-aware debounce sleep.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

func WithJobRecorder(r repository.JobRecorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithNormalizer(n *normalize.Normalizer) Option {
	return func(o *Orchestrator) { o.normalizer = n }
}

func New(
	logger *slog.Logger,
	profile device.Profile,
	transcriber stt.TranscriptionBackend,
	extraction *pipeline.ExtractionStage,
	validation *pipeline.ValidationStage,
	storage repository.Storage,
	cfg common.OrchestratorConfig,
	opts ...Option,
) (*Orchestrator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if profile == nil || transcriber == nil || extraction == nil || storage == nil {
		return nil, fmt.Errorf("%w: orchestrator needs a profile, transcriber, extraction stage and storage", common.ErrInvalidInput)
	}
	if validation == nil {
		validation = pipeline.NewValidationStage(nil, logger)
	}
	deb, err := newDebouncer(cfg.DebounceWindow, cfg.DebounceCacheSize)
	if err != nil {
		return nil, fmt.Errorf("debounce cache: %w", err)
	}
	o := &Orchestrator{
		logger:      logger,
		profile:     profile,
		transcriber: transcriber,
		extraction:  extraction,
		validation:  validation,
		storage:     storage,
		cfg:         cfg,
		normalizer:  normalize.New(normalize.DefaultFillers),
		now:         time.Now,
		sleep:       sleepContext,
		debounce:    deb,
		active:      make(map[string]*activeJob),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	return o, nil
}

// ProcessInput runs the whole pipeline for inputRef. An empty jobID is
// generated; an empty requested mode defers to the device profile.
func (o *Orchestrator) ProcessInput(ctx context.Context, inputRef string, requested constants.Mode, jobID string) (result entity.ExtractionResult) {
	if jobID == "" {
		jobID = uuid.NewString()
	}
	ctx = common.WithJobID(ctx, jobID)
	log := o.logger.With("job_id", jobID, "input_ref", inputRef)

	aj := &activeJob{job: &entity.InferenceJob{
		JobID:         jobID,
		InputRef:      inputRef,
		RequestedMode: requested,
		ActualMode:    requested,
		Status:        constants.JobStatusCreated,
		StartTime:     o.now(),
		ModelsUsed:    []string{},
	}}
	if !o.register(aj) {
		log.Warn("orchestrator.job.duplicate")
		res := entity.NewFallbackResult(constants.PlaceholderTranscript,
			pipeline.NewStageError(constants.JobStatusCreated, constants.ReasonJobActive, fmt.Errorf("job %s is already running", jobID)).Error())
		res.JobID = jobID
		return res
	}

	var transcript string
	defer func() {
		if r := recover(); r != nil {
			log.Error("orchestrator.panic", "panic", r, "status", o.snapshot(aj).Status)
			result = o.fail(aj, transcript, pipeline.NewStageError(o.snapshot(aj).Status, constants.ReasonInternal, fmt.Errorf("panic: %v", r)))
		}
		result = o.cleanup(ctx, log, aj, result)
	}()

	transcript, result = o.run(ctx, log, aj)
	return result
}

// run executes the stages in order. It returns the best transcript seen so far.
func (o *Orchestrator) run(ctx context.Context, log *slog.Logger, aj *activeJob) (string, entity.ExtractionResult) {
	job := aj.job

	// debounce
	if wait := o.debounce.Reserve(job.InputRef, o.now()); wait > 0 {
		o.advance(aj, constants.JobStatusDebounced)
		o.metrics.DebounceWait.Observe(wait.Seconds())
		log.Info("orchestrator.debounce.wait", "wait_ms", wait.Milliseconds())
		if err := o.sleep(ctx, wait); err != nil {
			return "", o.fail(aj, "", pipeline.NewStageError(constants.JobStatusDebounced, constants.ReasonCanceled, err))
		}
	}

	mc, err := o.profile.ModelConfiguration(ctx)
	if err != nil {
		log.Error("orchestrator.config.failed", "error", err)
		return "", o.fail(aj, "", pipeline.NewStageError(constants.JobStatusCreated, constants.ReasonConfigUnavailable, err))
	}
	battery, err := o.profile.BatteryLevel(ctx)
	if err != nil {
		log.Warn("orchestrator.battery.unreadable", "error", err, "assumed", assumedBattery)
		battery = assumedBattery
	}
	mode, lowPower := o.resolveMode(log, job.RequestedMode, mc.Mode, battery)
	maxTokens := mc.MaxTokens
	if lowPower {
		maxTokens = max(maxTokens/2, 1)
	}

	o.update(aj, func(j *entity.InferenceJob) {
		j.ActualMode = mode
		j.StartTime = o.now()
		j.BatteryAtStart = battery
		j.ModelsUsed = []string{mc.TranscriptionModel, mc.ExtractionModel}
		j.MaxTokens = maxTokens
	})
	if o.recorder != nil {
		if err := o.recorder.Start(ctx, o.snapshotPtr(aj)); err != nil {
			log.Warn("orchestrator.record.start_failed", "error", err)
		}
	}
	log.Info("orchestrator.job.start",
		"requested_mode", job.RequestedMode,
		"mode", mode,
		"battery", battery,
		"max_tokens", maxTokens,
	)

	// transcription
	if !o.advance(aj, constants.JobStatusTranscribing) {
		return "", o.canceled(aj, "")
	}
	tr, err := o.transcribe(ctx, mc.TranscriptionModel, job.InputRef)
	if err != nil {
		log.Error("orchestrator.transcribe.failed", "error", err)
		return "", o.fail(aj, "", pipeline.NewStageError(constants.JobStatusTranscribing, constants.ReasonTranscriptionFailed, err))
	}

	// cleaning
	if !o.advance(aj, constants.JobStatusCleaning) {
		return tr.Text, o.canceled(aj, tr.Text)
	}
	cleaned := o.normalizer.Normalize(tr.Text)
	log.Debug("orchestrator.clean.ok", "raw_chars", len(tr.Text), "clean_chars", len(cleaned))

	// extraction
	if !o.advance(aj, constants.JobStatusExtracting) {
		return cleaned, o.canceled(aj, cleaned)
	}
	params := o.extraction.Params().WithMaxTokens(maxTokens)
	extracted := o.extraction.Run(ctx, cleaned, mc.ExtractionModel, params)

	// validation
	if !o.advance(aj, constants.JobStatusValidating) {
		return cleaned, o.canceled(aj, cleaned)
	}
	result := extracted.Result
	if extracted.Raw != "" {
		result = o.validation.ValidateAndFallback(ctx, extracted.Raw, cleaned)
	}
	result.JobID = job.JobID

	// persistence
	if !o.advance(aj, constants.JobStatusPersisting) {
		return cleaned, o.canceled(aj, cleaned)
	}
	payload, err := json.Marshal(result)
	if err == nil {
		err = o.storage.Save(ctx, job.JobID, cleaned, payload, map[string]any{
			"input_ref":      job.InputRef,
			"requested_mode": string(job.RequestedMode),
			"actual_mode":    string(mode),
			"battery":        battery,
			"models":         []string{mc.TranscriptionModel, mc.ExtractionModel},
			"quantization":   string(mc.Quantization),
			"max_tokens":     maxTokens,
			"attempts":       extracted.Attempts,
			"raw_transcript": tr.Text,
			"language":       tr.Language,
		})
	}
	if err != nil {
		// the computed result stands; only the job is marked failed
		log.Error("orchestrator.persist.failed", "error", err)
		o.markFailed(aj, pipeline.NewStageError(constants.JobStatusPersisting, constants.ReasonStorageFailed, err))
		return cleaned, result
	}

	if !o.advance(aj, constants.JobStatusCompleted) {
		return cleaned, o.canceled(aj, cleaned)
	}
	o.update(aj, func(j *entity.InferenceJob) {
		j.Success = result.Validated
		if !result.Validated {
			reason := result.Reason()
			j.Error = &reason
		}
	})
	return cleaned, result
}

// transcribe loads, runs and unloads the speech model.
func (o *Orchestrator) transcribe(ctx context.Context, modelPath, inputRef string) (stt.Transcript, error) {
	o.sttMu.Lock()
	defer o.sttMu.Unlock()
	defer func() {
		if err := o.transcriber.Unload(context.WithoutCancel(ctx)); err != nil {
			o.logger.Warn("orchestrator.transcribe.unload_failed", "error", err)
		}
	}()
	if err := o.transcriber.Load(ctx, modelPath); err != nil {
		return stt.Transcript{}, fmt.Errorf("load %s: %w", modelPath, err)
	}
	tr, err := o.transcriber.TranscribeFile(ctx, inputRef)
	if err != nil {
		return stt.Transcript{}, err
	}
	if tr.Text == "" || normalize.NormalizePartial(tr.Text) == "" {
		return stt.Transcript{}, common.ErrEmptyTranscript
	}
	return tr, nil
}

// resolveMode applies the battery tiers. The critical tier forces batch the
// same way the low tier does and is only logged louder.
func (o *Orchestrator) resolveMode(log *slog.Logger, requested, configured constants.Mode, battery int) (constants.Mode, bool) {
	mode := requested
	if mode == "" {
		mode = configured
	}
	if mode == "" {
		mode = constants.ModeInteractive
	}
	lowPower := battery < o.cfg.BatteryLowThreshold
	if lowPower {
		mode = constants.ModeBatch
		o.metrics.BatteryForced.WithLabelValues("low").Inc()
		log.Info("orchestrator.battery.low", "battery", battery, "threshold", o.cfg.BatteryLowThreshold)
	}
	if battery < o.cfg.BatteryCriticalThreshold {
		mode = constants.ModeBatch
		o.metrics.BatteryForced.WithLabelValues("critical").Inc()
		log.Warn("orchestrator.battery.critical", "battery", battery, "threshold", o.cfg.BatteryCriticalThreshold)
	}
	return mode, lowPower
}

// cleanup runs on every exit path of ProcessInput.
func (o *Orchestrator) cleanup(ctx context.Context, log *slog.Logger, aj *activeJob, result entity.ExtractionResult) entity.ExtractionResult {
	ctx = context.WithoutCancel(ctx)
	end := o.now()

	var batteryEnd *int
	if level, err := o.profile.BatteryLevel(ctx); err == nil {
		batteryEnd = &level
	}

	o.mu.Lock()
	canceled := aj.canceled
	if o.active[aj.job.JobID] == aj {
		delete(o.active, aj.job.JobID)
	}
	o.metrics.ActiveJobs.Set(float64(len(o.active)))
	o.mu.Unlock()

	if canceled && reasonCode(result.Reason()) != constants.ReasonCanceled {
		result = o.canceled(aj, bestTranscript(result))
	}
	result.JobID = aj.job.JobID
	if result.Tasks == nil {
		result.Tasks = []entity.Task{}
	}

	o.update(aj, func(j *entity.InferenceJob) {
		j.EndTime = &end
		j.BatteryAtEnd = batteryEnd
		res := result
		j.Result = &res
		if !j.Status.IsTerminal() {
			j.Status = constants.JobStatusFailed
		}
	})
	o.debounce.Touch(aj.job.InputRef, end)

	job := o.snapshot(aj)
	o.metrics.JobsTotal.WithLabelValues(string(job.Status)).Inc()
	o.metrics.JobDuration.Observe(end.Sub(job.StartTime).Seconds())
	if !result.Validated {
		o.metrics.FallbackTotal.WithLabelValues(reasonCode(result.Reason())).Inc()
	}
	if o.recorder != nil {
		if err := o.record(ctx, &job); err != nil {
			log.Warn("orchestrator.record.finish_failed", "error", err)
		}
	}
	log.Info("orchestrator.job.done",
		"status", job.Status,
		"success", job.Success,
		"tasks", result.TaskCount,
		"mode", job.ActualMode,
		"elapsed_ms", end.Sub(job.StartTime).Milliseconds(),
	)
	return result
}

// record writes the terminal job. Jobs that failed before their start was
// recorded are inserted first.
func (o *Orchestrator) record(ctx context.Context, job *entity.InferenceJob) error {
	err := o.recorder.Finish(ctx, job)
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	if err := o.recorder.Start(ctx, job); err != nil {
		return err
	}
	return o.recorder.Finish(ctx, job)
}

// Cancel marks a running job failed and drops it from the registry. The
// in-flight backend call finishes and its result is discarded at the next
// stage boundary.
func (o *Orchestrator) Cancel(jobID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	aj, ok := o.active[jobID]
	if !ok {
		return fmt.Errorf("job %s: %w", jobID, common.ErrNotFound)
	}
	aj.canceled = true
	if !aj.job.Status.IsTerminal() {
		msg := pipeline.NewStageError(aj.job.Status, constants.ReasonCanceled, common.ErrCanceled).Error()
		aj.job.Status = constants.JobStatusFailed
		aj.job.Error = &msg
	}
	delete(o.active, jobID)
	o.metrics.ActiveJobs.Set(float64(len(o.active)))
	o.logger.Info("orchestrator.job.cancel", "job_id", jobID, "status", aj.job.Status)
	return nil
}

// Status returns a copy of an active job.
func (o *Orchestrator) Status(jobID string) (entity.InferenceJob, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	aj, ok := o.active[jobID]
	if !ok {
		return entity.InferenceJob{}, false
	}
	return copyJob(aj.job), true
}

// ActiveJobs returns copies of all running jobs ordered by start time.
func (o *Orchestrator) ActiveJobs() []entity.InferenceJob {
	o.mu.Lock()
	out := make([]entity.InferenceJob, 0, len(o.active))
	for _, aj := range o.active {
		out = append(out, copyJob(aj.job))
	}
	o.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (o *Orchestrator) register(aj *activeJob) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, exists := o.active[aj.job.JobID]; exists {
		return false
	}
	o.active[aj.job.JobID] = aj
	o.metrics.ActiveJobs.Set(float64(len(o.active)))
	return true
}

// advance moves the job to status unless it was canceled.
func (o *Orchestrator) advance(aj *activeJob, status constants.JobStatus) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if aj.canceled {
		return false
	}
	if !constants.CanTransition(aj.job.Status, status) {
		o.logger.Warn("orchestrator.status.unexpected", "job_id", aj.job.JobID, "from", aj.job.Status, "to", status)
	}
	aj.job.Status = status
	return true
}

func (o *Orchestrator) update(aj *activeJob, f func(*entity.InferenceJob)) {
	o.mu.Lock()
	f(aj.job)
	o.mu.Unlock()
}

func (o *Orchestrator) snapshot(aj *activeJob) entity.InferenceJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	return copyJob(aj.job)
}

func (o *Orchestrator) snapshotPtr(aj *activeJob) *entity.InferenceJob {
	j := o.snapshot(aj)
	return &j
}

func (o *Orchestrator) markFailed(aj *activeJob, err *pipeline.StageError) {
	msg := err.Error()
	o.update(aj, func(j *entity.InferenceJob) {
		j.Status = constants.JobStatusFailed
		j.Success = false
		j.Error = &msg
	})
}

// fail marks the job failed and synthesizes the fallback result.
func (o *Orchestrator) fail(aj *activeJob, transcript string, err *pipeline.StageError) entity.ExtractionResult {
	o.markFailed(aj, err)
	if transcript == "" {
		transcript = constants.PlaceholderTranscript
	}
	res := entity.NewFallbackResult(transcript, err.Error())
	res.JobID = aj.job.JobID
	return res
}

func (o *Orchestrator) canceled(aj *activeJob, transcript string) entity.ExtractionResult {
	return o.fail(aj, transcript, pipeline.NewStageError(o.snapshot(aj).Status, constants.ReasonCanceled, common.ErrCanceled))
}

func copyJob(j *entity.InferenceJob) entity.InferenceJob {
	c := *j
	c.ModelsUsed = append([]string(nil), j.ModelsUsed...)
	return c
}

func bestTranscript(res entity.ExtractionResult) string {
	if res.FallbackTranscript != nil {
		return *res.FallbackTranscript
	}
	return ""
}

// reasonCode keeps the "<code>" part of a "<code>: <detail>" reason.
func reasonCode(reason string) string {
	if reason == "" {
		return "unknown"
	}
	code, _, _ := strings.Cut(reason, ":")
	return code
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
