package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

// ProcessorQueue feeds jobs to an InputProcessor from a bounded channel.
// One worker is the default since the device holds a single model at a time.
type ProcessorQueue struct {
	proc     InputProcessor
	logger   *slog.Logger
	workers  int
	timeout  time.Duration
	onResult func(Job, entity.ExtractionResult)

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.RWMutex
	closed bool
}

var _ Queue = (*ProcessorQueue)(nil)

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// WithResultHandler is called from the worker after each job.
func WithResultHandler(fn func(Job, entity.ExtractionResult)) Option {
	return func(q *ProcessorQueue) { q.onResult = fn }
}

func NewProcessorQueue(proc InputProcessor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		workers: 1,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("queue.worker.start", "worker_id", workerID)

				for job := range q.ch {
					q.run(workerID, job)
				}

				q.logger.Info("queue.worker.stop", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) run(workerID int, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	if job.TraceID != "" {
		ctx = common.WithRequestID(ctx, job.TraceID)
	}

	res := q.proc.ProcessInput(ctx, job.InputRef, job.Mode, job.JobID)
	log := q.logger.With("worker_id", workerID, "job_id", res.JobID, "input_ref", job.InputRef)
	if res.Validated {
		log.Info("queue.job.ok", "tasks", res.TaskCount, "waited_ms", time.Since(job.SubmittedAt).Milliseconds())
	} else {
		log.Warn("queue.job.fallback", "reason", res.Reason())
	}
	if q.onResult != nil {
		q.onResult(job, res)
	}
}

// Enqueue blocks while the buffer is full until ctx is done.
func (q *ProcessorQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.logger.Warn("queue.enqueue.closed", "input_ref", job.InputRef)
		return ErrClosed
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}
	select {
	case q.ch <- job:
		q.logger.Info("queue.enqueue.ok", "input_ref", job.InputRef, "mode", job.Mode)
		return nil
	default:
	}
	q.logger.Warn("queue.full", "input_ref", job.InputRef)
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len is the number of jobs waiting for a worker.
func (q *ProcessorQueue) Len() int { return len(q.ch) }

func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("queue.shutdown.interrupted", "pending", len(q.ch))
	case <-done:
		q.logger.Info("queue.shutdown.ok")
	}
}
