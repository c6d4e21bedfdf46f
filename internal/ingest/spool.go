package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/async"
)

// Spool watches a drop directory and queues each settled recording.
type Spool struct {
	queue  async.Queue
	cfg    WatchConfig
	mode   constants.Mode
	logger *slog.Logger
}

func NewSpool(queue async.Queue, dir string, mode constants.Mode, logger *slog.Logger) *Spool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Spool{
		queue: queue,
		cfg: WatchConfig{
			Roots:       []string{dir},
			InitialScan: true,
			Settle:      500 * time.Millisecond,
		},
		mode:   mode,
		logger: logger,
	}
}

// WithSettle overrides how long a file must be quiet before it is queued.
func (s *Spool) WithSettle(d time.Duration) *Spool {
	s.cfg.Settle = d
	return s
}

// Run blocks until ctx is done or the queue closes.
func (s *Spool) Run(ctx context.Context) error {
	events, errs, err := StartWatcher(ctx, s.cfg, s.logger)
	if err != nil {
		return err
	}
	s.logger.Info("spool.start", "roots", s.cfg.Roots, "mode", s.mode)
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-events:
			if !ok {
				return nil
			}
			err := s.queue.Enqueue(ctx, async.Job{InputRef: path, Mode: s.mode})
			switch {
			case err == nil:
			case errors.Is(err, async.ErrClosed), ctx.Err() != nil:
				return nil
			default:
				s.logger.Warn("spool.enqueue.failed", "path", path, "error", err)
			}
		case err, ok := <-errs:
			if ok && err != nil {
				s.logger.Warn("spool.watch.error", "error", err)
			}
		}
	}
}
