package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

type fakeProcessor struct {
	mu      sync.Mutex
	seen    []string
	modes   []constants.Mode
	release chan struct{}
}

func (p *fakeProcessor) ProcessInput(_ context.Context, inputRef string, mode constants.Mode, jobID string) entity.ExtractionResult {
	if p.release != nil {
		<-p.release
	}
	p.mu.Lock()
	p.seen = append(p.seen, inputRef)
	p.modes = append(p.modes, mode)
	p.mu.Unlock()
	res := entity.NewValidatedResult([]entity.Task{{Title: "Buy milk", Priority: constants.PriorityMedium}}, inputRef, constants.ReasonNoTasks)
	res.JobID = jobID
	return res
}

func TestProcessorQueue_ProcessesInOrder(t *testing.T) {
	proc := &fakeProcessor{}
	var mu sync.Mutex
	var results []entity.ExtractionResult
	q := NewProcessorQueue(proc, nil, WithResultHandler(func(_ Job, res entity.ExtractionResult) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
	}))

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, Job{InputRef: "a.wav", JobID: "1"}))
	require.NoError(t, q.Enqueue(ctx, Job{InputRef: "b.wav", JobID: "2", Mode: constants.ModeBatch}))
	q.Shutdown(ctx)

	require.Equal(t, []string{"a.wav", "b.wav"}, proc.seen)
	require.Equal(t, []constants.Mode{"", constants.ModeBatch}, proc.modes)
	require.Len(t, results, 2)
	require.Equal(t, "2", results[1].JobID)
}

func TestProcessorQueue_EnqueueAfterShutdown(t *testing.T) {
	q := NewProcessorQueue(&fakeProcessor{}, nil)
	q.Shutdown(context.Background())
	q.Shutdown(context.Background())
	require.ErrorIs(t, q.Enqueue(context.Background(), Job{InputRef: "a.wav"}), ErrClosed)
}

func TestProcessorQueue_FullQueueHonorsContext(t *testing.T) {
	proc := &fakeProcessor{release: make(chan struct{})}
	q := NewProcessorQueue(proc, nil, WithQueueSize(1), WithWorkers(1))

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, Job{InputRef: "busy.wav"}))
	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, time.Millisecond)
	require.NoError(t, q.Enqueue(ctx, Job{InputRef: "buffered.wav"}))

	tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, q.Enqueue(tctx, Job{InputRef: "dropped.wav"}), context.DeadlineExceeded)

	close(proc.release)
	q.Shutdown(ctx)
	require.Equal(t, []string{"busy.wav", "buffered.wav"}, proc.seen)
}

func TestProcessorQueue_ShutdownInterrupted(t *testing.T) {
	proc := &fakeProcessor{release: make(chan struct{})}
	q := NewProcessorQueue(proc, nil)
	require.NoError(t, q.Enqueue(context.Background(), Job{InputRef: "slow.wav"}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	q.Shutdown(ctx)
	close(proc.release)
}
