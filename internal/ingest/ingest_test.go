package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/async"
)

type recordingQueue struct {
	mu   sync.Mutex
	jobs []async.Job
}

func (q *recordingQueue) Enqueue(_ context.Context, job async.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) Shutdown(context.Context) {}

func (q *recordingQueue) refs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, 0, len(q.jobs))
	for _, j := range q.jobs {
		out = append(out, j.InputRef)
	}
	return out
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))
}

func TestAllowedExt(t *testing.T) {
	require.True(t, AllowedExt(".WAV"))
	require.True(t, AllowedExt("m4a"))
	require.False(t, AllowedExt(".pdf"))
	require.True(t, IsHidden("/a/.partial.wav"))
	require.False(t, IsHidden("/a/memo.wav"))
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.wav"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "b.MP3"))
	touch(t, filepath.Join(root, ".cache", "c.wav"))
	touch(t, filepath.Join(root, ".d.wav"))

	files, stats, err := ScanDirectory(root, nil, true)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "a.wav"), filepath.Join(root, "sub", "b.MP3")}, files)
	require.Equal(t, uint32(2), stats.Matched)

	files, _, err = ScanDirectory(root, []string{".wav"}, false)
	require.NoError(t, err)
	require.Len(t, files, 3)

	_, _, err = ScanDirectory(" ", nil, true)
	require.Error(t, err)
}

func TestEnqueueDirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.wav"))
	touch(t, filepath.Join(root, "b.ogg"))

	q := &recordingQueue{}
	stats, err := EnqueueDirectory(context.Background(), q, root, constants.ModeBatch, true)
	require.NoError(t, err)
	require.Equal(t, uint32(2), stats.Queued)
	require.Equal(t, constants.ModeBatch, q.jobs[0].Mode)
}

func TestSpool_QueuesExistingAndNewFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "existing.wav"))

	q := &recordingQueue{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- NewSpool(q, root, "", nil).WithSettle(20 * time.Millisecond).Run(ctx)
	}()

	require.Eventually(t, func() bool { return len(q.refs()) == 1 }, 2*time.Second, 10*time.Millisecond)

	touch(t, filepath.Join(root, "new.m4a"))
	touch(t, filepath.Join(root, "ignored.txt"))
	require.Eventually(t, func() bool { return len(q.refs()) == 2 }, 2*time.Second, 10*time.Millisecond)
	require.ElementsMatch(t, []string{filepath.Join(root, "existing.wav"), filepath.Join(root, "new.m4a")}, q.refs())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("spool did not stop")
	}
}

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{}, nil)
	require.Error(t, err)
}
