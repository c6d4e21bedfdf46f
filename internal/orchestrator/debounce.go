package orchestrator

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// debouncer remembers when each input last started or finished. The map is
// bounded; evicted inputs simply are not debounced.
type debouncer struct {
	window time.Duration

	mu   sync.Mutex
	last *lru.Cache[string, time.Time]
}

func newDebouncer(window time.Duration, size int) (*debouncer, error) {
	if size < 1 {
		size = 1
	}
	cache, err := lru.New[string, time.Time](size)
	if err != nil {
		return nil, err
	}
	return &debouncer{window: window, last: cache}, nil
}

// Reserve returns how long a job for key must wait before starting and
// records its effective start, so a third trigger queues behind the second.
func (d *debouncer) Reserve(key string, now time.Time) time.Duration {
	if d.window <= 0 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	start := now
	if last, ok := d.last.Get(key); ok {
		if next := last.Add(d.window); next.After(now) {
			start = next
		}
	}
	d.last.Add(key, start)
	return start.Sub(now)
}

// Touch marks key as processed at now unless a later start is already reserved.
func (d *debouncer) Touch(key string, now time.Time) {
	if d.window <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if last, ok := d.last.Get(key); ok && last.After(now) {
		return
	}
	d.last.Add(key, now)
}
