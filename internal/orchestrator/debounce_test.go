package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncer_Reserve(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	d, err := newDebouncer(2*time.Second, 8)
	require.NoError(t, err)

	require.Zero(t, d.Reserve("a.wav", t0))
	require.Equal(t, 1500*time.Millisecond, d.Reserve("a.wav", t0.Add(500*time.Millisecond)))
	// a third trigger queues behind the second reservation
	require.Equal(t, 3*time.Second, d.Reserve("a.wav", t0.Add(time.Second)))
	require.Zero(t, d.Reserve("b.wav", t0.Add(time.Second)))
	require.Zero(t, d.Reserve("a.wav", t0.Add(10*time.Second)))
}

func TestDebouncer_Touch(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	d, err := newDebouncer(time.Second, 8)
	require.NoError(t, err)

	d.Touch("a.wav", t0)
	require.Equal(t, 600*time.Millisecond, d.Reserve("a.wav", t0.Add(400*time.Millisecond)))

	// finishing earlier than a pending reservation keeps the reservation
	d.Touch("a.wav", t0.Add(500*time.Millisecond))
	require.Equal(t, 900*time.Millisecond, d.Reserve("a.wav", t0.Add(1100*time.Millisecond)))
}

func TestDebouncer_Disabled(t *testing.T) {
	t0 := time.Now()
	d, err := newDebouncer(0, 0)
	require.NoError(t, err)
	d.Touch("a.wav", t0)
	require.Zero(t, d.Reserve("a.wav", t0))
	require.Zero(t, d.Reserve("a.wav", t0))
}

func TestDebouncer_EvictionForgetsOldest(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	d, err := newDebouncer(time.Minute, 2)
	require.NoError(t, err)
	d.Touch("a.wav", t0)
	d.Touch("b.wav", t0)
	d.Touch("c.wav", t0)
	require.Zero(t, d.Reserve("a.wav", t0.Add(time.Second)))
	require.Equal(t, 59*time.Second, d.Reserve("c.wav", t0.Add(time.Second)))
}
