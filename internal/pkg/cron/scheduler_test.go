package cron

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSweeper struct {
	mu    sync.Mutex
	idles []time.Duration
}

func (f *fakeSweeper) Sweep(idle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idles = append(f.idles, idle)
	return 2
}

func (f *fakeSweeper) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.idles)
}

func TestScheduler_RunOnceRunsEveryJob(t *testing.T) {
	s := NewScheduler(nil)
	var ran []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "first")
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "second")
		return nil
	})

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestScheduler_StartTicksUntilStopped(t *testing.T) {
	s := NewScheduler(nil)
	var n atomic.Int32
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		n.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, n.Load())
}

func TestScheduler_StopsWithContext(t *testing.T) {
	s := NewScheduler(nil)
	s.AddJob("tick", time.Millisecond, func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSessionJobs_SweepsWithIdleTimeout(t *testing.T) {
	sweeper := &fakeSweeper{}
	jobs := NewSessionJobs(sweeper, time.Hour, 30*time.Minute, nil)
	s := NewScheduler(nil)
	jobs.RegisterJobs(s)

	s.RunOnce(context.Background())

	assert.Equal(t, 1, sweeper.calls())
	assert.Equal(t, []time.Duration{30 * time.Minute}, sweeper.idles)
}
