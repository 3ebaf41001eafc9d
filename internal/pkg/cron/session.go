package cron

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper drops client instances idle for longer than the given duration.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

type SessionJobs struct {
	sweeper  Sweeper
	interval time.Duration
	idle     time.Duration
	logger   *slog.Logger
}

func NewSessionJobs(sweeper Sweeper, interval, idle time.Duration, logger *slog.Logger) *SessionJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionJobs{sweeper: sweeper, interval: interval, idle: idle, logger: logger}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_idle_sessions", j.interval, j.SweepIdleSessions)
}

// SweepIdleSessions drops in-memory instances of browsers that went idle.
// Their sessions stay persisted and rehydrate on the next request.
func (j *SessionJobs) SweepIdleSessions(ctx context.Context) error {
	if n := j.sweeper.Sweep(j.idle); n > 0 {
		j.logger.Debug("Swept idle sessions", "count", n)
	}
	return nil
}
