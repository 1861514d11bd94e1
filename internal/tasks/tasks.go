// Package tasks runs fixed-interval background work. The supervisor owns the
// one-shot start guard, so callers may invoke Start from any connect/ready
// path without double-spawning loops.
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task struct {
	Name        string
	Description string
	Interval    time.Duration
	Run         func(ctx context.Context) error
}

type Supervisor struct {
	logger *zap.SugaredLogger
	tasks  []Task
	once   sync.Once
}

func NewSupervisor(logger *zap.SugaredLogger) *Supervisor {
	return &Supervisor{logger: logger}
}

// Add registers a task. Must be called before Start.
func (s *Supervisor) Add(t Task) {
	s.tasks = append(s.tasks, t)
}

// Start launches one loop per task. Subsequent calls are no-ops.
func (s *Supervisor) Start(ctx context.Context) {
	s.once.Do(func() {
		for _, t := range s.tasks {
			go s.loop(ctx, t)
		}
	})
}

func (s *Supervisor) loop(ctx context.Context, t Task) {
	// initial delay so tasks do not all open transactions at startup
	select {
	case <-time.After(t.Interval):
	case <-ctx.Done():
		return
	}

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		s.logger.Infof("TASK: %s (%s interval) [%s]", t.Name, t.Interval, t.Description)
		if err := t.Run(ctx); err != nil {
			s.logger.Errorf("TASK %s errored: %s.", t.Name, err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
