package tasks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSupervisorRunsTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs int64
	s := NewSupervisor(zap.NewNop().Sugar())
	s.Add(Task{
		Name:     "test",
		Interval: 10 * time.Millisecond,
		Run: func(context.Context) error {
			atomic.AddInt64(&runs, 1)
			return nil
		},
	})

	s.Start(ctx)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestSupervisorStartIsOneShot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs int64
	s := NewSupervisor(zap.NewNop().Sugar())
	s.Add(Task{
		Name:     "test",
		Interval: 20 * time.Millisecond,
		Run: func(context.Context) error {
			atomic.AddInt64(&runs, 1)
			return nil
		},
	})

	s.Start(ctx)
	s.Start(ctx)
	s.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	// a doubled loop would have run at least twice per interval
	assert.LessOrEqual(t, atomic.LoadInt64(&runs), int64(3))
}

func TestSupervisorStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var runs int64
	s := NewSupervisor(zap.NewNop().Sugar())
	s.Add(Task{
		Name:     "test",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) error {
			atomic.AddInt64(&runs, 1)
			return nil
		},
	})

	s.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	after := atomic.LoadInt64(&runs)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&runs))
}
