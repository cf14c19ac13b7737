package task

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/require"
)

func TestTaskSystem(t *testing.T) {
	defer leaktest.Check(t)()
	ctx := context.Background()
	s := NewTaskSystem()

	var done int32
	for i := 0; i < 10; i++ {
		require.NoError(t, s.SubmitTask(ctx, func() { atomic.AddInt32(&done, 1) }))
	}
	require.NoError(t, s.SubmitTask(ctx, func() { panic("boom") }))
	s.Shutdown()

	require.Equal(t, int32(10), atomic.LoadInt32(&done))
	require.Zero(t, s.Running())
	require.Error(t, s.SubmitTask(ctx, func() {}))
}

func TestTaskSystem_SubmitDuringShutdown(t *testing.T) {
	defer leaktest.Check(t)()
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		s := NewTaskSystem()
		var started, finished int32
		var wg sync.WaitGroup
		wg.Add(4)
		for j := 0; j < 4; j++ {
			go func() {
				defer wg.Done()
				for k := 0; k < 50; k++ {
					err := s.SubmitTask(ctx, func() {
						time.Sleep(time.Microsecond)
						atomic.AddInt32(&finished, 1)
					})
					if err == nil {
						atomic.AddInt32(&started, 1)
					}
				}
			}()
		}
		s.Shutdown()
		wg.Wait()
		s.Shutdown()
		// every accepted task has run by the time Shutdown returns
		require.Equal(t, atomic.LoadInt32(&started), atomic.LoadInt32(&finished))
		require.Zero(t, s.Running())
	}
}
