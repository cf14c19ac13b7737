package task

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Opafanls/hyflv/server/log"
	"github.com/pkg/errors"
)

var defaultTaskSystem ISystem

func InitTaskSystem() {
	defaultTaskSystem = NewTaskSystem()
}

func Default() ISystem {
	return defaultTaskSystem
}

func SubmitTask0(ctx context.Context, job Task) {
	err := defaultTaskSystem.SubmitTask(ctx, job)
	if err != nil {
		log.Errorf(ctx, "submit task failed: %+v", err)
		return
	}
}

func Shutdown() {
	if defaultTaskSystem != nil {
		defaultTaskSystem.Shutdown()
	}
}

type Task func()

type ISystem interface {
	SubmitTask(ctx context.Context, job Task) error
	Running() int32
	Shutdown()
}

// DefaultTaskSystem runs every task on its own goroutine and recovers panics.
type DefaultTaskSystem struct {
	goroutineNum int32
	// l orders wg.Add in SubmitTask before wg.Wait in Shutdown.
	l      sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewTaskSystem() *DefaultTaskSystem {
	return &DefaultTaskSystem{}
}

func (d *DefaultTaskSystem) SubmitTask(ctx context.Context, job Task) error {
	d.l.Lock()
	if d.closed {
		d.l.Unlock()
		return errors.New("task system is shut down")
	}
	atomic.AddInt32(&d.goroutineNum, 1)
	d.wg.Add(1)
	d.l.Unlock()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errTmp, ok := r.(error)
				if !ok {
					errTmp = errors.Errorf("Panic: %+v", r)
				}
				err := errors.WithStack(errTmp)
				log.Errorf(ctx, "task panic: %+v", err)
			}
			atomic.AddInt32(&d.goroutineNum, -1)
			d.wg.Done()
		}()
		job()
	}()
	return nil
}

func (d *DefaultTaskSystem) Running() int32 {
	return atomic.LoadInt32(&d.goroutineNum)
}

// Shutdown refuses new tasks and waits for the running ones.
func (d *DefaultTaskSystem) Shutdown() {
	d.l.Lock()
	d.closed = true
	d.l.Unlock()
	d.wg.Wait()
}
