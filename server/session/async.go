package session

import (
	"context"
	"sync"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/log"
	"github.com/Opafanls/hyflv/server/model"
)

// AsyncAppender queues samples for a session and appends them on one worker
// goroutine, so producers never wait on sink I/O unless the queue is full.
// Samples keep their arrival order.
type AsyncAppender struct {
	sess  *HySession
	ch    chan *model.MediaSample
	onErr func(*model.MediaSample, error)
	l     sync.RWMutex
	done  chan struct{}

	closed bool
}

func NewAsyncAppender(sess *HySession, size int, onErr func(*model.MediaSample, error)) *AsyncAppender {
	a := &AsyncAppender{
		sess:  sess,
		ch:    make(chan *model.MediaSample, size),
		onErr: onErr,
		done:  make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *AsyncAppender) loop() {
	defer close(a.done)
	for s := range a.ch {
		if err := a.sess.Append(a.sess.Ctx(), s); err != nil {
			if a.onErr != nil {
				a.onErr(s, err)
			} else {
				log.Warnf(a.sess.Ctx(), "async append to %s: %v", a.sess.Name(), err)
			}
		}
	}
}

// Append blocks while the queue is full.
func (a *AsyncAppender) Append(ctx context.Context, s *model.MediaSample) error {
	a.l.RLock()
	defer a.l.RUnlock()
	if a.closed {
		return constdef.ErrSessionClosed
	}
	select {
	case a.ch <- s:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAppend reports false when the queue is full or the appender is closed.
func (a *AsyncAppender) TryAppend(s *model.MediaSample) bool {
	a.l.RLock()
	defer a.l.RUnlock()
	if a.closed {
		return false
	}
	select {
	case a.ch <- s:
		return true
	default:
		return false
	}
}

// Close appends what is queued, then closes the session.
func (a *AsyncAppender) Close(ctx context.Context) error {
	a.l.Lock()
	if a.closed {
		a.l.Unlock()
		return constdef.ErrSessionClosed
	}
	a.closed = true
	close(a.ch)
	a.l.Unlock()
	<-a.done
	return a.sess.Close(ctx)
}
