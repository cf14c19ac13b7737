package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/Opafanls/hyflv/server/task"
	"github.com/pkg/errors"
)

type HyEvent uint32

const (
	invalid HyEvent = iota
	OnSessionCreate
	OnSessionClose
	invalid0
)

func (e HyEvent) String() string {
	switch e {
	case OnSessionCreate:
		return "session_create"
	case OnSessionClose:
		return "session_close"
	}
	return fmt.Sprintf("event(%d)", uint32(e))
}

var ErrQueueFull = errors.New("event queue full")

// EventWrap carries the payload of one event to the handlers.
type EventWrap struct {
	Ctx  context.Context
	Data interface{}
}

var DefaultEventHandler0 IEventSrv

func Init(ts task.ISystem) {
	DefaultEventHandler0 = NewDefaultEventHandler(ts, 1024)
	DefaultEventHandler0.Start()
}

func NewDefaultEventHandler(ts task.ISystem, size int) *DefaultEventHandler {
	d := &DefaultEventHandler{}
	d.ts = ts
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	d.eventHandlers = make(map[HyEvent][]IEventHandler)
	d.msgChan = make(chan *wrapper, size)
	return d
}

type IEventSrv interface {
	Start()
	Stop()
	PushEvent(context.Context, HyEvent, interface{}) error
	Register(event HyEvent, handler IEventHandler)
}

type IEventHandler interface {
	Event() []HyEvent
	Handle(event HyEvent, wrapper *EventWrap)
}

func RegisterEventHandler(handler IEventHandler) error {
	if DefaultEventHandler0 == nil {
		return errors.New("event system not initialised")
	}
	es := handler.Event()
	for _, e := range es {
		if e <= invalid || e >= invalid0 {
			return fmt.Errorf("event %d invalid", e)
		}
		DefaultEventHandler0.Register(e, handler)
	}
	return nil
}

// PushEvent0 is a no-op until Init has been called.
func PushEvent0(ctx context.Context, e HyEvent, data interface{}) error {
	if DefaultEventHandler0 == nil {
		return nil
	}
	return PushEvent(ctx, e, data, 0)
}

// PushEvent retries a full queue retry times, forever when retry < 0.
func PushEvent(ctx context.Context, e HyEvent, data interface{}, retry int) error {
	err := DefaultEventHandler0.PushEvent(ctx, e, data)
	for i := 0; err != nil && (retry < 0 || i < retry); i++ {
		err = DefaultEventHandler0.PushEvent(ctx, e, data)
	}
	return err
}

//default handler

type DefaultEventHandler struct {
	ts            task.ISystem
	stop          chan struct{}
	done          chan struct{}
	stopOnce      sync.Once
	msgChan       chan *wrapper
	l             sync.RWMutex
	eventHandlers map[HyEvent][]IEventHandler
}

type wrapper struct {
	event HyEvent
	data  *EventWrap
}

func (d *DefaultEventHandler) PushEvent(ctx context.Context, event HyEvent, data interface{}) error {
	w := &wrapper{event: event, data: &EventWrap{Ctx: ctx, Data: data}}
	select {
	case d.msgChan <- w:
	default:
		return errors.Wrap(ErrQueueFull, event.String())
	}
	return nil
}

func (d *DefaultEventHandler) Start() {
	err := d.ts.SubmitTask(context.Background(), func() {
		defer close(d.done)
		for {
			select {
			case <-d.stop:
				d.drain()
				return
			case w := <-d.msgChan:
				d.handle(w)
			}
		}
	})
	if err != nil {
		close(d.done)
	}
}

func (d *DefaultEventHandler) drain() {
	for {
		select {
		case w := <-d.msgChan:
			d.handle(w)
		default:
			return
		}
	}
}

// Stop handles the queued events and waits for the loop to exit.
func (d *DefaultEventHandler) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
	<-d.done
}

func (d *DefaultEventHandler) handle(w *wrapper) {
	d.l.RLock()
	hs := d.eventHandlers[w.event]
	d.l.RUnlock()
	for _, h := range hs {
		h.Handle(w.event, w.data)
	}
}

func (d *DefaultEventHandler) Register(event HyEvent, handler IEventHandler) {
	d.l.Lock()
	defer d.l.Unlock()
	d.eventHandlers[event] = append(d.eventHandlers[event], handler)
}
