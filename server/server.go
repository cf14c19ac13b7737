package server

import (
	"context"
	"sync"
	"time"

	"github.com/Opafanls/hyflv/server/core/config"
	"github.com/Opafanls/hyflv/server/core/event"
	"github.com/Opafanls/hyflv/server/log"
	"github.com/Opafanls/hyflv/server/session"
	"github.com/Opafanls/hyflv/server/srv"
	"github.com/Opafanls/hyflv/server/task"
	"github.com/hashicorp/go-multierror"
)

type HyflvServer struct {
	cfg      *config.Config
	ctx      context.Context
	http     *srv.HttpServer
	stopOnce sync.Once
	stopChan chan struct{}
}

func NewHyflvServer(cfg *config.Config) *HyflvServer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &HyflvServer{
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}
}

// Init sets up logging, the task system, the session registry and the API.
func (hy *HyflvServer) Init() error {
	if err := hy.cfg.Validate(); err != nil {
		return err
	}
	if err := log.Init(hy.cfg.Log.Backend, &log.Param{Level: hy.cfg.Log.Level}); err != nil {
		return err
	}
	hy.ctx = log.GetCtxWithLogID()
	task.InitTaskSystem() //init first
	event.Init(task.Default())
	if err := event.RegisterEventHandler(&sessionEventLogger{}); err != nil {
		return err
	}
	session.InitHySessionManager(hy.cfg.Writer.Dir)
	hy.http = srv.NewHttpServer(&hy.cfg.Http, session.DefaultHySessionManager)
	return hy.http.Init()
}

// Start serves the API and blocks until Stop is called.
func (hy *HyflvServer) Start() {
	task.SubmitTask0(hy.ctx, func() {
		if err := hy.http.Serve(); err != nil {
			log.Errorf(hy.ctx, "%s serve err: %+v", hy.http.Name(), err)
		}
	})
	log.Infof(hy.ctx, "hyflv server started, writing to %s", hy.cfg.Writer.Dir)
	hy.wait()
}

// Stop shuts the API down and closes every live session.
func (hy *HyflvServer) Stop(ctx context.Context) error {
	var result *multierror.Error
	hy.stopOnce.Do(func() {
		if hy.http != nil {
			if err := hy.http.Close(ctx); err != nil {
				result = multierror.Append(result, err)
			}
		}
		if session.DefaultHySessionManager != nil {
			if err := session.DefaultHySessionManager.CloseAll(ctx); err != nil {
				result = multierror.Append(result, err)
			}
		}
		if event.DefaultEventHandler0 != nil {
			event.DefaultEventHandler0.Stop()
		}
		task.Shutdown()
		close(hy.stopChan)
	})
	return result.ErrorOrNil()
}

func (hy *HyflvServer) wait() {
	<-hy.stopChan
}

type sessionEventLogger struct{}

func (sessionEventLogger) Event() []event.HyEvent {
	return []event.HyEvent{event.OnSessionCreate, event.OnSessionClose}
}

func (sessionEventLogger) Handle(e event.HyEvent, w *event.EventWrap) {
	info, ok := w.Data.(session.Info)
	if !ok {
		return
	}
	switch e {
	case event.OnSessionCreate:
		log.Infof(w.Ctx, "session %s created", info.Name)
	case event.OnSessionClose:
		log.Infof(w.Ctx, "session %s closed after %s, video:%s audio:%s bytes:%d dropped:%d",
			info.Name, time.Since(info.StartedAt).Round(time.Millisecond), info.VideoCodec, info.AudioCodec, info.Bytes, info.Dropped)
	}
}
