package log

import (
	"context"
	"fmt"
	"time"
)

var MainLog ILog
var Ctx = context.Background()

type logIDKey struct{}

const (
	BackendLogrus = "logrus"
	BackendZap    = "zap"
)

func init() {
	MainLog = &Logrus{}
	_ = MainLog.Init(nil)
}

type ILog interface {
	Init(param interface{}) error
	Tracef(ctx context.Context, format string, args ...interface{})
	Debugf(ctx context.Context, format string, args ...interface{})
	Infof(ctx context.Context, format string, args ...interface{})
	Warnf(ctx context.Context, format string, args ...interface{})
	Errorf(ctx context.Context, format string, args ...interface{})
}

// Param configures a backend. Level uses logrus names (trace, debug, info, warn, error).
type Param struct {
	Level string
}

// Init replaces MainLog with the named backend.
func Init(backend string, param *Param) error {
	var l ILog
	switch backend {
	case "", BackendLogrus:
		l = &Logrus{}
	case BackendZap:
		l = &Zap{}
	default:
		return fmt.Errorf("unknown log backend %q", backend)
	}
	if err := l.Init(param); err != nil {
		return err
	}
	MainLog = l
	return nil
}

func Tracef(ctx context.Context, format string, args ...interface{}) {
	MainLog.Tracef(ctx, format, args...)
}
func Debugf(ctx context.Context, format string, args ...interface{}) {
	MainLog.Debugf(ctx, format, args...)
}
func Infof(ctx context.Context, format string, args ...interface{}) {
	MainLog.Infof(ctx, format, args...)
}
func Warnf(ctx context.Context, format string, args ...interface{}) {
	MainLog.Warnf(ctx, format, args...)
}
func Errorf(ctx context.Context, format string, args ...interface{}) {
	MainLog.Errorf(ctx, format, args...)
}

func GetEmptyCtx() context.Context {
	return context.Background()
}

func GetCtxWithLogID() context.Context {
	return WithLogID(context.Background())
}

func WithLogID(ctx context.Context) context.Context {
	return context.WithValue(ctx, logIDKey{}, time.Now().UnixNano())
}

// LogID returns the id attached by WithLogID, if any.
func LogID(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(logIDKey{}).(int64)
	return id, ok
}

func paramOf(param interface{}) *Param {
	if p, ok := param.(*Param); ok && p != nil {
		return p
	}
	return &Param{Level: "info"}
}
