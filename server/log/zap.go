package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Zap struct {
	l *zap.SugaredLogger
}

func (z *Zap) Init(param interface{}) error {
	p := paramOf(param)
	var lvl zapcore.Level
	// zap has no trace level, it folds into debug
	level := p.Level
	if level == "trace" {
		level = "debug"
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	z.l = l.Sugar()
	return nil
}

func (z *Zap) with(ctx context.Context) *zap.SugaredLogger {
	if id, ok := LogID(ctx); ok {
		return z.l.With("logid", id)
	}
	return z.l
}

func (z *Zap) Tracef(ctx context.Context, format string, args ...interface{}) {
	z.with(ctx).Debugf(format, args...)
}

func (z *Zap) Debugf(ctx context.Context, format string, args ...interface{}) {
	z.with(ctx).Debugf(format, args...)
}

func (z *Zap) Infof(ctx context.Context, format string, args ...interface{}) {
	z.with(ctx).Infof(format, args...)
}

func (z *Zap) Warnf(ctx context.Context, format string, args ...interface{}) {
	z.with(ctx).Warnf(format, args...)
}

func (z *Zap) Errorf(ctx context.Context, format string, args ...interface{}) {
	z.with(ctx).Errorf(format, args...)
}
