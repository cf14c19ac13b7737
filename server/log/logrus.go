package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Logrus struct {
	l *logrus.Logger
}

func (l *Logrus) Init(param interface{}) error {
	p := paramOf(param)
	l.l = logrus.New()
	lvl, err := logrus.ParseLevel(p.Level)
	if err != nil {
		return err
	}
	l.l.SetLevel(lvl)
	return nil
}

func (l *Logrus) entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(l.l)
	if id, ok := LogID(ctx); ok {
		e = e.WithField("logid", id)
	}
	return e
}

func (l *Logrus) Tracef(ctx context.Context, format string, args ...interface{}) {
	l.entry(ctx).Tracef(format, args...)
}

func (l *Logrus) Debugf(ctx context.Context, format string, args ...interface{}) {
	l.entry(ctx).Debugf(format, args...)
}

func (l *Logrus) Infof(ctx context.Context, format string, args ...interface{}) {
	l.entry(ctx).Infof(format, args...)
}

func (l *Logrus) Warnf(ctx context.Context, format string, args ...interface{}) {
	l.entry(ctx).Warnf(format, args...)
}

func (l *Logrus) Errorf(ctx context.Context, format string, args ...interface{}) {
	l.entry(ctx).Errorf(format, args...)
}
