package log

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMainLog(t *testing.T) {
	name := "cnss"
	err := errors.New("test err")
	data := map[string]interface{}{
		"1": 1,
		"2": "2",
	}
	Tracef(context.Background(), "Tracef: name:%s, err: %+v, data: %+v", name, err, data)
	Debugf(context.Background(), "Debugf: name:%s, err: %+v, data: %+v", name, err, data)
	Infof(context.Background(), "Infof: name:%s, err: %+v, data: %+v", name, err, data)
	Warnf(context.Background(), "Warnf: name:%s, err: %+v, data: %+v", name, err, data)
	Errorf(context.Background(), "Errorf: name:%s, err: %+v, data: %+v", name, err, data)
}

func TestBackends(t *testing.T) {
	tests := []struct {
		name    string
		logger  ILog
		param   interface{}
		wantErr bool
	}{
		{name: "logrus default", logger: &Logrus{}, param: nil},
		{name: "logrus trace", logger: &Logrus{}, param: &Param{Level: "trace"}},
		{name: "logrus bad level", logger: &Logrus{}, param: &Param{Level: "loud"}, wantErr: true},
		{name: "zap default", logger: &Zap{}, param: nil},
		{name: "zap trace", logger: &Zap{}, param: &Param{Level: "trace"}},
		{name: "zap bad level", logger: &Zap{}, param: &Param{Level: "loud"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.logger.Init(tt.param)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			ctx := GetCtxWithLogID()
			tt.logger.Tracef(ctx, "Tracef: %s", tt.name)
			tt.logger.Debugf(ctx, "Debugf: %s", tt.name)
			tt.logger.Infof(ctx, "Infof: %s", tt.name)
			tt.logger.Warnf(ctx, "Warnf: %s", tt.name)
			tt.logger.Errorf(ctx, "Errorf: %s", tt.name)
		})
	}
}

func TestInit(t *testing.T) {
	old := MainLog
	defer func() { MainLog = old }()

	require.NoError(t, Init(BackendZap, &Param{Level: "debug"}))
	_, ok := MainLog.(*Zap)
	require.True(t, ok)

	require.NoError(t, Init("", nil))
	_, ok = MainLog.(*Logrus)
	require.True(t, ok)

	require.Error(t, Init("syslog", nil))
}

func TestLogID(t *testing.T) {
	_, ok := LogID(GetEmptyCtx())
	require.False(t, ok)
	id, ok := LogID(GetCtxWithLogID())
	require.True(t, ok)
	require.NotZero(t, id)
}
