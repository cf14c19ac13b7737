package server

import (
	"context"
	"testing"

	"github.com/Opafanls/hyflv/server/core/config"
	"github.com/Opafanls/hyflv/server/session"
	"github.com/stretchr/testify/require"
)

func TestHyflvServer_InitStop(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Writer.Dir = t.TempDir()
	cfg.Http.Ip = "127.0.0.1"
	cfg.Http.Port = 16789

	hy := NewHyflvServer(cfg)
	require.NoError(t, hy.Init())
	require.NotNil(t, session.DefaultHySessionManager)

	_, err := session.DefaultHySessionManager.CreateFile(ctx, "cam")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		hy.Start()
		close(done)
	}()
	require.NoError(t, hy.Stop(ctx))
	<-done
	require.Empty(t, session.DefaultHySessionManager.List())
	require.NoError(t, hy.Stop(ctx))
}

func TestHyflvServer_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Backend = "stdout"
	require.Error(t, NewHyflvServer(cfg).Init())
}
