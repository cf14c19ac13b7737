package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestHySessionManager_Create(t *testing.T) {
	ctx := context.Background()
	m := NewHySessionManager(t.TempDir())

	a, err := m.Create(ctx, "b", &memSink{})
	require.NoError(t, err)
	_, err = m.Create(ctx, "a", &memSink{})
	require.NoError(t, err)
	_, err = m.Create(ctx, "b", &memSink{})
	require.True(t, errors.Is(err, constdef.ErrSessionExists))
	_, err = m.Create(ctx, "", &memSink{})
	require.Error(t, err)

	got, ok := m.Get("b")
	require.True(t, ok)
	require.Same(t, a, got)

	infos := m.List()
	require.Len(t, infos, 2)
	require.Equal(t, "a", infos[0].Name)
	require.Equal(t, "b", infos[1].Name)

	require.NoError(t, m.Close(ctx, "b"))
	_, ok = m.Get("b")
	require.False(t, ok)
	require.True(t, errors.Is(m.Close(ctx, "b"), constdef.ErrSessionNotFound))

	require.NoError(t, m.CloseAll(ctx))
	require.Empty(t, m.List())
}

func TestHySessionManager_CreateFile(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "out")
	m := NewHySessionManager(dir)

	sess, err := m.CreateFile(ctx, "cam")
	require.NoError(t, err)
	require.NoError(t, sess.Start(ctx, avcFormat(), aacFormat()))
	_, err = m.CreateFile(ctx, "cam")
	require.True(t, errors.Is(err, constdef.ErrSessionExists))

	for _, bad := range []string{"", "..", "a/b", `a\b`} {
		_, err = m.CreateFile(ctx, bad)
		require.Error(t, err, bad)
	}

	require.NoError(t, m.CloseAll(ctx))

	files, err := filepath.Glob(filepath.Join(dir, "cam_*.flv"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	b, err := os.ReadFile(files[0])
	require.NoError(t, err)
	require.Equal(t, []byte{'F', 'L', 'V', 0x01, 0x05}, b[:5])
	// header, prev size, script, two sequence headers and the end of sequence tag
	require.Greater(t, len(b), 9+4+4*15)
}
