package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    *Config
		wantErr bool
	}{
		{
			name: "empty document keeps defaults",
			doc:  "",
			want: Default(),
		},
		{
			name: "overrides",
			doc: `
log:
  backend: zap
  level: debug
http:
  ip: 127.0.0.1
  port: "8080"
writer:
  dir: /tmp/flv
`,
			want: &Config{
				Log:    LogConfig{Backend: "zap", Level: "debug"},
				Http:   HttpConfig{Ip: "127.0.0.1", Port: 8080},
				Writer: WriterConfig{Dir: "/tmp/flv"},
			},
		},
		{
			name: "partial section",
			doc:  "http:\n  port: 9000\n",
			want: &Config{
				Log:    LogConfig{Backend: "logrus", Level: "info"},
				Http:   HttpConfig{Port: 9000},
				Writer: WriterConfig{Dir: "flv"},
			},
		},
		{name: "bad backend", doc: "log:\n  backend: syslog\n", wantErr: true},
		{name: "bad port", doc: "http:\n  port: 70000\n", wantErr: true},
		{name: "empty dir", doc: "writer:\n  dir: \"\"\n", wantErr: true},
		{name: "wrong type", doc: "http:\n  port: [1, 2]\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic, err := NewYamlConfigFromBytes([]byte(tt.doc))
			require.NoError(t, err)
			got, err := Resolve(ic)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hyflv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("writer:\n  dir: out\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "out", cfg.Writer.Dir)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestSetConfig(t *testing.T) {
	ic := NewYamlConfig("")
	require.NoError(t, ic.SetConfig(KeyHttp, map[string]interface{}{"port": 1234}))
	v, ok := ic.GetConfig(KeyHttp)
	require.True(t, ok)
	require.NotNil(t, v)

	var h HttpConfig
	require.NoError(t, ic.Load(string(KeyHttp), &h))
	require.Equal(t, 1234, h.Port)
}
