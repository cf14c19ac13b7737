package flv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAACConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    AACConfig
		wantErr bool
	}{
		{name: "lc 44100 stereo", data: []byte{0x12, 0x10}, want: AACConfig{ObjectType: 2, SampleRate: 44100, ChannelConfig: 2}},
		{name: "lc 48000 mono", data: []byte{0x11, 0x88}, want: AACConfig{ObjectType: 2, SampleRate: 48000, ChannelConfig: 1}},
		{name: "short", data: []byte{0x12}, wantErr: true},
		{name: "empty", data: nil, wantErr: true},
		{name: "reserved rate index", data: []byte{0x16, 0x90}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAACConfig(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
