package flv

import (
	"bytes"
	"testing"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/yutopp/go-amf0"
)

func TestBuildMetadata(t *testing.T) {
	md, err := BuildMetadata(avcFormat(), aacFormat())
	require.NoError(t, err)
	require.Equal(t, &model.Metadata{
		HasVideo:        true,
		Width:           1280,
		Height:          720,
		FrameRate:       30,
		VideoDataRate:   2048,
		VideoCodecID:    7,
		HasAudio:        true,
		AudioCodecID:    10,
		AudioDataRate:   128,
		AudioSampleRate: 44100,
		AudioSampleSize: 16,
		Stereo:          true,
	}, md)

	md, err = BuildMetadata(nil, mp3Format(22050, 1, 8))
	require.NoError(t, err)
	require.False(t, md.HasVideo)
	require.Equal(t, uint8(2), md.AudioCodecID)
	require.Equal(t, uint32(8), md.AudioSampleSize)
	require.False(t, md.Stereo)

	_, err = BuildMetadata(nil, nil)
	require.Error(t, err)
	_, err = BuildMetadata(aacFormat(), nil)
	require.True(t, errors.Is(err, constdef.ErrWrongMediaKind))
	_, err = BuildMetadata(nil, avcFormat())
	require.True(t, errors.Is(err, constdef.ErrWrongMediaKind))
}

func TestBuildMetadata_Unsupported(t *testing.T) {
	opus := model.NewAudioFormat(constdef.FourCC("opus"), model.AudioFormat{SampleRate: 48000, ChannelCount: 2})
	_, err := BuildMetadata(nil, opus)
	require.True(t, errors.Is(err, constdef.ErrUnsupportedCodec))

	vp9 := model.NewVideoFormat(constdef.FourCC("vp09"), model.VideoFormat{Width: 16, Height: 16})
	_, err = BuildMetadata(vp9, aacFormat())
	require.True(t, errors.Is(err, constdef.ErrUnsupportedCodec))

	pcm := model.NewAudioFormat(constdef.TagLinearPCM, model.AudioFormat{SampleRate: 44100, ChannelCount: 1, BitsPerChannel: 16})
	md, err := BuildMetadata(nil, pcm)
	require.NoError(t, err)
	require.Zero(t, md.AudioCodecID)
}

func TestEncodeMetadata(t *testing.T) {
	md, err := BuildMetadata(avcFormat(), aacFormat())
	require.NoError(t, err)
	b, err := EncodeMetadata(md)
	require.NoError(t, err)

	dec := amf0.NewDecoder(bytes.NewReader(b))
	var name string
	require.NoError(t, dec.Decode(&name))
	require.Equal(t, "onMetaData", name)

	var arr amf0.ECMAArray
	require.NoError(t, dec.Decode(&arr))
	require.Equal(t, float64(1280), arr["width"])
	require.Equal(t, float64(720), arr["height"])
	require.Equal(t, float64(30), arr["framerate"])
	require.Equal(t, float64(7), arr["videocodecid"])
	require.Equal(t, float64(10), arr["audiocodecid"])
	require.Equal(t, float64(44100), arr["audiosamplerate"])
	require.Equal(t, true, arr["stereo"])
}

func TestEncodeMetadata_AudioOnly(t *testing.T) {
	md, err := BuildMetadata(nil, aacFormat())
	require.NoError(t, err)
	arr := MetadataArray(md)
	require.NotContains(t, arr, "width")
	require.Contains(t, arr, "audiocodecid")

	_, err = EncodeMetadata(nil)
	require.Error(t, err)
}
