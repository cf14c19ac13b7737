package flv

import (
	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/model"
)

var (
	aacConfig = []byte{0x12, 0x10} // AAC LC, 44100Hz, stereo
	avcConfig = []byte{0x01, 0x64, 0x00, 0x1f, 0xff, 0xe1, 0x00, 0x04, 0x67, 0x64, 0x00, 0x1f, 0x01, 0x00, 0x02, 0x68, 0xee}
)

func aacFormat() *model.FormatDescriptor {
	return model.NewAudioFormat(constdef.TagAAC, model.AudioFormat{
		SampleRate:   44100,
		ChannelCount: 2,
		BitRate:      128 * 1024,
		Extradata:    aacConfig,
	})
}

func mp3Format(rate float64, channels, bits uint32) *model.FormatDescriptor {
	return model.NewAudioFormat(constdef.TagMP3, model.AudioFormat{
		SampleRate:     rate,
		ChannelCount:   channels,
		BitsPerChannel: bits,
	})
}

func avcFormat() *model.FormatDescriptor {
	return model.NewVideoFormat(constdef.TagH264, model.VideoFormat{
		Width:     1280,
		Height:    720,
		FrameRate: &model.Rational{Timescale: 30, Value: 1},
		BitRate:   2048 * 1024,
		Extradata: avcConfig,
	})
}

func videoFormat(tag constdef.CodecTag, extradata []byte) *model.FormatDescriptor {
	return model.NewVideoFormat(tag, model.VideoFormat{Width: 320, Height: 240, Extradata: extradata})
}
