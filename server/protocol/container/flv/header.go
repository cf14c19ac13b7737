package flv

import (
	"bytes"
	"math"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/model"
	"github.com/icza/bitio"
	"github.com/pkg/errors"
	flvtag "github.com/yutopp/go-flv/tag"
)

// AudioTagHeader returns the first byte of every audio tag payload for fd:
// sound format in the high nibble, then rate class, sample size and channel
// layout. AAC always reports 16 bit.
func AudioTagHeader(fd *model.FormatDescriptor) (byte, error) {
	if !fd.IsAudio() {
		return 0, wrongKind(fd, constdef.MediaKindAudio)
	}
	codec := fd.Codec()
	if !codec.Supported() {
		return 0, errors.Wrapf(constdef.ErrUnsupportedCodec, "audio codec %s", fd.CodecTag)
	}
	layout, err := audioLayout(fd.Audio, codec)
	if err != nil {
		return 0, err
	}
	return audioCodecIDs[codec] | layout, nil
}

func audioLayout(a *model.AudioFormat, codec constdef.Codec) (byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.TryWriteBits(0, 4)
	w.TryWriteBits(uint64(sampleRateClass(a.SampleRate)), 2)
	w.TryWriteBool(a.BitsPerChannel == 16 || codec == constdef.CodecAAC)
	w.TryWriteBool(a.ChannelCount == 2)
	if w.TryError != nil {
		return 0, w.TryError
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Bytes()[0], nil
}

// sampleRateClass compares the integer rate literally. There is no 48kHz
// class; every rate other than the three below lands in class 0.
func sampleRateClass(rate float64) flvtag.SoundRate {
	switch int(rate) {
	case 11025:
		return flvtag.SoundRate11kHz
	case 22050:
		return flvtag.SoundRate22kHz
	case 44100:
		return flvtag.SoundRate44kHz
	}
	return flvtag.SoundRate5_5kHz
}

// VideoTagHeader returns frame type (high nibble) OR'd with the FLV codec id.
// An unsupported codec yields 0 whatever the keyframe flag.
func VideoTagHeader(fd *model.FormatDescriptor, keyframe bool) (byte, error) {
	if !fd.IsVideo() {
		return 0, wrongKind(fd, constdef.MediaKindVideo)
	}
	codecID := videoCodecIDs[fd.Codec()]
	if codecID == 0 {
		return 0, errors.Wrapf(constdef.ErrUnsupportedCodec, "video codec %s", fd.CodecTag)
	}
	return frameTypeBits(keyframe) | codecID, nil
}

func frameTypeBits(keyframe bool) byte {
	if keyframe {
		return byte(flvtag.FrameTypeKeyFrame) << 4
	}
	return byte(flvtag.FrameTypeInterFrame) << 4
}

// DataRateKbps is the descriptor bit rate in kbit/s (1 kbit = 1024 bit).
// Missing or invalid rates are reported as 0.
func DataRateKbps(fd *model.FormatDescriptor) float64 {
	br := fd.BitRate()
	if br <= 0 || math.IsNaN(br) || math.IsInf(br, 0) {
		return 0
	}
	return br / 1024.0
}

// VideoFrameRate returns Timescale/Value of the frame rate rational. The
// rational stores frame duration inverted, so {Timescale: 30, Value: 1} is 30fps.
func VideoFrameRate(fd *model.FormatDescriptor) float64 {
	if !fd.IsVideo() || fd.Video.FrameRate == nil {
		return 0
	}
	r := fd.Video.FrameRate
	if r.Value <= 0 || r.Timescale <= 0 {
		return 0
	}
	return float64(r.Timescale) / float64(r.Value)
}

func AudioSampleRate(fd *model.FormatDescriptor) float64 {
	if !fd.IsAudio() || fd.Audio.SampleRate <= 0 || math.IsNaN(fd.Audio.SampleRate) {
		return 0
	}
	return fd.Audio.SampleRate
}

// AudioSampleSize is the bit depth reported in metadata; AAC counts as 16 bit.
func AudioSampleSize(fd *model.FormatDescriptor) uint32 {
	if !fd.IsAudio() {
		return 0
	}
	if fd.Codec() == constdef.CodecAAC {
		return 16
	}
	return fd.Audio.BitsPerChannel
}

func IsStereo(fd *model.FormatDescriptor) bool {
	return fd.IsAudio() && fd.Audio.ChannelCount == 2
}

func wrongKind(fd *model.FormatDescriptor, want constdef.MediaKind) error {
	var got constdef.MediaKind
	if fd != nil {
		got = fd.Kind
	}
	return errors.Wrapf(constdef.ErrWrongMediaKind, "want %s descriptor, got %s", want, got)
}
