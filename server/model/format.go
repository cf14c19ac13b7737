package model

import (
	"bytes"

	"github.com/Opafanls/hyflv/server/constdef"
)

// Rational is a time value expressed as Value/Timescale seconds.
type Rational struct {
	Timescale int64
	Value     int64
}

type AudioFormat struct {
	SampleRate     float64
	ChannelCount   uint32
	BitsPerChannel uint32
	BitRate        float64
	Extradata      []byte
}

type VideoFormat struct {
	Width     int
	Height    int
	FrameRate *Rational
	BitRate   float64
	Extradata []byte
}

// FormatDescriptor describes one track. It must not be mutated once samples
// referencing it have been handed to a muxer.
type FormatDescriptor struct {
	Kind     constdef.MediaKind
	CodecTag constdef.CodecTag
	Audio    *AudioFormat
	Video    *VideoFormat
}

func NewAudioFormat(tag constdef.CodecTag, a AudioFormat) *FormatDescriptor {
	return &FormatDescriptor{Kind: constdef.MediaKindAudio, CodecTag: tag, Audio: &a}
}

func NewVideoFormat(tag constdef.CodecTag, v VideoFormat) *FormatDescriptor {
	return &FormatDescriptor{Kind: constdef.MediaKindVideo, CodecTag: tag, Video: &v}
}

func (f *FormatDescriptor) IsAudio() bool {
	return f != nil && f.Kind == constdef.MediaKindAudio && f.Audio != nil
}

func (f *FormatDescriptor) IsVideo() bool {
	return f != nil && f.Kind == constdef.MediaKindVideo && f.Video != nil
}

func (f *FormatDescriptor) Codec() constdef.Codec {
	if f == nil {
		return constdef.CodecUnsupported
	}
	return constdef.CodecFromTag(f.Kind, f.CodecTag)
}

func (f *FormatDescriptor) Extradata() []byte {
	switch {
	case f.IsAudio():
		return f.Audio.Extradata
	case f.IsVideo():
		return f.Video.Extradata
	}
	return nil
}

func (f *FormatDescriptor) BitRate() float64 {
	switch {
	case f.IsAudio():
		return f.Audio.BitRate
	case f.IsVideo():
		return f.Video.BitRate
	}
	return 0
}

// SameTrack reports whether o describes the same codec configuration as f.
func (f *FormatDescriptor) SameTrack(o *FormatDescriptor) bool {
	if f == o {
		return true
	}
	if f == nil || o == nil {
		return false
	}
	return f.Kind == o.Kind && f.CodecTag == o.CodecTag && bytes.Equal(f.Extradata(), o.Extradata())
}
