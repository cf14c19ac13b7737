package model

import (
	"time"

	"github.com/Opafanls/hyflv/server/constdef"
	flvtag "github.com/yutopp/go-flv/tag"
)

// MediaSample is one encoded access unit. Format is borrowed from the track.
type MediaSample struct {
	Data     []byte
	Format   *FormatDescriptor
	Keyframe bool
	PTS      time.Duration
	// CompositionOffset is PTS-DTS for reordered video. Tags currently carry
	// a zero composition time regardless.
	CompositionOffset time.Duration
}

func (s *MediaSample) Kind() constdef.MediaKind {
	if s == nil || s.Format == nil {
		return 0
	}
	return s.Format.Kind
}

// TimestampMs is the FLV tag timestamp of the sample. Negative times clamp to zero.
func (s *MediaSample) TimestampMs() uint32 {
	if s.PTS <= 0 {
		return 0
	}
	return uint32(s.PTS / time.Millisecond)
}

// Tag is a complete FLV tag body ready for the sink.
type Tag struct {
	Type      flvtag.TagType
	Kind      constdef.MediaKind
	Timestamp uint32
	Data      []byte
}

func NewAudioTag(ts uint32, data []byte) *Tag {
	return &Tag{Type: flvtag.TagTypeAudio, Kind: constdef.MediaKindAudio, Timestamp: ts, Data: data}
}

func NewVideoTag(ts uint32, data []byte) *Tag {
	return &Tag{Type: flvtag.TagTypeVideo, Kind: constdef.MediaKindVideo, Timestamp: ts, Data: data}
}

func NewScriptTag(ts uint32, data []byte) *Tag {
	return &Tag{Type: flvtag.TagTypeScriptData, Kind: constdef.MediaKindMetadata, Timestamp: ts, Data: data}
}

func (t *Tag) IsVideo() bool {
	return t.Type == flvtag.TagTypeVideo
}

func (t *Tag) IsAudio() bool {
	return t.Type == flvtag.TagTypeAudio
}

func (t *Tag) IsMetadata() bool {
	return t.Type == flvtag.TagTypeScriptData
}

// Metadata is the onMetaData record. Video fields are meaningful only when
// HasVideo is set, audio fields only when HasAudio is set.
type Metadata struct {
	HasVideo      bool    `json:"has_video"`
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	FrameRate     float64 `json:"framerate,omitempty"`
	VideoDataRate float64 `json:"videodatarate,omitempty"`
	VideoCodecID  uint8   `json:"videocodecid,omitempty"`

	HasAudio        bool    `json:"has_audio"`
	AudioCodecID    uint8   `json:"audiocodecid,omitempty"`
	AudioDataRate   float64 `json:"audiodatarate,omitempty"`
	AudioSampleRate float64 `json:"audiosamplerate,omitempty"`
	AudioSampleSize uint32  `json:"audiosamplesize,omitempty"`
	Stereo          bool    `json:"stereo,omitempty"`
}
