package constdef

import "fmt"

type MediaKind uint16

const (
	_ MediaKind = iota
	MediaKindVideo
	MediaKindAudio
	MediaKindMetadata
)

func (m MediaKind) IsVideo() bool {
	return m == MediaKindVideo
}

func (m MediaKind) IsAudio() bool {
	return m == MediaKindAudio
}

func (m MediaKind) String() string {
	switch m {
	case MediaKindVideo:
		return "video"
	case MediaKindAudio:
		return "audio"
	case MediaKindMetadata:
		return "metadata"
	}
	return "unknown"
}

// CodecTag is a four character code from the source codec namespace.
type CodecTag uint32

func FourCC(s string) CodecTag {
	if len(s) != 4 {
		return 0
	}
	return CodecTag(uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3]))
}

func (t CodecTag) String() string {
	b := []byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", uint32(t))
		}
	}
	return string(b)
}

var (
	TagLinearPCM  = FourCC("lpcm")
	TagMP3        = FourCC(".mp3")
	TagALaw       = FourCC("alaw")
	TagULaw       = FourCC("ulaw")
	TagAAC        = FourCC("aac ")
	TagH263       = FourCC("h263")
	TagH264       = FourCC("avc1")
	TagMPEG4Video = FourCC("mp4v")
)

// Codec is the closed set of codecs an FLV stream can carry.
// CodecUnsupported must be handled by every caller.
type Codec uint8

const (
	CodecUnsupported Codec = iota
	CodecLinearPCM
	CodecMP3
	CodecALaw
	CodecULaw
	CodecAAC
	CodecH263
	CodecH264
	CodecMPEG4Video
)

var audioCodecs = map[CodecTag]Codec{
	TagLinearPCM: CodecLinearPCM,
	TagMP3:       CodecMP3,
	TagALaw:      CodecALaw,
	TagULaw:      CodecULaw,
	TagAAC:       CodecAAC,
}

var videoCodecs = map[CodecTag]Codec{
	TagH263:       CodecH263,
	TagH264:       CodecH264,
	TagMPEG4Video: CodecMPEG4Video,
}

// CodecFromTag resolves a source codec tag within the namespace of the given kind.
func CodecFromTag(kind MediaKind, tag CodecTag) Codec {
	var table map[CodecTag]Codec
	switch kind {
	case MediaKindAudio:
		table = audioCodecs
	case MediaKindVideo:
		table = videoCodecs
	default:
		return CodecUnsupported
	}
	if c, ok := table[tag]; ok {
		return c
	}
	return CodecUnsupported
}

func (c Codec) Supported() bool {
	return c != CodecUnsupported
}

func (c Codec) Kind() MediaKind {
	switch c {
	case CodecLinearPCM, CodecMP3, CodecALaw, CodecULaw, CodecAAC:
		return MediaKindAudio
	case CodecH263, CodecH264, CodecMPEG4Video:
		return MediaKindVideo
	}
	return 0
}

func (c Codec) String() string {
	switch c {
	case CodecLinearPCM:
		return "pcm"
	case CodecMP3:
		return "mp3"
	case CodecALaw:
		return "alaw"
	case CodecULaw:
		return "ulaw"
	case CodecAAC:
		return "aac"
	case CodecH263:
		return "h263"
	case CodecH264:
		return "h264"
	case CodecMPEG4Video:
		return "mpeg4"
	}
	return "unsupported"
}
