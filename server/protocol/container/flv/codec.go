package flv

import (
	"github.com/Opafanls/hyflv/server/constdef"
	flvtag "github.com/yutopp/go-flv/tag"
)

// audioCodecIDs holds SoundFormat values already shifted into the high nibble.
var audioCodecIDs = map[constdef.Codec]byte{
	constdef.CodecLinearPCM: byte(flvtag.SoundFormatLinearPCMPlatformEndian) << 4,
	constdef.CodecMP3:       byte(flvtag.SoundFormatMP3) << 4,
	constdef.CodecALaw:      byte(flvtag.SoundFormatG711ALawLogarithmicPCM) << 4,
	constdef.CodecULaw:      byte(flvtag.SoundFormatG711muLawLogarithmicPCM) << 4,
	constdef.CodecAAC:       byte(flvtag.SoundFormatAAC) << 4,
}

var videoCodecIDs = map[constdef.Codec]byte{
	constdef.CodecH263:       byte(flvtag.CodecIDSorensonH263),
	constdef.CodecH264:       byte(flvtag.CodecIDAVC),
	constdef.CodecMPEG4Video: byte(CodecIDMPEG4Part2),
}

// AudioCodecID maps a source audio codec tag to the FLV sound format nibble.
// Unknown tags yield 0, which is indistinguishable from linear PCM; use
// constdef.CodecFromTag to decide whether a tag is supported.
func AudioCodecID(tag constdef.CodecTag) byte {
	return audioCodecIDs[constdef.CodecFromTag(constdef.MediaKindAudio, tag)]
}

// VideoCodecID maps a source video codec tag to the FLV codec id, 0 if unknown.
func VideoCodecID(tag constdef.CodecTag) byte {
	return videoCodecIDs[constdef.CodecFromTag(constdef.MediaKindVideo, tag)]
}

func hasAudioStart(c constdef.Codec) bool {
	return c == constdef.CodecAAC
}

func hasVideoStart(c constdef.Codec) bool {
	return c == constdef.CodecH264 || c == constdef.CodecMPEG4Video
}

func hasVideoFinish(c constdef.Codec) bool {
	return c == constdef.CodecH264
}
