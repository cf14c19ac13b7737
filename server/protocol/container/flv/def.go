package flv

import flvtag "github.com/yutopp/go-flv/tag"

// CodecIDMPEG4Part2 is the FLV video codec id for MPEG-4 Part 2, which go-flv
// does not name.
const CodecIDMPEG4Part2 flvtag.CodecID = 9

const (
	AAC_SEQHDR = byte(flvtag.AACPacketTypeSequenceHeader)
	AAC_RAW    = byte(flvtag.AACPacketTypeRaw)

	AVC_SEQHDR = byte(flvtag.AVCPacketTypeSequenceHeader)
	AVC_NALU   = byte(flvtag.AVCPacketTypeNALU)
	AVC_EOS    = byte(flvtag.AVCPacketTypeEOS)
)

const (
	headerLen      = 11
	maxTagDataSize = 0xffffff

	avcPrefixLen = 5
)
