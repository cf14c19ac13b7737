package flv

import (
	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/core/bitio"
	"github.com/Opafanls/hyflv/server/model"
	"github.com/pkg/errors"
)

// AudioPrefix returns the bytes preceding every audio frame: the tag header,
// plus the raw packet type for AAC.
func AudioPrefix(fd *model.FormatDescriptor) ([]byte, error) {
	hdr, err := AudioTagHeader(fd)
	if err != nil {
		return nil, err
	}
	if fd.Codec() == constdef.CodecAAC {
		return []byte{hdr, AAC_RAW}, nil
	}
	return []byte{hdr}, nil
}

// AudioPayload is AudioPrefix followed by the encoded frame.
func AudioPayload(fd *model.FormatDescriptor, data []byte) ([]byte, error) {
	prefix, err := AudioPrefix(fd)
	if err != nil {
		return nil, err
	}
	return concat(prefix, data), nil
}

func HasAudioStartData(fd *model.FormatDescriptor) bool {
	return fd.IsAudio() && hasAudioStart(fd.Codec())
}

func HasAudioFinishData(fd *model.FormatDescriptor) bool {
	return false
}

// AudioStartData builds the AAC sequence header tag body. Codecs without
// start data return nil, nil.
func AudioStartData(fd *model.FormatDescriptor) ([]byte, error) {
	hdr, err := AudioTagHeader(fd)
	if err != nil {
		return nil, err
	}
	if !hasAudioStart(fd.Codec()) {
		return nil, nil
	}
	if len(fd.Audio.Extradata) == 0 {
		return nil, errors.Wrapf(constdef.ErrMissingExtradata, "%s sequence header", fd.Codec())
	}
	return concat([]byte{hdr, AAC_SEQHDR}, fd.Audio.Extradata), nil
}

func AudioFinishData(fd *model.FormatDescriptor) ([]byte, error) {
	if !fd.IsAudio() {
		return nil, wrongKind(fd, constdef.MediaKindAudio)
	}
	return nil, nil
}

// VideoPrefix returns the bytes preceding every video frame. AVC adds the
// NALU packet type and a 24-bit composition time, which is always zero.
func VideoPrefix(fd *model.FormatDescriptor, keyframe bool) ([]byte, error) {
	hdr, err := VideoTagHeader(fd, keyframe)
	if err != nil {
		return nil, err
	}
	if fd.Codec() == constdef.CodecH264 {
		return avcPrefix(hdr, AVC_NALU), nil
	}
	return []byte{hdr}, nil
}

func VideoPayload(fd *model.FormatDescriptor, keyframe bool, data []byte) ([]byte, error) {
	prefix, err := VideoPrefix(fd, keyframe)
	if err != nil {
		return nil, err
	}
	return concat(prefix, data), nil
}

func HasVideoStartData(fd *model.FormatDescriptor) bool {
	return fd.IsVideo() && hasVideoStart(fd.Codec())
}

func HasVideoFinishData(fd *model.FormatDescriptor) bool {
	return fd.IsVideo() && hasVideoFinish(fd.Codec())
}

// VideoStartData builds the sequence header tag body carrying the parameter
// sets. It is framed as a keyframe with packet type 0.
func VideoStartData(fd *model.FormatDescriptor) ([]byte, error) {
	hdr, err := VideoTagHeader(fd, true)
	if err != nil {
		return nil, err
	}
	if !hasVideoStart(fd.Codec()) {
		return nil, nil
	}
	if len(fd.Video.Extradata) == 0 {
		return nil, errors.Wrapf(constdef.ErrMissingExtradata, "%s sequence header", fd.Codec())
	}
	return concat(avcPrefix(hdr, AVC_SEQHDR), fd.Video.Extradata), nil
}

// VideoFinishData builds the AVC end of sequence tag body.
func VideoFinishData(fd *model.FormatDescriptor) ([]byte, error) {
	hdr, err := VideoTagHeader(fd, true)
	if err != nil {
		return nil, err
	}
	if !hasVideoFinish(fd.Codec()) {
		return nil, nil
	}
	return avcPrefix(hdr, AVC_EOS), nil
}

func avcPrefix(hdr byte, packetType byte) []byte {
	b := make([]byte, avcPrefixLen)
	b[0] = hdr
	b[1] = packetType
	bitio.PutI24BE(b[2:5], 0)
	return b
}

func concat(prefix, data []byte) []byte {
	b := make([]byte, 0, len(prefix)+len(data))
	b = append(b, prefix...)
	return append(b, data...)
}
