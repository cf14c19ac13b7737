package flv

import (
	"bytes"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/model"
	"github.com/pkg/errors"
	"github.com/yutopp/go-amf0"
)

const onMetaData = "onMetaData"

// BuildMetadata derives the onMetaData record from the track descriptors.
// Either descriptor may be nil, not both. Unsupported codecs are rejected so
// an unknown audio codec is never reported as linear PCM.
func BuildMetadata(video, audio *model.FormatDescriptor) (*model.Metadata, error) {
	if video == nil && audio == nil {
		return nil, errors.New("metadata needs at least one track")
	}
	md := &model.Metadata{}
	if video != nil {
		if !video.IsVideo() {
			return nil, wrongKind(video, constdef.MediaKindVideo)
		}
		if !video.Codec().Supported() {
			return nil, errors.Wrapf(constdef.ErrUnsupportedCodec, "video codec %s", video.CodecTag)
		}
		md.HasVideo = true
		md.Width = video.Video.Width
		md.Height = video.Video.Height
		md.FrameRate = VideoFrameRate(video)
		md.VideoDataRate = DataRateKbps(video)
		md.VideoCodecID = VideoCodecID(video.CodecTag)
	}
	if audio != nil {
		if !audio.IsAudio() {
			return nil, wrongKind(audio, constdef.MediaKindAudio)
		}
		if !audio.Codec().Supported() {
			return nil, errors.Wrapf(constdef.ErrUnsupportedCodec, "audio codec %s", audio.CodecTag)
		}
		md.HasAudio = true
		md.AudioCodecID = AudioCodecID(audio.CodecTag) >> 4
		md.AudioDataRate = DataRateKbps(audio)
		md.AudioSampleRate = AudioSampleRate(audio)
		md.AudioSampleSize = AudioSampleSize(audio)
		md.Stereo = IsStereo(audio)
	}
	return md, nil
}

// MetadataArray flattens md into the ECMA array written after "onMetaData".
func MetadataArray(md *model.Metadata) amf0.ECMAArray {
	arr := amf0.ECMAArray{}
	if md.HasVideo {
		arr["width"] = float64(md.Width)
		arr["height"] = float64(md.Height)
		arr["framerate"] = md.FrameRate
		arr["videodatarate"] = md.VideoDataRate
		arr["videocodecid"] = float64(md.VideoCodecID)
	}
	if md.HasAudio {
		arr["audiocodecid"] = float64(md.AudioCodecID)
		arr["audiodatarate"] = md.AudioDataRate
		arr["audiosamplerate"] = md.AudioSampleRate
		arr["audiosamplesize"] = float64(md.AudioSampleSize)
		arr["stereo"] = md.Stereo
	}
	return arr
}

// EncodeMetadata returns the script tag body: AMF0 "onMetaData" then the ECMA array.
func EncodeMetadata(md *model.Metadata) ([]byte, error) {
	if md == nil {
		return nil, errors.New("nil metadata")
	}
	var buf bytes.Buffer
	enc := amf0.NewEncoder(&buf)
	if err := enc.Encode(onMetaData); err != nil {
		return nil, errors.Wrap(err, "encode metadata name")
	}
	if err := enc.Encode(MetadataArray(md)); err != nil {
		return nil, errors.Wrap(err, "encode metadata array")
	}
	return buf.Bytes(), nil
}
