package flv

import (
	"context"
	"sync"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/log"
	"github.com/Opafanls/hyflv/server/model"
	"github.com/pkg/errors"
)

type TrackState uint8

const (
	TrackUninitialized TrackState = iota
	TrackSequenceHeaderEmitted
	TrackSteady
)

func (s TrackState) String() string {
	switch s {
	case TrackUninitialized:
		return "uninitialized"
	case TrackSequenceHeaderEmitted:
		return "sequence_header_emitted"
	case TrackSteady:
		return "steady"
	}
	return "invalid"
}

type track struct {
	format *model.FormatDescriptor
	state  TrackState
	lastTs uint32
}

// Muxer turns samples into ordered tag bodies. It owns the per track state:
// the sequence header of a track is produced exactly once, before its first
// frame, and Finish produces the end of sequence tags still owed.
type Muxer struct {
	l        sync.Mutex
	tracks   map[constdef.MediaKind]*track
	finished bool
}

func NewMuxer() *Muxer {
	return &Muxer{
		tracks: make(map[constdef.MediaKind]*track),
	}
}

// Start opens the track described by fd ahead of its first sample and
// returns its sequence header tag, if the codec has one.
func (m *Muxer) Start(ctx context.Context, fd *model.FormatDescriptor) ([]*model.Tag, error) {
	m.l.Lock()
	defer m.l.Unlock()
	if err := m.checkTrack(ctx, fd); err != nil {
		return nil, err
	}
	if tr, ok := m.tracks[fd.Kind]; ok {
		if !tr.format.SameTrack(fd) {
			return nil, errors.Wrapf(constdef.ErrCodecChanged, "%s track", fd.Kind)
		}
		return nil, nil
	}
	tr, tag, err := m.open(ctx, fd, 0)
	if err != nil {
		return nil, err
	}
	m.tracks[fd.Kind] = tr
	if tag == nil {
		return nil, nil
	}
	return []*model.Tag{tag}, nil
}

// Mux returns the tags for s in write order. The first sample of a track
// needing start data is preceded by its sequence header.
func (m *Muxer) Mux(ctx context.Context, s *model.MediaSample) ([]*model.Tag, error) {
	if s == nil || s.Format == nil {
		return nil, constdef.ErrInvalidSample
	}
	m.l.Lock()
	defer m.l.Unlock()
	fd := s.Format
	if err := m.checkTrack(ctx, fd); err != nil {
		return nil, err
	}

	ts := s.TimestampMs()
	tags := make([]*model.Tag, 0, 2)
	tr, ok := m.tracks[fd.Kind]
	if ok && !tr.format.SameTrack(fd) {
		return nil, errors.Wrapf(constdef.ErrCodecChanged, "%s track %s -> %s", fd.Kind, tr.format.CodecTag, fd.CodecTag)
	}
	if !ok {
		var hdr *model.Tag
		var err error
		tr, hdr, err = m.open(ctx, fd, ts)
		if err != nil {
			return nil, err
		}
		if hdr != nil {
			tags = append(tags, hdr)
		}
	}

	tag, err := frameTag(s, ts)
	if err != nil {
		return nil, err
	}
	m.tracks[fd.Kind] = tr
	tr.state = TrackSteady
	tr.lastTs = ts
	return append(tags, tag), nil
}

// Finish returns one end of sequence tag per started track whose codec has
// finish data. Later calls return nothing and Mux fails with ErrMuxerFinished.
func (m *Muxer) Finish(ctx context.Context) ([]*model.Tag, error) {
	m.l.Lock()
	defer m.l.Unlock()
	if m.finished {
		return nil, nil
	}
	m.finished = true

	var tags []*model.Tag
	for _, kind := range []constdef.MediaKind{constdef.MediaKindVideo, constdef.MediaKindAudio} {
		tr, ok := m.tracks[kind]
		if !ok || tr.state == TrackUninitialized {
			continue
		}
		data, err := finishData(tr.format)
		if err != nil {
			return tags, err
		}
		if data == nil {
			continue
		}
		log.Debugf(ctx, "flv muxer: %s end of sequence at %dms", kind, tr.lastTs)
		tags = append(tags, newTag(kind, tr.lastTs, data))
	}
	return tags, nil
}

func (m *Muxer) State(kind constdef.MediaKind) TrackState {
	m.l.Lock()
	defer m.l.Unlock()
	if tr, ok := m.tracks[kind]; ok {
		return tr.state
	}
	return TrackUninitialized
}

// Format returns the descriptor a track was opened with.
func (m *Muxer) Format(kind constdef.MediaKind) (*model.FormatDescriptor, bool) {
	m.l.Lock()
	defer m.l.Unlock()
	tr, ok := m.tracks[kind]
	if !ok {
		return nil, false
	}
	return tr.format, true
}

func (m *Muxer) checkTrack(ctx context.Context, fd *model.FormatDescriptor) error {
	if m.finished {
		return constdef.ErrMuxerFinished
	}
	if fd == nil {
		return constdef.ErrInvalidSample
	}
	if !fd.IsAudio() && !fd.IsVideo() {
		log.Errorf(ctx, "flv muxer: descriptor kind %s without matching format", fd.Kind)
		return errors.Wrapf(constdef.ErrWrongMediaKind, "descriptor kind %s", fd.Kind)
	}
	if _, ok := m.tracks[fd.Kind]; !ok && !fd.Codec().Supported() {
		log.Warnf(ctx, "flv muxer: drop %s sample, unsupported codec %s", fd.Kind, fd.CodecTag)
		return errors.Wrapf(constdef.ErrUnsupportedCodec, "%s codec %s", fd.Kind, fd.CodecTag)
	}
	return nil
}

// open builds a new track and its sequence header. Nothing is recorded when
// the header cannot be built, so the track stays uninitialized.
func (m *Muxer) open(ctx context.Context, fd *model.FormatDescriptor, ts uint32) (*track, *model.Tag, error) {
	tr := &track{format: fd, state: TrackSteady}
	data, err := startData(fd)
	if err != nil {
		log.Errorf(ctx, "flv muxer: start %s track: %v", fd.Kind, err)
		return nil, nil, err
	}
	if fd.Codec() == constdef.CodecAAC {
		if c, err := ParseAACConfig(fd.Audio.Extradata); err != nil {
			log.Warnf(ctx, "flv muxer: aac extradata not parsable: %v", err)
		} else {
			log.Debugf(ctx, "flv muxer: aac object type %d, %dHz, channel config %d", c.ObjectType, c.SampleRate, c.ChannelConfig)
		}
	}
	log.Infof(ctx, "flv muxer: open %s track codec %s", fd.Kind, fd.Codec())
	if data == nil {
		return tr, nil, nil
	}
	tr.state = TrackSequenceHeaderEmitted
	tr.lastTs = ts
	return tr, newTag(fd.Kind, ts, data), nil
}

func startData(fd *model.FormatDescriptor) ([]byte, error) {
	if fd.IsAudio() {
		return AudioStartData(fd)
	}
	return VideoStartData(fd)
}

func finishData(fd *model.FormatDescriptor) ([]byte, error) {
	if fd.IsAudio() {
		return AudioFinishData(fd)
	}
	return VideoFinishData(fd)
}

func frameTag(s *model.MediaSample, ts uint32) (*model.Tag, error) {
	var data []byte
	var err error
	if s.Format.IsAudio() {
		data, err = AudioPayload(s.Format, s.Data)
	} else {
		data, err = VideoPayload(s.Format, s.Keyframe, s.Data)
	}
	if err != nil {
		return nil, err
	}
	return newTag(s.Format.Kind, ts, data), nil
}

func newTag(kind constdef.MediaKind, ts uint32, data []byte) *model.Tag {
	if kind.IsAudio() {
		return model.NewAudioTag(ts, data)
	}
	return model.NewVideoTag(ts, data)
}
