package session

import (
	"context"
	"sync"
	"time"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/log"
	"github.com/Opafanls/hyflv/server/model"
	"github.com/Opafanls/hyflv/server/protocol/container"
	"github.com/Opafanls/hyflv/server/protocol/container/flv"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type HySessionStat struct {
	IsRunning bool
	VideoTags uint64
	AudioTags uint64
	Bytes     uint64
	Dropped   uint64
}

func (s *HySessionStat) Running() bool {
	return s.IsRunning
}

// Info is a point in time view of a session.
type Info struct {
	Name       string          `json:"name"`
	Running    bool            `json:"running"`
	StartedAt  time.Time       `json:"started_at"`
	Metadata   *model.Metadata `json:"metadata,omitempty"`
	VideoCodec string          `json:"video_codec,omitempty"`
	VideoState string          `json:"video_state"`
	AudioCodec string          `json:"audio_codec,omitempty"`
	AudioState string          `json:"audio_state"`
	VideoTags  uint64          `json:"video_tags"`
	AudioTags  uint64          `json:"audio_tags"`
	Bytes      uint64          `json:"bytes"`
	Dropped    uint64          `json:"dropped"`
}

// HySession writes one FLV stream: it feeds samples through the muxer and
// hands the resulting tags to the sink in order.
type HySession struct {
	name      string
	sessCtx   context.Context
	l         sync.Mutex
	muxer     *flv.Muxer
	sink      container.TagWriter
	stat      HySessionStat
	metadata  *model.Metadata
	started   bool
	startedAt time.Time

	headerWritten bool
	hasVideo      bool
	hasAudio      bool
}

func NewHySession(ctx context.Context, name string, sink container.TagWriter) *HySession {
	return &HySession{
		name:      name,
		sessCtx:   ctx,
		muxer:     flv.NewMuxer(),
		sink:      sink,
		stat:      HySessionStat{IsRunning: true},
		startedAt: time.Now(),
	}
}

func (hy *HySession) Name() string {
	return hy.name
}

func (hy *HySession) Ctx() context.Context {
	return hy.sessCtx
}

// Start writes the file header, the onMetaData tag and the sequence headers
// of the given tracks. Either descriptor may be nil. Every track is checked
// before anything reaches the sink, so a failed Start leaves no output and
// may be retried. Once started, samples of an undeclared kind are rejected.
func (hy *HySession) Start(ctx context.Context, video, audio *model.FormatDescriptor) error {
	hy.l.Lock()
	defer hy.l.Unlock()
	if !hy.stat.Running() {
		return constdef.ErrSessionClosed
	}
	if hy.started {
		return errors.Errorf("session %s already started", hy.name)
	}
	md, err := flv.BuildMetadata(video, audio)
	if err != nil {
		return constdef.NewHyError(hy.name, err)
	}
	for _, fd := range []*model.FormatDescriptor{video, audio} {
		if fd == nil {
			continue
		}
		if err := hy.checkStart(fd); err != nil {
			return constdef.NewHyError(hy.name, err)
		}
	}
	if !hy.headerWritten {
		script, err := flv.EncodeMetadata(md)
		if err != nil {
			return constdef.NewHyError(hy.name, err)
		}
		if err := hy.sink.WriteHeader(audio != nil, video != nil); err != nil {
			return errors.Wrap(err, "write flv header")
		}
		if err := hy.writeTags(model.NewScriptTag(0, script)); err != nil {
			return err
		}
		hy.headerWritten = true
	}
	for _, fd := range []*model.FormatDescriptor{video, audio} {
		if fd == nil {
			continue
		}
		tags, err := hy.muxer.Start(ctx, fd)
		if err != nil {
			return constdef.NewHyError(hy.name, err)
		}
		if err := hy.writeTags(tags...); err != nil {
			return err
		}
	}
	hy.metadata = md
	hy.hasVideo, hy.hasAudio = video != nil, audio != nil
	hy.started = true
	log.Infof(ctx, "session %s started, video:%t audio:%t", hy.name, md.HasVideo, md.HasAudio)
	return nil
}

// checkStart fails when fd cannot open its track: unsupported codec, missing
// extradata, or a different track already opened by Append.
func (hy *HySession) checkStart(fd *model.FormatDescriptor) error {
	if prev, ok := hy.muxer.Format(fd.Kind); ok {
		if !prev.SameTrack(fd) {
			return errors.Wrapf(constdef.ErrCodecChanged, "%s track", fd.Kind)
		}
		return nil
	}
	var err error
	if fd.IsAudio() {
		_, err = flv.AudioStartData(fd)
	} else {
		_, err = flv.VideoStartData(fd)
	}
	return err
}

// Append muxes one sample. Samples of an unsupported codec are dropped and
// reported with an error matching constdef.ErrUnsupportedCodec; the session
// stays usable.
func (hy *HySession) Append(ctx context.Context, sample *model.MediaSample) error {
	hy.l.Lock()
	defer hy.l.Unlock()
	if !hy.stat.Running() {
		return constdef.ErrSessionClosed
	}
	if hy.started && sample != nil && sample.Format != nil && !hy.declared(sample.Kind()) {
		hy.stat.Dropped++
		return constdef.NewHyError(hy.name, errors.Wrapf(constdef.ErrWrongMediaKind, "%s track not declared at start", sample.Kind()))
	}
	tags, err := hy.muxer.Mux(ctx, sample)
	if err != nil {
		if errors.Is(err, constdef.ErrUnsupportedCodec) {
			hy.stat.Dropped++
		}
		return constdef.NewHyError(hy.name, err)
	}
	return hy.writeTags(tags...)
}

func (hy *HySession) declared(kind constdef.MediaKind) bool {
	switch kind {
	case constdef.MediaKindVideo:
		return hy.hasVideo
	case constdef.MediaKindAudio:
		return hy.hasAudio
	}
	return false
}

func (hy *HySession) writeTags(tags ...*model.Tag) error {
	for _, tag := range tags {
		if err := hy.sink.WriteTag(tag); err != nil {
			log.Errorf(hy.sessCtx, "session %s write tag err: %+v", hy.name, err)
			return errors.Wrapf(err, "session %s write tag", hy.name)
		}
		switch {
		case tag.IsVideo():
			hy.stat.VideoTags++
		case tag.IsAudio():
			hy.stat.AudioTags++
		}
		hy.stat.Bytes += uint64(len(tag.Data))
	}
	return nil
}

// Close emits the end of sequence tags still owed and closes the sink. All
// failures are collected; the sink is closed even when finishing fails.
func (hy *HySession) Close(ctx context.Context) error {
	hy.l.Lock()
	defer hy.l.Unlock()
	if !hy.stat.Running() {
		return constdef.ErrSessionClosed
	}
	hy.stat.IsRunning = false

	var result *multierror.Error
	tags, err := hy.muxer.Finish(ctx)
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := hy.writeTags(tags...); err != nil {
		result = multierror.Append(result, err)
	}
	if err := hy.sink.Close(); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "close sink"))
	}
	if err := result.ErrorOrNil(); err != nil {
		log.Errorf(ctx, "session %s closed with err: %v", hy.name, err)
		return err
	}
	log.Infof(ctx, "session %s closed, video tags:%d audio tags:%d bytes:%d dropped:%d",
		hy.name, hy.stat.VideoTags, hy.stat.AudioTags, hy.stat.Bytes, hy.stat.Dropped)
	return nil
}

func (hy *HySession) Info() Info {
	hy.l.Lock()
	defer hy.l.Unlock()
	info := Info{
		Name:       hy.name,
		Running:    hy.stat.IsRunning,
		StartedAt:  hy.startedAt,
		Metadata:   hy.metadata,
		VideoState: hy.muxer.State(constdef.MediaKindVideo).String(),
		AudioState: hy.muxer.State(constdef.MediaKindAudio).String(),
		VideoTags:  hy.stat.VideoTags,
		AudioTags:  hy.stat.AudioTags,
		Bytes:      hy.stat.Bytes,
		Dropped:    hy.stat.Dropped,
	}
	if fd, ok := hy.muxer.Format(constdef.MediaKindVideo); ok {
		info.VideoCodec = fd.Codec().String()
	}
	if fd, ok := hy.muxer.Format(constdef.MediaKindAudio); ok {
		info.AudioCodec = fd.Codec().String()
	}
	return info
}
