package flv

import (
	"bytes"
	"io"
	"sync"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/core/bitio"
	"github.com/Opafanls/hyflv/server/core/pool"
	"github.com/Opafanls/hyflv/server/model"
	"github.com/pkg/errors"
	goflv "github.com/yutopp/go-flv"
)

var pad = []byte{0, 0, 0, 0}

// Writer writes tags to an FLV byte stream: file header, then each tag
// followed by its PreviousTagSize. Each tag reaches the underlying writer
// in a single Write call.
type Writer struct {
	l             sync.Mutex
	ctx           io.WriteCloser
	headerWritten bool
	closed        bool
	written       int64
}

func NewWriter(ctx io.WriteCloser) *Writer {
	return &Writer{
		ctx: ctx,
	}
}

func (writer *Writer) WriteHeader(hasAudio, hasVideo bool) error {
	writer.l.Lock()
	defer writer.l.Unlock()
	return writer.writeHeader(hasAudio, hasVideo)
}

func (writer *Writer) writeHeader(hasAudio, hasVideo bool) error {
	if writer.closed {
		return constdef.ErrSessionClosed
	}
	if writer.headerWritten {
		return nil
	}
	var flags goflv.Flags
	if hasAudio {
		flags |= goflv.FlagsAudio
	}
	if hasVideo {
		flags |= goflv.FlagsVideo
	}
	var h bytes.Buffer
	err := goflv.EncodeFlvHeader(&h, &goflv.Header{
		Version:    1,
		Flags:      flags,
		DataOffset: goflv.HeaderLength,
	})
	if err != nil {
		return errors.Wrap(err, "encode flv header")
	}
	// PreviousTagSize0
	h.Write(pad)
	if err := writer.write(h.Bytes()); err != nil {
		return err
	}
	writer.headerWritten = true
	return nil
}

func (writer *Writer) WriteTag(p *model.Tag) error {
	writer.l.Lock()
	defer writer.l.Unlock()
	if p == nil {
		return errors.New("nil tag")
	}
	if err := writer.writeHeader(true, true); err != nil {
		return err
	}
	dataLen := len(p.Data)
	if dataLen > maxTagDataSize {
		return errors.Wrapf(constdef.ErrTagTooLarge, "%d bytes", dataLen)
	}

	b := pool.P().Make(headerLen + dataLen + 4)
	defer pool.P().Return(b)
	timestampbase := p.Timestamp & 0xffffff
	timestampExt := p.Timestamp >> 24 & 0xff

	bitio.PutU8(b[0:1], uint8(p.Type))
	bitio.PutU24BE(b[1:4], uint32(dataLen))
	bitio.PutU24BE(b[4:7], timestampbase)
	bitio.PutU8(b[7:8], uint8(timestampExt))
	bitio.PutU24BE(b[8:11], 0)
	copy(b[headerLen:], p.Data)
	bitio.PutU32BE(b[headerLen+dataLen:], uint32(dataLen+headerLen))
	return writer.write(b)
}

func (writer *Writer) write(b []byte) error {
	n, err := writer.ctx.Write(b)
	writer.written += int64(n)
	return err
}

// Written is the number of bytes handed to the underlying writer.
func (writer *Writer) Written() int64 {
	writer.l.Lock()
	defer writer.l.Unlock()
	return writer.written
}

func (writer *Writer) Close() error {
	writer.l.Lock()
	defer writer.l.Unlock()
	if writer.closed {
		return nil
	}
	writer.closed = true
	return writer.ctx.Close()
}
