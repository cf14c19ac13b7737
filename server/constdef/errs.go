package constdef

import (
	"fmt"

	"github.com/pkg/errors"
)

type HyError struct {
	Err    error
	CtxMsg string
}

func NewHyError(ctxMsg string, err error) *HyError {
	return &HyError{
		Err: err, CtxMsg: ctxMsg,
	}
}

func (h *HyError) Error() string {
	if h.Err == nil {
		return fmt.Sprintf("Err:no_err;Msg:%s", h.CtxMsg)
	}
	return fmt.Sprintf("Err:%+v;Msg:%s", h.Err, h.CtxMsg)
}

func (h *HyError) Unwrap() error {
	return h.Err
}

var (
	ErrUnsupportedCodec = errors.New("unsupported codec")
	ErrWrongMediaKind   = errors.New("wrong media kind")
	ErrMissingExtradata = errors.New("missing extradata")
	ErrCodecChanged     = errors.New("codec changed within track")
	ErrInvalidSample    = errors.New("invalid sample")
	ErrMuxerFinished    = errors.New("muxer finished")
	ErrTagTooLarge      = errors.New("tag too large")

	ErrSessionClosed   = errors.New("session closed")
	ErrSessionExists   = errors.New("session exists")
	ErrSessionNotFound = errors.New("session not found")
)
