package container

import "github.com/Opafanls/hyflv/server/model"

// TagWriter is the sink receiving built tags in stream order.
type TagWriter interface {
	// WriteHeader writes the container header, once
	WriteHeader(hasAudio, hasVideo bool) error
	// WriteTag appends one complete tag
	WriteTag(tag *model.Tag) error
	Close() error
}
