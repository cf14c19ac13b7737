package flv

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

var aacSampleRates = []int{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

// AACConfig is the leading part of an AudioSpecificConfig.
type AACConfig struct {
	ObjectType    uint8
	SampleRate    int
	ChannelConfig uint8
}

// ParseAACConfig reads the object type, sampling frequency and channel
// configuration from AAC extradata.
func ParseAACConfig(extradata []byte) (AACConfig, error) {
	var c AACConfig
	r := bitio.NewReader(bytes.NewReader(extradata))

	ot := r.TryReadBits(5)
	if ot == 31 {
		ot = 32 + r.TryReadBits(6)
	}
	idx := r.TryReadBits(4)
	if idx == 15 {
		c.SampleRate = int(r.TryReadBits(24))
	} else if int(idx) < len(aacSampleRates) {
		c.SampleRate = aacSampleRates[idx]
	} else {
		return c, errors.Errorf("invalid aac sample rate index %d", idx)
	}
	ch := r.TryReadBits(4)
	if r.TryError != nil {
		return c, errors.Wrap(r.TryError, "short aac config")
	}
	c.ObjectType = uint8(ot)
	c.ChannelConfig = uint8(ch)
	return c, nil
}
