package bitio

import (
	"encoding/binary"
)

func PutU8(b []byte, v uint8) {
	b[0] = v
}

func PutU24BE(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

// PutI24BE writes the low 24 bits of v, two's complement for negatives.
func PutI24BE(b []byte, v int32) {
	PutU24BE(b, uint32(v)&0xffffff)
}

func PutU32BE(b []byte, v uint32) {
	binary.BigEndian.PutUint32(b, v)
}
