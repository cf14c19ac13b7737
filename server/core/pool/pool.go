package pool

import "sync"

var defaultPool BufPool = NewBufPool()

// BufPool hands out scratch byte slices for tag serialisation.
type BufPool interface {
	Make(size int) []byte
	Return([]byte)
}

// DefaultBufPool keeps one sync.Pool per power of two size class up to maxClass.
type DefaultBufPool struct {
	classes [maxClass + 1]sync.Pool
}

const (
	minClass = 6  // 64B
	maxClass = 20 // 1MB
)

func NewBufPool() *DefaultBufPool {
	return &DefaultBufPool{}
}

func classOf(size int) int {
	c := minClass
	for 1<<c < size {
		c++
	}
	return c
}

// Make returns a slice of len size. Sizes above the largest class are
// allocated directly and never pooled.
func (d *DefaultBufPool) Make(size int) []byte {
	c := classOf(size)
	if c > maxClass {
		return make([]byte, size)
	}
	if b, ok := d.classes[c].Get().(*[]byte); ok {
		return (*b)[:size]
	}
	return make([]byte, size, 1<<c)
}

func (d *DefaultBufPool) Return(b []byte) {
	c := classOf(cap(b))
	if c > maxClass || 1<<c != cap(b) {
		return
	}
	b = b[:0]
	d.classes[c].Put(&b)
}

func P() BufPool {
	return defaultPool
}
