package httpvalidator

import (
	"bytes"
	"sync"
)

// Buffers larger than this are dropped instead of being returned to the pool,
// so one oversized payload does not pin its memory for the process lifetime.
const maxPooledBufferCap = 64 << 10

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// getBuffer retrieves an empty buffer from the pool.
func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool.
func putBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBufferCap {
		return
	}
	bufferPool.Put(buf)
}
