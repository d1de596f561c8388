package stream

import (
	"bytes"
	"sync"
)

// maxPooledSize caps the buffers returned to the pool so that one huge
// message does not pin its memory for the life of the process.
const maxPooledSize = 64 * 1024

// buffer holds the text of one message plus scratch space for rendering
// a padded fragment before it is copied in.
type buffer struct {
	text    bytes.Buffer
	scratch []byte
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		b := &buffer{scratch: make([]byte, 0, 64)}
		b.text.Grow(256)
		return b
	},
}

func getBuffer() *buffer {
	b := bufferPool.Get().(*buffer)
	b.text.Reset()
	b.scratch = b.scratch[:0]
	return b
}

func putBuffer(b *buffer) {
	if b.text.Cap() > maxPooledSize || cap(b.scratch) > maxPooledSize {
		return
	}
	bufferPool.Put(b)
}
