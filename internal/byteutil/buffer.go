// Package byteutil pools the buffers response bodies are encoded into.
package byteutil

import (
	"bytes"
	"sync"
)

var bytesBuffer = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

// GetBuffer returns an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	return bytesBuffer.Get().(*bytes.Buffer)
}

// PutBuffer resets p and returns it to the pool. p must not be used
// afterwards.
func PutBuffer(p *bytes.Buffer) {
	p.Reset()
	bytesBuffer.Put(p)
}
