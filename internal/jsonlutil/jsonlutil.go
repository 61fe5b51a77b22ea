// Package jsonlutil runs one-value-per-line JSON encoders in their own
// goroutine.
package jsonlutil

import (
	"bufio"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"trscan/internal/jsonutil"
)

// lineBufSize is the pooled writer size; a record line rarely exceeds it.
const lineBufSize = 64 << 10

var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, lineBufSize)
	},
}

// Start consumes values of type T from the returned channel and writes each
// one with encode. The error channel yields exactly one value once the input
// is closed: the first encode or flush error, or nil. Errors matched by
// isBroken are reported as nil. After an error the input is still drained so
// senders never block.
func Start[T any](out io.Writer, bufSize int, encode func(*jsoniter.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := jsonutil.JSON.NewEncoder(bw)

		var err error
		for v := range in {
			if err == nil {
				err = encode(enc, v)
			}
		}
		if err == nil {
			err = bw.Flush()
		}
		if err != nil && isBroken != nil && isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
