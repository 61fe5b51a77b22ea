package writers

import (
	"fmt"
	"io"
	"sort"

	"trscan/internal/engine"
)

// Options are the presentation switches shared by all formats.
type Options struct {
	Header   bool // TSV header line
	Products bool // include repeat sequences
	Pretty   bool // copy alignment blocks after text rows
}

// StartFunc starts a writer goroutine for one format.
type StartFunc func(out io.Writer, opt Options, bufSize int) (chan<- engine.Record, <-chan error)

// Writers maps format name → starter. Formats register themselves in init().
var Writers = map[string]StartFunc{}

// Register adds or replaces a format (last wins).
func Register(format string, fn StartFunc) { Writers[format] = fn }

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(Writers))
	for k := range Writers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// StartRecordWriter looks up format and starts its writer. Unknown formats
// yield a writer that drains its input and reports the error.
func StartRecordWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- engine.Record, <-chan error) {
	if fn, ok := Writers[format]; ok {
		return fn(out, opt, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan engine.Record, bufSize)
	errCh := make(chan error, 1)
	go func() {
		for range in {
		}
		errCh <- fmt.Errorf("unknown output format %q (no writer registered)", format)
	}()
	return in, errCh
}
