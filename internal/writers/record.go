package writers

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"trscan/internal/engine"
	"trscan/internal/jsonlutil"
	"trscan/internal/output"
)

func init() {
	Register(output.FormatText, startText)
	Register(output.FormatJSON, startJSON)
	Register(output.FormatJSONL, startJSONL)
	Register(output.FormatSummary, startSummary)
}

// goWriter runs body over a fresh channel in its own goroutine.
func goWriter(bufSize int, body func(<-chan engine.Record) error) (chan<- engine.Record, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan engine.Record, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := body(in)
		// keep draining so producers never block on a failed writer
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}

func stripSeq(rec engine.Record, opt Options) engine.Record {
	if !opt.Products {
		rec.Seq = nil
	}
	return rec
}

func startText(out io.Writer, opt Options, bufSize int) (chan<- engine.Record, <-chan error) {
	return goWriter(bufSize, func(in <-chan engine.Record) error {
		return output.StreamText(out, in, opt.Header, opt.Products, opt.Pretty)
	})
}

func startJSON(out io.Writer, opt Options, bufSize int) (chan<- engine.Record, <-chan error) {
	return goWriter(bufSize, func(in <-chan engine.Record) error {
		var buf []engine.Record
		for rec := range in {
			buf = append(buf, stripSeq(rec, opt))
		}
		return output.WriteJSON(out, buf)
	})
}

func startSummary(out io.Writer, _ Options, bufSize int) (chan<- engine.Record, <-chan error) {
	return goWriter(bufSize, func(in <-chan engine.Record) error {
		return output.StreamSummary(out, in)
	})
}

// startJSONL streams each record as one JSON line (v1).
func startJSONL(out io.Writer, opt Options, bufSize int) (chan<- engine.Record, <-chan error) {
	return jsonlutil.Start[engine.Record](out, bufSize,
		func(enc *jsoniter.Encoder, rec engine.Record) error {
			return enc.Encode(output.ToAPIRecord(stripSeq(rec, opt)))
		},
		IsBrokenPipe,
	)
}
