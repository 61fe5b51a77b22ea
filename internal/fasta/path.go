package fasta

import (
	"context"
)

// StreamPathCtx opens path and streams its records to emit.
func StreamPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return StreamRecordsCtx(ctx, rc, emit)
}

// StreamChan is the channel flavour of StreamPathCtx. Open errors are reported
// immediately for non-stdin paths; the scan result arrives on errc once the
// record channel is closed.
func StreamChan(ctx context.Context, path string) (<-chan Record, <-chan error, error) {
	if path != "-" {
		rc, err := Open(path)
		if err != nil {
			return nil, nil, err
		}
		_ = rc.Close()
	}

	out := make(chan Record, 4)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(out)
		errc <- StreamPathCtx(ctx, path, func(r Record) error {
			select {
			case out <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, errc, nil
}
