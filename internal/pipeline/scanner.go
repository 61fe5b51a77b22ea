package pipeline

import (
	"context"

	"trscan/internal/engine"
)

// Scanner is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Scanner interface {
	ScanSeq(ctx context.Context, seq []byte, prog engine.Progress) ([]engine.Repeat, error)
}
