package cmdutil

import (
	"context"

	"trscan/internal/engine"
	"trscan/internal/pipeline"
)

// RunStream runs the record pipeline and streams every record via send.
// It returns the number of repeats seen and the first error encountered.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	seqFiles []string,
	sc pipeline.Scanner,
	send func(engine.Record) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachRecord(ctx, cfg, seqFiles, sc, func(rec engine.Record) error {
		if err := send(rec); err != nil {
			return err
		}
		total += len(rec.Repeats)
		return nil
	})
	return total, err
}
