package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"trscan/internal/engine"
	"trscan/internal/fasta"
	"trscan/internal/progress"
)

// Config controls the record pipeline.
type Config struct {
	Workers int  // records scanned concurrently (>=1)
	KeepSeq bool // keep Record.Seq for writers that print repeat bases

	Progress progress.Tracker // nil disables progress

	// Observe, when set, is called by the worker that scanned a record.
	Observe func(rec engine.Record, elapsed time.Duration)

	// OnInputError, when set, is called for every input that cannot be
	// opened or parsed. Scanning continues with the next input; the first
	// such error is still returned.
	OnInputError func(path string, err error)
}

// InputError wraps a failure to read one input file.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

type job struct {
	idx        int
	rec        fasta.Record
	sourceFile string
}

type result struct {
	idx int
	rec engine.Record
	err error
}

// ForEachRecord scans every record of seqFiles and calls visit once per record
// in input order, whatever order the workers finish in. It returns the first
// error encountered (including context cancellation).
func ForEachRecord(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	sc Scanner,
	visit func(engine.Record) error,
) error {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	tracker := cfg.Progress
	if tracker == nil {
		tracker = progress.Nop{}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, cfg.Workers*2)
	results := make(chan result, cfg.Workers*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					r := scanOne(ctx, cfg, tracker, sc, j)
					select {
					case results <- r:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: re-sequences results so visit sees input order.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]result)
		next := 0
		for r := range results {
			pending[r.idx] = r
			for {
				cur, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if cerr != nil {
					continue
				}
				if cur.err != nil {
					cerr = cur.err
					cancel()
					continue
				}
				if err := visit(cur.rec); err != nil {
					cerr = err
					cancel()
				}
			}
		}
	}()

	// Feed work
	var (
		ferr error
		idx  int
	)
feed:
	for _, fa := range seqFiles {
		err := feedFile(ctx, fa, jobs, &idx)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			break feed
		default:
			// Keep scanning other files; first error will be returned.
			if cfg.OnInputError != nil {
				cfg.OnInputError(fa, err)
			}
			if ferr == nil {
				ferr = &InputError{Path: fa, Err: err}
			}
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ferr
}

// feedFile sends every record of path to jobs, numbering them from *idx.
func feedFile(ctx context.Context, path string, jobs chan<- job, idx *int) error {
	recs, errc, err := fasta.StreamChan(ctx, path)
	if err != nil {
		return err
	}
	for rec := range recs {
		select {
		case jobs <- job{idx: *idx, rec: rec, sourceFile: path}:
			*idx++
		case <-ctx.Done():
			for range recs {
			}
			return ctx.Err()
		}
	}
	return <-errc
}

func scanOne(ctx context.Context, cfg Config, tracker progress.Tracker, sc Scanner, j job) result {
	name := j.rec.ID
	if name == "" {
		name = j.sourceFile
	}
	task := tracker.Track(name, len(j.rec.Seq))
	start := time.Now()
	reps, err := sc.ScanSeq(ctx, j.rec.Seq, task)
	task.Finish(err == nil)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return result{idx: j.idx, err: err}
		}
		return result{idx: j.idx, err: fmt.Errorf("%s/%s: %w", j.sourceFile, j.rec.ID, err)}
	}
	rec := engine.Record{
		SourceFile: j.sourceFile,
		SequenceID: j.rec.ID,
		Length:     len(j.rec.Seq),
		Repeats:    reps,
	}
	if cfg.KeepSeq {
		rec.Seq = j.rec.Seq
	}
	if cfg.Observe != nil {
		cfg.Observe(rec, time.Since(start))
	}
	return result{idx: j.idx, rec: rec}
}
