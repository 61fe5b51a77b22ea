package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"trscan/internal/cmdutil"
	"trscan/internal/config"
	"trscan/internal/engine"
	"trscan/internal/metrics"
	"trscan/internal/pipeline"
	"trscan/internal/progress"
	"trscan/internal/runutil"
	"trscan/internal/writers"
)

type Options struct {
	SeqFiles []string
	Config   config.Config

	Progress    bool
	MetricsFile string

	Quiet           bool
	NoMatchExitCode int
}

type WriterFactory interface {
	NeedSeq() bool
	Start(out io.Writer, bufSize int) (chan<- engine.Record, <-chan error)
}

// outputWriter buffers w unless the caller already did.
func outputWriter(w io.Writer) *bufio.Writer {
	if bw, ok := w.(*bufio.Writer); ok {
		return bw
	}
	return bufio.NewWriter(w)
}

func Run(
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	wf WriterFactory,
) int {
	began := time.Now()
	outw := outputWriter(stdout)

	cfg := o.Config
	thr := runutil.ResolveThreads(cfg.Threads)
	mode, err := engine.ParseMode(cfg.Mode)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	det, err := engine.New(cfg.Params, engine.ScanOptions{Mode: mode, Threads: thr, ChunkSize: cfg.ChunkSize})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	var (
		met     *metrics.Metrics
		tracker progress.Tracker = progress.Nop{}
	)
	if o.MetricsFile != "" {
		met = metrics.New()
	}
	if o.Progress {
		tracker = progress.NewBars(stderr)
	}

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, perr := cmdutil.RunStream(
		ctx,
		pipeline.Config{
			Workers:  thr,
			KeepSeq:  wf.NeedSeq(),
			Progress: tracker,
			Observe:  met.ObserveRecord,
			OnInputError: func(path string, err error) {
				met.ObserveInputError()
				cmdutil.Warnf(stderr, o.Quiet, "skipping %s: %v", path, err)
			},
		},
		o.SeqFiles,
		det,
		func(rec engine.Record) error {
			select {
			case inCh <- rec:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)
	tracker.Wait()

	if err := met.WriteFile(o.MetricsFile); err != nil {
		cmdutil.Warnf(stderr, o.Quiet, "metrics: %v", err)
	}

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		var ie *pipeline.InputError
		if !errors.As(perr, &ie) {
			fmt.Fprintln(stderr, perr)
		}
		return 3
	}
	cmdutil.Infof(stderr, o.Quiet, "%s repeats in %s", humanize.Comma(int64(total)), time.Since(began).Round(time.Millisecond))
	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}
