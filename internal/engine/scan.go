package engine

import (
	"context"
	"fmt"
)

// Mode selects the scan variant.
type Mode string

const (
	ModeParallel   Mode = "parallel"
	ModeSequential Mode = "sequential"
)

// ParseMode maps a CLI/config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeParallel, ModeSequential:
		return Mode(s), nil
	case "":
		return ModeParallel, nil
	}
	return "", fmt.Errorf("unknown scan mode %q (want parallel | sequential)", s)
}

// Progress receives coarse position increments while a scan runs.
// Implementations must be safe for concurrent use.
type Progress interface {
	Advance(n int)
}

type noProgress struct{}

func (noProgress) Advance(int) {}

// DefaultChunkSize is the parallel partition width in bases.
const DefaultChunkSize = 10_000

// ScanOptions controls how a scan is executed; it never changes what is found
// by a given variant.
type ScanOptions struct {
	Mode      Mode
	Threads   int // parallel workers (<=0 means 1)
	ChunkSize int // parallel partition width (<=0 means DefaultChunkSize)
	Progress  Progress
}

// Scan finds tandem repeats in seq. The returned list is sorted by start and
// pairwise non-overlapping. The only error is ctx.Err() on cancellation.
func Scan(ctx context.Context, seq []byte, p Params, opt ScanOptions) ([]Repeat, error) {
	if opt.Progress == nil {
		opt.Progress = noProgress{}
	}
	if len(seq) == 0 {
		return nil, nil
	}
	if opt.Mode == ModeSequential {
		return ScanSequential(ctx, seq, p, opt.Progress)
	}
	return ScanParallel(ctx, seq, p, opt)
}

// anchorOutcome is what happened when the cursor visited one position.
type anchorOutcome int

const (
	outcomeInside      anchorOutcome = iota // cursor lies inside an accepted repeat
	outcomeNoCandidate                      // no period passed the prefilter
	outcomeRejected                         // refinement was malformed or overlapped claimed territory
	outcomeAccepted
)

// scanState is the sequential scanner's state: the anchor under evaluation and
// the end of the last accepted repeat.
type scanState struct {
	cursor     int
	claimedEnd int
}

// evaluate decides the outcome at the current cursor without moving it.
func (st *scanState) evaluate(seq []byte, p Params) (anchorOutcome, Repeat) {
	if st.cursor < st.claimedEnd {
		return outcomeInside, Repeat{}
	}
	c, ok := BestCandidate(seq, st.cursor, p)
	if !ok {
		return outcomeNoCandidate, Repeat{}
	}
	r := Refine(seq, c, p)
	if r.Start < st.claimedEnd || !wellFormed(r, len(seq)) {
		return outcomeRejected, Repeat{}
	}
	return outcomeAccepted, r
}

// advance applies an outcome: accepted repeats claim territory and move the
// cursor to their end; everything else steps by one base.
func (st *scanState) advance(o anchorOutcome, r Repeat) {
	if o == outcomeAccepted {
		st.claimedEnd = r.End
		st.cursor = r.End
		return
	}
	st.cursor++
}

// wellFormed checks the record invariants: start < end <= n, period >= 1 and at
// least two periods of sequence.
func wellFormed(r Repeat, n int) bool {
	return r.PeriodSize >= 1 && r.Start >= 0 && r.Start < r.End && r.End <= n && r.End-r.Start >= 2*r.PeriodSize
}

// sequentialStride is the coarse progress increment for a sequence of length n.
func sequentialStride(n int) int {
	if s := n / 100; s > DefaultChunkSize {
		return s
	}
	return DefaultChunkSize
}

// ScanSequential is the leftmost-first greedy scan: every anchor tries all
// periods, the best candidate is refined, and an accepted repeat is skipped
// over entirely.
func ScanSequential(ctx context.Context, seq []byte, p Params, prog Progress) ([]Repeat, error) {
	if prog == nil {
		prog = noProgress{}
	}
	n := len(seq)
	stride := sequentialStride(n)
	var (
		out      []Repeat
		st       scanState
		reported int
	)
	for st.cursor < n {
		o, r := st.evaluate(seq, p)
		if o == outcomeAccepted {
			out = append(out, r)
		}
		st.advance(o, r)

		if st.cursor-reported >= stride || st.cursor >= n {
			done := st.cursor
			if done > n {
				done = n
			}
			prog.Advance(done - reported)
			reported = done
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return Resolve(out), nil
}
