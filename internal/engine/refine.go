package engine

// maxPatternCopies caps how many motif copies are tiled into the refinement pattern.
const maxPatternCopies = 50

// Reconcile merges the prefilter's rough span with the aligner's span.
//
// The merge is asymmetric: the start may only move forward (the later of the
// two starts wins), while the end takes the later of the two ends. The end is
// clamped to seqLen.
func Reconcile(rough, aligned Span, seqLen int) Span {
	start := rough.Start
	if aligned.Start > start {
		start = aligned.Start
	}
	end := rough.End
	if aligned.End > end {
		end = aligned.End
	}
	if end > seqLen {
		end = seqLen
	}
	return Span{Start: start, End: end}
}

// tile repeats motif times times.
func tile(motif []byte, times int) []byte {
	out := make([]byte, 0, len(motif)*times)
	for i := 0; i < times; i++ {
		out = append(out, motif...)
	}
	return out
}

// Refine aligns the candidate's motif, tiled, against a flanked window around
// the rough region and turns the result into a Repeat.
func Refine(seq []byte, c Candidate, p Params) Repeat {
	n := len(seq)
	winStart := c.Start - p.RefineFlank
	if winStart < 0 {
		winStart = 0
	}
	winEnd := c.RoughEnd
	if p.RefineFlank > n-winEnd {
		winEnd = n
	} else {
		winEnd += p.RefineFlank
	}

	motif := seq[c.Start : c.Start+c.Period]
	times := c.Copies
	if times > maxPatternCopies {
		times = maxPatternCopies
	}
	aln := Align(seq[winStart:winEnd], tile(motif, times), p.scoring(), p.RefineBand)

	s := Reconcile(
		Span{Start: c.Start, End: c.RoughEnd},
		Span{Start: winStart + aln.Start, End: winStart + aln.End},
		n,
	)
	return buildRepeat(seq, s, c.Period, satAdd(c.RoughScore, aln.Score/2), motif)
}
