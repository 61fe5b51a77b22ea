package engine

import (
	"github.com/agnivade/levenshtein"
)

// Span is a 0-based half-open interval [Start, End).
type Span struct {
	Start, End int
}

// Len is the number of bases covered; inverted spans report 0.
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// Repeat is one detected tandem array. Values are immutable once produced.
//
// CopyNumber is the absolute count (End-Start)/PeriodSize. CopyDensity is that
// count divided by the length of the scanned sequence, and Score is RawScore
// divided by the same length; both exist so numbers from sequences of different
// lengths can be compared.
type Repeat struct {
	Start      int
	End        int
	PeriodSize int

	CopyNumber  float64
	CopyDensity float64
	Score       float64
	RawScore    int

	PercentA float64
	PercentC float64
	PercentG float64
	PercentT float64

	// PercentMatch is the mean identity of each period-sized copy to Consensus.
	PercentMatch float64
	Consensus    string
}

// Span returns the repeat's interval.
func (r Repeat) Span() Span { return Span{Start: r.Start, End: r.End} }

// Len is End-Start.
func (r Repeat) Len() int { return r.Span().Len() }

// Ranked implementation used by Resolve.
func (r Repeat) bounds() (int, int) { return r.Start, r.End }
func (r Repeat) rank() int          { return r.RawScore }
func (r Repeat) unit() int          { return r.PeriodSize }

// Composition returns the A/C/G/T percentages of seq. Bytes outside ACGT are
// ignored; a span without any ACGT reports all zeros.
func Composition(seq []byte) (a, c, g, t float64) {
	var na, nc, ng, nt int
	for _, b := range seq {
		switch b {
		case 'A', 'a':
			na++
		case 'C', 'c':
			nc++
		case 'G', 'g':
			ng++
		case 'T', 't':
			nt++
		}
	}
	total := float64(na + nc + ng + nt)
	if total == 0 {
		return 0, 0, 0, 0
	}
	return float64(na) / total * 100, float64(nc) / total * 100, float64(ng) / total * 100, float64(nt) / total * 100
}

// identity copies beyond this many are not measured.
const maxIdentityCopies = 64

// percentMatch compares each period-sized copy of span with consensus by edit
// distance and returns the overall identity in percent.
func percentMatch(span []byte, consensus string) float64 {
	p := len(consensus)
	if p == 0 || len(span) == 0 {
		return 0
	}
	var dist, total int
	for off, n := 0, 0; off < len(span) && n < maxIdentityCopies; off, n = off+p, n+1 {
		end := off + p
		if end > len(span) {
			end = len(span)
		}
		ref := consensus[:end-off]
		dist += levenshtein.ComputeDistance(string(span[off:end]), ref)
		total += end - off
	}
	if total == 0 {
		return 0
	}
	id := 100 * (1 - float64(dist)/float64(total))
	if id < 0 {
		return 0
	}
	return id
}

// buildRepeat assembles the final record for span over seq.
func buildRepeat(seq []byte, s Span, period, rawScore int, consensus []byte) Repeat {
	n := len(seq)
	body := seq[s.Start:s.End]
	a, c, g, t := Composition(body)
	copies := float64(s.Len()) / float64(period)
	cons := string(consensus)
	return Repeat{
		Start:        s.Start,
		End:          s.End,
		PeriodSize:   period,
		CopyNumber:   copies,
		CopyDensity:  copies / float64(n),
		Score:        float64(rawScore) / float64(n),
		RawScore:     rawScore,
		PercentA:     a,
		PercentC:     c,
		PercentG:     g,
		PercentT:     t,
		PercentMatch: percentMatch(body, cons),
		Consensus:    cons,
	}
}
