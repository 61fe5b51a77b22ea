package engine

// Candidate is a rough (anchor, period) trial produced by the prefilter. It only
// lives while one anchor is evaluated.
type Candidate struct {
	Start      int
	RoughEnd   int
	Period     int
	Copies     int
	RoughScore int
}

// quickCopyScore is the ungapped block score: +match per agreement, -mismatch otherwise.
func quickCopyScore(motif, block []byte, s Scoring) int {
	n := len(motif)
	if len(block) < n {
		n = len(block)
	}
	k := countMatches(motif[:n], block[:n])
	return k*s.Match - (n-k)*s.Mismatch
}

// Prefilter greedily extends seq[start:start+period] with following blocks of
// the same length. A block is accepted while its exact matches reach
// ceil(period*PrefilterFraction) and its quick score stays at or above
// -MismatchPenalty*(period/4). At least two copies and a rough score of
// MinScore are required.
func Prefilter(seq []byte, start, period int, p Params) (Candidate, bool) {
	n := len(seq)
	if period < 1 || start < 0 || start > n || n-start < 2*period {
		return Candidate{}, false
	}

	sc := p.scoring()
	motif := seq[start : start+period]
	need := minExact(period, p.PrefilterFraction)
	floor := -p.MismatchPenalty * (period / 4)

	end := start + period
	copies := 1
	agg := 0
	for end+period <= n && copies < p.MaxCopies {
		block := seq[end : end+period]
		if countMatches(motif, block) < need {
			break
		}
		q := quickCopyScore(motif, block, sc)
		if q < floor {
			break
		}
		agg = satAdd(agg, q)
		copies++
		end += period
	}
	if copies < 2 {
		return Candidate{}, false
	}

	score := roughScore(copies, period, agg, p.MatchWeight)
	if score < p.MinScore {
		return Candidate{}, false
	}
	return Candidate{Start: start, RoughEnd: end, Period: period, Copies: copies, RoughScore: score}, true
}

// BestCandidate tries every period from 1 to min(MaxPeriod, remaining/2) at
// start and keeps the first strictly highest rough score, so ties go to the
// shorter period.
func BestCandidate(seq []byte, start int, p Params) (Candidate, bool) {
	if start < 0 || start >= len(seq) {
		return Candidate{}, false
	}
	maxP := (len(seq) - start) / 2
	if p.MaxPeriod < maxP {
		maxP = p.MaxPeriod
	}
	var (
		best  Candidate
		found bool
	)
	for period := 1; period <= maxP; period++ {
		c, ok := Prefilter(seq, start, period, p)
		if !ok {
			continue
		}
		if !found || c.RoughScore > best.RoughScore {
			best, found = c, true
		}
	}
	return best, found
}
