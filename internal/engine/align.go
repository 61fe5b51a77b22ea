package engine

import (
	"math"
)

// Scoring holds the alignment weights. Penalties are positive numbers that get
// subtracted.
type Scoring struct {
	Match    int
	Mismatch int
	Indel    int
}

// Alignment is the result of Align in window coordinates. End is exclusive.
type Alignment struct {
	Score int
	Start int
	End   int
}

// startMargin is added to the band radius when walking back from the best column.
const startMargin = 10

// Align computes a banded local alignment of pattern against window.
//
// Row i of the pattern only visits window columns within band of the projected
// diagonal round(i*n/m), so cost is O(m*band) with two rows of 2*band+1 cells.
// The start of the aligned region is not traced back: it is approximated as
// band+startMargin+1 columns before the best cell, floored at 0.
func Align(window, pattern []byte, s Scoring, band int) Alignment {
	n, m := len(window), len(pattern)
	if n == 0 || m == 0 {
		return Alignment{}
	}
	if band < 0 {
		band = 0
	}
	width := 2*band + 1
	prev := make([]int, width)
	cur := make([]int, width)

	bestScore, bestCol := 0, 0
	for i := 1; i <= m; i++ {
		diag := int(math.Round(float64(i) * float64(n) / float64(m)))
		jMin := diag - band
		if jMin < 1 {
			jMin = 1
		}
		jMax := diag + band
		if jMax > n {
			jMax = n
		}
		clear(cur)

		pb := pattern[i-1]
		for j := jMin; j <= jMax; j++ {
			b := j - diag + band
			if b < 0 || b >= width {
				continue
			}
			sub := -s.Mismatch
			if same(pb, window[j-1]) {
				sub = s.Match
			}
			v := prev[b] + sub
			if b > 0 {
				if left := cur[b-1] - s.Indel; left > v {
					v = left
				}
			}
			if up := prev[b] - s.Indel; up > v {
				v = up
			}
			if v < 0 {
				v = 0
			}
			cur[b] = v
			if v > bestScore {
				bestScore, bestCol = v, j
			}
		}
		prev, cur = cur, prev
	}

	return Alignment{Score: bestScore, Start: approxStart(bestCol, band), End: bestCol}
}

// approxStart walks back from the best column while the distance stays within
// band+startMargin, i.e. max(0, best-band-startMargin-1).
func approxStart(bestCol, band int) int {
	start := bestCol - band - startMargin - 1
	if start < 0 {
		return 0
	}
	return start
}
