package engine

import (
	"math"
)

// isACGT reports whether b is one of the four canonical uppercase bases.
func isACGT(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// same is base equality where anything outside ACGT never matches, not even itself.
func same(a, b byte) bool { return a == b && isACGT(a) }

// countMatches counts positions where motif and block agree over their common length.
func countMatches(motif, block []byte) int {
	n := len(motif)
	if len(block) < n {
		n = len(block)
	}
	k := 0
	for i := 0; i < n; i++ {
		if same(motif[i], block[i]) {
			k++
		}
	}
	return k
}

// minExact is the number of exact matches a copy of length period needs.
func minExact(period int, fraction float64) int {
	return int(math.Ceil(float64(period) * fraction))
}

// satAdd adds without wrapping past the int range.
func satAdd(a, b int) int {
	s := a + b
	if a > 0 && b > 0 && s < 0 {
		return math.MaxInt
	}
	if a < 0 && b < 0 && s >= 0 {
		return math.MinInt
	}
	return s
}

// satMul multiplies non-negative operands, clamping at math.MaxInt.
func satMul(a, b int) int {
	if a <= 0 || b <= 0 {
		return a * b
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// roughScore blends the ideal score of copies*period matching bases with half
// the observed per-copy agreement agg.
func roughScore(copies, period, agg, matchWeight int) int {
	return satAdd(satMul(satMul(copies, period), matchWeight)/2, agg/2)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
