// Package summary condenses a scanned record into counts, coverage and a
// content digest. The digest changes whenever any reported coordinate, period,
// score or consensus changes, so runs can be compared without diffing rows.
package summary

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"

	"trscan/internal/engine"
)

// Summary is the per-record digest of a scan.
type Summary struct {
	Repeats        int
	CoveredBases   int
	PercentRepeats float64
	Digest         uint64
}

// Of summarizes rec.
func Of(rec engine.Record) Summary {
	return Summary{
		Repeats:        len(rec.Repeats),
		CoveredBases:   rec.CoveredBases(),
		PercentRepeats: rec.PercentCovered(),
		Digest:         Digest(rec.Repeats),
	}
}

// Digest hashes the repeat list in order. Floats are hashed by their bit
// pattern; all of them derive deterministically from the integer fields.
func Digest(reps []engine.Repeat) uint64 {
	h := xxh3.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	put(uint64(len(reps)))
	for _, r := range reps {
		put(uint64(r.Start))
		put(uint64(r.End))
		put(uint64(r.PeriodSize))
		put(uint64(int64(r.RawScore)))
		put(math.Float64bits(r.PercentMatch))
		put(uint64(len(r.Consensus)))
		_, _ = h.WriteString(r.Consensus)
	}
	return h.Sum64()
}

// Hex renders a digest the way outputs print it.
func Hex(d uint64) string { return fmt.Sprintf("%016x", d) }

// Totals accumulates summaries across records.
type Totals struct {
	Records      int
	Bases        int
	Repeats      int
	CoveredBases int
}

// Add folds one record into t.
func (t *Totals) Add(rec engine.Record, s Summary) {
	t.Records++
	t.Bases += rec.Length
	t.Repeats += s.Repeats
	t.CoveredBases += s.CoveredBases
}

// PercentRepeats is covered bases over all scanned bases.
func (t Totals) PercentRepeats() float64 {
	if t.Bases == 0 {
		return 0
	}
	return float64(t.CoveredBases) / float64(t.Bases) * 100
}
