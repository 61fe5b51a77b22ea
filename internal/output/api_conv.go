package output

import (
	"trscan/internal/engine"
	"trscan/internal/summary"
	"trscan/pkg/api"
)

// ToAPIRepeat converts a domain Repeat to the v1 wire schema, shifting to
// 1-based inclusive coordinates. seq is the scanned sequence; when non-nil the
// repeat's bases are attached.
func ToAPIRepeat(r engine.Repeat, seq []byte) api.RepeatV1 {
	v := api.RepeatV1{
		Start:        r.Start + 1,
		End:          r.End,
		Length:       r.Len(),
		Period:       r.PeriodSize,
		CopyNumber:   r.CopyNumber,
		CopyDensity:  r.CopyDensity,
		Score:        r.Score,
		RawScore:     r.RawScore,
		PercentMatch: r.PercentMatch,
		PercentA:     r.PercentA,
		PercentC:     r.PercentC,
		PercentG:     r.PercentG,
		PercentT:     r.PercentT,
		Consensus:    r.Consensus,
	}
	if seq != nil && r.End <= len(seq) {
		v.Seq = string(seq[r.Start:r.End])
	}
	return v
}

// ToAPIRecord converts a scanned record, including its summary.
func ToAPIRecord(rec engine.Record) api.RecordV1 {
	reps := make([]api.RepeatV1, 0, len(rec.Repeats))
	for _, r := range rec.Repeats {
		reps = append(reps, ToAPIRepeat(r, rec.Seq))
	}
	s := summary.Of(rec)
	return api.RecordV1{
		SourceFile: rec.SourceFile,
		SequenceID: rec.SequenceID,
		Length:     rec.Length,
		Repeats:    reps,
		Summary: api.SummaryV1{
			Repeats:        s.Repeats,
			CoveredBases:   s.CoveredBases,
			PercentRepeats: s.PercentRepeats,
			Digest:         summary.Hex(s.Digest),
		},
	}
}
