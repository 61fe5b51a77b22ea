// Package api holds the stable JSON/JSONL wire schema. Keep fields, names and
// types stable; add new fields only with ",omitempty".
//
// Coordinates are 1-based and inclusive: a repeat covering the first ten
// bases has start 1 and end 10.
package api

// RepeatV1 is one tandem repeat.
type RepeatV1 struct {
	Start        int     `json:"start"`
	End          int     `json:"end"`
	Length       int     `json:"length"`
	Period       int     `json:"period"`
	CopyNumber   float64 `json:"copy_number"`
	CopyDensity  float64 `json:"copy_density"`
	Score        float64 `json:"score"`
	RawScore     int     `json:"raw_score"`
	PercentMatch float64 `json:"percent_match"`
	PercentA     float64 `json:"pct_a"`
	PercentC     float64 `json:"pct_c"`
	PercentG     float64 `json:"pct_g"`
	PercentT     float64 `json:"pct_t"`
	Consensus    string  `json:"consensus"`
	Seq          string  `json:"seq,omitempty"`
}

// RecordV1 is the result for one FASTA record.
type RecordV1 struct {
	SourceFile string     `json:"source_file,omitempty"`
	SequenceID string     `json:"sequence_id"`
	Length     int        `json:"length"`
	Repeats    []RepeatV1 `json:"repeats"`
	Summary    SummaryV1  `json:"summary"`
}

// SummaryV1 condenses one record's repeats.
type SummaryV1 struct {
	Repeats        int     `json:"repeats"`
	CoveredBases   int     `json:"covered_bases"`
	PercentRepeats float64 `json:"percent_repeats"`
	Digest         string  `json:"digest"`
}
