package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is wrapped by every Params.Validate failure.
var ErrInvalidParams = errors.New("invalid detection parameters")

// Params holds the detection parameters. A scan shares one value read-only
// across all of its workers.
type Params struct {
	MatchWeight       int     `yaml:"match_weight"`
	MismatchPenalty   int     `yaml:"mismatch_penalty"`
	IndelPenalty      int     `yaml:"indel_penalty"`
	MinScore          int     `yaml:"min_score"`
	MaxPeriod         int     `yaml:"max_period"`
	PrefilterFraction float64 `yaml:"prefilter_fraction"` // required exact-match ratio per copy, (0,1]
	MaxCopies         int     `yaml:"max_copies"`
	RefineFlank       int     `yaml:"refine_flank"`
	RefineBand        int     `yaml:"refine_band"`

	// ChunkMinScore additionally gates parallel-scan candidates by their
	// windowed score. MinScore applies to both scan modes.
	ChunkMinScore int `yaml:"chunk_min_score"`
}

// DefaultParams returns the stock parameter set.
func DefaultParams() Params {
	return Params{
		MatchWeight:       2,
		MismatchPenalty:   7,
		IndelPenalty:      7,
		MinScore:          50,
		MaxPeriod:         500,
		PrefilterFraction: 0.75,
		MaxCopies:         1000,
		RefineFlank:       100,
		RefineBand:        8,
	}
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	switch {
	case p.MatchWeight < 0:
		return fmt.Errorf("%w: match weight must be ≥ 0 (got %d)", ErrInvalidParams, p.MatchWeight)
	case p.MismatchPenalty < 0:
		return fmt.Errorf("%w: mismatch penalty must be ≥ 0 (got %d)", ErrInvalidParams, p.MismatchPenalty)
	case p.IndelPenalty < 0:
		return fmt.Errorf("%w: indel penalty must be ≥ 0 (got %d)", ErrInvalidParams, p.IndelPenalty)
	case p.MaxPeriod < 1:
		return fmt.Errorf("%w: max period must be ≥ 1 (got %d)", ErrInvalidParams, p.MaxPeriod)
	case !(p.PrefilterFraction > 0 && p.PrefilterFraction <= 1):
		return fmt.Errorf("%w: prefilter fraction must be in (0,1] (got %g)", ErrInvalidParams, p.PrefilterFraction)
	case p.MaxCopies < 2:
		return fmt.Errorf("%w: max copies must be ≥ 2 (got %d)", ErrInvalidParams, p.MaxCopies)
	case p.RefineFlank < 0:
		return fmt.Errorf("%w: refine flank must be ≥ 0 (got %d)", ErrInvalidParams, p.RefineFlank)
	case p.RefineBand < 0:
		return fmt.Errorf("%w: refine band must be ≥ 0 (got %d)", ErrInvalidParams, p.RefineBand)
	case p.ChunkMinScore < 0:
		return fmt.Errorf("%w: chunk min score must be ≥ 0 (got %d)", ErrInvalidParams, p.ChunkMinScore)
	}
	return nil
}

// scoring extracts the alignment weights.
func (p Params) scoring() Scoring {
	return Scoring{Match: p.MatchWeight, Mismatch: p.MismatchPenalty, Indel: p.IndelPenalty}
}
