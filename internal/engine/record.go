package engine

import "context"

// Record is the scan result for one FASTA record.
type Record struct {
	SourceFile string
	SequenceID string
	Length     int
	Seq        []byte // only set when repeat sequences are requested
	Repeats    []Repeat
}

// CoveredBases is the total length of all repeats. Repeats never overlap, so
// this never exceeds Length.
func (r Record) CoveredBases() int {
	total := 0
	for _, rp := range r.Repeats {
		total += rp.Len()
	}
	return total
}

// PercentCovered is CoveredBases as a percentage of Length.
func (r Record) PercentCovered() float64 {
	if r.Length == 0 {
		return 0
	}
	return float64(r.CoveredBases()) / float64(r.Length) * 100
}

// Detector binds validated parameters and scan options so callers can scan
// many sequences with one configuration.
type Detector struct {
	params Params
	opt    ScanOptions
}

// New validates p and returns a Detector.
func New(p Params, opt ScanOptions) (*Detector, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseMode(string(opt.Mode)); err != nil {
		return nil, err
	}
	if opt.Mode == "" {
		opt.Mode = ModeParallel
	}
	return &Detector{params: p, opt: opt}, nil
}

// Params returns the detection parameters.
func (d *Detector) Params() Params { return d.params }

// Options returns the scan options.
func (d *Detector) Options() ScanOptions { return d.opt }

// ScanSeq runs Scan over seq, reporting to prog (nil disables progress).
func (d *Detector) ScanSeq(ctx context.Context, seq []byte, prog Progress) ([]Repeat, error) {
	opt := d.opt
	opt.Progress = prog
	return Scan(ctx, seq, d.params, opt)
}
