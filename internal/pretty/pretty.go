// Package pretty draws a copy-by-copy view of a tandem repeat under its
// consensus, one row of bases and one row of match bars per copy.
package pretty

import (
	"fmt"
	"strings"

	"trscan/internal/engine"
)

// Options control the ASCII rendering.
type Options struct {
	// Copies longer than MaxWidth are cut and marked with "...". If <=0, use
	// the default (95).
	MaxWidth int

	// Rows drawn before the remaining copies are elided. If <=0, use the
	// default (20).
	MaxCopies int

	// Glyphs
	ExactGlyph string // default "|"
	DotGlyph   string // default "."
}

// DefaultOptions is the stock look.
var DefaultOptions = Options{
	MaxWidth:   95,
	MaxCopies:  20,
	ExactGlyph: "|",
	DotGlyph:   ".",
}

const (
	linePrefix = "# "
	consLabel  = "cons"
	cutMark    = "..."
)

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultOptions.MaxWidth
	}
	if o.MaxCopies <= 0 {
		o.MaxCopies = DefaultOptions.MaxCopies
	}
	if o.ExactGlyph == "" {
		o.ExactGlyph = DefaultOptions.ExactGlyph
	}
	if o.DotGlyph == "" {
		o.DotGlyph = DefaultOptions.DotGlyph
	}
	return o
}

// barLine marks each base of part that equals the consensus base at the same
// offset.
func barLine(part, cons string, exact, dot string) string {
	var b strings.Builder
	b.Grow(len(part))
	for i := 0; i < len(part); i++ {
		if i < len(cons) && part[i] == cons[i] {
			b.WriteString(exact)
		} else {
			b.WriteString(dot)
		}
	}
	return b.String()
}

func clip(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width] + cutMark
}

// RenderRepeat prints the block for one repeat of the record id. seq is the
// full record sequence; coordinates in the block are 1-based.
func RenderRepeat(seq []byte, id string, r engine.Repeat, opt Options) string {
	opt = opt.withDefaults()
	var b strings.Builder

	if seq == nil || r.PeriodSize < 1 || r.Start < 0 || r.End > len(seq) || r.Start >= r.End {
		fmt.Fprintf(&b, "%s(pretty not available: sequence missing)\n\n", linePrefix)
		return b.String()
	}

	fmt.Fprintf(&b, "%s%s:%d-%d period=%d copies=%.2f consensus=%s\n",
		linePrefix, id, r.Start+1, r.End, r.PeriodSize, r.CopyNumber, clip(r.Consensus, opt.MaxWidth))

	w := len(fmt.Sprint(r.End))
	if w < len(consLabel) {
		w = len(consLabel)
	}
	pad := strings.Repeat(" ", w)
	cons := r.Consensus
	fmt.Fprintf(&b, "%s%*s  %s\n", linePrefix, w, consLabel, clip(cons, opt.MaxWidth))

	rows := 0
	for at := r.Start; at < r.End; at += r.PeriodSize {
		if rows == opt.MaxCopies {
			left := (r.End - at + r.PeriodSize - 1) / r.PeriodSize
			fmt.Fprintf(&b, "%s%s  ... %d more copies\n", linePrefix, pad, left)
			break
		}
		hi := at + r.PeriodSize
		if hi > r.End {
			hi = r.End
		}
		part := string(seq[at:hi])
		bars := barLine(part, cons, opt.ExactGlyph, opt.DotGlyph)
		if len(part) > opt.MaxWidth {
			part = clip(part, opt.MaxWidth)
			bars = barLine(part[:opt.MaxWidth], cons, opt.ExactGlyph, opt.DotGlyph)
		}
		fmt.Fprintf(&b, "%s%*d  %s\n", linePrefix, w, at+1, part)
		fmt.Fprintf(&b, "%s%s  %s\n", linePrefix, pad, bars)
		rows++
	}
	b.WriteString("\n")
	return b.String()
}
