package output

import (
	"fmt"
	"io"
	"strconv"

	"trscan/internal/engine"
	"trscan/internal/pretty"
)

func ff(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) }

// FormatRowTSV returns one repeat row (no trailing newline).
func FormatRowTSV(rec engine.Record, r engine.Repeat, withSeq bool) string {
	row := fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s",
		rec.SourceFile, rec.SequenceID,
		r.Start+1, r.End, r.Len(), r.PeriodSize,
		ff(r.CopyNumber, 2), strconv.FormatFloat(r.CopyDensity, 'g', 6, 64),
		strconv.FormatFloat(r.Score, 'g', 6, 64), r.RawScore,
		ff(r.PercentMatch, 2),
		ff(r.PercentA, 2), ff(r.PercentC, 2), ff(r.PercentG, 2), ff(r.PercentT, 2),
		r.Consensus,
	)
	if withSeq {
		seq := ""
		if rec.Seq != nil && r.End <= len(rec.Seq) {
			seq = string(rec.Seq[r.Start:r.End])
		}
		row += "\t" + seq
	}
	return row
}

// WriteHeader prints the TSV header.
func WriteHeader(w io.Writer, withSeq bool) error {
	h := TSVHeader
	if withSeq {
		h += "\t" + TSVSeqColumn
	}
	_, err := fmt.Fprintln(w, h)
	return err
}

// WriteRecordTSV prints one row per repeat of rec. With showPretty each row is
// followed by its copy alignment block.
func WriteRecordTSV(w io.Writer, rec engine.Record, withSeq, showPretty bool) error {
	for _, r := range rec.Repeats {
		if _, err := fmt.Fprintln(w, FormatRowTSV(rec, r, withSeq)); err != nil {
			return err
		}
		if showPretty {
			if _, err := io.WriteString(w, pretty.RenderRepeat(rec.Seq, rec.SequenceID, r, pretty.DefaultOptions)); err != nil {
				return err
			}
		}
	}
	return nil
}

// StreamText writes the header (optionally) and then every record as it arrives.
func StreamText(w io.Writer, in <-chan engine.Record, header, withSeq, showPretty bool) error {
	if header {
		if err := WriteHeader(w, withSeq); err != nil {
			return err
		}
	}
	for rec := range in {
		if err := WriteRecordTSV(w, rec, withSeq, showPretty); err != nil {
			return err
		}
	}
	return nil
}
