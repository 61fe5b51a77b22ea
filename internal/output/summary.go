package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"trscan/internal/engine"
	"trscan/internal/summary"
)

const summaryRule = "------------------------"

// WriteSummaryBlock prints the per-record block.
func WriteSummaryBlock(w io.Writer, rec engine.Record, s summary.Summary) error {
	_, err := fmt.Fprintf(w,
		"File: %s\nSequence: %s\nLength: %s bases\n# Repeats: %s\n%% Repeats of sequence: %.4f%%\nDigest: %s\n%s\n",
		rec.SourceFile, rec.SequenceID, humanize.Comma(int64(rec.Length)),
		humanize.Comma(int64(s.Repeats)), s.PercentRepeats, summary.Hex(s.Digest), summaryRule,
	)
	return err
}

// WriteSummaryTotals prints the closing totals line.
func WriteSummaryTotals(w io.Writer, t summary.Totals) error {
	_, err := fmt.Fprintf(w, "Total: %s records, %s bases, %s repeats (%.4f%% of bases)\n",
		humanize.Comma(int64(t.Records)), humanize.Comma(int64(t.Bases)),
		humanize.Comma(int64(t.Repeats)), t.PercentRepeats())
	return err
}

// StreamSummary writes one block per record and the totals at the end.
func StreamSummary(w io.Writer, in <-chan engine.Record) error {
	if _, err := fmt.Fprintln(w, "====== FINAL SUMMARY ======"); err != nil {
		return err
	}
	var tot summary.Totals
	for rec := range in {
		s := summary.Of(rec)
		tot.Add(rec, s)
		if err := WriteSummaryBlock(w, rec, s); err != nil {
			return err
		}
	}
	return WriteSummaryTotals(w, tot)
}
