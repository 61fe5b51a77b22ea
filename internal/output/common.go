package output

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "source_file\tsequence_id\tstart\tend\tlength\tperiod\tcopy_number\tcopy_density\tscore\traw_score\tpercent_match\tpct_a\tpct_c\tpct_g\tpct_t\tconsensus"

// TSVSeqColumn is appended to TSVHeader when repeat sequences are emitted.
const TSVSeqColumn = "seq"

// Output format names.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)
