package cli

import (
	"flag"
	"fmt"
	"io"

	"trscan/internal/version"
)

// installUsage sets a grouped help screen on fs.
func installUsage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – tandem repeat finder\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage: %s [flags] <fasta>...\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -s, --sequences file           FASTA file(s) (repeatable) or '-' for STDIN; .gz accepted")
		fmt.Fprintln(out, "      --file-list file           File with one FASTA path per line")
		fmt.Fprintln(out, "      --config file              YAML settings file")
		fmt.Fprintf(out, "      --env-file file            Dotenv file with TRSCAN_* settings [%s]\n", def("env-file"))

		fmt.Fprintln(out, "\nDetection:")
		fmt.Fprintf(out, "      --match int                Match weight [%s]\n", def("match"))
		fmt.Fprintf(out, "      --mismatch int             Mismatch penalty [%s]\n", def("mismatch"))
		fmt.Fprintf(out, "      --indel int                Indel penalty [%s]\n", def("indel"))
		fmt.Fprintf(out, "      --min-score int            Minimum score to report (alias --threshold) [%s]\n", def("min-score"))
		fmt.Fprintf(out, "  -l, --max-period int           Longest motif period [%s]\n", def("max-period"))
		fmt.Fprintf(out, "      --prefilter-fraction float Exact-match fraction a copy needs [%s]\n", def("prefilter-fraction"))
		fmt.Fprintf(out, "      --max-copies int           Copy cap per candidate [%s]\n", def("max-copies"))
		fmt.Fprintf(out, "      --flank int                Refinement flank (bp) [%s]\n", def("flank"))
		fmt.Fprintf(out, "      --band int                 Alignment band half-width [%s]\n", def("band"))
		fmt.Fprintf(out, "      --chunk-min-score int      Extra windowed-score gate, parallel mode [%s]\n", def("chunk-min-score"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "      --mode string              Scan mode: parallel | sequential [%s]\n", def("mode"))
		fmt.Fprintf(out, "  -t, --threads int              Worker threads (0=all CPUs) [%s]\n", def("threads"))
		fmt.Fprintf(out, "      --chunk-size int           Parallel chunk width (bp) [%s]\n", def("chunk-size"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string            Output: text | json | jsonl | summary [%s]\n", def("output"))
		fmt.Fprintf(out, "      --products                 Include repeat sequences [%s]\n", def("products"))
		fmt.Fprintf(out, "      --no-header                Suppress header line [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --pretty                   Copy alignment under each text row [%s]\n", def("pretty"))
		fmt.Fprintf(out, "      --progress                 Progress bars on stderr [%s]\n", def("progress"))
		fmt.Fprintln(out, "      --metrics-file file        Write Prometheus textfile metrics")
		fmt.Fprintf(out, "      --no-match-exit-code int   Exit code when no repeats found [%s]\n", def("no-match-exit-code"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                    Suppress non-essential warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "      --examples                 Show quickstart examples")
		fmt.Fprintln(out, "  -v, --version                  Print version and exit")
		fmt.Fprintln(out, "  -h, --help                     Show this help and exit")
		fmt.Fprintln(out, "\nSettings precedence: flags > TRSCAN_* environment > --config file > defaults.")
	}
}

// PrintExamples prints a short quickstart followed by a hint to the full help.
func PrintExamples(out io.Writer, name string) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s: quickstart\n\n", name)
	_, _ = fmt.Fprintf(out, "  # scan a genome with default settings\n  %s genome.fa.gz\n\n", name)
	_, _ = fmt.Fprintf(out, "  # coverage summary for every file in a list\n  %s --file-list genes.txt -o summary\n\n", name)
	_, _ = fmt.Fprintf(out, "  # reference sequential scan, lower threshold, JSON lines\n  %s --mode sequential --min-score 30 -o jsonl reads.fa\n\n", name)
	_, _ = fmt.Fprintf(out, "  # from STDIN with repeat sequences\n  zcat chr1.fa.gz | %s --products -\n", name)
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
