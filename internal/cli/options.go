package cli

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"trscan/internal/cliutil"
	"trscan/internal/config"
)

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// ErrExamples is returned by ParseArgs when --examples was given. Callers
// print the quickstart and exit 0.
var ErrExamples = errors.New("examples requested")

// Options holds every CLI flag and argument.
type Options struct {
	// Input
	SeqFiles   []string
	FileList   string
	ConfigFile string
	EnvFile    string

	// Output
	Output          string
	Products        bool
	Pretty          bool
	Header          bool // true unless --no-header
	Progress        bool
	MetricsFile     string
	NoMatchExitCode int

	// Misc
	Quiet   bool
	Version bool

	// Overrides holds detection settings given explicitly on the command
	// line, keyed by config key.
	Overrides map[string]string
}

// flagKeys maps detection flags (and their aliases) to config keys.
var flagKeys = map[string]string{
	"match":              "match_weight",
	"mismatch":           "mismatch_penalty",
	"indel":              "indel_penalty",
	"min-score":          "min_score",
	"threshold":          "min_score",
	"max-period":         "max_period",
	"l":                  "max_period",
	"prefilter-fraction": "prefilter_fraction",
	"max-copies":         "max_copies",
	"flank":              "refine_flank",
	"band":               "refine_band",
	"chunk-min-score":    "chunk_min_score",
	"mode":               "mode",
	"threads":            "threads",
	"t":                  "threads",
	"chunk-size":         "chunk_size",
}

// sliceValue appends each value to a *[]string (for --sequences/-s).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// register wires all flags onto fs. Detection flags write into scratch, which
// only serves to show defaults in help; their values are collected through
// fs.Visit so unset flags never mask config file or environment values.
func register(fs *flag.FlagSet, o *Options, scratch *config.Config, noHeader, help, examples *bool) {
	// Input
	seqVal := &sliceValue{dst: &o.SeqFiles}
	fs.Var(seqVal, "sequences", "FASTA file(s) (repeatable) or '-'")
	fs.Var(seqVal, "s", "alias of --sequences")
	fs.StringVar(&o.FileList, "file-list", "", "file with one FASTA path per line")
	fs.StringVar(&o.ConfigFile, "config", "", "YAML settings file")
	fs.StringVar(&o.EnvFile, "env-file", ".env", "dotenv file with TRSCAN_* settings")

	// Detection
	fs.IntVar(&scratch.MatchWeight, "match", scratch.MatchWeight, "match weight")
	fs.IntVar(&scratch.MismatchPenalty, "mismatch", scratch.MismatchPenalty, "mismatch penalty")
	fs.IntVar(&scratch.IndelPenalty, "indel", scratch.IndelPenalty, "indel penalty")
	fs.IntVar(&scratch.MinScore, "min-score", scratch.MinScore, "minimum rough score to report a repeat")
	fs.IntVar(&scratch.MinScore, "threshold", scratch.MinScore, "alias of --min-score")
	fs.IntVar(&scratch.MaxPeriod, "max-period", scratch.MaxPeriod, "longest motif period")
	fs.IntVar(&scratch.MaxPeriod, "l", scratch.MaxPeriod, "alias of --max-period")
	fs.Float64Var(&scratch.PrefilterFraction, "prefilter-fraction", scratch.PrefilterFraction, "exact-match fraction a copy needs")
	fs.IntVar(&scratch.MaxCopies, "max-copies", scratch.MaxCopies, "copy cap per candidate")
	fs.IntVar(&scratch.RefineFlank, "flank", scratch.RefineFlank, "refinement flank (bp)")
	fs.IntVar(&scratch.RefineBand, "band", scratch.RefineBand, "alignment band half-width")
	fs.IntVar(&scratch.ChunkMinScore, "chunk-min-score", scratch.ChunkMinScore, "parallel mode score gate")

	// Performance
	fs.StringVar(&scratch.Mode, "mode", scratch.Mode, "scan mode: parallel | sequential")
	fs.IntVar(&scratch.Threads, "threads", scratch.Threads, "worker threads (0=all CPUs)")
	fs.IntVar(&scratch.Threads, "t", scratch.Threads, "alias of --threads")
	fs.IntVar(&scratch.ChunkSize, "chunk-size", scratch.ChunkSize, "parallel chunk width (bp)")

	// Output
	fs.StringVar(&o.Output, "output", FormatText, "output: text | json | jsonl | summary")
	fs.StringVar(&o.Output, "o", FormatText, "alias of --output")
	fs.BoolVar(&o.Products, "products", false, "include repeat sequences")
	fs.BoolVar(&o.Pretty, "pretty", false, "copy alignment blocks in text output")
	fs.BoolVar(noHeader, "no-header", false, "suppress header line")
	fs.BoolVar(&o.Progress, "progress", false, "show progress bars on stderr")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics here")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no repeats are found")

	// Misc
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress non-essential warnings")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&o.Version, "v", false, "print version and exit")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	fs.BoolVar(help, "h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")
	fs.BoolVar(examples, "examples", false, "show quickstart examples")
}

// ParseArgs registers and parses all flags and returns the Options. Flags may
// follow positionals; positionals are FASTA paths and may be globs.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	o := Options{Overrides: map[string]string{}}
	scratch := config.Default()
	var noHeader, help, examples bool
	register(fs, &o, &scratch, &noHeader, &help, &examples)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if examples {
		return o, ErrExamples
	}
	if o.Version {
		return o, nil
	}
	o.Header = !noHeader
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			o.Overrides[key] = f.Value.String()
		}
	})

	posArgs = append(posArgs, fs.Args()...)
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return o, err
		}
		o.SeqFiles = append(o.SeqFiles, exp...)
	}
	if o.FileList != "" {
		listed, err := cliutil.ReadFileList(o.FileList)
		if err != nil {
			return o, err
		}
		o.SeqFiles = append(o.SeqFiles, listed...)
	}
	return o, Validate(&o)
}

// Validate applies CLI invariants that do not depend on the config layers.
func Validate(o *Options) error {
	if len(o.SeqFiles) == 0 {
		return errors.New("at least one sequence file is required (--sequences, positional, or --file-list)")
	}
	switch o.Output {
	case FormatText, FormatJSON, FormatJSONL, FormatSummary:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return nil
}

// Apply overlays the command-line detection overrides onto base.
func (o Options) Apply(base config.Config) (config.Config, error) {
	keys := make([]string, 0, len(o.Overrides))
	for k := range o.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := base.Set(k, o.Overrides[k]); err != nil {
			return base, err
		}
	}
	return base, nil
}
