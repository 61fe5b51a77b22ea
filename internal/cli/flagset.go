package cli

import "flag"

// NewFlagSet returns a clean FlagSet with ContinueOnError and the grouped
// trscan help installed.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	installUsage(fs, name)
	return fs
}
