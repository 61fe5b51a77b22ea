package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"trscan/internal/appcore"
	"trscan/internal/cli"
	"trscan/internal/config"
	"trscan/internal/version"
	"trscan/internal/writers"
)

const name = "trscan"

// flushOut flushes outw and maps the result to an exit code.
func flushOut(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flushOut(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flushOut(outw, stderr, 0)
		case errors.Is(err, cli.ErrExamples):
			cli.PrintExamples(outw, name)
			return flushOut(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flushOut(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flushOut(outw, stderr, 0)
	}

	base, err := config.Load(opts.ConfigFile, opts.EnvFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	cfg, err := opts.Apply(base)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	coreOpts := appcore.Options{
		SeqFiles:        opts.SeqFiles,
		Config:          cfg,
		Progress:        opts.Progress,
		MetricsFile:     opts.MetricsFile,
		Quiet:           opts.Quiet,
		NoMatchExitCode: opts.NoMatchExitCode,
	}
	writer := appcore.NewRecordWriterFactory(opts.Output, opts.Header, opts.Products, opts.Pretty)
	return appcore.Run(parent, outw, stderr, coreOpts, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
