package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the signature shared by the app entry points.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run against the process arguments and exits with its code.
func Main(run RunFunc) {
	os.Exit(Exec(context.Background(), os.Args[1:], os.Stdout, os.Stderr, run))
}

// Exec runs run under a context canceled by SIGINT or SIGTERM. A run that was
// interrupted but still reported success exits 130.
func Exec(parent context.Context, argv []string, stdout, stderr io.Writer, run RunFunc) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
