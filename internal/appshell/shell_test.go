package appshell

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecPassesArgsAndCode(t *testing.T) {
	var got []string
	run := func(_ context.Context, argv []string, stdout, _ io.Writer) int {
		got = argv
		_, _ = io.WriteString(stdout, "ok")
		return 1
	}
	var out bytes.Buffer
	code := Exec(context.Background(), []string{"-s", "x.fa"}, &out, io.Discard, run)
	assert.Equal(t, 1, code)
	assert.Equal(t, []string{"-s", "x.fa"}, got)
	assert.Equal(t, "ok", out.String())
}

func TestExecCanceledSuccessBecomes130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	run := func(context.Context, []string, io.Writer, io.Writer) int { return 0 }
	assert.Equal(t, 130, Exec(ctx, nil, io.Discard, io.Discard, run))

	fail := func(context.Context, []string, io.Writer, io.Writer) int { return 3 }
	assert.Equal(t, 3, Exec(ctx, nil, io.Discard, io.Discard, fail))
}
