package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trscan/internal/engine"
	"trscan/internal/output"
	"trscan/pkg/api"
)

func records() []engine.Record {
	seq := []byte("CAGCAGCAGCAGNNNN")
	return []engine.Record{
		{SourceFile: "a.fa", SequenceID: "s1", Length: len(seq), Seq: seq, Repeats: []engine.Repeat{
			{Start: 0, End: 12, PeriodSize: 3, CopyNumber: 4, RawScore: 40, Consensus: "CAG", PercentMatch: 100},
		}},
		{SourceFile: "a.fa", SequenceID: "s2", Length: 8},
	}
}

func run(t *testing.T, format string, opt Options) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	in, done := StartRecordWriter(&buf, format, opt, 1)
	for _, r := range records() {
		in <- r
	}
	close(in)
	err := <-done
	return buf.String(), err
}

func TestFormatsRegistered(t *testing.T) {
	assert.Equal(t, []string{"json", "jsonl", "summary", "text"}, Formats())
}

func TestUnknownFormatError(t *testing.T) {
	_, err := run(t, "nope-format", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestTextWriter(t *testing.T) {
	out, err := run(t, output.FormatText, Options{Header: true, Products: true})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, output.TSVHeader+"\tseq", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "a.fa\ts1\t1\t12\t12\t3\t"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "\tCAG\tCAGCAGCAGCAG"), lines[1])

	out, err = run(t, output.FormatText, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestTextWriterPretty(t *testing.T) {
	out, err := run(t, output.FormatText, Options{Pretty: true})
	require.NoError(t, err)
	assert.Contains(t, out, "\n# s1:1-12 period=3 copies=4.00 consensus=CAG\n# cons  CAG\n#    1  CAG\n#       |||\n")
	assert.Equal(t, 4, strings.Count(out, "#       |||\n"))
}

func TestJSONWriter(t *testing.T) {
	out, err := run(t, output.FormatJSON, Options{})
	require.NoError(t, err)
	var got []api.RecordV1
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].SequenceID)
	assert.Equal(t, 1, got[0].Repeats[0].Start)
	assert.Equal(t, 12, got[0].Repeats[0].End)
	assert.Empty(t, got[0].Repeats[0].Seq)
	assert.Equal(t, 1, got[0].Summary.Repeats)
	assert.NotNil(t, got[1].Repeats)
	assert.Empty(t, got[1].Repeats)
}

func TestJSONLWriterStreamsValidV1(t *testing.T) {
	out, err := run(t, output.FormatJSONL, Options{Products: true})
	require.NoError(t, err)
	sc := bufio.NewScanner(strings.NewReader(out))
	var n int
	for sc.Scan() {
		n++
		var v api.RecordV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v), "line %d", n)
		if n == 1 {
			assert.Equal(t, "CAGCAGCAGCAG", v.Repeats[0].Seq)
		}
	}
	assert.Equal(t, 2, n)
}

func TestSummaryWriter(t *testing.T) {
	out, err := run(t, output.FormatSummary, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "====== FINAL SUMMARY ======")
	assert.Contains(t, out, "# Repeats: 1\n% Repeats of sequence: 75.0000%")
	assert.Contains(t, out, "Total: 2 records, 24 bases, 1 repeats (50.0000% of bases)")
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriterErrorDoesNotBlockProducer(t *testing.T) {
	boom := errors.New("disk full")
	in, done := StartRecordWriter(failWriter{boom}, output.FormatText, Options{Header: true}, 1)
	for i := 0; i < 10; i++ {
		in <- records()[0]
	}
	close(in)
	assert.ErrorIs(t, <-done, boom)
}

func TestJSONLBrokenPipeSuppressed(t *testing.T) {
	in, done := StartRecordWriter(failWriter{syscall.EPIPE}, output.FormatJSONL, Options{}, 1)
	in <- records()[0]
	close(in)
	assert.NoError(t, <-done)
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(io.EOF))
}
