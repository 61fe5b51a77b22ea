package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trscan/internal/engine"
	"trscan/internal/progress"
)

// Compile-time check: the concrete detector satisfies the minimal contract.
var _ Scanner = (*engine.Detector)(nil)

// fakeScanner reports one repeat covering the whole sequence; longer
// sequences finish first to shake up completion order.
type fakeScanner struct {
	fail  []byte
	calls atomic.Int32
}

func (f *fakeScanner) ScanSeq(ctx context.Context, seq []byte, prog engine.Progress) ([]engine.Repeat, error) {
	f.calls.Add(1)
	if f.fail != nil && string(seq) == string(f.fail) {
		return nil, errors.New("scan failed")
	}
	time.Sleep(time.Duration(20-len(seq)%20) * time.Millisecond)
	prog.Advance(len(seq))
	if len(seq) < 2 {
		return nil, ctx.Err()
	}
	return []engine.Repeat{{Start: 0, End: len(seq), PeriodSize: 1}}, ctx.Err()
}

func writeFasta(t *testing.T, name, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(body), 0o644))
	return fn
}

func TestForEachRecordPreservesInputOrder(t *testing.T) {
	var b strings.Builder
	var want []string
	for i := 1; i <= 25; i++ {
		id := "r" + strings.Repeat("x", i)
		want = append(want, id)
		b.WriteString(">" + id + "\n" + strings.Repeat("A", i) + "\n")
	}
	fa := writeFasta(t, "many.fa", b.String())

	var got []string
	err := ForEachRecord(context.Background(), Config{Workers: 6}, []string{fa}, &fakeScanner{}, func(rec engine.Record) error {
		got = append(got, rec.SequenceID)
		assert.Equal(t, fa, rec.SourceFile)
		assert.Nil(t, rec.Seq)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestForEachRecordKeepsSeqAndObserves(t *testing.T) {
	fa := writeFasta(t, "one.fa", ">s desc\nacgtac\n")
	var observed atomic.Int32
	var n int
	err := ForEachRecord(context.Background(), Config{
		Workers: 1, KeepSeq: true,
		Observe: func(rec engine.Record, _ time.Duration) { observed.Add(1) },
	}, []string{fa}, &fakeScanner{}, func(rec engine.Record) error {
		n++
		assert.Equal(t, "s", rec.SequenceID)
		assert.Equal(t, "ACGTAC", string(rec.Seq))
		assert.Equal(t, 6, rec.Length)
		assert.Len(t, rec.Repeats, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, 1, observed.Load())
}

func TestForEachRecordMissingFileContinues(t *testing.T) {
	fa := writeFasta(t, "ok.fa", ">a\nACGT\n")
	missing := filepath.Join(t.TempDir(), "missing.fa")
	var reported []string
	var ids []string
	err := ForEachRecord(context.Background(), Config{
		Workers:      2,
		OnInputError: func(path string, _ error) { reported = append(reported, path) },
	}, []string{missing, fa}, &fakeScanner{}, func(rec engine.Record) error {
		ids = append(ids, rec.SequenceID)
		return nil
	})
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, missing, ie.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, []string{missing}, reported)
	assert.Equal(t, []string{"a"}, ids)
}

func TestForEachRecordVisitErrorStops(t *testing.T) {
	fa := writeFasta(t, "two.fa", ">a\nACGT\n>b\nACGT\n>c\nACGT\n")
	stop := errors.New("stop")
	n := 0
	err := ForEachRecord(context.Background(), Config{Workers: 2}, []string{fa}, &fakeScanner{}, func(engine.Record) error {
		n++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)
}

func TestForEachRecordScanErrorNamesRecord(t *testing.T) {
	fa := writeFasta(t, "bad.fa", ">good\nAAAA\n>bad\nCCCC\n")
	err := ForEachRecord(context.Background(), Config{Workers: 2}, []string{fa}, &fakeScanner{fail: []byte("CCCC")}, func(engine.Record) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestForEachRecordCanceled(t *testing.T) {
	fa := writeFasta(t, "c.fa", ">a\nACGT\n>b\nACGT\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachRecord(ctx, Config{Workers: 2}, []string{fa}, &fakeScanner{}, func(engine.Record) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingTracker struct {
	mu       sync.Mutex
	names    []string
	finished int
}

type recordingTask struct{ tr *recordingTracker }

func (t recordingTask) Advance(int) {}
func (t recordingTask) Finish(bool) {
	t.tr.mu.Lock()
	t.tr.finished++
	t.tr.mu.Unlock()
}

func (r *recordingTracker) Track(name string, _ int) progress.Task {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return recordingTask{tr: r}
}

func (r *recordingTracker) Wait() {}

func TestForEachRecordTracksProgress(t *testing.T) {
	fa := writeFasta(t, "p.fa", ">a\nACGT\n>b\nACGT\n")
	tr := &recordingTracker{}
	err := ForEachRecord(context.Background(), Config{Workers: 1, Progress: tr}, []string{fa}, &fakeScanner{}, func(engine.Record) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tr.names)
	assert.Equal(t, 2, tr.finished)
}

func TestForEachRecordWithDetector(t *testing.T) {
	fa := writeFasta(t, "real.fa", ">ac\n"+strings.Repeat("AC", 15)+"\n>n\nNNNNNNNN\n")
	d, err := engine.New(engine.DefaultParams(), engine.ScanOptions{Threads: 2})
	require.NoError(t, err)
	var recs []engine.Record
	err = ForEachRecord(context.Background(), Config{Workers: 2}, []string{fa}, d, func(rec engine.Record) error {
		recs = append(recs, rec)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Len(t, recs[0].Repeats, 1)
	assert.Equal(t, 2, recs[0].Repeats[0].PeriodSize)
	assert.Empty(t, recs[1].Repeats)
}

func TestFeedFileNumbersRecords(t *testing.T) {
	fa := writeFasta(t, "f.fa", ">a\nAC\n>b\nGT\n>c\nTT\n")
	jobs := make(chan job, 8)
	idx := 5
	require.NoError(t, feedFile(context.Background(), fa, jobs, &idx))
	close(jobs)

	var got []string
	for j := range jobs {
		got = append(got, j.rec.ID)
		assert.Equal(t, fa, j.sourceFile)
		assert.Equal(t, 5+len(got)-1, j.idx)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 8, idx)
}

func TestFeedFileStopsWhenCanceled(t *testing.T) {
	fa := writeFasta(t, "g.fa", strings.Repeat(">r\nACGT\n", 50))
	ctx, cancel := context.WithCancel(context.Background())
	jobs := make(chan job) // nobody reads
	done := make(chan error, 1)
	idx := 0
	go func() { done <- feedFile(ctx, fa, jobs, &idx) }()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("feedFile did not return after cancel")
	}
}

func TestFeedFileOpenError(t *testing.T) {
	idx := 0
	err := feedFile(context.Background(), filepath.Join(t.TempDir(), "none.fa"), make(chan job), &idx)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, idx)
}
