// Package progress renders per-record scan progress on stderr.
package progress

import (
	"io"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Task receives position increments for one record.
type Task interface {
	Advance(n int)
	// Finish completes the task; ok=false marks it aborted.
	Finish(ok bool)
}

// Tracker hands out one Task per record.
type Tracker interface {
	Track(name string, total int) Task
	// Wait blocks until every task has finished rendering.
	Wait()
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Track(string, int) Task { return nopTask{} }
func (Nop) Wait()                  {}

type nopTask struct{}

func (nopTask) Advance(int) {}
func (nopTask) Finish(bool) {}

// Bars draws one mpb bar per tracked record.
type Bars struct {
	p    *mpb.Progress
	once sync.Once
}

// NewBars returns a Tracker writing to w.
func NewBars(w io.Writer) *Bars {
	return &Bars{p: mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))}
}

// Track adds a bar sized to total bases.
func (b *Bars) Track(name string, total int) Task {
	bar := b.p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncSpace),
			decor.OnComplete(decor.Name(""), " done"),
		),
	)
	return &barTask{bar: bar}
}

// Wait blocks until all bars are complete or aborted.
func (b *Bars) Wait() { b.once.Do(b.p.Wait) }

type barTask struct{ bar *mpb.Bar }

func (t *barTask) Advance(n int) { t.bar.IncrBy(n) }

func (t *barTask) Finish(ok bool) {
	if !ok {
		t.bar.Abort(false)
		return
	}
	// -1 pins total to the current count so short reports still complete
	t.bar.SetTotal(-1, true)
}
