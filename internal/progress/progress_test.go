package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopTracker(t *testing.T) {
	var tr Tracker = Nop{}
	task := tr.Track("x", 10)
	task.Advance(10)
	task.Finish(true)
	tr.Wait()
}

func TestBarsCompleteConcurrently(t *testing.T) {
	var buf bytes.Buffer
	bars := NewBars(&buf)
	var wg sync.WaitGroup
	for _, name := range []string{"chr1", "chr2", "chr3"} {
		task := bars.Track(name, 1000)
		wg.Add(1)
		go func(last bool) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				task.Advance(100)
			}
			task.Finish(!last)
		}(name == "chr3")
	}
	wg.Wait()
	bars.Wait()
	bars.Wait()
	assert.NotPanics(t, func() { bars.Wait() })
}

func TestBarsShortReportStillCompletes(t *testing.T) {
	bars := NewBars(&bytes.Buffer{})
	task := bars.Track("short", 500)
	task.Advance(120)
	task.Finish(true)
	bars.Wait()
}
