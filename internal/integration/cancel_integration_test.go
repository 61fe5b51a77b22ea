package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trscan/internal/app"
)

func TestCtrlC_MidScan_Exit130(t *testing.T) {
	// Periodic input keeps every anchor extending to the copy cap.
	fn := filepath.Join(t.TempDir(), "cancel_big.fa")
	const Mb = 1 << 20
	seq := strings.Repeat("ACGT", (2*Mb)/4)
	require.NoError(t, os.WriteFile(fn, []byte(">chr1\n"+seq+"\n"), 0o644))

	argv := []string{
		"--max-period", "8",
		"--chunk-size", "64",
		fn,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	code := app.RunContext(ctx, argv, io.Discard, io.Discard)
	assert.Equal(t, 130, code)
	assert.Less(t, time.Since(start), 30*time.Second)
}
