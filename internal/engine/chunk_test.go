package engine

import (
	"strings"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowedCopyShift(t *testing.T) {
	seq := []byte("ACGTTACGT")
	start, matches, shifted := windowedCopy(seq, seq[:4], 4)
	assert.Equal(t, 5, start)
	assert.Equal(t, 4, matches)
	assert.True(t, shifted)

	// in-frame wins ties
	seq = []byte("ACGTACGT")
	start, matches, shifted = windowedCopy(seq, seq[:4], 4)
	assert.Equal(t, 4, start)
	assert.Equal(t, 4, matches)
	assert.False(t, shifted)
}

func TestWindowedCopyShortMotifNeverShifts(t *testing.T) {
	seq := []byte("ACCAC")
	start, matches, shifted := windowedCopy(seq, seq[:2], 2)
	assert.Equal(t, 2, start)
	assert.Equal(t, 0, matches)
	assert.False(t, shifted)

	start, _, _ = windowedCopy(seq, seq[:2], 4)
	assert.Equal(t, -1, start)
}

func TestExtendWindowedPaysIndel(t *testing.T) {
	c, ok := extendWindowed([]byte("ACGTTACGT"), 0, 4, DefaultParams())
	require.True(t, ok)
	assert.Equal(t, chunkCandidate{Pos: 0, Period: 4, Length: 9, Copies: 2, Score: 1, Rough: 8}, c)

	_, ok = extendWindowed([]byte("ACGTTTTT"), 0, 4, DefaultParams())
	assert.False(t, ok)
}

func TestMinimalUnit(t *testing.T) {
	cases := map[string]int{
		"A":       1,
		"AAAA":    1,
		"ACAC":    2,
		"CAGCAG":  3,
		"ACG":     3,
		"ACGACGA": 7,
		"ACGTAC":  6,
	}
	for motif, want := range cases {
		assert.Equal(t, want, minimalUnit([]byte(motif)), motif)
	}
}

func TestReduceCandidate(t *testing.T) {
	seq := []byte(strings.Repeat("AC", 8))
	units, err := lru.New[string, int](8)
	require.NoError(t, err)

	c, ok := reduceCandidate(seq, chunkCandidate{Pos: 0, Period: 4, Length: 11, Copies: 2, Score: 5}, units)
	require.True(t, ok)
	assert.Equal(t, chunkCandidate{Pos: 0, Period: 2, Length: 10, Copies: 5, Score: 5}, c)

	cached, hit := units.Get("ACAC")
	assert.True(t, hit)
	assert.Equal(t, 2, cached)

	_, ok = reduceCandidate(seq, chunkCandidate{Pos: 0, Period: 4, Length: 7, Copies: 2}, units)
	assert.False(t, ok)
	_, ok = reduceCandidate(seq, chunkCandidate{Pos: 0, Period: 4, Length: 8, Copies: 1}, units)
	assert.False(t, ok)
}

func TestChunkBounds(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 10}, {10, 20}, {20, 25}}, chunkBounds(25, 10))
	assert.Empty(t, chunkBounds(0, 10))
	assert.Equal(t, [][2]int{{0, 5}}, chunkBounds(5, 0))
}

func TestScanChunkGate(t *testing.T) {
	seq := []byte(nonRepetitive50)
	assert.Empty(t, scanChunk(seq, 0, len(seq), DefaultParams()))

	p := DefaultParams()
	p.MinScore = 0
	assert.NotEmpty(t, scanChunk(seq, 0, len(seq), p))

	p.ChunkMinScore = 10
	assert.Empty(t, scanChunk(seq, 0, len(seq), p))
}

func TestScanChunkKeepsBestPerPosition(t *testing.T) {
	seq := []byte("ACACACACAC")
	p := DefaultParams()
	p.MinScore = 10
	got := scanChunk(seq, 0, 1, p)
	require.Len(t, got, 1)
	assert.Equal(t, chunkCandidate{Pos: 0, Period: 2, Length: 10, Copies: 5, Score: 16, Rough: 18}, got[0])
}

func TestScanChunkRoughScoreBoundary(t *testing.T) {
	seq := []byte("ACACACACAC")
	p := DefaultParams()
	p.MinScore = 18
	assert.Len(t, scanChunk(seq, 0, 1, p), 1)

	p.MinScore = 19
	assert.Empty(t, scanChunk(seq, 0, 1, p))
}
