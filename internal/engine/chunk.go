package engine

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// minShiftPeriod is the shortest motif for which ±1-shifted copies are tried.
// Shorter motifs could stall the cursor or match themselves.
const minShiftPeriod = 4

// unitCacheSize bounds the per-chunk minimal-unit cache.
const unitCacheSize = 4096

// chunkCandidate is one tandem array found by a chunk worker.
type chunkCandidate struct {
	Pos    int
	Period int
	Length int
	Copies int
	Score  int // windowed score, used to pick the best period
	Rough  int // rough score on the prefilter scale, gated by MinScore
}

func (c chunkCandidate) bounds() (int, int) { return c.Pos, c.Pos + c.Length }
func (c chunkCandidate) rank() int          { return c.Score }
func (c chunkCandidate) unit() int          { return c.Period }

// windowedCopy scores the block that follows cursor against motif, trying the
// in-frame block first and then the blocks shifted one base left and right.
// It returns the start of the chosen block, its exact matches and whether it
// was shifted. Ties prefer no shift, then left, then right.
func windowedCopy(seq, motif []byte, cursor int) (start, matches int, shifted bool) {
	L, n := len(motif), len(seq)
	start = -1
	if cursor+L <= n {
		start, matches = cursor, countMatches(motif, seq[cursor:cursor+L])
	}
	if L < minShiftPeriod {
		return start, matches, false
	}
	for _, off := range [...]int{-1, 1} {
		s := cursor + off
		if s+L > n {
			continue
		}
		if k := countMatches(motif, seq[s:s+L]); start < 0 || k > matches {
			start, matches, shifted = s, k, true
		}
	}
	return start, matches, shifted
}

// extendWindowed greedily stacks copies of seq[pos:pos+L] using windowedCopy.
func extendWindowed(seq []byte, pos, L int, p Params) (chunkCandidate, bool) {
	n := len(seq)
	if L < 1 || pos < 0 || n-pos < 2*L {
		return chunkCandidate{}, false
	}
	motif := seq[pos : pos+L]
	need := minExact(L, p.PrefilterFraction)

	cursor := pos + L
	copies, score := 1, 0
	for copies < p.MaxCopies {
		s, k, shifted := windowedCopy(seq, motif, cursor)
		if s < 0 || k < need {
			break
		}
		q := k*p.MatchWeight - (L-k)*p.MismatchPenalty
		if shifted {
			q -= p.IndelPenalty
		}
		score = satAdd(score, q)
		copies++
		cursor = s + L
	}
	if copies < 2 {
		return chunkCandidate{}, false
	}
	return chunkCandidate{
		Pos: pos, Period: L, Length: cursor - pos, Copies: copies,
		Score: score, Rough: roughScore(copies, L, score, p.MatchWeight),
	}, true
}

// minimalUnit returns the shortest u dividing len(motif) such that motif is a
// repetition of its first u bytes.
func minimalUnit(motif []byte) int {
	L := len(motif)
outer:
	for u := 1; u < L; u++ {
		if L%u != 0 {
			continue
		}
		for i := u; i < L; i++ {
			if motif[i] != motif[i-u] {
				continue outer
			}
		}
		return u
	}
	return L
}

// scanChunk evaluates every position in [lo, hi) and keeps, per position, the
// highest windowed score among candidates that pass both score gates.
// Extensions may run past hi; the sequence is read-only so that is safe, and
// the resolver settles overlaps.
func scanChunk(seq []byte, lo, hi int, p Params) []chunkCandidate {
	n := len(seq)
	units, _ := lru.New[string, int](unitCacheSize)
	var out []chunkCandidate
	for pos := lo; pos < hi; pos++ {
		maxL := (n - pos) / 2
		if p.MaxPeriod < maxL {
			maxL = p.MaxPeriod
		}
		var (
			best  chunkCandidate
			found bool
		)
		for L := 1; L <= maxL; L++ {
			c, ok := extendWindowed(seq, pos, L, p)
			if !ok || c.Rough < p.MinScore || c.Score < p.ChunkMinScore {
				continue
			}
			if !found || c.Score > best.Score {
				best, found = c, true
			}
		}
		if !found {
			continue
		}
		if c, ok := reduceCandidate(seq, best, units); ok {
			out = append(out, c)
		}
	}
	return out
}

// reduceCandidate applies the local filters: at least two copies spanning two
// motif lengths, motif reduced to its minimal unit, length truncated to a whole
// number of units.
func reduceCandidate(seq []byte, c chunkCandidate, units *lru.Cache[string, int]) (chunkCandidate, bool) {
	if c.Copies < 2 || c.Length < 2*c.Period {
		return chunkCandidate{}, false
	}
	motif := seq[c.Pos : c.Pos+c.Period]
	key := string(motif)
	u, ok := units.Get(key)
	if !ok {
		u = minimalUnit(motif)
		units.Add(key, u)
	}
	c.Period = u
	c.Length -= c.Length % u
	c.Copies = c.Length / u
	return c, true
}

// chunkBounds partitions [0,n) into windows of size.
func chunkBounds(n, size int) [][2]int {
	if size <= 0 {
		size = DefaultChunkSize
	}
	out := make([][2]int, 0, n/size+1)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

// ScanParallel splits seq into chunks, scans them concurrently and merges the
// results once. Each chunk task owns its result slot, so no lock is needed;
// the final order comes from Resolve alone and is independent of timing.
func ScanParallel(ctx context.Context, seq []byte, p Params, opt ScanOptions) ([]Repeat, error) {
	prog := opt.Progress
	if prog == nil {
		prog = noProgress{}
	}
	threads := opt.Threads
	if threads < 1 {
		threads = 1
	}
	chunks := chunkBounds(len(seq), opt.ChunkSize)
	parts := make([][]chunkCandidate, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, ch := range chunks {
		if gctx.Err() != nil {
			break
		}
		i, ch := i, ch
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parts[i] = scanChunk(seq, ch[0], ch[1], p)
			prog.Advance(ch[1] - ch[0])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	all := make([]chunkCandidate, 0, total)
	for _, part := range parts {
		all = append(all, part...)
	}

	kept := Resolve(all)
	out := make([]Repeat, 0, len(kept))
	for _, c := range kept {
		out = append(out, buildRepeat(seq, Span{Start: c.Pos, End: c.Pos + c.Length}, c.Period, c.Rough, seq[c.Pos:c.Pos+c.Period]))
	}
	return out, nil
}
