// internal/runutil/runutil.go
package runutil

import "runtime"

// ComputeNeedSeq tells the pipeline whether records must keep their sequence.
// Repeat sequences are needed for --products, and for pretty text blocks.
func ComputeNeedSeq(output string, products, pretty bool) bool {
	if products {
		return true
	}
	return output == "text" && pretty
}

// ResolveThreads maps a requested worker count to an effective one: zero or
// less means one worker per CPU.
func ResolveThreads(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}
