// Package engine contains the tandem-repeat detection core. It never imports app,
// writers, cli, or pipeline; keep it domain-only.
//
// Two scan variants share one result shape:
//   - sequential: prefilter every period at each anchor, refine the best candidate
//     with a banded alignment, and advance past accepted repeats;
//   - parallel: fixed-size chunks scanned independently with a windowed scorer,
//     merged once by the overlap resolver.
//
// Coordinates are 0-based, half-open. External outputs must not depend on the
// internal shape here; use pkg/api for stable wire types.
package engine
