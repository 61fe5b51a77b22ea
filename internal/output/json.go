package output

import (
	"io"

	"trscan/internal/engine"
	"trscan/internal/jsonutil"
	"trscan/pkg/api"
)

// WriteJSON writes a single JSON array of v1 records (pretty-indented).
func WriteJSON(w io.Writer, list []engine.Record) error {
	out := make([]api.RecordV1, 0, len(list))
	for _, rec := range list {
		out = append(out, ToAPIRecord(rec))
	}
	return jsonutil.EncodePretty(w, out)
}
