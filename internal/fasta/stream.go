package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one parsed FASTA entry. Seq is uppercased with line breaks and
// surrounding whitespace removed; it is owned by the receiver.
type Record struct {
	ID  string
	Seq []byte
}

// StreamRecordsCtx parses FASTA from r and calls emit once per record.
// Sequence bytes seen before any header form a record with an empty ID.
//
// It is cancelable: it returns ctx.Err() promptly when ctx is done, even
// mid-record. A non-nil error from emit stops the scan and is returned as is.
func StreamRecordsCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id     string
		seq    = make([]byte, 0, 1<<20)
		opened bool
	)

	flush := func() error {
		if !opened && len(seq) == 0 {
			return nil
		}
		rec := Record{ID: id, Seq: bytes.ToUpper(seq)}
		seq = seq[:0]
		return emit(rec)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = parseHeaderID(line[1:])
			opened = true
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
