package appcore

import (
	"io"

	"trscan/internal/engine"
	"trscan/internal/runutil"
	"trscan/internal/writers"
)

// RecordWriterFactory starts the writer for one output format.
type RecordWriterFactory struct {
	Format   string
	Header   bool
	Products bool
	Pretty   bool
}

func NewRecordWriterFactory(format string, header, products, pretty bool) RecordWriterFactory {
	return RecordWriterFactory{Format: format, Header: header, Products: products, Pretty: pretty}
}

// NeedSeq reports whether records must carry their sequence.
func (w RecordWriterFactory) NeedSeq() bool {
	return runutil.ComputeNeedSeq(w.Format, w.Products, w.Pretty)
}

func (w RecordWriterFactory) Start(out io.Writer, bufSize int) (chan<- engine.Record, <-chan error) {
	opt := writers.Options{Header: w.Header, Products: w.Products, Pretty: w.Pretty}
	return writers.StartRecordWriter(out, w.Format, opt, bufSize)
}
