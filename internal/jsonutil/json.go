package jsonutil

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

// JSON is the encoder configuration used for every wire output.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := JSON.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
