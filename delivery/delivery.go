// Package delivery encodes WebAssembly binaries for inline shipment.
//
// External delivery needs no transformation: the raw bytes are
// registered as a build asset and referenced by name. The inline path
// wraps the bytes in a data URI so the generated shim is fully
// self-contained.
package delivery

import (
	"encoding/base64"
	"io"

	"github.com/wippyai/wasm-bundler/errors"
)

// ContentType is the media type WebAssembly binaries are served under.
// Streaming instantiation in browsers requires it on the response.
const ContentType = "application/wasm"

// URIPrefix starts every inline-delivered wasm URL.
const URIPrefix = "data:" + ContentType + ";base64,"

// DataURI encodes the binary into a self-contained data URI. An empty
// binary yields a URI with an empty payload.
func DataURI(data []byte) string {
	return URIPrefix + base64.StdEncoding.EncodeToString(data)
}

// EncodeReader reads a byte stream to completion and encodes it as a
// data URI. Failing to drain the stream is an encode error.
func EncodeReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Encode("read binary stream", err)
	}
	return DataURI(data), nil
}
