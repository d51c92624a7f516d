//go:build !cgo

package feed

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// newZstdReader wraps r in a streaming zstd decompressor using the pure-Go
// implementation, for builds without cgo.
func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	return d.IOReadCloser(), nil
}
