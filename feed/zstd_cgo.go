//go:build cgo

package feed

import (
	"io"

	"github.com/valyala/gozstd"
)

// newZstdReader wraps r in a streaming zstd decompressor. With cgo
// available the gozstd bindings are used; the reader must be released when
// done, which Close takes care of.
func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{r: gozstd.NewReader(r)}, nil
}

type gozstdReader struct {
	r *gozstd.Reader
}

func (z *gozstdReader) Read(p []byte) (int, error) {
	return z.r.Read(p)
}

func (z *gozstdReader) Close() error {
	z.r.Release()
	return nil
}
