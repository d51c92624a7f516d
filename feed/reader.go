// Package feed reads RJIS flow-file feeds line by line and drives them
// through the record decoders into the fare index.
//
// The reader handles everything the codec layer must never see: transparent
// decompression, comment and short-line skipping, line numbering for error
// attribution, and an xxHash64 fingerprint of the consumed stream. The
// processor owns the decoded flow-record collection and the fare index and
// applies the one-line-in, one-decode, one-insert sequential model; nothing
// here is safe for concurrent use.
package feed

import (
	"bufio"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/ams627/rjisflow/internal/options"
)

// CommentIndicator marks a feed comment line. RJIS files open with a block
// of "/!!" header comments; anything starting with the indicator is skipped
// before record dispatch.
const CommentIndicator = '/'

// minLineLen is the shortest line handed to record dispatch: marker plus at
// least one field character. Shorter lines are skipped, not errors.
const minLineLen = 3

// maxLineLen caps the scanner's token size. Well-formed RJIS lines are
// under 100 characters; the cap only guards against a corrupt stream with
// no newlines.
const maxLineLen = 1024 * 1024

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithCompression selects the decompression applied to the stream. The
// default for plain readers is CompressionNone; ProcessFile defaults to
// CompressionAuto, which picks by file extension.
func WithCompression(c CompressionType) ReaderOption {
	return options.NoError(func(r *Reader) { r.compression = c })
}

// WithFingerprint enables or disables the running xxHash64 fingerprint of
// consumed lines. Enabled by default; disable to shave the hashing cost off
// very large ingests.
func WithFingerprint(enabled bool) ReaderOption {
	return options.NoError(func(r *Reader) { r.fingerprint = enabled })
}

// withPath records the source path so CompressionAuto can resolve against
// the file extension. Set by ProcessFile only.
func withPath(path string) ReaderOption {
	return options.NoError(func(r *Reader) { r.path = path })
}

// Reader yields decodable feed lines one at a time, in the iteration style
// of bufio.Scanner: Scan, then Line/LineNo, then Err once Scan returns
// false.
type Reader struct {
	rc      io.ReadCloser
	scanner *bufio.Scanner
	digest  *xxhash.Digest

	compression CompressionType
	fingerprint bool
	path        string

	line    string
	lineNo  int
	skipped int
}

// NewReader wraps r for line-by-line feed reading.
//
// CompressionAuto without a file path resolves to CompressionNone, since
// there is no extension to inspect.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	fr := &Reader{
		compression: CompressionAuto,
		fingerprint: true,
	}
	if err := options.Apply(fr, opts...); err != nil {
		return nil, err
	}

	c := fr.compression
	if c == CompressionAuto {
		if fr.path != "" {
			c = detectCompression(fr.path)
		} else {
			c = CompressionNone
		}
	}

	rc, err := decompress(r, c)
	if err != nil {
		return nil, err
	}
	fr.rc = rc

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	fr.scanner = sc

	if fr.fingerprint {
		fr.digest = xxhash.New()
	}

	return fr, nil
}

// Scan advances to the next decodable line, skipping comment lines and
// lines shorter than three characters. It returns false at end of input or
// on a read error; check Err afterwards.
func (r *Reader) Scan() bool {
	for r.scanner.Scan() {
		r.lineNo++
		line := r.scanner.Text()

		if r.digest != nil {
			_, _ = r.digest.WriteString(line)
			_, _ = r.digest.Write([]byte{'\n'})
		}

		if len(line) < minLineLen || line[0] == CommentIndicator {
			r.skipped++
			continue
		}

		r.line = line

		return true
	}

	return false
}

// Line returns the current line. Valid after a true Scan.
func (r *Reader) Line() string {
	return r.line
}

// LineNo returns the 1-based number of the current line within the feed,
// counting skipped lines.
func (r *Reader) LineNo() int {
	return r.lineNo
}

// Skipped returns the number of comment and short lines passed over so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Err returns the first read error encountered, unchanged. It is nil at a
// clean end of input.
func (r *Reader) Err() error {
	return r.scanner.Err()
}

// Fingerprint returns the xxHash64 of every line consumed so far, skipped
// lines included, each terminated with a single newline. It returns 0 when
// fingerprinting is disabled.
func (r *Reader) Fingerprint() uint64 {
	if r.digest == nil {
		return 0
	}

	return r.digest.Sum64()
}

// Close releases the decompression stream, if any. It does not close the
// underlying reader passed to NewReader.
func (r *Reader) Close() error {
	return r.rc.Close()
}
