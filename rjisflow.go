// Package rjisflow ingests RJIS fixed-width rail fare feeds into compact
// in-memory indexes.
//
// The RJIS flow file carries two record shapes: flow records ("RF" marker)
// describing a route between two locations with validity dates, and fare
// records ("RT" marker) attaching prices and ticket types to flows. A full
// national feed runs to tens of millions of fare lines, so everything is
// packed tight on the way in:
//
//   - Dates become 16-bit day-count serials (compactdate): epoch 2016-01-01,
//     sentinel 0xFFFF for open-ended validity
//   - Location codes become raw-packed uint32s, operator codes base-36
//     uint16s (fixedwidth)
//   - Each fare collapses to one 64-bit key and one 64-bit value (record),
//     aggregated into an ordered per-flow multimap and a uniqueness-checked
//     key map (fareindex)
//
// # Basic Usage
//
// Loading a feed file (decompressed automatically by extension):
//
//	p, stats, err := rjisflow.ProcessFile("RJFAF499.FFL.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d unique fares across %d flows\n", stats.UniqueKeys, stats.FlowBuckets)
//
//	for _, v := range p.Index().FaresFor(flowID) {
//	    fmt.Printf("ticket %d: %d pence\n", v.TicketCode(), v.Price())
//	}
//
// Errors are classified in the errs package: errs.ErrFormat for malformed
// lines and fields, errs.ErrRange for out-of-bounds values, and
// errs.ErrDuplicateKey when the feed repeats a composite fare key. All three
// abort the run; a malformed feed line cannot become well-formed by
// re-reading.
//
// # Package Structure
//
// This package provides thin wrappers around the feed package for the most
// common use cases. For stream-level control (custom compression, disabling
// the feed fingerprint, line-by-line processing), use the feed package
// directly.
package rjisflow

import (
	"io"

	"github.com/ams627/rjisflow/feed"
)

// Process ingests an entire feed from r and returns the populated processor
// and its stats.
//
// Parameters:
//   - r: The feed stream (plain text unless a compression option is given)
//   - opts: Optional configuration (see feed.ReaderOption)
//
// Returns:
//   - *feed.Processor: Holds the flow records and the fare index.
//   - feed.Stats: Line, record, and index counts plus the stream fingerprint.
//   - error: The first decode, aggregation, or read error, with line
//     attribution for per-line failures.
func Process(r io.Reader, opts ...feed.ReaderOption) (*feed.Processor, feed.Stats, error) {
	return feed.Process(r, opts...)
}

// ProcessFile ingests an entire feed file. Compression is detected from the
// file extension (.gz, .zst, .s2, .lz4) unless overridden with
// feed.WithCompression.
func ProcessFile(path string, opts ...feed.ReaderOption) (*feed.Processor, feed.Stats, error) {
	return feed.ProcessFile(path, opts...)
}
