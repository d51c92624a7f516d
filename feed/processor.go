package feed

import (
	"fmt"
	"io"
	"os"

	"github.com/ams627/rjisflow/fareindex"
	"github.com/ams627/rjisflow/record"
)

// Stats summarizes one feed ingest.
type Stats struct {
	Lines       int    // lines consumed, skipped ones included
	Flows       int    // decoded flow records
	Fares       int    // decoded and aggregated fare records
	Skipped     int    // comment, short, and unknown-marker lines
	UniqueKeys  int    // distinct composite fare keys in the index
	FlowBuckets int    // flow ids with at least one fare
	Fingerprint uint64 // xxHash64 of the consumed stream, 0 if disabled
}

// Processor drives decoded records into their aggregation structures. It
// owns the flow-record collection and the fare index; both live for as long
// as the processor does.
type Processor struct {
	flows       []record.FlowRecord
	index       *fareindex.Index
	fares       int
	unknownKind int
}

// NewProcessor creates a processor with an empty index.
func NewProcessor() *Processor {
	return &Processor{
		index: fareindex.New(),
	}
}

// ProcessLine dispatches one line by marker and applies its aggregation
// step. Unknown markers are counted and skipped. Decode errors and the
// duplicate-key error propagate unchanged; no partial record is aggregated
// on failure.
func (p *Processor) ProcessLine(line string) error {
	switch record.KindOf(line) {
	case record.KindFlow:
		rec, err := record.DecodeFlow(line)
		if err != nil {
			return err
		}
		p.flows = append(p.flows, rec)
	case record.KindFare:
		rec, err := record.DecodeFare(line)
		if err != nil {
			return err
		}
		if err := p.index.Add(rec); err != nil {
			return err
		}
		p.fares++
	default:
		p.unknownKind++
	}

	return nil
}

// Run consumes the reader to exhaustion. Line-level failures abort the run
// wrapped with the offending line number; read errors surface unchanged.
func (p *Processor) Run(r *Reader) (Stats, error) {
	for r.Scan() {
		if err := p.ProcessLine(r.Line()); err != nil {
			return Stats{}, fmt.Errorf("line %d: %w", r.LineNo(), err)
		}
	}
	if err := r.Err(); err != nil {
		return Stats{}, err
	}

	return p.stats(r), nil
}

func (p *Processor) stats(r *Reader) Stats {
	uniqueKeys, flowBuckets := p.index.Counts()

	return Stats{
		Lines:       r.LineNo(),
		Flows:       len(p.flows),
		Fares:       p.fares,
		Skipped:     r.Skipped() + p.unknownKind,
		UniqueKeys:  uniqueKeys,
		FlowBuckets: flowBuckets,
		Fingerprint: r.Fingerprint(),
	}
}

// Flows returns the decoded flow records in feed order. The slice is the
// processor's own storage.
func (p *Processor) Flows() []record.FlowRecord {
	return p.flows
}

// Index returns the fare index being populated.
func (p *Processor) Index() *fareindex.Index {
	return p.index
}

// Process reads an entire feed from r and returns the populated processor
// and its stats.
func Process(r io.Reader, opts ...ReaderOption) (*Processor, Stats, error) {
	fr, err := NewReader(r, opts...)
	if err != nil {
		return nil, Stats{}, err
	}
	defer fr.Close()

	p := NewProcessor()
	st, err := p.Run(fr)
	if err != nil {
		return nil, Stats{}, err
	}

	return p, st, nil
}

// ProcessFile reads an entire feed file. CompressionAuto (the default)
// resolves from the file extension. Open and read errors surface unchanged.
func ProcessFile(path string, opts ...ReaderOption) (*Processor, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()

	return Process(f, append([]ReaderOption{withPath(path)}, opts...)...)
}
