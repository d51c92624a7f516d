// Package fareindex accumulates decoded fare records into the two in-memory
// index structures the feed is loaded into: an ordered multi-map from flow
// id to packed fare values, and a uniqueness-checked map from composite fare
// key to packed value.
//
// The index is owned by a single goroutine; processing is strictly one line
// at a time, so no locking is applied. A parallel decoder would still have
// to serialize inserts here, since both the duplicate-key check and the
// per-flow append order are insertion-order dependent.
package fareindex

import (
	"fmt"

	"github.com/ams627/rjisflow/errs"
	"github.com/ams627/rjisflow/record"
)

// Index holds the aggregated fare data for one feed.
type Index struct {
	// byFlow maps a flow id to its fares in feed order. Duplicates are
	// allowed; order is significant for downstream consumers that assume
	// feed order.
	byFlow map[uint32][]record.FareValue

	// byKey maps each composite fare key to its single packed value. A
	// repeated key is a data-integrity violation, never an overwrite.
	byKey map[record.FareKey]record.FareValue
}

// New creates an empty fare index.
func New() *Index {
	return &Index{
		byFlow: make(map[uint32][]record.FareValue),
		byKey:  make(map[record.FareKey]record.FareValue),
	}
}

// AddFare appends a packed fare value to the sequence for flowID, creating
// the sequence on first use. Append order is preserved and duplicates are
// allowed.
func (x *Index) AddFare(flowID uint32, v record.FareValue) {
	x.byFlow[flowID] = append(x.byFlow[flowID], v)
}

// AddKeyed inserts a packed value under its composite key. If the key is
// already present the insert fails with a duplicate-key error carrying the
// key and both values; the error is fatal for the whole run, since silently
// losing a fare value would be a correctness bug.
func (x *Index) AddKeyed(key record.FareKey, v record.FareValue) error {
	if existing, ok := x.byKey[key]; ok {
		return fmt.Errorf("%w: key %d (flow %d, ticket %d): existing value 0x%016x, incoming 0x%016x",
			errs.ErrDuplicateKey, uint64(key), key.FlowID(), key.TicketCode(), uint64(existing), uint64(v))
	}
	x.byKey[key] = v

	return nil
}

// Add performs both inserts for one decoded fare record.
func (x *Index) Add(rec record.FareRecord) error {
	if err := x.AddKeyed(rec.Key, rec.Value); err != nil {
		return err
	}
	x.AddFare(rec.FlowID, rec.Value)

	return nil
}

// Counts returns the number of unique composite keys and the number of
// per-flow buckets.
func (x *Index) Counts() (uniqueKeys, flowBuckets int) {
	return len(x.byKey), len(x.byFlow)
}

// FaresFor returns the fares recorded for a flow id, in feed order. The
// returned slice is the index's own storage; callers must not modify it.
func (x *Index) FaresFor(flowID uint32) []record.FareValue {
	return x.byFlow[flowID]
}

// Lookup returns the value stored under a composite key.
func (x *Index) Lookup(key record.FareKey) (record.FareValue, bool) {
	v, ok := x.byKey[key]
	return v, ok
}
