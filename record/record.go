// Package record decodes RJIS flow-file lines into compact in-memory
// records.
//
// The flow file carries two record shapes, distinguished by a 2-character
// marker at the start of each line: flow records ("RF") describe a route
// between two locations with a validity window, fare records ("RT") attach a
// price and ticket type to a flow. Field positions are fixed; see the layout
// constants below.
//
// Fare records are not retained as structs. Each one is reduced at decode
// time to a 64-bit FareKey and a 64-bit FareValue, which is what lets a full
// national feed (tens of millions of fares) sit in memory.
package record

import (
	"fmt"

	"github.com/ams627/rjisflow/compactdate"
	"github.com/ams627/rjisflow/errs"
	"github.com/ams627/rjisflow/fixedwidth"
)

// Record markers, the first two characters of every line.
const (
	FlowMarker = "RF" // flow record: route, locations, validity dates
	FareMarker = "RT" // fare record: price, ticket type, reservation code
)

// Field offsets and widths within a line, zero-indexed.
const (
	flowOriginOffset      = 2  // 4 chars, raw byte pack
	flowDestinationOffset = 6  // 4 chars, raw byte pack
	flowRouteOffset       = 10 // 5 digits
	flowEndDateOffset     = 20 // 8 chars ddmmyyyy
	flowStartDateOffset   = 28 // 8 chars ddmmyyyy
	flowTOCOffset         = 36 // 3 chars base-36
	flowIDOffset          = 42 // 7 digits
	flowLineLen           = 49

	fareFlowIDOffset      = 2  // 7 digits
	fareTicketOffset      = 9  // 3 chars base-36
	farePriceOffset       = 12 // 8 digits
	fareReservationOffset = 20 // 2 chars base-36, or two spaces for "none"
	fareLineLen           = 22
)

// Field bounds implied by the widths above. DecodeFare re-checks them after
// extraction: a violation means the fixed-width assumption itself broke
// (corrupted offsets), and must fail fast rather than silently truncate a
// packed field.
const (
	maxFlowID      = 10_000_000     // 7 decimal digits
	maxPrice       = 100_000_000    // 8 decimal digits
	maxTicketCode  = 36 * 36 * 36   // 3 base-36 chars
	maxReservation = 36*36 + 1      // 2 base-36 chars, shifted by the +1 "present" offset
	ticketKeyScale = maxFlowID      // ticket code multiplier within FareKey
)

// Kind identifies the record shape of a line.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindFlow
	KindFare
)

func (k Kind) String() string {
	switch k {
	case KindFlow:
		return "flow"
	case KindFare:
		return "fare"
	default:
		return "unknown"
	}
}

// KindOf reports the record shape of a line from its marker. Lines with any
// other marker are KindUnknown; the caller decides whether to skip them.
func KindOf(line string) Kind {
	if len(line) < 2 {
		return KindUnknown
	}
	switch line[:2] {
	case FlowMarker:
		return KindFlow
	case FareMarker:
		return KindFare
	default:
		return KindUnknown
	}
}

// FareKey is the unique composite identifier of a fare within the feed.
//
// It packs the flow id and ticket code into one uint64:
//
//	key = flowID + ticketCode * 10,000,000
//
// The flow id is 7 decimal digits (< 10^7), so the two components never
// overlap and the key decomposes exactly.
type FareKey uint64

// PackFareKey builds the composite key for a (flow id, ticket code) pair.
func PackFareKey(flowID uint32, ticketCode uint16) FareKey {
	return FareKey(uint64(flowID) + uint64(ticketCode)*ticketKeyScale)
}

// FlowID returns the flow id component of the key.
func (k FareKey) FlowID() uint32 {
	return uint32(k % ticketKeyScale)
}

// TicketCode returns the ticket code component of the key.
func (k FareKey) TicketCode() uint16 {
	return uint16(k / ticketKeyScale)
}

// FareValue packs the retained parts of a fare record into one uint64:
//
//	Bits  0-31: price in pence (< 10^8, needs 27 bits)
//	Bits 32-47: ticket code (base-36 of 3 chars, < 36^3)
//	Bits 48-63: reservation code (0 = none, else 1 + base-36 of 2 chars)
//
// One word per fare instead of three fields plus struct overhead is what
// keeps the index within its memory budget; the packing is part of the
// contract, not an implementation detail.
type FareValue uint64

// PackFareValue builds the packed fare value from its components.
func PackFareValue(price int, ticketCode, reservationCode uint16) FareValue {
	return FareValue(uint64(price) | uint64(ticketCode)<<32 | uint64(reservationCode)<<48)
}

// Price returns the fare price in pence.
func (v FareValue) Price() int {
	return int(uint32(v))
}

// TicketCode returns the base-36 ticket type code.
func (v FareValue) TicketCode() uint16 {
	return uint16(v >> 32)
}

// ReservationCode returns the reservation code: 0 for "none", otherwise
// 1 + the base-36 value of the 2-character code. The +1 offset keeps real
// codes (including "00") from colliding with the absent sentinel.
func (v FareValue) ReservationCode() uint16 {
	return uint16(v >> 48)
}

// FlowRecord is a decoded flow line. Constructed once per line, immutable,
// owned by the caller's record collection.
type FlowRecord struct {
	Origin      uint32           // 4-char NLC, raw bytes MSB-first
	Destination uint32           // 4-char NLC, raw bytes MSB-first
	Route       int              // 5-digit route code
	StartDate   compactdate.Date // first day of validity
	EndDate     compactdate.Date // last day of validity
	TOC         uint16           // 3-char operator code, base-36
	FlowID      uint32           // 7-digit flow identifier
}

// FareRecord is the decoded, reduced form of a fare line. Only Key and
// Value are retained by the aggregation layer; FlowID is carried alongside
// for the ordered per-flow index.
type FareRecord struct {
	FlowID uint32
	Key    FareKey
	Value  FareValue
}

// DecodeFlow decodes a flow line.
//
// The line must be at least 49 characters and carry the flow marker; both
// are checked before any field is extracted. Field errors from the
// sub-parsers propagate unchanged.
func DecodeFlow(line string) (FlowRecord, error) {
	if len(line) < flowLineLen {
		return FlowRecord{}, fmt.Errorf("%w: flow record needs %d characters, got %d", errs.ErrLineTooShort, flowLineLen, len(line))
	}
	if line[:2] != FlowMarker {
		return FlowRecord{}, fmt.Errorf("%w: want %q, got %q", errs.ErrBadMarker, FlowMarker, line[:2])
	}

	origin, err := fixedwidth.PackCode4(line, flowOriginOffset)
	if err != nil {
		return FlowRecord{}, err
	}
	destination, err := fixedwidth.PackCode4(line, flowDestinationOffset)
	if err != nil {
		return FlowRecord{}, err
	}
	route, err := fixedwidth.DecimalInt(line, flowRouteOffset, 5)
	if err != nil {
		return FlowRecord{}, err
	}
	endDate, err := compactdate.Parse(line, flowEndDateOffset)
	if err != nil {
		return FlowRecord{}, err
	}
	startDate, err := compactdate.Parse(line, flowStartDateOffset)
	if err != nil {
		return FlowRecord{}, err
	}
	toc, err := fixedwidth.Base36Int(line, flowTOCOffset, 3)
	if err != nil {
		return FlowRecord{}, err
	}
	flowID, err := fixedwidth.DecimalInt(line, flowIDOffset, 7)
	if err != nil {
		return FlowRecord{}, err
	}

	return FlowRecord{
		Origin:      origin,
		Destination: destination,
		Route:       route,
		StartDate:   startDate,
		EndDate:     endDate,
		TOC:         toc,
		FlowID:      uint32(flowID), //nolint:gosec
	}, nil
}

// DecodeFare decodes a fare line into its packed key and value.
//
// A reservation field of two spaces decodes to reservation code 0; any
// other content must be a valid 2-character base-36 code and decodes to
// 1 + its value. One space plus one digit is malformed and fails like any
// other bad base-36 field.
func DecodeFare(line string) (FareRecord, error) {
	if len(line) < fareLineLen {
		return FareRecord{}, fmt.Errorf("%w: fare record needs %d characters, got %d", errs.ErrLineTooShort, fareLineLen, len(line))
	}
	if line[:2] != FareMarker {
		return FareRecord{}, fmt.Errorf("%w: want %q, got %q", errs.ErrBadMarker, FareMarker, line[:2])
	}

	flowID, err := fixedwidth.DecimalInt(line, fareFlowIDOffset, 7)
	if err != nil {
		return FareRecord{}, err
	}
	ticket, err := fixedwidth.Base36Int(line, fareTicketOffset, 3)
	if err != nil {
		return FareRecord{}, err
	}
	price, err := fixedwidth.DecimalInt(line, farePriceOffset, 8)
	if err != nil {
		return FareRecord{}, err
	}

	var reservation uint16
	if line[fareReservationOffset:fareReservationOffset+2] != "  " {
		code, err := fixedwidth.Base36Int(line, fareReservationOffset, 2)
		if err != nil {
			return FareRecord{}, err
		}
		reservation = code + 1
	}

	if err := checkFareBounds(flowID, ticket, price, reservation); err != nil {
		return FareRecord{}, err
	}

	return FareRecord{
		FlowID: uint32(flowID), //nolint:gosec
		Key:    PackFareKey(uint32(flowID), ticket),
		Value:  PackFareValue(price, ticket, reservation),
	}, nil
}

// checkFareBounds enforces the packed-field bounds at decode time. Under
// well-formed input the field widths guarantee all four, so a failure here
// means the line layout itself is broken.
func checkFareBounds(flowID int, ticket uint16, price int, reservation uint16) error {
	if flowID >= maxFlowID {
		return fmt.Errorf("%w: flow id %d >= %d", errs.ErrFieldOverflow, flowID, maxFlowID)
	}
	if price >= maxPrice {
		return fmt.Errorf("%w: price %d >= %d", errs.ErrFieldOverflow, price, maxPrice)
	}
	if ticket >= maxTicketCode {
		return fmt.Errorf("%w: ticket code %d >= %d", errs.ErrFieldOverflow, ticket, maxTicketCode)
	}
	if reservation >= maxReservation {
		return fmt.Errorf("%w: reservation code %d >= %d", errs.ErrFieldOverflow, reservation, maxReservation)
	}

	return nil
}
