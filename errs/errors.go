// Package errs defines the sentinel errors shared across the rjisflow
// packages.
//
// Errors fall into three classes, each with an umbrella sentinel:
//
//   - ErrFormat: the line or field is malformed (wrong marker, short line,
//     a character outside the field's character class)
//   - ErrRange: a value is outside its documented bounds (calendar
//     components, packed-field overflow)
//   - ErrDuplicateKey: a composite fare key was seen twice during
//     aggregation
//
// The specific sentinels below wrap their umbrella sentinel, so callers can
// match either level with errors.Is:
//
//	if errors.Is(err, errs.ErrFormat) { ... }        // any format problem
//	if errors.Is(err, errs.ErrInvalidDigit) { ... }  // this format problem
//
// Call sites wrap the sentinels with fmt.Errorf("%w: ...") to attach the
// offending character, offset, or bound.
package errs

import (
	"errors"
	"fmt"
)

// Umbrella sentinels, one per error class.
var (
	ErrFormat       = errors.New("malformed record")
	ErrRange        = errors.New("value out of range")
	ErrDuplicateKey = errors.New("duplicate fare key")
)

// Format errors.
var (
	ErrLineTooShort  = fmt.Errorf("%w: line too short", ErrFormat)
	ErrShortField    = fmt.Errorf("%w: field extends past end of line", ErrFormat)
	ErrBadMarker     = fmt.Errorf("%w: unexpected record marker", ErrFormat)
	ErrInvalidDigit  = fmt.Errorf("%w: invalid decimal digit", ErrFormat)
	ErrInvalidBase36 = fmt.Errorf("%w: invalid base-36 character", ErrFormat)
)

// Range errors.
var (
	ErrDateOutOfRange = fmt.Errorf("%w: date component out of bounds", ErrRange)
	ErrFieldOverflow  = fmt.Errorf("%w: packed field overflow", ErrRange)
)

// Feed errors.
var (
	ErrUnknownCompression = errors.New("unknown compression type")
)
