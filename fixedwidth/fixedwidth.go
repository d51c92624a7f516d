// Package fixedwidth extracts typed fields from fixed character offsets of
// an RJIS feed line.
//
// All three extractors take the whole line plus an offset rather than a
// pre-sliced substring, so errors can report the absolute position of the
// offending character within the line.
package fixedwidth

import (
	"fmt"

	"github.com/ams627/rjisflow/errs"
)

// PackCode4 reads exactly 4 characters starting at offset and packs them
// into a uint32 most-significant-byte first.
//
// No character-class validation is applied: location codes may contain any
// printable character, so every byte value is accepted. The only failure is
// the field running past the end of the line.
func PackCode4(text string, offset int) (uint32, error) {
	if len(text) < offset+4 {
		return 0, fmt.Errorf("%w: code field needs 4 characters at offset %d, line has %d", errs.ErrShortField, offset, len(text))
	}

	return uint32(text[offset])<<24 |
		uint32(text[offset+1])<<16 |
		uint32(text[offset+2])<<8 |
		uint32(text[offset+3]), nil
}

// DecimalInt reads length ASCII digits starting at offset and accumulates
// them as an unsigned base-10 integer. A non-digit fails with a format
// error citing the character and its absolute position.
func DecimalInt(text string, offset, length int) (int, error) {
	if len(text) < offset+length {
		return 0, fmt.Errorf("%w: decimal field needs %d characters at offset %d, line has %d", errs.ErrShortField, length, offset, len(text))
	}

	n := 0
	for i := offset; i < offset+length; i++ {
		c := text[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q at offset %d", errs.ErrInvalidDigit, c, i)
		}
		n = n*10 + int(c-'0')
	}

	return n, nil
}

// Base36Int reads length alphanumeric characters starting at offset and
// accumulates them as a base-36 integer: '0'-'9' map to 0-9, 'A'-'Z' map to
// 10-35. The feed is uppercase by convention; lowercase fails like any other
// out-of-class character.
//
// length is at most 3 in the RJIS record layouts, so the result always fits
// in a uint16 (36^3-1 = 46655).
func Base36Int(text string, offset, length int) (uint16, error) {
	if len(text) < offset+length {
		return 0, fmt.Errorf("%w: base-36 field needs %d characters at offset %d, line has %d", errs.ErrShortField, length, offset, len(text))
	}

	var n uint16
	for i := offset; i < offset+length; i++ {
		c := text[i]
		var digit uint16
		switch {
		case c >= '0' && c <= '9':
			digit = uint16(c - '0')
		case c >= 'A' && c <= 'Z':
			digit = uint16(c-'A') + 10
		default:
			return 0, fmt.Errorf("%w: %q at offset %d", errs.ErrInvalidBase36, c, i)
		}
		n = n*36 + digit
	}

	return n, nil
}
