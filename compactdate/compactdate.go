// Package compactdate encodes calendar dates as 16-bit serials.
//
// The RJIS feed carries validity dates on every flow record, and the
// in-memory index holds millions of them. A full calendar timestamp is 8-16
// bytes per date; this package stores each date as a uint16 day count
// anchored at 2016-01-01, with a sentinel for dates past the representable
// range.
//
// # Serial layout
//
//   - 0x0000: 2016-01-01, or any calendar date on or before it
//   - 0x0001-0xFFFE: day offset from 2016-01-01 (2194-12-31 encodes to 65378)
//   - 0xFFFF: sentinel, any date after 2194-12-31; decodes to 2999-12-31
//
// Ordering is plain numeric comparison on the serial: for any two dates in
// range, serial order equals calendar order, and the sentinel sorts after
// everything else. No comparator beyond < and == is needed.
package compactdate

import (
	"fmt"

	"github.com/ams627/rjisflow/errs"
)

// Date is a 16-bit day-count date serial. The zero value is the epoch,
// 2016-01-01. Immutable once constructed; compare with ordinary integer
// comparison.
type Date uint16

// Sentinel is the serial for any date after 2194-12-31. It decodes
// canonically to 2999-12-31.
const Sentinel Date = 0xFFFF

// MaxSerial is the largest non-sentinel serial.
const MaxSerial = 0xFFFE

const (
	minYear = 1970 // lower bound accepted by Encode (clamps to serial 0)
	maxYear = 2999 // upper bound accepted by Encode (clamps to Sentinel)

	// sentinelYear is the last year with a non-sentinel serial. Any later
	// year maps to Sentinel, both inside Encode and again at the Parse
	// boundary.
	sentinelYear = 2194

	// epochDayNumber is the civil day number of 2016-01-01 counted from
	// 1970-01-01 (46 years of 365 days plus 11 leap days).
	epochDayNumber = 16801
)

// Encode converts a (year, month, day) triple to its compact serial.
//
// Preconditions: month in [1,12], day in [1, daysInMonth(year, month)] under
// the standard Gregorian leap rule, year in [1970,2999]. A violation fails
// with a range error naming the field and its bounds.
//
// Dates before the 2016-01-01 epoch clamp to serial 0; dates after
// 2194-12-31 clamp to Sentinel. Both the day-count overflow check and the
// explicit year check are applied.
func Encode(year, month, day int) (Date, error) {
	if year < minYear || year > maxYear {
		return 0, fmt.Errorf("%w: year %d not in [%d,%d]", errs.ErrDateOutOfRange, year, minYear, maxYear)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d not in [1,12]", errs.ErrDateOutOfRange, month)
	}
	if dim := daysInMonth(year, month); day < 1 || day > dim {
		return 0, fmt.Errorf("%w: day %d not in [1,%d] for %d-%02d", errs.ErrDateOutOfRange, day, dim, year, month)
	}

	if year > sentinelYear {
		return Sentinel, nil
	}

	n := dayNumber(year, month, day) - epochDayNumber
	if n < 0 {
		return 0, nil
	}
	if n > MaxSerial {
		return Sentinel, nil
	}

	return Date(n), nil
}

// Date returns the (year, month, day) triple for this serial.
//
// The sentinel decodes to 2999-12-31. Every other serial is the exact
// inverse of Encode; there is no error path, every 16-bit value names a
// valid calendar date.
func (d Date) Date() (year, month, day int) {
	if d == Sentinel {
		return 2999, 12, 31
	}

	return civilFromDayNumber(int(d) + epochDayNumber)
}

// Parse reads an 8-character ddmmyyyy date starting at offset.
//
// It fails with a format error if fewer than 8 characters remain or any of
// them is not an ASCII digit, citing the offending character and its
// position. Years past 2194 clamp to Sentinel before Encode runs; numeric
// construction is otherwise delegated to Encode.
func Parse(text string, offset int) (Date, error) {
	if len(text) < offset+8 {
		return 0, fmt.Errorf("%w: date field needs 8 characters at offset %d, line has %d", errs.ErrShortField, offset, len(text))
	}
	for i := 0; i < 8; i++ {
		if c := text[offset+i]; c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q at offset %d", errs.ErrInvalidDigit, c, offset+i)
		}
	}

	day := digits2(text, offset)
	month := digits2(text, offset+2)
	year := digits2(text, offset+4)*100 + digits2(text, offset+6)

	// The feed allows open-ended validity as 31122999 and similar; clamp
	// here as well as in Encode rather than rely on one check subsuming
	// the other.
	if year > sentinelYear {
		return Sentinel, nil
	}

	return Encode(year, month, day)
}

// String renders the date as yyyy-mm-dd for diagnostics.
func (d Date) String() string {
	y, m, dd := d.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, dd)
}

// IsSentinel reports whether this serial is the open-ended sentinel.
func (d Date) IsSentinel() bool {
	return d == Sentinel
}

func digits2(text string, offset int) int {
	return int(text[offset]-'0')*10 + int(text[offset+1]-'0')
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeap(year) {
			return 29
		}

		return 28
	default:
		return 31
	}
}

// dayNumber computes the proleptic-Gregorian civil day number of a date,
// counted from 1970-01-01. Standard era/year-of-era arithmetic; March is
// treated as the first month of the shifted year so leap days land at the
// end.
func dayNumber(year, month, day int) int {
	if month <= 2 {
		year--
	}
	era := year / 400
	yoe := year - era*400
	var mp int
	if month > 2 {
		mp = month - 3
	} else {
		mp = month + 9
	}
	doy := (153*mp+2)/5 + day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy

	return era*146097 + doe - 719468
}

// civilFromDayNumber is the exact inverse of dayNumber for every
// non-negative day number in this package's range.
func civilFromDayNumber(n int) (year, month, day int) {
	z := n + 719468
	era := z / 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day = doy - (153*mp+2)/5 + 1
	if mp < 10 {
		month = mp + 3
	} else {
		month = mp - 9
	}
	if month <= 2 {
		y++
	}

	return y, month, day
}
