package compactdate

import (
	"testing"

	"github.com/ams627/rjisflow/errs"
	"github.com/stretchr/testify/require"
)

func TestEncode_Epoch(t *testing.T) {
	d, err := Encode(2016, 1, 1)
	require.NoError(t, err)
	require.Equal(t, Date(0), d)

	y, m, dd := Date(0).Date()
	require.Equal(t, 2016, y)
	require.Equal(t, 1, m)
	require.Equal(t, 1, dd)
}

func TestEncode_BeforeEpochClampsToZero(t *testing.T) {
	// Years below 2016 are accepted by Encode itself but clamp to serial 0.
	for _, tc := range []struct{ y, m, d int }{
		{2015, 12, 31},
		{2000, 6, 15},
		{1970, 1, 1},
	} {
		d, err := Encode(tc.y, tc.m, tc.d)
		require.NoError(t, err)
		require.Equal(t, Date(0), d)
	}
}

func TestEncode_SentinelClamp(t *testing.T) {
	d, err := Encode(2195, 1, 1)
	require.NoError(t, err)
	require.Equal(t, Sentinel, d)

	d, err = Encode(2999, 12, 31)
	require.NoError(t, err)
	require.Equal(t, Sentinel, d)

	y, m, dd := Sentinel.Date()
	require.Equal(t, 2999, y)
	require.Equal(t, 12, m)
	require.Equal(t, 31, dd)
}

func TestEncode_LastRepresentableDate(t *testing.T) {
	d, err := Encode(2194, 12, 31)
	require.NoError(t, err)
	require.LessOrEqual(t, uint16(d), uint16(MaxSerial))

	y, m, dd := d.Date()
	require.Equal(t, 2194, y)
	require.Equal(t, 12, m)
	require.Equal(t, 31, dd)
}

func TestEncode_RangeErrors(t *testing.T) {
	testCases := []struct {
		name    string
		y, m, d int
	}{
		{name: "year below 1970", y: 1969, m: 12, d: 31},
		{name: "year above 2999", y: 3000, m: 1, d: 1},
		{name: "month zero", y: 2020, m: 0, d: 1},
		{name: "month thirteen", y: 2020, m: 13, d: 1},
		{name: "day zero", y: 2020, m: 1, d: 0},
		{name: "day 32 in january", y: 2020, m: 1, d: 32},
		{name: "february 30 in a leap year", y: 2016, m: 2, d: 30},
		{name: "february 29 in a non-leap year", y: 2017, m: 2, d: 29},
		{name: "february 29 in a century year", y: 2100, m: 2, d: 29},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.y, tc.m, tc.d)
			require.ErrorIs(t, err, errs.ErrDateOutOfRange)
			require.ErrorIs(t, err, errs.ErrRange)
		})
	}
}

func TestEncode_LeapDays(t *testing.T) {
	// 2016 is a leap year, 2100 is a century non-leap, 2000-style
	// div-400 years inside the range (2400) are beyond the serial range,
	// so the clamp applies before day validation could matter there.
	d, err := Encode(2016, 2, 29)
	require.NoError(t, err)
	y, m, dd := d.Date()
	require.Equal(t, [3]int{2016, 2, 29}, [3]int{y, m, dd})

	_, err = Encode(2100, 2, 29)
	require.ErrorIs(t, err, errs.ErrDateOutOfRange)
}

func TestRoundTrip_AllDatesInRange(t *testing.T) {
	// Exhaustive: every calendar date from 2016-01-01 through 2194-12-31
	// must round-trip exactly, and serials must be dense and increasing.
	want := Date(0)
	for y := 2016; y <= 2194; y++ {
		for m := 1; m <= 12; m++ {
			for dd := 1; dd <= daysInMonth(y, m); dd++ {
				d, err := Encode(y, m, dd)
				require.NoError(t, err)
				require.Equal(t, want, d, "%04d-%02d-%02d", y, m, dd)

				gy, gm, gd := d.Date()
				require.Equal(t, y, gy)
				require.Equal(t, m, gm)
				require.Equal(t, dd, gd)
				want++
			}
		}
	}
	require.LessOrEqual(t, uint16(want-1), uint16(MaxSerial))
}

func TestDecode_EveryNonSentinelSerial(t *testing.T) {
	// Every 16-bit value decodes to some valid calendar date.
	for s := 0; s <= MaxSerial; s++ {
		y, m, dd := Date(s).Date()
		require.GreaterOrEqual(t, m, 1)
		require.LessOrEqual(t, m, 12)
		require.GreaterOrEqual(t, dd, 1)
		require.LessOrEqual(t, dd, daysInMonth(y, m))
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		offset int
		want   Date
	}{
		{name: "epoch", text: "01012016", offset: 0, want: 0},
		{name: "epoch plus one", text: "02012016", offset: 0, want: 1},
		{name: "at offset", text: "xxxx29022016yyyy", offset: 4, want: 59},
		{name: "before epoch clamps", text: "31121999", offset: 0, want: 0},
		{name: "open-ended validity", text: "31122999", offset: 0, want: Sentinel},
		{name: "year 2195 clamps", text: "01012195", offset: 0, want: Sentinel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Parse(tc.text, tc.offset)
			require.NoError(t, err)
			require.Equal(t, tc.want, d)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Run("too few characters", func(t *testing.T) {
		_, err := Parse("0101201", 0)
		require.ErrorIs(t, err, errs.ErrShortField)
	})

	t.Run("short at offset", func(t *testing.T) {
		_, err := Parse("xx01012016", 4)
		require.ErrorIs(t, err, errs.ErrShortField)
	})

	t.Run("non-digit cites character", func(t *testing.T) {
		_, err := Parse("0101X016", 0)
		require.ErrorIs(t, err, errs.ErrInvalidDigit)
		require.ErrorContains(t, err, `'X'`)
	})

	t.Run("invalid calendar day", func(t *testing.T) {
		_, err := Parse("30022016", 0)
		require.ErrorIs(t, err, errs.ErrDateOutOfRange)
	})
}

func TestOrdering_IsCalendarOrdering(t *testing.T) {
	early, err := Encode(2017, 5, 1)
	require.NoError(t, err)
	late, err := Encode(2017, 5, 2)
	require.NoError(t, err)

	require.Less(t, uint16(early), uint16(late))
	require.Less(t, uint16(late), uint16(Sentinel))
}

func TestString(t *testing.T) {
	d, err := Encode(2023, 7, 4)
	require.NoError(t, err)
	require.Equal(t, "2023-07-04", d.String())
	require.Equal(t, "2999-12-31", Sentinel.String())
}
