package fixedwidth

import (
	"testing"

	"github.com/ams627/rjisflow/errs"
	"github.com/stretchr/testify/require"
)

func TestPackCode4(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		offset int
		want   uint32
	}{
		{name: "start of line", text: "1072", offset: 0, want: 0x31303732},
		{name: "at offset", text: "RF1072ABCD", offset: 2, want: 0x31303732},
		{name: "letters", text: "ABCD", offset: 0, want: 0x41424344},
		{name: "arbitrary printable bytes", text: "@* z", offset: 0, want: 0x402A207A},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PackCode4(tc.text, tc.offset)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPackCode4_ShortField(t *testing.T) {
	_, err := PackCode4("ABC", 0)
	require.ErrorIs(t, err, errs.ErrShortField)
	require.ErrorIs(t, err, errs.ErrFormat)

	_, err = PackCode4("ABCDE", 2)
	require.ErrorIs(t, err, errs.ErrShortField)
}

func TestDecimalInt(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		offset int
		length int
		want   int
	}{
		{name: "leading zeros", text: "00042abc", offset: 0, length: 5, want: 42},
		{name: "full width", text: "01234567", offset: 0, length: 8, want: 1234567},
		{name: "at offset", text: "RT0123456", offset: 2, length: 7, want: 123456},
		{name: "all zeros", text: "0000000", offset: 0, length: 7, want: 0},
		{name: "single digit", text: "7", offset: 0, length: 1, want: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecimalInt(tc.text, tc.offset, tc.length)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecimalInt_Errors(t *testing.T) {
	t.Run("non-digit cites character and position", func(t *testing.T) {
		_, err := DecimalInt("0004Xabc", 0, 5)
		require.ErrorIs(t, err, errs.ErrInvalidDigit)
		require.ErrorContains(t, err, `'X'`)
		require.ErrorContains(t, err, "offset 4")
	})

	t.Run("space is not a digit", func(t *testing.T) {
		_, err := DecimalInt("12 45", 0, 5)
		require.ErrorIs(t, err, errs.ErrInvalidDigit)
	})

	t.Run("short field", func(t *testing.T) {
		_, err := DecimalInt("123", 0, 5)
		require.ErrorIs(t, err, errs.ErrShortField)
	})
}

func TestBase36Int(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		offset int
		length int
		want   uint16
	}{
		{name: "letter leading", text: "A23", offset: 0, length: 3, want: 10*36*36 + 2*36 + 3},
		{name: "all digits", text: "123", offset: 0, length: 3, want: 1*36*36 + 2*36 + 3},
		{name: "maximum", text: "ZZZ", offset: 0, length: 3, want: 36*36*36 - 1},
		{name: "two characters", text: "A1", offset: 0, length: 2, want: 10*36 + 1},
		{name: "at offset", text: "xxSN", offset: 2, length: 2, want: (uint16('S'-'A')+10)*36 + uint16('N'-'A') + 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Base36Int(tc.text, tc.offset, tc.length)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestBase36Int_Errors(t *testing.T) {
	t.Run("lowercase rejected", func(t *testing.T) {
		_, err := Base36Int("a23", 0, 3)
		require.ErrorIs(t, err, errs.ErrInvalidBase36)
		require.ErrorContains(t, err, `'a'`)
	})

	t.Run("space rejected", func(t *testing.T) {
		_, err := Base36Int(" 1", 0, 2)
		require.ErrorIs(t, err, errs.ErrInvalidBase36)
	})

	t.Run("short field", func(t *testing.T) {
		_, err := Base36Int("AB", 0, 3)
		require.ErrorIs(t, err, errs.ErrShortField)
	})
}
