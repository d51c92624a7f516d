package rjisflow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ams627/rjisflow"
	"github.com/ams627/rjisflow/record"
)

func TestProcess_EndToEnd(t *testing.T) {
	text := strings.Join([]string{
		"/!! RJIS flow extract",
		"RF1072848700000000003112299901012020ATO0000123456",
		"RT0123456SOR00012345  ",
		"RT0123456SVR00023450A1",
	}, "\n") + "\n"

	p, stats, err := rjisflow.Process(strings.NewReader(text))
	require.NoError(t, err)

	require.Equal(t, 1, stats.Flows)
	require.Equal(t, 2, stats.Fares)
	require.Equal(t, 2, stats.UniqueKeys)
	require.Equal(t, 1, stats.FlowBuckets)

	flow := p.Flows()[0]
	require.Equal(t, uint32(0x31303732), flow.Origin)
	require.True(t, flow.EndDate.IsSentinel())

	v, ok := p.Index().Lookup(record.PackFareKey(123456, base36("SOR")))
	require.True(t, ok)
	require.Equal(t, 12345, v.Price())
}

func base36(code string) uint16 {
	var n uint16
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c >= 'A' {
			n = n*36 + uint16(c-'A') + 10
		} else {
			n = n*36 + uint16(c-'0')
		}
	}

	return n
}
