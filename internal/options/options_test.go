package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	a int
	b string
}

func TestApply_InOrder(t *testing.T) {
	tgt := &target{}

	err := Apply(tgt,
		NoError(func(t *target) { t.a = 1 }),
		NoError(func(t *target) { t.b = "x" }),
		NoError(func(t *target) { t.a = 2 }),
	)
	require.NoError(t, err)
	require.Equal(t, 2, tgt.a)
	require.Equal(t, "x", tgt.b)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	tgt := &target{}

	err := Apply(tgt,
		NoError(func(t *target) { t.a = 1 }),
		New(func(*target) error { return boom }),
		NoError(func(t *target) { t.a = 99 }),
	)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, tgt.a)
}

func TestApply_NoOptions(t *testing.T) {
	require.NoError(t, Apply(&target{}))
}
