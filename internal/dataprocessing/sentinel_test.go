package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSentinels = []string{"Unknown", "-1", "-4"}

func TestSentinelSet_Match(t *testing.T) {
	set := NewSentinelSet(testSentinels)

	tests := []struct {
		value string
		want  bool
	}{
		{"Unknown", true},
		{"-1", true},
		{"-1.0", true},
		{"-4", true},
		{" -4 ", true},
		{"unknown", false},
		{"-10", false},
		{"1", false},
		{"Unknown ", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Match(tt.value))
		})
	}
}

func TestNormalizeSentinels(t *testing.T) {
	df := mustTable(t, []string{"PTETHCAT", "MMSE", "APOE4"},
		[]string{"Unknown", "28", "1"},
		[]string{"Not Hisp/Latino", "-4", "-1"},
		[]string{"Hisp/Latino", "", "0"},
	)

	out, n, err := NormalizeSentinels(df, testSentinels)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assertRecords(t, [][]string{
		{"PTETHCAT", "MMSE", "APOE4"},
		{"", "28", "1"},
		{"Not Hisp/Latino", "", ""},
		{"Hisp/Latino", "", "0"},
	}, out)
	assert.Equal(t, 4, CountMissing(out))
}

func TestNormalizeSentinels_Idempotent(t *testing.T) {
	df := mustTable(t, []string{"A", "B"},
		[]string{"Unknown", "-1"},
		[]string{"x", "-4.0"},
	)

	once, n1, err := NormalizeSentinels(df, testSentinels)
	require.NoError(t, err)
	twice, n2, err := NormalizeSentinels(once, testSentinels)
	require.NoError(t, err)

	assert.Equal(t, 3, n1)
	assert.Equal(t, 0, n2)
	assert.Equal(t, Records(once, ""), Records(twice, ""))
}
