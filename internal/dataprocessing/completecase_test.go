package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropIncompleteRows(t *testing.T) {
	df := mustTable(t, []string{"RID", "AGE", "MMSE"},
		[]string{"1", "70", "28"},
		[]string{"2", "", "29"},
		[]string{"3", "72", ""},
		[]string{"4", "73", "30"},
	)

	out, removed, err := DropIncompleteRows(df)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, CountMissing(out))
	assertRecords(t, [][]string{
		{"RID", "AGE", "MMSE"},
		{"1", "70", "28"},
		{"4", "73", "30"},
	}, out)
}

func TestDropIncompleteRows_AllComplete(t *testing.T) {
	df := mustTable(t, []string{"A"}, []string{"1"}, []string{"2"})

	out, removed, err := DropIncompleteRows(df)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, out.Nrow())
}

func TestDropIncompleteRows_AllIncomplete(t *testing.T) {
	df := mustTable(t, []string{"A", "B"}, []string{"1", ""}, []string{"", "2"})

	out, removed, err := DropIncompleteRows(df)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, out.Nrow())
	assert.Equal(t, []string{"A", "B"}, out.Names())
}
