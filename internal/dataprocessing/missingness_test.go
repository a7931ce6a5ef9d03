package dataprocessing

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "adniclean/internal/errors"
)

// four rows; A has 0 missing, B 1, C 2, D 3, E 4
func missingnessTable(t *testing.T) dataframe.DataFrame {
	t.Helper()
	return mustTable(t, []string{"A", "B", "C", "D", "E"},
		[]string{"1", "", "", "", ""},
		[]string{"2", "x", "", "", ""},
		[]string{"3", "x", "y", "", ""},
		[]string{"4", "x", "y", "z", ""},
	)
}

func TestMissingRatio(t *testing.T) {
	df := missingnessTable(t)

	tests := []struct {
		column string
		want   float64
	}{
		{"A", 0},
		{"B", 0.25},
		{"C", 0.5},
		{"D", 0.75},
		{"E", 1},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, err := MissingRatio(df, tt.column)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := MissingRatio(df, "Z")
	assert.True(t, apperrors.IsSchemaError(err))
}

func TestMissingRatio_EmptyTable(t *testing.T) {
	df := mustTable(t, []string{"A"})
	got, err := MissingRatio(df, "A")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestMissingnessRanking(t *testing.T) {
	ranking := MissingnessRanking(missingnessTable(t))
	require.Len(t, ranking, 5)

	var order []string
	for _, r := range ranking {
		order = append(order, r.Column)
	}
	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, order)
	assert.Equal(t, ColumnMissingness{Column: "C", Missing: 2, Total: 4, Ratio: 0.5}, ranking[2])
}

func TestDropByMissingness_Boundary(t *testing.T) {
	out, dropped, err := DropByMissingness(missingnessTable(t), MissingnessPass{Threshold: 0.5}, nil)
	require.NoError(t, err)

	// a ratio exactly at the threshold is dropped
	assert.Equal(t, []string{"C", "D", "E"}, dropped)
	assert.Equal(t, []string{"A", "B"}, out.Names())
}

func TestDropByMissingness_Monotonic(t *testing.T) {
	df := missingnessTable(t)
	thresholds := []float64{0, 0.25, 0.5, 0.75, 1}

	var previous []string
	for i := len(thresholds) - 1; i >= 0; i-- {
		remaining := ColumnsAtOrAbove(df, thresholds[i])
		// lowering the threshold never drops fewer columns
		for _, c := range previous {
			assert.Contains(t, remaining, c)
		}
		previous = remaining
	}
	assert.Len(t, previous, 5)
}

func TestDropByMissingness_Protected(t *testing.T) {
	out, dropped, err := DropByMissingness(missingnessTable(t), MissingnessPass{Threshold: 0.5}, []string{"D"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "E"}, dropped)
	assert.Equal(t, []string{"A", "B", "D"}, out.Names())
}

func TestDropByMissingness_Patterns(t *testing.T) {
	df := mustTable(t, []string{"EcogPtMem", "EcogSPLang", "MMSE", "RID"},
		[]string{"", "", "", "1"},
		[]string{"1", "", "", "2"},
	)

	out, dropped, err := DropByMissingness(df, MissingnessPass{Threshold: 0.5, Columns: []string{"Ecog*"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"EcogPtMem", "EcogSPLang"}, dropped)
	assert.Equal(t, []string{"MMSE", "RID"}, out.Names())

	_, _, err = DropByMissingness(df, MissingnessPass{Threshold: 0.5, Columns: []string{"["}}, nil)
	assert.Error(t, err)

	// a malformed pattern fails even when no column reaches the threshold
	complete := mustTable(t, []string{"RID"}, []string{"1"})
	_, _, err = DropByMissingness(complete, MissingnessPass{Threshold: 0.5, Columns: []string{"Ecog*", "["}}, nil)
	assert.Error(t, err)
}

func TestDropByMissingness_RepeatedPassIsNoop(t *testing.T) {
	df := mustTable(t, []string{"EcogPtMem", "EcogSPLang", "MMSE", "RID"},
		[]string{"", "1", "", "1"},
		[]string{"", "", "2", "2"},
		[]string{"1", "", "3", "3"},
	)

	first, dropped, err := DropByMissingness(df, MissingnessPass{Threshold: 0.5}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"EcogPtMem", "EcogSPLang"}, dropped)

	out, dropped, err := DropByMissingness(first, MissingnessPass{Threshold: 0.5, Columns: []string{"Ecog*"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Equal(t, first.Names(), out.Names())
}

func TestDropByMissingness_RecomputedAfterFilter(t *testing.T) {
	// B is half missing overall but complete within cohort X
	df := mustTable(t, []string{"COHORT", "B"},
		[]string{"X", "1"},
		[]string{"X", "2"},
		[]string{"Y", ""},
		[]string{"Y", ""},
	)

	_, dropped, err := DropByMissingness(df, MissingnessPass{Threshold: 0.5}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, dropped)

	filtered, err := FilterCohortVisit(mustTable(t, []string{"COHORT", "V", "B"},
		[]string{"X", "bl", "1"},
		[]string{"X", "bl", "2"},
		[]string{"Y", "bl", ""},
		[]string{"Y", "bl", ""},
	), "COHORT", "X", "V", "bl")
	require.NoError(t, err)

	_, dropped, err = DropByMissingness(filtered, MissingnessPass{Threshold: 0.5}, nil)
	require.NoError(t, err)
	assert.Empty(t, dropped)
}

func TestDropByMissingness_InvalidThreshold(t *testing.T) {
	for _, th := range []float64{-0.1, 1.5} {
		_, _, err := DropByMissingness(missingnessTable(t), MissingnessPass{Threshold: th}, nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	}
}
