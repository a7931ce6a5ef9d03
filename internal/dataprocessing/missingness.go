package dataprocessing

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	apperrors "adniclean/internal/errors"
)

// ColumnMissingness is the missing share of one column
type ColumnMissingness struct {
	Column  string  `json:"column"`
	Missing int     `json:"missing"`
	Total   int     `json:"total"`
	Ratio   float64 `json:"ratio"`
}

// MissingRatio returns the fraction of missing cells in column. A table with
// no rows has ratio 0.
func MissingRatio(df dataframe.DataFrame, column string) (float64, error) {
	if err := requireColumns(df, "missingness", column); err != nil {
		return 0, err
	}
	return columnMissingness(df, column).Ratio, nil
}

func columnMissingness(df dataframe.DataFrame, column string) ColumnMissingness {
	cm := ColumnMissingness{Column: column, Total: df.Nrow()}
	for _, m := range df.Col(column).IsNaN() {
		if m {
			cm.Missing++
		}
	}
	if cm.Total > 0 {
		cm.Ratio = float64(cm.Missing) / float64(cm.Total)
	}
	return cm
}

// MissingnessRanking returns every column's missing share, highest first.
// Ties keep table order.
func MissingnessRanking(df dataframe.DataFrame) []ColumnMissingness {
	ranking := make([]ColumnMissingness, 0, df.Ncol())
	for _, name := range df.Names() {
		ranking = append(ranking, columnMissingness(df, name))
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Ratio > ranking[j].Ratio
	})
	return ranking
}

// ColumnsAtOrAbove returns the columns whose ratio is at least threshold, in
// table order
func ColumnsAtOrAbove(df dataframe.DataFrame, threshold float64) []string {
	var out []string
	for _, name := range df.Names() {
		if columnMissingness(df, name).Ratio >= threshold {
			out = append(out, name)
		}
	}
	return out
}

// validateThreshold rejects thresholds outside [0, 1]
func validateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 || threshold != threshold {
		return apperrors.NewAppValidationError("missingness threshold must be within [0, 1]").
			WithContext("threshold", threshold)
	}
	return nil
}
