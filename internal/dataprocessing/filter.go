package dataprocessing

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FilterCohortVisit keeps the rows whose cohort column equals cohort and whose
// visit column equals visit. Comparison is exact and case-sensitive; missing
// values never match. Row order is preserved and an empty result is valid.
func FilterCohortVisit(df dataframe.DataFrame, cohortColumn, cohort, visitColumn, visit string) (dataframe.DataFrame, error) {
	if err := requireColumns(df, "filter", cohortColumn, visitColumn); err != nil {
		return dataframe.DataFrame{}, err
	}

	keep := make([]int, 0, df.Nrow())
	cohorts, cohortMissing := cells(df.Col(cohortColumn))
	visits, visitMissing := cells(df.Col(visitColumn))
	for i := range cohorts {
		if cohortMissing[i] || visitMissing[i] {
			continue
		}
		if cohorts[i] == cohort && visits[i] == visit {
			keep = append(keep, i)
		}
	}

	return subsetRows(df, keep)
}

// subsetRows returns the rows at the given positions, keeping the column set
// even when no rows remain
func subsetRows(df dataframe.DataFrame, rows []int) (dataframe.DataFrame, error) {
	if len(rows) == df.Nrow() {
		return df.Copy(), nil
	}

	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		values, _ := cells(df.Col(name))
		picked := make([]string, len(rows))
		for k, i := range rows {
			picked[k] = values[i]
		}
		cols = append(cols, series.New(picked, df.Col(name).Type(), name))
	}
	return rebuild(cols)
}
