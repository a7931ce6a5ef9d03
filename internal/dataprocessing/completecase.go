package dataprocessing

import "github.com/go-gota/gota/dataframe"

// DropIncompleteRows keeps only rows with no missing cell in any column. It
// returns the filtered table and the number of rows removed.
func DropIncompleteRows(df dataframe.DataFrame) (dataframe.DataFrame, int, error) {
	complete := make([]bool, df.Nrow())
	for i := range complete {
		complete[i] = true
	}
	for _, name := range df.Names() {
		for i, m := range df.Col(name).IsNaN() {
			if m {
				complete[i] = false
			}
		}
	}

	keep := make([]int, 0, len(complete))
	for i, ok := range complete {
		if ok {
			keep = append(keep, i)
		}
	}

	out, err := subsetRows(df, keep)
	if err != nil {
		return dataframe.DataFrame{}, 0, err
	}
	return out, df.Nrow() - len(keep), nil
}
