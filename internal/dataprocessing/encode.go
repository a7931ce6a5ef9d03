package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "adniclean/internal/errors"
)

// LabelMapping maps the levels of a categorical column to integer codes.
// Levels are sorted, and level i gets code i.
type LabelMapping struct {
	Column string   `json:"column"`
	Levels []string `json:"levels"`
}

// Code returns the code for level
func (m LabelMapping) Code(level string) (int, bool) {
	i := sort.SearchStrings(m.Levels, level)
	if i < len(m.Levels) && m.Levels[i] == level {
		return i, true
	}
	return 0, false
}

// Map returns the level to code mapping
func (m LabelMapping) Map() map[string]int {
	out := make(map[string]int, len(m.Levels))
	for i, l := range m.Levels {
		out[l] = i
	}
	return out
}

// LabelEncode replaces column with integer codes 0..k-1 over its sorted
// distinct non-missing values. Missing cells stay missing. The column keeps
// its position.
func LabelEncode(df dataframe.DataFrame, column string) (dataframe.DataFrame, LabelMapping, error) {
	if err := requireColumns(df, "label_encode", column); err != nil {
		return dataframe.DataFrame{}, LabelMapping{}, err
	}

	values, missing := cells(df.Col(column))
	mapping := LabelMapping{Column: column, Levels: levels(values, missing)}

	codes := make([]string, len(values))
	for i, v := range values {
		if missing[i] {
			codes[i] = MissingMarker
			continue
		}
		code, _ := mapping.Code(v)
		codes[i] = strconv.Itoa(code)
	}

	encoded := series.New(codes, series.Int, column)
	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		if name == column {
			cols = append(cols, encoded)
			continue
		}
		cols = append(cols, df.Col(name))
	}

	out, err := rebuild(cols)
	if err != nil {
		return dataframe.DataFrame{}, LabelMapping{}, err
	}
	return out, mapping, nil
}

// Indicator records the indicator columns created for one source column
type Indicator struct {
	Column  string   `json:"column"`
	Created []string `json:"created"`
	Dropped string   `json:"dropped_level,omitempty"`
}

// OneHotEncode replaces each listed column with one 0/1 indicator column per
// distinct non-missing value, named "{column}_{value}" in sorted value order.
// With dropFirst the indicator for the first sorted value is omitted. A
// missing source cell is missing in every indicator of its group. Indicator
// columns are appended after the remaining columns, group by group.
func OneHotEncode(df dataframe.DataFrame, columns []string, dropFirst bool) (dataframe.DataFrame, []Indicator, error) {
	if err := requireColumns(df, "one_hot", columns...); err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	if len(columns) == 0 {
		return df.Copy(), nil, nil
	}

	encoded := make(map[string]bool, len(columns))
	for _, c := range columns {
		encoded[c] = true
	}

	var cols []series.Series
	taken := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		if !encoded[name] {
			cols = append(cols, df.Col(name))
			taken[name] = true
		}
	}

	indicators := make([]Indicator, 0, len(columns))
	for _, column := range dedupe(columns) {
		values, missing := cells(df.Col(column))
		lv := levels(values, missing)

		ind := Indicator{Column: column}
		if dropFirst && len(lv) > 0 {
			ind.Dropped = lv[0]
			lv = lv[1:]
		}

		for _, level := range lv {
			name := fmt.Sprintf("%s_%s", column, level)
			if taken[name] {
				return dataframe.DataFrame{}, nil, apperrors.NewAppError(apperrors.ErrTypeSchema,
					fmt.Sprintf("one_hot: indicator %q collides with an existing column", name), nil).
					WithContext("step", "one_hot").
					WithContext("column", name)
			}
			taken[name] = true
			flags := make([]string, len(values))
			for i, v := range values {
				switch {
				case missing[i]:
					flags[i] = MissingMarker
				case v == level:
					flags[i] = "1"
				default:
					flags[i] = "0"
				}
			}
			cols = append(cols, series.New(flags, series.Int, name))
			ind.Created = append(ind.Created, name)
		}
		indicators = append(indicators, ind)
	}

	out, err := rebuild(cols)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	return out, indicators, nil
}

// levels returns the sorted distinct non-missing values
func levels(values []string, missing []bool) []string {
	seen := make(map[string]bool)
	var out []string
	for i, v := range values {
		if missing[i] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
