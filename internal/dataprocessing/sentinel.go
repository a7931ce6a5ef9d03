package dataprocessing

import (
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// SentinelSet decides whether a cell holds a coded "unknown" value.
// Numeric sentinels match any cell that parses to the same number, so -1
// matches "-1.0"; text sentinels match exactly.
type SentinelSet struct {
	text    map[string]bool
	numbers []float64
}

// NewSentinelSet builds a matcher from sentinel spellings
func NewSentinelSet(sentinels []string) SentinelSet {
	set := SentinelSet{text: make(map[string]bool, len(sentinels))}
	for _, s := range sentinels {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			set.numbers = append(set.numbers, f)
			continue
		}
		set.text[s] = true
	}
	return set
}

// Match reports whether v is a sentinel
func (s SentinelSet) Match(v string) bool {
	if s.text[v] {
		return true
	}
	if len(s.numbers) == 0 {
		return false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return false
	}
	for _, n := range s.numbers {
		if f == n {
			return true
		}
	}
	return false
}

// NormalizeSentinels replaces every sentinel cell in every column with
// missing. Other cells are untouched, and applying it twice gives the same
// table. It returns the number of cells replaced.
func NormalizeSentinels(df dataframe.DataFrame, sentinels []string) (dataframe.DataFrame, int, error) {
	set := NewSentinelSet(sentinels)

	replaced := 0
	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		col := df.Col(name)
		values, missing := cells(col)
		for i, v := range values {
			if !missing[i] && set.Match(v) {
				values[i] = MissingMarker
				replaced++
			}
		}
		cols = append(cols, series.New(values, col.Type(), name))
	}

	out, err := rebuild(cols)
	if err != nil {
		return dataframe.DataFrame{}, 0, err
	}
	return out, replaced, nil
}
