package dataprocessing

import (
	"fmt"
	"path"

	"github.com/go-gota/gota/dataframe"
)

// DropColumns removes the named columns. Every name must exist; the first
// absent one fails the whole drop and nothing is removed. Repeated names are
// dropped once.
func DropColumns(df dataframe.DataFrame, columns []string) (dataframe.DataFrame, []string, error) {
	unique := dedupe(columns)
	if err := requireColumns(df, "static_drop", unique...); err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	if len(unique) == 0 {
		return df.Copy(), nil, nil
	}
	if len(unique) == df.Ncol() {
		return dataframe.DataFrame{}, nil, fmt.Errorf("static_drop: dropping %d columns leaves an empty table", len(unique))
	}

	out := df.Drop(unique)
	if out.Err != nil {
		return dataframe.DataFrame{}, nil, out.Err
	}
	return out, unique, nil
}

// MissingnessPass is one threshold drop. Columns holds glob patterns limiting
// the candidates; empty means every column.
type MissingnessPass struct {
	Threshold float64
	Columns   []string
}

// Matches reports whether column is a candidate of this pass
func (p MissingnessPass) Matches(column string) (bool, error) {
	if len(p.Columns) == 0 {
		return true, nil
	}
	for _, pattern := range p.Columns {
		ok, err := path.Match(pattern, column)
		if err != nil {
			return false, fmt.Errorf("invalid column pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Validate rejects malformed column patterns
func (p MissingnessPass) Validate() error {
	for _, pattern := range p.Columns {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid column pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// DropByMissingness removes every candidate column whose missing ratio is at
// least the pass threshold. Ratios are taken against the table as given, so
// earlier drops and filters are reflected. Protected columns are never
// removed.
func DropByMissingness(df dataframe.DataFrame, pass MissingnessPass, protected []string) (dataframe.DataFrame, []string, error) {
	if err := validateThreshold(pass.Threshold); err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	if err := pass.Validate(); err != nil {
		return dataframe.DataFrame{}, nil, err
	}

	keep := make(map[string]bool, len(protected))
	for _, c := range protected {
		keep[c] = true
	}

	var dropped []string
	for _, name := range ColumnsAtOrAbove(df, pass.Threshold) {
		if keep[name] {
			continue
		}
		candidate, err := pass.Matches(name)
		if err != nil {
			return dataframe.DataFrame{}, nil, err
		}
		if candidate {
			dropped = append(dropped, name)
		}
	}

	if len(dropped) == 0 {
		return df.Copy(), nil, nil
	}
	if len(dropped) == df.Ncol() {
		return dataframe.DataFrame{}, nil, fmt.Errorf("missingness_drop: threshold %.2f removes every column", pass.Threshold)
	}

	out := df.Drop(dropped)
	if out.Err != nil {
		return dataframe.DataFrame{}, nil, out.Err
	}
	return out, dropped, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
