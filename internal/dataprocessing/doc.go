// Package dataprocessing implements the column and row transformations that
// turn the longitudinal ADNIMERGE table into the cleaned ADNI1 baseline
// cohort.
//
// # Architecture
//
// Every transformation is a function from a gota DataFrame to a new
// DataFrame. Inputs are never modified. All columns are loaded as strings and
// a missing cell is a gota NaN element, so the same missing test applies
// regardless of where the value came from:
//
//  1. Loading: ReadTable parses delimited text or .xlsx and maps NA spellings to missing
//  2. Row selection: FilterCohortVisit and DropIncompleteRows
//  3. Cell cleanup: NormalizeSentinels turns coded "unknown" values into missing
//  4. Column pruning: DropColumns and DropByMissingness
//  5. Encoding: LabelEncode and OneHotEncode
//
// # Usage
//
//	df, err := dataprocessing.ReadTable("ADNIMERGE2.csv", dataprocessing.DefaultLoadOptions())
//	if err != nil {
//	    return err
//	}
//	df, err = dataprocessing.FilterCohortVisit(df, "COLPROT", "ADNI1", "VISCODE", "bl")
//
// # Error Handling
//
// A column that must exist but does not yields an AppError of type SCHEMA
// naming the column. Unreadable input yields an AppError of type IO.
package dataprocessing
