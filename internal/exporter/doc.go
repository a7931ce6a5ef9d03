// Package exporter writes cleaned tables and run reports.
//
// Tables are written with a header row and no index column, as delimited
// text (WriteCSV) or as a workbook (WriteXLSX); WriteTable picks the format
// from the file extension. Every file is written to a temporary file in the
// target directory and renamed into place, so a failed write never leaves a
// partial output behind.
//
// Example usage:
//
//	err := exporter.WriteTable("ADNI1_bl_remove_all_missing.csv", df, exporter.WriteOptions{})
//
//	ranking := dataprocessing.MissingnessRanking(df)
//	err = exporter.WriteMissingnessReport(os.Stdout, ranking)
package exporter
