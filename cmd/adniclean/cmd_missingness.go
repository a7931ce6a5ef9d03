package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"adniclean/internal/dataprocessing"
	"adniclean/internal/exporter"
)

var missingnessFlags struct {
	input    string
	out      string
	minRatio float64
}

var missingnessCmd = &cobra.Command{
	Use:   "missingness",
	Short: "Rank the columns of the selected cohort by missing ratio",
	Long: "missingness loads the input, selects the configured cohort and visit,\n" +
		"normalizes sentinels and applies the static drop list, then prints every\n" +
		"remaining column with its missing count and ratio, highest first.",
	RunE: runMissingness,
}

func init() {
	f := missingnessCmd.Flags()
	f.StringVarP(&missingnessFlags.input, "input", "i", "", "Input table (defaults to the configured input)")
	f.StringVar(&missingnessFlags.out, "out", "", "Write the ranking CSV here instead of stdout")
	f.Float64Var(&missingnessFlags.minRatio, "min-ratio", 0, "Only list columns whose missing ratio is at least this value")
}

func runMissingness(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if missingnessFlags.input != "" {
		cfg.Paths.Input = missingnessFlags.input
	}
	p := cfg.Pipeline

	df, err := dataprocessing.ReadTable(cfg.Paths.Input, dataprocessing.LoadOptions{
		Delimiter: p.DelimiterRune(),
		NAValues:  p.NAValues,
		Sheet:     p.Sheet,
	})
	if err != nil {
		return err
	}
	if df, err = dataprocessing.FilterCohortVisit(df, p.CohortColumn, p.Cohort, p.VisitColumn, p.Visit); err != nil {
		return err
	}
	if df, _, err = dataprocessing.NormalizeSentinels(df, p.Sentinels); err != nil {
		return err
	}
	if df, _, err = dataprocessing.DropColumns(df, p.StaticDropColumns); err != nil {
		return err
	}

	ranking := dataprocessing.MissingnessRanking(df)
	if missingnessFlags.minRatio > 0 {
		kept := ranking[:0]
		for _, c := range ranking {
			if c.Ratio >= missingnessFlags.minRatio {
				kept = append(kept, c)
			}
		}
		ranking = kept
	}

	if missingnessFlags.out == "" {
		return exporter.WriteMissingnessReport(cmd.OutOrStdout(), ranking)
	}

	if err := exporter.WriteMissingnessFile(missingnessFlags.out, ranking); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d columns to %s\n", len(ranking), missingnessFlags.out)
	return nil
}
