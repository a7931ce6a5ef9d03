// Command adniclean turns an ADNIMERGE export into a model-ready baseline
// table for the ADNI1 cohort.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
