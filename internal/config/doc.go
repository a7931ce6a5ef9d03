// Package config provides centralized configuration management for adniclean.
// One declarative structure describes the cleaning run; Paths resolves the
// files a run reads and writes.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ADNI_* for namespacing:
//
//	ADNI_PATHS_INPUT=ADNIMERGE2.csv
//	ADNI_PIPELINE_COHORT=ADNI1
//	ADNI_PIPELINE_SENTINELS=Unknown,-1,-4
//	ADNI_LOGGING_LEVEL=debug
//
// Missingness passes are a list of structs and can only be set from the file.
//
// # Configuration File
//
//	pipeline:
//	  cohort: ADNI1
//	  visit: bl
//	  missingness_passes:
//	    - threshold: 0.5
//	    - threshold: 0.5
//	      columns: ["Ecog*"]
//	  label_column: DX_bl
//	  categorical_nominal: [PTRACCAT, PTMARRY, APOE4, PTGENDER]
//	  categorical_drop_first: [PTETHCAT]
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.GetPaths(cfg)
package config
