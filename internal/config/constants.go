package config

// Application constants
const (
	AppName = "adniclean"

	// EnvPrefix namespaces every environment override (ADNI_PIPELINE_COHORT, ...)
	EnvPrefix = "ADNI"

	// Default file locations, relative to the working directory
	DefaultInputFile  = "ADNIMERGE2.csv"
	DefaultOutputFile = "ADNI1_bl_remove_all_missing.csv"
	DefaultLogFile    = "logs/adniclean.log"

	// Default cohort/visit selection
	DefaultCohortColumn = "COLPROT"
	DefaultCohort       = "ADNI1"
	DefaultVisitColumn  = "VISCODE"
	DefaultVisit        = "bl"
	DefaultLabelColumn  = "DX_bl"

	DefaultMissingnessThreshold = 0.5
	DefaultDelimiter            = ","
)

// DefaultSentinels are the in-band missing-value encodings used by ADNIMERGE.
var DefaultSentinels = []string{"Unknown", "-1", "-4"}

// DefaultNAValues are read as missing when the input is loaded.
var DefaultNAValues = []string{"", "NA", "NaN", "nan", "N/A", "NULL", "null", "<NA>"}

// DefaultStaticDropColumns are follow-up, exam metadata and imaging fields that
// carry no meaning in the baseline cross-section.
var DefaultStaticDropColumns = []string{
	"SITE", "ORIGPROT", "EXAMDATE",
	"AV45", "ABETA", "TAU", "PTAU", "CDRSB", "ADAS11", "ADAS13", "ADASQ4", "PIB",
	"MMSE", "RAVLT_immediate", "RAVLT_learning", "RAVLT_forgetting",
	"RAVLT_perc_forgetting", "LDELTOTAL", "DIGITSCOR", "TRABSCOR", "FAQ", "MOCA",
	"EcogPtMem", "EcogPtLang", "EcogPtVisspat", "EcogPtPlan", "EcogPtOrgan",
	"EcogPtDivatt", "EcogPtTotal", "EcogSPMem", "EcogSPLang", "EcogSPVisspat",
	"EcogSPPlan", "EcogSPOrgan", "EcogSPDivatt", "EcogSPTotal",
	"FLDSTRENG", "FSVERSION", "IMAGEUID",
	"Ventricles", "Hippocampus", "WholeBrain", "Entorhinal", "Fusiform",
	"MidTemp", "ICV", "DX", "mPACCdigit", "mPACCtrailsB",
	"EXAMDATE_bl", "Years_bl", "Month_bl", "Month", "M",
	"update_stamp", "FSVERSION_bl", "FLDSTRENG_bl",
}

// DefaultCategoricalNominal are one-hot encoded keeping every level.
var DefaultCategoricalNominal = []string{"PTRACCAT", "PTMARRY", "APOE4", "PTGENDER"}

// DefaultCategoricalDropFirst are one-hot encoded without their first level.
var DefaultCategoricalDropFirst = []string{"PTETHCAT"}
