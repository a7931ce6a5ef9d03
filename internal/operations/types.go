package operations

import (
	"time"

	"adniclean/pkg/contracts/domain"
)

// Cleaning step identifiers, in execution order
const (
	StepIDLoad            = "load"
	StepIDFilter          = "filter"
	StepIDSentinels       = "sentinels"
	StepIDStaticDrop      = "static_drop"
	StepIDMissingnessDrop = "missingness_drop"
	StepIDLabelEncode     = "label_encode"
	StepIDOneHot          = "one_hot"
	StepIDCompleteCase    = "complete_case"
	StepIDPersist         = "persist"
)

// Cleaning step names
const (
	StepNameLoad            = "Load Table"
	StepNameFilter          = "Cohort/Visit Filter"
	StepNameSentinels       = "Sentinel Normalization"
	StepNameStaticDrop      = "Static Column Drop"
	StepNameMissingnessDrop = "Missingness Drop"
	StepNameLabelEncode     = "Label Encoding"
	StepNameOneHot          = "One-Hot Encoding"
	StepNameCompleteCase    = "Complete-Case Filter"
	StepNamePersist         = "Write Output"
)

// OperationRequest starts a cleaning run
type OperationRequest struct {
	ID     string `json:"id"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// OperationResponse is the outcome of a run
type OperationResponse struct {
	ID       string                 `json:"id"`
	Status   OperationStatus        `json:"status"`
	Duration time.Duration          `json:"duration"`
	Steps    []*StepState           `json:"steps"`
	Report   *domain.CleaningReport `json:"report"`
	Error    string                 `json:"error,omitempty"`
}
