package operations

import (
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"

	"adniclean/pkg/contracts/domain"
)

// OperationStatusValue represents the overall operation status enum
type OperationStatusValue string

// OperationStatus is an alias for OperationStatusValue
type OperationStatus = OperationStatusValue

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// OperationState is the state of one cleaning run. The working table is
// replaced, never mutated, by each step.
type OperationState struct {
	mu sync.RWMutex

	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`

	Steps map[string]*StepState `json:"steps"`
	order []string

	// Report accumulates what each step did
	Report *domain.CleaningReport `json:"report"`

	Error error `json:"-"`

	table    dataframe.DataFrame
	hasTable bool
}

// NewOperationState creates a new operation state
func NewOperationState(id string, report *domain.CleaningReport) *OperationState {
	if report == nil {
		report = domain.NewCleaningReport(id, "", "")
	}
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
		Report:    report,
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// Cancel marks the operation as cancelled
func (p *OperationState) Cancel(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCancelled
	p.Error = err
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stepID]
}

// SetStage records the state of a Step, keeping first-set order
func (p *OperationState) SetStage(stepID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.Steps[stepID]; !ok {
		p.order = append(p.order, stepID)
	}
	p.Steps[stepID] = state
}

// OrderedSteps returns step states in execution order
func (p *OperationState) OrderedSteps() []*StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*StepState, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.Steps[id])
	}
	return out
}

// Table returns the current working table
func (p *OperationState) Table() dataframe.DataFrame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// SetTable replaces the working table
func (p *OperationState) SetTable(df dataframe.DataFrame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.table = df
	p.hasTable = true
}

// HasTable reports whether a table has been loaded
func (p *OperationState) HasTable() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hasTable
}

// Shape returns the row and column count of the working table
func (p *OperationState) Shape() (rows, cols int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.hasTable {
		return 0, 0
	}
	return p.table.Nrow(), p.table.Ncol()
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}
