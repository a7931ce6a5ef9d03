// Package operations runs the cleaning pipeline as an ordered list of steps.
//
// A Manager owns a Registry of steps and executes them one at a time in
// dependency order against a shared OperationState, which carries the working
// table and the run's CleaningReport. The first failing step aborts the run:
// every later step is marked skipped and the error is returned wrapped in an
// OperationError, so callers can still reach the underlying schema or I/O
// error with errors.As.
//
// The cleaning steps themselves live in stages.go:
//
//	load -> filter -> sentinels -> static_drop -> missingness_drop ->
//	label_encode -> one_hot -> complete_case -> persist
//
// Only persist touches the output path, and it writes atomically, so a
// failed run never leaves a partial output file behind.
//
// Example usage:
//
//	manager := operations.NewManager(nil, operations.NewOperationTracer(providers), logger)
//	if err := operations.RegisterCleaningStages(manager, opts); err != nil {
//		return err
//	}
//	resp, err := manager.Execute(ctx, operations.OperationRequest{Input: in, Output: out})
package operations
