package orchestrator

import "fmt"

// Stage names the pipeline stage a fatal failure was absorbed from.
type Stage string

const (
	StageValidation Stage = "validation"
	StageAudit      Stage = "audit"
)

// StageError is the typed failure of an orchestration call. Validation
// failures happen before any external side effect; an audit failure happens
// after the charge, which then stands. The pipeline owns no rollback.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("orchestrator: %s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
