package provisioner

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
)

// ErrConnectionExhausted is returned when every connection attempt failed.
var ErrConnectionExhausted = errors.New("could not connect to SQL Server")

// StepError reports a statement that stopped the run.
type StepError struct {
	Step string
	Kind mssql.Kind
	Err  error
}

func newStepError(step string, err error) *StepError {
	return &StepError{Step: step, Kind: mssql.Classify(err), Err: err}
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed (%s): %v", e.Step, e.Kind, e.Err)
}

// Unwrap exposes the statement error.
func (e *StepError) Unwrap() error {
	return e.Err
}
