package domain

import (
	"errors"
	"fmt"
)

// ErrSimulationNotFound is returned when a simulation id has no stored record
var ErrSimulationNotFound = errors.New("simulation not found")

// ErrSetupNotFound is returned when a setup id has no stored record
var ErrSetupNotFound = errors.New("setup not found")

// ErrNoSimulations is returned by latest-record reads on an empty store
var ErrNoSimulations = errors.New("no simulations stored")

// InvalidConfigError reports a RateConfig field that is missing or out of
// domain. It is raised before any computation begins; nothing is mutated.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// OperationNotFoundError reports a transaction target that matches no day
// counter in the simulation. The ledger is left untouched when this is
// returned: no day is mutated and no transaction record is appended.
type OperationNotFoundError struct {
	OperationID string
}

func (e *OperationNotFoundError) Error() string {
	return fmt.Sprintf("operation %q not found in simulation", e.OperationID)
}
