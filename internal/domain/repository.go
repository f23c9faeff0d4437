package domain

import (
	"context"

	"github.com/google/uuid"
)

// SimulationRepository defines the interface for simulation persistence
// operations. The store is a document store: Put is a full overwrite by id,
// used both for the initial save and for every post-transaction save.
type SimulationRepository interface {
	// Put stores the simulation, replacing any record with the same id
	Put(ctx context.Context, sim *Simulation) error

	// Get retrieves a simulation by id.
	// Returns ErrSimulationNotFound if no record exists.
	Get(ctx context.Context, id uuid.UUID) (*Simulation, error)

	// List retrieves all simulations, most recently created first
	List(ctx context.Context) ([]*Simulation, error)

	// Latest retrieves the most recently created simulation.
	// Returns ErrNoSimulations on an empty store.
	Latest(ctx context.Context) (*Simulation, error)

	// Delete removes a simulation by id.
	// Returns ErrSimulationNotFound if no record exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SetupRepository defines the interface for RateConfig preset persistence
type SetupRepository interface {
	// Put stores the setup, replacing any record with the same id
	Put(ctx context.Context, setup *Setup) error

	// Get retrieves a setup by id.
	// Returns ErrSetupNotFound if no record exists.
	Get(ctx context.Context, id uuid.UUID) (*Setup, error)

	// List retrieves all setups, most recently created first
	List(ctx context.Context) ([]*Setup, error)

	// Current retrieves the most recently created setup.
	// Returns ErrSetupNotFound on an empty store.
	Current(ctx context.Context) (*Setup, error)
}
