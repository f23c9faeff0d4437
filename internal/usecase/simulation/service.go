package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simulak/simulak-backend/internal/domain"
	"github.com/simulak/simulak-backend/internal/usecase/engine"
)

// Service orchestrates simulation runs and retroactive transactions over the
// persistence layer. The engine itself is pure; this service owns loading,
// clock injection, and making results durable.
type Service struct {
	SimRepo domain.SimulationRepository
	Now     func() time.Time
}

// NewService creates a new simulation Service instance
func NewService(simRepo domain.SimulationRepository) *Service {
	return &Service{
		SimRepo: simRepo,
		Now:     time.Now,
	}
}

// Run validates cfg, projects it over the full horizon and persists the
// resulting simulation. A zero startDate starts the projection in the
// current month.
func (s *Service) Run(ctx context.Context, cfg domain.RateConfig, startDate time.Time) (*domain.Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := s.Now()
	if startDate.IsZero() {
		startDate = now
	}

	sim := engine.RunSimulation(cfg, startDate, now)
	if err := s.SimRepo.Put(ctx, sim); err != nil {
		return nil, fmt.Errorf("failed to persist simulation: %w", err)
	}
	return sim, nil
}

// ApplyTransaction loads the simulation, inserts a deposit or withdrawal at
// the addressed day, replays the ledger forward and persists the updated
// aggregate. The returned simulation reflects the recomputed ledger.
func (s *Service) ApplyTransaction(ctx context.Context, simID uuid.UUID, txType domain.TransactionType, amount decimal.Decimal, operationID string) (*domain.Simulation, error) {
	sim, err := s.SimRepo.Get(ctx, simID)
	if err != nil {
		return nil, err
	}

	if _, err := engine.ApplyTransaction(sim, txType, amount, operationID, s.Now()); err != nil {
		return nil, err
	}

	if err := s.SimRepo.Put(ctx, sim); err != nil {
		return nil, fmt.Errorf("failed to persist recalculated simulation: %w", err)
	}
	return sim, nil
}

// Get retrieves a simulation by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	return s.SimRepo.Get(ctx, id)
}

// List retrieves all simulations, most recent first
func (s *Service) List(ctx context.Context) ([]*domain.Simulation, error) {
	return s.SimRepo.List(ctx)
}

// Latest retrieves the most recently created simulation
func (s *Service) Latest(ctx context.Context) (*domain.Simulation, error) {
	return s.SimRepo.Latest(ctx)
}

// Delete removes a simulation by id
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.SimRepo.Delete(ctx, id)
}
