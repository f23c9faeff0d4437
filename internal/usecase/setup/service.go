package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simulak/simulak-backend/internal/domain"
)

// Service manages persisted RateConfig presets. The most recently saved
// preset is the "current" one the dashboard pre-fills its setup form with.
type Service struct {
	SetupRepo domain.SetupRepository
	Now       func() time.Time
}

// NewService creates a new setup Service instance
func NewService(setupRepo domain.SetupRepository) *Service {
	return &Service{
		SetupRepo: setupRepo,
		Now:       time.Now,
	}
}

// Save validates and persists a named preset, minting its identity
func (s *Service) Save(ctx context.Context, name string, params domain.RateConfig) (*domain.Setup, error) {
	setup := &domain.Setup{
		ID:        uuid.New(),
		Name:      name,
		Params:    params,
		CreatedAt: s.Now(),
	}
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	if err := s.SetupRepo.Put(ctx, setup); err != nil {
		return nil, fmt.Errorf("failed to persist setup: %w", err)
	}
	return setup, nil
}

// Get retrieves a preset by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Setup, error) {
	return s.SetupRepo.Get(ctx, id)
}

// List retrieves all presets, most recent first
func (s *Service) List(ctx context.Context) ([]*domain.Setup, error) {
	return s.SetupRepo.List(ctx)
}

// Current retrieves the most recently saved preset
func (s *Service) Current(ctx context.Context) (*domain.Setup, error) {
	return s.SetupRepo.Current(ctx)
}
