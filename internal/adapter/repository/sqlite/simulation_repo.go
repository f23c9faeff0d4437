package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simulak/simulak-backend/internal/domain"
)

// simulationRepository implements domain.SimulationRepository on SQLite.
// Simulations are stored as JSON documents: the aggregate is always read and
// written whole, mirroring the key-value semantics of the store it replaces.
type simulationRepository struct {
	db *DB
}

// NewSimulationRepository creates a new simulation repository
func NewSimulationRepository(db *DB) domain.SimulationRepository {
	return &simulationRepository{db: db}
}

// Put stores the simulation, replacing any record with the same id
func (r *simulationRepository) Put(ctx context.Context, sim *domain.Simulation) error {
	data, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("failed to marshal simulation: %w", err)
	}

	query := `
		INSERT INTO simulations (id, created_at, updated_at, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET updated_at = excluded.updated_at, data = excluded.data
	`
	_, err = r.db.ExecContext(ctx, query,
		sim.ID.String(),
		sim.CreatedAt.UTC().Format(time.RFC3339Nano),
		sim.UpdatedAt.UTC().Format(time.RFC3339Nano),
		data,
	)
	if err != nil {
		return fmt.Errorf("failed to store simulation: %w", err)
	}
	return nil
}

// Get retrieves a simulation by id
func (r *simulationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	query := `SELECT data FROM simulations WHERE id = ?`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSimulationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation: %w", err)
	}

	return unmarshalSimulation(data)
}

// List retrieves all simulations, most recently created first
func (r *simulationRepository) List(ctx context.Context) ([]*domain.Simulation, error) {
	query := `SELECT data FROM simulations ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	defer rows.Close()

	var sims []*domain.Simulation
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan simulation row: %w", err)
		}
		sim, err := unmarshalSimulation(data)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return sims, rows.Err()
}

// Latest retrieves the most recently created simulation
func (r *simulationRepository) Latest(ctx context.Context) (*domain.Simulation, error) {
	query := `SELECT data FROM simulations ORDER BY created_at DESC, id LIMIT 1`

	var data []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSimulations
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest simulation: %w", err)
	}

	return unmarshalSimulation(data)
}

// Delete removes a simulation by id
func (r *simulationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM simulations WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete simulation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrSimulationNotFound
	}
	return nil
}

func unmarshalSimulation(data []byte) (*domain.Simulation, error) {
	var sim domain.Simulation
	if err := json.Unmarshal(data, &sim); err != nil {
		return nil, fmt.Errorf("failed to unmarshal simulation: %w", err)
	}
	return &sim, nil
}
