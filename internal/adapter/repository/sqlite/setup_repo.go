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

// setupRepository implements domain.SetupRepository on SQLite, storing each
// preset as a JSON document
type setupRepository struct {
	db *DB
}

// NewSetupRepository creates a new setup repository
func NewSetupRepository(db *DB) domain.SetupRepository {
	return &setupRepository{db: db}
}

// Put stores the setup, replacing any record with the same id
func (r *setupRepository) Put(ctx context.Context, setup *domain.Setup) error {
	data, err := json.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to marshal setup: %w", err)
	}

	query := `
		INSERT INTO setups (id, created_at, data)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data
	`
	_, err = r.db.ExecContext(ctx, query,
		setup.ID.String(),
		setup.CreatedAt.UTC().Format(time.RFC3339Nano),
		data,
	)
	if err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}
	return nil
}

// Get retrieves a setup by id
func (r *setupRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Setup, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM setups WHERE id = ?`, id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSetupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read setup: %w", err)
	}
	return unmarshalSetup(data)
}

// List retrieves all setups, most recently created first
func (r *setupRepository) List(ctx context.Context) ([]*domain.Setup, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM setups ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list setups: %w", err)
	}
	defer rows.Close()

	var setups []*domain.Setup
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan setup row: %w", err)
		}
		setup, err := unmarshalSetup(data)
		if err != nil {
			return nil, err
		}
		setups = append(setups, setup)
	}
	return setups, rows.Err()
}

// Current retrieves the most recently created setup
func (r *setupRepository) Current(ctx context.Context) (*domain.Setup, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM setups ORDER BY created_at DESC, id LIMIT 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSetupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current setup: %w", err)
	}
	return unmarshalSetup(data)
}

func unmarshalSetup(data []byte) (*domain.Setup, error) {
	var setup domain.Setup
	if err := json.Unmarshal(data, &setup); err != nil {
		return nil, fmt.Errorf("failed to unmarshal setup: %w", err)
	}
	return &setup, nil
}
