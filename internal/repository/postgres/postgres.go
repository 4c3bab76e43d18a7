package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pavans5097/EVS-pro/internal/domain"
)

// PostgresRepository implements domain.CropRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL crop repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the crops table if it does not exist. The serial
// seq column preserves insertion order without re-sorting the collection.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS crops (
			seq                   BIGSERIAL PRIMARY KEY,
			id                    TEXT NOT NULL UNIQUE,
			name                  TEXT NOT NULL,
			variety               TEXT NOT NULL DEFAULT '',
			area                  DOUBLE PRECISION NOT NULL,
			location              TEXT NOT NULL,
			sowing_date           TEXT NOT NULL,
			expected_harvest_date TEXT NOT NULL,
			status                TEXT NOT NULL,
			notes                 TEXT NOT NULL DEFAULT ''
		)
	`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres: failed to ensure crops schema: %w", err)
	}
	return nil
}

// List returns all crops in insertion order
func (r *PostgresRepository) List(ctx context.Context) ([]domain.Crop, error) {
	query := `
		SELECT id, name, variety, area, location, sowing_date,
		       expected_harvest_date, status, notes
		FROM crops
		ORDER BY seq
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query crops: %w", err)
	}
	defer rows.Close()

	var results []domain.Crop
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}

	return results, nil
}

// Append persists one crop at the end of the collection
func (r *PostgresRepository) Append(ctx context.Context, crop domain.Crop) error {
	query := `
		INSERT INTO crops (
			id, name, variety, area, location, sowing_date,
			expected_harvest_date, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		crop.ID, crop.Name, crop.Variety, crop.Area, crop.Location,
		crop.SowingDate, crop.ExpectedHarvestDate, string(crop.Status), crop.Notes,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save crop: %w", err)
	}

	return nil
}

// FindByID returns the crop with the given id or domain.ErrCropNotFound
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (domain.Crop, error) {
	query := `
		SELECT id, name, variety, area, location, sowing_date,
		       expected_harvest_date, status, notes
		FROM crops
		WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	c, err := scanCrop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Crop{}, domain.ErrCropNotFound
		}
		return domain.Crop{}, err
	}

	return c, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func scanCrop(row pgx.Row) (domain.Crop, error) {
	var c domain.Crop
	var status string
	err := row.Scan(
		&c.ID, &c.Name, &c.Variety, &c.Area, &c.Location,
		&c.SowingDate, &c.ExpectedHarvestDate, &status, &c.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Crop{}, pgx.ErrNoRows
		}
		return domain.Crop{}, fmt.Errorf("postgres: failed to scan crop row: %w", err)
	}
	c.Status = domain.CropStatus(status)
	return c, nil
}
