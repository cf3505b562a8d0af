package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/repository"
)

// VenueRepository implements port.VenueRepository using PostgreSQL.
type VenueRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewVenueRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewVenueRepository(exec pgExecutor) *VenueRepository {
	return &VenueRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new venue row.
func (r *VenueRepository) Create(ctx context.Context, venue domain.Venue) error {
	stmt, args, err := r.builder.Insert("raichi.venues").
		Columns("id", "name", "address", "latitude", "longitude", "created_at").
		Values(venue.ID, venue.Name, venue.Address, venue.Latitude, venue.Longitude, venue.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert venue sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}

	return nil
}

// GetByID retrieves a venue by identifier.
func (r *VenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "address", "latitude", "longitude", "created_at").
		From("raichi.venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select venue sql: %w", err)
	}

	var venue domain.Venue
	err = r.exec.QueryRow(ctx, stmt, args...).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.Latitude,
		&venue.Longitude,
		&venue.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan venue: %w", err)
	}

	return &venue, nil
}

// GetByIDs retrieves venues matching any of the given identifiers. Missing
// identifiers are skipped silently.
func (r *VenueRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Venue, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	stmt, args, err := r.builder.
		Select("id", "name", "address", "latitude", "longitude", "created_at").
		From("raichi.venues").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select venues sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	venues := make([]domain.Venue, 0, len(ids))
	for rows.Next() {
		var venue domain.Venue
		if err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Address,
			&venue.Latitude,
			&venue.Longitude,
			&venue.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}

	return venues, nil
}

var _ port.VenueRepository = (*VenueRepository)(nil)
