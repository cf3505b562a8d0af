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

const eventColumns = "e.id, e.title, e.description, e.date, e.venue_id, e.created_at"

// EventRepository implements port.EventRepository using PostgreSQL.
type EventRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewEventRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewEventRepository(exec pgExecutor) *EventRepository {
	return &EventRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new event row.
func (r *EventRepository) Create(ctx context.Context, event domain.Event) error {
	stmt, args, err := r.builder.Insert("raichi.events").
		Columns("id", "title", "description", "date", "venue_id", "created_at").
		Values(event.ID, event.Title, event.Description, event.Date, event.VenueID, event.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert event sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by identifier.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	stmt, args, err := r.builder.
		Select("id", "title", "description", "date", "venue_id", "created_at").
		From("raichi.events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select event sql: %w", err)
	}

	var event domain.Event
	err = r.exec.QueryRow(ctx, stmt, args...).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.VenueID,
		&event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	return &event, nil
}

// List returns every event, earliest first.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := r.builder.
		Select("id", "title", "description", "date", "venue_id", "created_at").
		From("raichi.events").
		OrderBy("date ASC")

	return r.queryEvents(ctx, query)
}

// ListByVenueIDs returns events hosted at any of the given venues.
func (r *EventRepository) ListByVenueIDs(ctx context.Context, venueIDs []string) ([]domain.Event, error) {
	if len(venueIDs) == 0 {
		return nil, nil
	}

	query := r.builder.
		Select("id", "title", "description", "date", "venue_id", "created_at").
		From("raichi.events").
		Where(squirrel.Eq{"venue_id": venueIDs}).
		OrderBy("date ASC")

	return r.queryEvents(ctx, query)
}

// Attend records a user's attendance. Re-attending is a no-op.
func (r *EventRepository) Attend(ctx context.Context, eventID, userID string) error {
	stmt, args, err := r.builder.Insert("raichi.user_events").
		Columns("event_id", "user_id").
		Values(eventID, userID).
		Suffix("ON CONFLICT (event_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert attendance sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}

	return nil
}

// Unattend removes a user's attendance record.
func (r *EventRepository) Unattend(ctx context.Context, eventID, userID string) error {
	stmt, args, err := r.builder.Delete("raichi.user_events").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete attendance sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}

	return nil
}

// ListAttending returns the events a user attends, earliest first.
func (r *EventRepository) ListAttending(ctx context.Context, userID string) ([]domain.Event, error) {
	query := r.builder.
		Select(eventColumns).
		From("raichi.events e").
		Join("raichi.user_events ue ON ue.event_id = e.id").
		Where(squirrel.Eq{"ue.user_id": userID}).
		OrderBy("e.date ASC")

	return r.queryEvents(ctx, query)
}

// SharedEventExists reports whether both users attend at least one common event.
func (r *EventRepository) SharedEventExists(ctx context.Context, userA, userB string) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		From("raichi.user_events a").
		Join("raichi.user_events b ON b.event_id = a.event_id").
		Where(squirrel.Eq{"a.user_id": userA, "b.user_id": userB}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build shared event sql: %w", err)
	}

	var one int
	err = r.exec.QueryRow(ctx, stmt, args...).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("query shared event: %w", err)
	}

	return true, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query squirrel.SelectBuilder) ([]domain.Event, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select events sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	events := make([]domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.VenueID,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

var _ port.EventRepository = (*EventRepository)(nil)
