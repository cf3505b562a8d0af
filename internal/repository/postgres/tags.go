package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/repository"
)

// TagRepository implements port.TagRepository using PostgreSQL.
type TagRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTagRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewTagRepository(exec pgExecutor) *TagRepository {
	return &TagRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new tag row.
func (r *TagRepository) Create(ctx context.Context, tag domain.Tag) error {
	stmt, args, err := r.builder.Insert("raichi.tags").
		Columns("id", "name").
		Values(tag.ID, tag.Name).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert tag sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag by identifier.
func (r *TagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("raichi.tags").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tag sql: %w", err)
	}

	var tag domain.Tag
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&tag.ID, &tag.Name); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan tag: %w", err)
	}

	return &tag, nil
}

// Associate links a tag to an event. Re-associating is a no-op.
func (r *TagRepository) Associate(ctx context.Context, tagID, eventID string) error {
	stmt, args, err := r.builder.Insert("raichi.event_tags").
		Columns("tag_id", "event_id").
		Values(tagID, eventID).
		Suffix("ON CONFLICT (tag_id, event_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert event tag sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert event tag: %w", err)
	}

	return nil
}

// SearchEvents returns events carrying a tag whose name contains the
// fragment, case-insensitively.
func (r *TagRepository) SearchEvents(ctx context.Context, nameFragment string) ([]domain.Event, error) {
	stmt, args, err := r.builder.
		Select("DISTINCT " + eventColumns).
		From("raichi.events e").
		Join("raichi.event_tags et ON et.event_id = e.id").
		Join("raichi.tags t ON t.id = et.tag_id").
		Where(squirrel.ILike{"t.name": "%" + nameFragment + "%"}).
		OrderBy("e.date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tag search sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query events by tag: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

var _ port.TagRepository = (*TagRepository)(nil)
