package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
)

// MessageRepository implements port.MessageRepository using PostgreSQL.
type MessageRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewMessageRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewMessageRepository(exec pgExecutor) *MessageRepository {
	return &MessageRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new message row.
func (r *MessageRepository) Create(ctx context.Context, message domain.Message) error {
	stmt, args, err := r.builder.Insert("raichi.messages").
		Columns("id", "sender_id", "recipient_id", "subject", "content", "sent_at").
		Values(message.ID, message.SenderID, message.RecipientID, message.Subject, message.Content, message.SentAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert message sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// ListInbox returns messages addressed to the recipient, newest first.
func (r *MessageRepository) ListInbox(ctx context.Context, recipientID string) ([]domain.Message, error) {
	stmt, args, err := r.builder.
		Select("id", "sender_id", "recipient_id", "subject", "content", "sent_at").
		From("raichi.messages").
		Where(squirrel.Eq{"recipient_id": recipientID}).
		OrderBy("sent_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select messages sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.RecipientID,
			&message.Subject,
			&message.Content,
			&message.SentAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

var _ port.MessageRepository = (*MessageRepository)(nil)
