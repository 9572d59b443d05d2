package repository

import (
	"context"
	"fmt"

	"cocial-api/internal/domain"
	"cocial-api/pkg/database"

	"github.com/jackc/pgx/v5"
)

type MessageRepository struct {
	db *database.PostgresDB
}

func NewMessageRepository(db *database.PostgresDB) *MessageRepository {
	return &MessageRepository{db: db}
}

// List returns all messages, oldest first
func (r *MessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	query := `
		SELECT id, text, created_at
		FROM messages
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return messages, nil
}

// GetByID returns the message with the given id, or nil if absent
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	query := `
		SELECT id, text, created_at
		FROM messages
		WHERE id = $1
	`

	var m domain.Message
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.Text, &m.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return &m, nil
}

// Create inserts a new message; id and created_at are assigned by the store
func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	query := `
		INSERT INTO messages (text, created_at)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.db.Pool.QueryRow(ctx, query, m.Text, m.CreatedAt).Scan(&m.ID); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// Update rewrites the mutable fields of an existing message. Returns false
// when no row with the given id exists.
func (r *MessageRepository) Update(ctx context.Context, m *domain.Message) (bool, error) {
	query := `
		UPDATE messages
		SET text = $2
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, m.ID, m.Text)
	if err != nil {
		return false, fmt.Errorf("failed to update message: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes the message with the given id
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
