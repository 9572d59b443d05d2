package service

import (
	"context"
	"time"

	"cocial-api/internal/domain"
	"cocial-api/pkg/errors"
	"cocial-api/pkg/logger"
)

// MessageService holds the resource rules for messages: the server assigns
// the creation timestamp, and updates merge every field except the
// identifier and the creation timestamp.
type MessageService struct {
	store MessageStore
	log   *logger.Logger
}

func NewMessageService(store MessageStore, log *logger.Logger) *MessageService {
	return &MessageService{store: store, log: log}
}

func (s *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	messages, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list messages", err)
	}
	return messages, nil
}

func (s *MessageService) Get(ctx context.Context, id int64) (*domain.Message, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get message", err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError("Message not found")
	}
	return m, nil
}

func (s *MessageService) Create(ctx context.Context, req *domain.MessageRequest) (*domain.Message, error) {
	m := &domain.Message{
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, m); err != nil {
		return nil, errors.NewInternalError("Failed to create message", err)
	}

	s.log.WithField("message_id", m.ID).Debug("Message created")
	return m, nil
}

func (s *MessageService) Update(ctx context.Context, id int64, req *domain.MessageRequest) (*domain.Message, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get message", err)
	}
	if existing == nil {
		return nil, errors.NewNotFoundError("Message not found")
	}

	existing.Text = req.Text

	ok, err := s.store.Update(ctx, existing)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update message", err)
	}
	if !ok {
		// Deleted between the read and the write
		return nil, errors.NewNotFoundError("Message not found")
	}

	return existing, nil
}

func (s *MessageService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return errors.NewInternalError("Failed to delete message", err)
	}
	return nil
}
