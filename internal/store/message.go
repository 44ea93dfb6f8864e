package store

import (
	"context"

	"hr-portal/internal/model"
)

type MessageStore struct {
	messages *Table[model.Message]
}

func NewMessageStore(b Backend) *MessageStore {
	return &MessageStore{
		messages: NewTable(b, model.MessagesKey, func(m model.Message) string { return m.ID }),
	}
}

func (s *MessageStore) Create(ctx context.Context, msg model.Message) error {
	return s.messages.Upsert(ctx, msg)
}

func (s *MessageStore) GetByID(ctx context.Context, id string) (*model.Message, error) {
	return s.messages.Find(ctx, id)
}

func (s *MessageStore) Update(ctx context.Context, id string, fn func(*model.Message) error) (*model.Message, error) {
	return s.messages.Update(ctx, id, fn)
}

func (s *MessageStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.messages.Remove(ctx, id)
}

// GetByParticipant returns messages the user sent or received.
func (s *MessageStore) GetByParticipant(ctx context.Context, userID string) ([]model.Message, error) {
	return s.messages.Filter(ctx, func(m model.Message) bool {
		return m.SenderID == userID || m.ReceiverID == userID
	})
}

func (s *MessageStore) GetUnread(ctx context.Context, receiverID string) ([]model.Message, error) {
	return s.messages.Filter(ctx, func(m model.Message) bool {
		return m.ReceiverID == receiverID && !m.Read
	})
}

func (s *MessageStore) SeedIfAbsent(ctx context.Context, rows func() []model.Message) (bool, error) {
	return s.messages.SeedIfAbsent(ctx, rows)
}
