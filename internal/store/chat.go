package store

import (
	"context"
	"fmt"

	"hr-portal/internal/model"
)

// ChatStore owns both chat keys. A sent message and the room summary it
// changes are written together through Backend.SetMany.
type ChatStore struct {
	backend  Backend
	rooms    *Table[model.ChatRoom]
	messages *Table[model.ChatMessage]
}

func NewChatStore(b Backend) *ChatStore {
	return &ChatStore{
		backend:  b,
		rooms:    NewTable(b, model.ChatRoomsKey, func(r model.ChatRoom) string { return r.ID }),
		messages: NewTable(b, model.ChatMessagesKey, func(m model.ChatMessage) string { return m.ID }),
	}
}

func (s *ChatStore) Rooms(ctx context.Context) ([]model.ChatRoom, error) {
	return s.rooms.LoadAll(ctx)
}

func (s *ChatStore) GetRoom(ctx context.Context, id string) (*model.ChatRoom, error) {
	return s.rooms.Find(ctx, id)
}

func (s *ChatStore) SaveRoom(ctx context.Context, room model.ChatRoom) error {
	return s.rooms.Upsert(ctx, room)
}

func (s *ChatStore) UpdateRoom(ctx context.Context, id string, fn func(*model.ChatRoom) error) (*model.ChatRoom, error) {
	return s.rooms.Update(ctx, id, fn)
}

func (s *ChatStore) MessagesInRoom(ctx context.Context, roomID string) ([]model.ChatMessage, error) {
	return s.messages.Filter(ctx, func(m model.ChatMessage) bool { return m.RoomID == roomID })
}

// AppendMessage adds msg to the message list and applies touch to its room.
// Both keys are written in one SetMany call. It returns nil without writing
// when the room does not exist.
func (s *ChatStore) AppendMessage(ctx context.Context, msg model.ChatMessage, touch func(*model.ChatRoom)) (*model.ChatRoom, error) {
	// Lock order: messages, then rooms.
	s.messages.mu.Lock()
	defer s.messages.mu.Unlock()
	s.rooms.mu.Lock()
	defer s.rooms.mu.Unlock()

	rooms, err := s.rooms.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range rooms {
		if rooms[i].ID == msg.RoomID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	msgs, err := s.messages.load(ctx)
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, msg)
	touch(&rooms[idx])

	roomData, err := s.rooms.encode(rooms)
	if err != nil {
		return nil, err
	}
	msgData, err := s.messages.encode(msgs)
	if err != nil {
		return nil, err
	}
	if err := s.backend.SetMany(ctx, map[string][]byte{
		s.rooms.key:    roomData,
		s.messages.key: msgData,
	}); err != nil {
		return nil, fmt.Errorf("append chat message: %w", err)
	}
	room := rooms[idx]
	return &room, nil
}

// SeedIfAbsent writes rooms and messages together when neither key exists.
func (s *ChatStore) SeedIfAbsent(ctx context.Context, rooms []model.ChatRoom, msgs []model.ChatMessage) (bool, error) {
	s.messages.mu.Lock()
	defer s.messages.mu.Unlock()
	s.rooms.mu.Lock()
	defer s.rooms.mu.Unlock()

	_, ok, err := s.backend.Get(ctx, s.rooms.key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", s.rooms.key, err)
	}
	if ok {
		return false, nil
	}
	roomData, err := s.rooms.encode(rooms)
	if err != nil {
		return false, err
	}
	msgData, err := s.messages.encode(msgs)
	if err != nil {
		return false, err
	}
	if err := s.backend.SetMany(ctx, map[string][]byte{
		s.rooms.key:    roomData,
		s.messages.key: msgData,
	}); err != nil {
		return false, fmt.Errorf("seed chat: %w", err)
	}
	return true, nil
}
