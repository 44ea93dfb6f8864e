package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

// Directory lists the users messages can be addressed to.
type Directory interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

type MessageService struct {
	store *store.MessageStore
	dir   Directory
	now   Clock
}

func NewMessageService(st *store.MessageStore, dir Directory, now Clock) *MessageService {
	return &MessageService{store: st, dir: dir, now: now}
}

type NewMessage struct {
	SenderID     string
	SenderName   string
	ReceiverID   string
	ReceiverName string
	Subject      string
	Content      string
}

func (s *MessageService) SendMessage(ctx context.Context, in NewMessage) (*model.Message, error) {
	if in.SenderID == "" || in.ReceiverID == "" {
		return nil, invalidf("sender and receiver are required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, invalidf("content is required")
	}
	now := s.now()
	msg := model.Message{
		ID:           newID("msg", now),
		SenderID:     in.SenderID,
		SenderName:   in.SenderName,
		ReceiverID:   in.ReceiverID,
		ReceiverName: in.ReceiverName,
		Subject:      in.Subject,
		Content:      in.Content,
		Timestamp:    now,
		Read:         false,
	}
	if err := s.store.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &msg, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id string) (*model.Message, error) {
	msg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	if msg == nil {
		return nil, notFound("message", id)
	}
	return msg, nil
}

// MarkAsRead is idempotent.
func (s *MessageService) MarkAsRead(ctx context.Context, id string) (*model.Message, error) {
	msg, err := s.store.Update(ctx, id, func(m *model.Message) error {
		m.Read = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mark message read: %w", err)
	}
	if msg == nil {
		return nil, notFound("message", id)
	}
	return msg, nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if !removed {
		return notFound("message", id)
	}
	return nil
}

// UserMessages returns sent and received messages in one list, newest first.
func (s *MessageService) UserMessages(ctx context.Context, userID string) ([]model.Message, error) {
	msgs, err := s.store.GetByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user messages: %w", err)
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.After(msgs[j].Timestamp) })
	return msgs, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int, error) {
	msgs, err := s.store.GetUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get unread messages: %w", err)
	}
	return len(msgs), nil
}

// RoleFilter narrows SearchUsers. RoleAll (or empty) matches both roles.
type RoleFilter string

const (
	RoleAll     RoleFilter = "all"
	RoleCompany RoleFilter = RoleFilter(model.RoleCompany)
	RoleWorker  RoleFilter = RoleFilter(model.RoleWorker)
)

// SearchUsers matches query case-insensitively as a substring of the name,
// id or company, and restricts the result to role.
func (s *MessageService) SearchUsers(ctx context.Context, query string, role RoleFilter) ([]model.User, error) {
	switch role {
	case "", RoleAll, RoleCompany, RoleWorker:
	default:
		return nil, invalidf("role filter %q", role)
	}
	users, err := s.dir.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	out := make([]model.User, 0)
	for _, u := range users {
		if role != "" && role != RoleAll && string(u.Role) != string(role) {
			continue
		}
		if q == "" ||
			strings.Contains(fold.String(u.Name), q) ||
			strings.Contains(fold.String(u.ID), q) ||
			strings.Contains(fold.String(u.Company), q) {
			out = append(out, u)
		}
	}
	return out, nil
}
