package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

type staticDirectory []model.User

func (d staticDirectory) ListUsers(context.Context) ([]model.User, error) { return d, nil }

func TestMessagesUnreadAndDelete(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 3, 4, 10, 0)
	svc := NewMessageService(store.NewMessageStore(store.NewMemoryBackend()), staticDirectory{}, c.now)

	send := func(from, to, content string) *model.Message {
		t.Helper()
		c.t = c.t.Add(time.Minute)
		m, err := svc.SendMessage(ctx, NewMessage{SenderID: from, ReceiverID: to, Content: content})
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		return m
	}
	first := send("c1", "w1", "hello")
	send("c1", "w1", "again")
	reply := send("w1", "c1", "hi")

	if n, _ := svc.UnreadCount(ctx, "w1"); n != 2 {
		t.Fatalf("w1 unread = %d, want 2", n)
	}
	if _, err := svc.MarkAsRead(ctx, first.ID); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := svc.MarkAsRead(ctx, first.ID); err != nil {
		t.Fatalf("read twice: %v", err)
	}
	if n, _ := svc.UnreadCount(ctx, "w1"); n != 1 {
		t.Fatalf("w1 unread = %d, want 1", n)
	}

	// Inbox and sent items come back together, newest first.
	msgs, _ := svc.UserMessages(ctx, "w1")
	if len(msgs) != 3 || msgs[0].ID != reply.ID {
		t.Fatalf("messages = %#v", msgs)
	}

	if err := svc.DeleteMessage(ctx, reply.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteMessage(ctx, reply.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: err = %v", err)
	}
	if _, err := svc.SendMessage(ctx, NewMessage{SenderID: "a", ReceiverID: "b", Content: "  "}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("blank content: err = %v", err)
	}
}

func TestSearchUsers(t *testing.T) {
	dir := staticDirectory{
		{ID: "test01", Name: "김근로", Role: model.RoleWorker},
		{ID: "worker001", Name: "Anna Schmidt", Role: model.RoleWorker},
		{ID: "company1", Name: "Park", Company: "STRASSE GmbH", Role: model.RoleCompany},
	}
	svc := NewMessageService(store.NewMessageStore(store.NewMemoryBackend()), dir, time.Now)
	ctx := context.Background()

	tests := []struct {
		query string
		role  RoleFilter
		want  []string
	}{
		{"", RoleAll, []string{"test01", "worker001", "company1"}},
		{"", RoleWorker, []string{"test01", "worker001"}},
		{"근로", "", []string{"test01"}},
		{"ANNA", RoleAll, []string{"worker001"}},
		{"gmbh", RoleCompany, []string{"company1"}},
		{"anna", RoleCompany, nil},
	}
	for _, tt := range tests {
		users, err := svc.SearchUsers(ctx, tt.query, tt.role)
		if err != nil {
			t.Fatalf("%q/%s: %v", tt.query, tt.role, err)
		}
		if len(users) != len(tt.want) {
			t.Errorf("%q/%s: got %d users, want %v", tt.query, tt.role, len(users), tt.want)
			continue
		}
		for i, u := range users {
			if u.ID != tt.want[i] {
				t.Errorf("%q/%s: [%d] = %s, want %s", tt.query, tt.role, i, u.ID, tt.want[i])
			}
		}
	}
	if _, err := svc.SearchUsers(ctx, "", "admin"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad role: err = %v", err)
	}
}
