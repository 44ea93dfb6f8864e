package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

func TestFormatLastMessageTime(t *testing.T) {
	at := time.Date(2024, 3, 4, 9, 5, 0, 0, seoul)
	if got := FormatLastMessageTime(at); got != "2024. 03. 04. 09:05" {
		t.Fatalf("got %q", got)
	}
}

func TestCreateRoomParticipants(t *testing.T) {
	svc := NewChatService(store.NewChatStore(store.NewMemoryBackend()), time.Now)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, "team", []string{"a", "b", "a", " ", "c"}, model.ChatRoomGroup)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(room.Participants) != 3 {
		t.Fatalf("participants = %v", room.Participants)
	}
	if _, err := svc.CreateRoom(ctx, "solo", []string{"a", "a"}, model.ChatRoomGroup); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("one participant: err = %v", err)
	}
	if _, err := svc.CreateRoom(ctx, "dm", []string{"a", "b", "c"}, model.ChatRoomDirect); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("three-way direct: err = %v", err)
	}
}

func TestChatSummaryAndUnread(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 3, 4, 9, 0)
	svc := NewChatService(store.NewChatStore(store.NewMemoryBackend()), c.now)

	room, err := svc.CreateRoom(ctx, "team", []string{"a", "b", "c"}, model.ChatRoomGroup)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	svc.SendMessage(ctx, room.ID, "a", "A", "first")
	c.set(9, 30, 0)
	if _, err := svc.SendMessage(ctx, room.ID, "b", "B", "second"); err != nil {
		t.Fatalf("send: %v", err)
	}

	got, _ := svc.GetRoom(ctx, room.ID)
	if got.LastMessage != "second" || got.LastMessageTime != "2024. 03. 04. 09:30" {
		t.Fatalf("summary = %q at %q", got.LastMessage, got.LastMessageTime)
	}
	want := map[string]int{"a": 1, "b": 1, "c": 2}
	for p, n := range want {
		if got.Unread[p] != n {
			t.Errorf("unread[%s] = %d, want %d", p, got.Unread[p], n)
		}
	}
	if got.UnreadCount != 4 {
		t.Fatalf("unreadCount = %d, want 4", got.UnreadCount)
	}

	rooms, _ := svc.RoomsFor(ctx, "c")
	if len(rooms) != 1 || rooms[0].UnreadCount != 2 || rooms[0].Unread != nil {
		t.Fatalf("rooms for c = %#v", rooms)
	}
	if rooms, _ := svc.RoomsFor(ctx, "z"); len(rooms) != 0 {
		t.Fatalf("outsider sees %d rooms", len(rooms))
	}

	got, err = svc.MarkRoomAsRead(ctx, room.ID, "c")
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if got.Unread["c"] != 0 || got.UnreadCount != 2 {
		t.Fatalf("after c read = %#v", got)
	}
	got, _ = svc.MarkRoomAsRead(ctx, room.ID, "")
	if got.UnreadCount != 0 {
		t.Fatalf("after clearing all = %d", got.UnreadCount)
	}

	msgs, _ := svc.ChatMessages(ctx, room.ID)
	if len(msgs) != 2 || msgs[0].Content != "first" {
		t.Fatalf("messages = %#v", msgs)
	}
}

func TestSendToUnknownRoom(t *testing.T) {
	svc := NewChatService(store.NewChatStore(store.NewMemoryBackend()), time.Now)
	if _, err := svc.SendMessage(context.Background(), "nope", "a", "A", "hi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.MarkRoomAsRead(context.Background(), "nope", "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("mark read: err = %v", err)
	}
}
