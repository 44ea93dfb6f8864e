package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

const lastMessageTimeLayout = "2006. 01. 02. 15:04"

// FormatLastMessageTime renders the room list timestamp.
func FormatLastMessageTime(t time.Time) string {
	return t.Format(lastMessageTimeLayout)
}

type ChatService struct {
	store *store.ChatStore
	now   Clock
}

func NewChatService(st *store.ChatStore, now Clock) *ChatService {
	return &ChatService{store: st, now: now}
}

func (s *ChatService) CreateRoom(ctx context.Context, name string, participants []string, roomType model.ChatRoomType) (*model.ChatRoom, error) {
	if roomType != model.ChatRoomDirect && roomType != model.ChatRoomGroup {
		return nil, invalidf("room type %q", roomType)
	}
	seen := make(map[string]bool, len(participants))
	members := make([]string, 0, len(participants))
	for _, p := range participants {
		if p = strings.TrimSpace(p); p != "" && !seen[p] {
			seen[p] = true
			members = append(members, p)
		}
	}
	if len(members) < 2 {
		return nil, invalidf("a room needs at least two participants")
	}
	if roomType == model.ChatRoomDirect && len(members) != 2 {
		return nil, invalidf("a direct room has exactly two participants")
	}
	room := model.ChatRoom{
		ID:           newID("room", s.now()),
		Name:         name,
		Participants: members,
		Unread:       map[string]int{},
		Type:         roomType,
	}
	if err := s.store.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return &room, nil
}

// SendMessage appends a text message and refreshes the room summary in the
// same write. Every participant except the sender gains one unread message.
func (s *ChatService) SendMessage(ctx context.Context, roomID, senderID, senderName, content string) (*model.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalidf("content is required")
	}
	now := s.now()
	msg := model.ChatMessage{
		ID:         newID("msg", now),
		RoomID:     roomID,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		Timestamp:  now,
		Type:       model.ChatMessageText,
	}
	room, err := s.store.AppendMessage(ctx, msg, func(r *model.ChatRoom) {
		r.LastMessage = msg.Content
		at := msg.Timestamp
		r.LastMessageAt = &at
		r.LastMessageTime = FormatLastMessageTime(at)
		if r.Unread == nil {
			r.Unread = make(map[string]int, len(r.Participants))
		}
		for _, p := range r.Participants {
			if p != senderID {
				r.Unread[p]++
			}
		}
		r.UnreadCount = sumUnread(r.Unread)
	})
	if err != nil {
		return nil, fmt.Errorf("send chat message: %w", err)
	}
	if room == nil {
		return nil, notFound("chat room", roomID)
	}
	return &msg, nil
}

// MarkRoomAsRead clears readerID's unread counter. An empty readerID clears
// every counter in the room.
func (s *ChatService) MarkRoomAsRead(ctx context.Context, roomID, readerID string) (*model.ChatRoom, error) {
	room, err := s.store.UpdateRoom(ctx, roomID, func(r *model.ChatRoom) error {
		if readerID == "" {
			r.Unread = map[string]int{}
		} else if r.Unread != nil {
			delete(r.Unread, readerID)
		}
		r.UnreadCount = sumUnread(r.Unread)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mark room read: %w", err)
	}
	if room == nil {
		return nil, notFound("chat room", roomID)
	}
	return room, nil
}

func (s *ChatService) GetRoom(ctx context.Context, roomID string) (*model.ChatRoom, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get chat room: %w", err)
	}
	if room == nil {
		return nil, notFound("chat room", roomID)
	}
	return room, nil
}

func (s *ChatService) ChatRooms(ctx context.Context) ([]model.ChatRoom, error) {
	rooms, err := s.store.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chat rooms: %w", err)
	}
	return rooms, nil
}

// RoomsFor returns the user's rooms with UnreadCount narrowed to that user.
func (s *ChatService) RoomsFor(ctx context.Context, userID string) ([]model.ChatRoom, error) {
	rooms, err := s.ChatRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.ChatRoom, 0, len(rooms))
	for _, r := range rooms {
		if !r.HasParticipant(userID) {
			continue
		}
		out = append(out, r.ViewFor(userID))
	}
	return out, nil
}

// ChatMessages returns the room's messages oldest first.
func (s *ChatService) ChatMessages(ctx context.Context, roomID string) ([]model.ChatMessage, error) {
	msgs, err := s.store.MessagesInRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get chat messages: %w", err)
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })
	return msgs, nil
}

func sumUnread(m map[string]int) int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}
