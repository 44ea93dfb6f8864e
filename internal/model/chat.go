package model

import "time"

type ChatRoomType string

const (
	ChatRoomDirect ChatRoomType = "direct"
	ChatRoomGroup  ChatRoomType = "group"
)

type ChatMessageType string

const (
	ChatMessageText   ChatMessageType = "text"
	ChatMessageSystem ChatMessageType = "system"
)

const (
	ChatRoomsKey    = "hr_chat_rooms"
	ChatMessagesKey = "hr_chat_messages"
)

// ChatRoom carries a denormalized summary of its newest message. The summary
// is only kept in sync when messages go through the chat service.
type ChatRoom struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Participants    []string       `json:"participants"`
	LastMessage     string         `json:"lastMessage,omitempty"`
	LastMessageAt   *time.Time     `json:"lastMessageAt,omitempty"`
	LastMessageTime string         `json:"lastMessageTime,omitempty"`
	UnreadCount     int            `json:"unreadCount"`
	Unread          map[string]int `json:"unread,omitempty"` // per participant
	Type            ChatRoomType   `json:"type"`
}

// HasParticipant reports whether userID belongs to the room.
func (r ChatRoom) HasParticipant(userID string) bool {
	for _, p := range r.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type ChatMessage struct {
	ID         string          `json:"id"`
	RoomID     string          `json:"roomId"`
	SenderID   string          `json:"senderId"`
	SenderName string          `json:"senderName"`
	Content    string          `json:"content"`
	Timestamp  time.Time       `json:"timestamp"`
	Type       ChatMessageType `json:"type"`
}

// ViewFor returns a copy of the room as userID sees it: UnreadCount is that
// user's own counter and the per-participant map is dropped.
func (r ChatRoom) ViewFor(userID string) ChatRoom {
	r.UnreadCount = r.Unread[userID]
	r.Unread = nil
	return r
}
