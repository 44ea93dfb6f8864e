package model

import "time"

const MessagesKey = "hr_messages"

// Message is a directed note between two users. Inbox and sent views are
// both derived from the same list by comparing against the viewer.
type Message struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"senderId"`
	SenderName   string    `json:"senderName"`
	ReceiverID   string    `json:"receiverId"`
	ReceiverName string    `json:"receiverName"`
	Subject      string    `json:"subject"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	Read         bool      `json:"read"`
}
