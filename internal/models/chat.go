package models

import (
	"time"
)

const (
	ThreadStatusActive = "active"
	ThreadStatusClosed = "closed"
)

type ChatThread struct {
	ID            int64      `db:"id"`
	ThreadID      string     `db:"thread_id"`
	UserID        int64      `db:"user_id"`
	SupportUserID *int64     `db:"support_user_id"`
	Topic         string     `db:"topic"`
	Status        string     `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	ClosedAt      *time.Time `db:"closed_at"`
}

// ChatMessage references its thread by the thread identifier string,
// not by chat_threads.id.
type ChatMessage struct {
	ID         int64     `db:"id"`
	MessageID  string    `db:"message_id"`
	ThreadID   string    `db:"thread_id"`
	SenderID   string    `db:"sender_id"`
	SenderName string    `db:"sender_name"`
	Content    string    `db:"content"`
	IsBot      bool      `db:"is_bot"`
	CreatedAt  time.Time `db:"created_at"`
}
