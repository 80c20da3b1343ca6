// Package domain defines the core data types shared across the client.
package domain

import "time"

// Session is a backend-owned conversation. The client references it by id
// only; the id is immutable once assigned.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one rendered entry in a conversation pane. A bot message starts
// with Streaming set and is replaced in place until the final delta arrives.
type Message struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Content   string    `json:"content"`
	FromBot   bool      `json:"is_bot"`
	Streaming bool      `json:"-"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
