// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

// Repository defines the interface for persisting sessions, messages and
// schedules.
type Repository interface {
	// ListSessions retrieves all chat sessions, newest first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// GetSession retrieves a session by id, or nil when absent.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// CreateSession persists a new chat session.
	CreateSession(ctx context.Context, session *domain.Session) error

	// DeleteSession removes a session and its messages.
	DeleteSession(ctx context.Context, sessionID string) error

	// ListMessages retrieves a session's messages, oldest first.
	ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error)

	// AppendMessage persists one finalized message.
	AppendMessage(ctx context.Context, msg *domain.Message) error

	// CreateSchedule persists a calendar schedule entry.
	CreateSchedule(ctx context.Context, schedule *domain.Schedule) error

	// ListSchedules retrieves schedules for a date (YYYY-MM-DD), oldest first.
	ListSchedules(ctx context.Context, date string) ([]domain.Schedule, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
