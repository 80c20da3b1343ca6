// Package session resolves calendar dates onto chat sessions and opens
// their connections.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/chat"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

// koreanDateLayout is the human-readable date form embedded in session
// titles, e.g. "2026년 3월 1일".
const koreanDateLayout = "2006년 1월 2일"

// disconnectGrace suppresses the disconnected indicator right after a
// session is created, while the backend is still wiring the new channel.
const disconnectGrace = 3 * time.Second

// SessionAPI is the slice of the REST client the coordinator needs.
type SessionAPI interface {
	ListSessions(ctx context.Context) ([]domain.Session, error)
	CreateSession(ctx context.Context, title string) (*domain.Session, error)
}

// Opener opens the chat connection for a resolved session. The chat
// registry satisfies this.
type Opener interface {
	Open(ctx context.Context, sessionID string, params chat.Params, h chat.Handler) *chat.Conn
}

// Coordinator maps dates onto sessions, reusing an existing session for a
// date when one exists and creating one otherwise. Resolved ids are cached
// so repeated calls for the same date never create duplicates.
type Coordinator struct {
	api    SessionAPI
	opener Opener

	mu      sync.Mutex
	byDate  map[string]string // date (YYYY-MM-DD) -> session id
	created map[string]time.Time
}

// NewCoordinator creates a coordinator over the REST client and registry.
func NewCoordinator(api SessionAPI, opener Opener) *Coordinator {
	return &Coordinator{
		api:     api,
		opener:  opener,
		byDate:  make(map[string]string),
		created: make(map[string]time.Time),
	}
}

// EnsureSessionForDate resolves the session for a date, creating one when
// no existing session's title mentions the date.
func (c *Coordinator) EnsureSessionForDate(ctx context.Context, date time.Time) (string, error) {
	key := date.Format("2006-01-02")

	c.mu.Lock()
	if id, ok := c.byDate[key]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	human := formatKoreanDate(date)

	sessions, err := c.api.ListSessions(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve session for %s: %w", key, err)
	}
	for _, s := range sessions {
		if containsDate(s.Title, human) {
			c.remember(key, s.ID, false)
			slog.Debug("Reusing session for date", "date", key, "session_id", s.ID)
			return s.ID, nil
		}
	}

	created, err := c.api.CreateSession(ctx, "새 채팅 "+human)
	if err != nil {
		return "", fmt.Errorf("create session for %s: %w", key, err)
	}
	c.remember(key, created.ID, true)
	slog.Info("Created session for date", "date", key, "session_id", created.ID)
	return created.ID, nil
}

// OpenForDate resolves the session for a date and opens its connection.
func (c *Coordinator) OpenForDate(ctx context.Context, date time.Time, params chat.Params, h chat.Handler) (*chat.Conn, error) {
	id, err := c.EnsureSessionForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if params.Date == "" {
		params.Date = date.Format("2006-01-02")
	}
	return c.opener.Open(ctx, id, params, h), nil
}

// JustCreated reports whether the session was created recently enough that
// a disconnect should not alarm the user yet.
func (c *Coordinator) JustCreated(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	at, ok := c.created[sessionID]
	return ok && time.Since(at) < disconnectGrace
}

func (c *Coordinator) remember(dateKey, sessionID string, fresh bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byDate[dateKey] = sessionID
	if fresh {
		c.created[sessionID] = time.Now()
	}
}

// formatKoreanDate renders a date without zero padding, matching the
// titles the backend generates.
func formatKoreanDate(date time.Time) string {
	return date.Format(koreanDateLayout)
}

func containsDate(title, human string) bool {
	return human != "" && strings.Contains(title, human)
}
