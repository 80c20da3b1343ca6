package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/chat"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

type fakeAPI struct {
	sessions []domain.Session
	listErr  error
	created  []string
}

func (f *fakeAPI) ListSessions(ctx context.Context) ([]domain.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sessions, nil
}

func (f *fakeAPI) CreateSession(ctx context.Context, title string) (*domain.Session, error) {
	f.created = append(f.created, title)
	s := domain.Session{ID: "created-" + title, Title: title, CreatedAt: time.Now()}
	f.sessions = append(f.sessions, s)
	return &s, nil
}

type fakeOpener struct {
	opened []string
}

func (f *fakeOpener) Open(ctx context.Context, sessionID string, params chat.Params, h chat.Handler) *chat.Conn {
	f.opened = append(f.opened, sessionID)
	return nil
}

func TestEnsureSessionReusesByTitle(t *testing.T) {
	api := &fakeAPI{sessions: []domain.Session{
		{ID: "s1", Title: "새 채팅 2026년 2월 28일"},
		{ID: "s2", Title: "새 채팅 2026년 3월 1일"},
	}}
	c := NewCoordinator(api, &fakeOpener{})

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	id, err := c.EnsureSessionForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("EnsureSessionForDate error: %v", err)
	}
	if id != "s2" {
		t.Errorf("session id = %q, want s2", id)
	}
	if len(api.created) != 0 {
		t.Errorf("created sessions = %v, want none", api.created)
	}
}

func TestEnsureSessionCreatesWhenMissing(t *testing.T) {
	api := &fakeAPI{}
	c := NewCoordinator(api, &fakeOpener{})

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	id, err := c.EnsureSessionForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("EnsureSessionForDate error: %v", err)
	}
	if len(api.created) != 1 || api.created[0] != "새 채팅 2026년 3월 1일" {
		t.Fatalf("created titles = %v", api.created)
	}
	if id == "" {
		t.Error("empty session id")
	}
	if !c.JustCreated(id) {
		t.Error("fresh session not within disconnect grace")
	}
}

func TestEnsureSessionCachesPerDate(t *testing.T) {
	api := &fakeAPI{}
	c := NewCoordinator(api, &fakeOpener{})
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first, err := c.EnsureSessionForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	second, err := c.EnsureSessionForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if first != second {
		t.Errorf("ids differ across calls: %q vs %q", first, second)
	}
	if len(api.created) != 1 {
		t.Errorf("created %d sessions for one date", len(api.created))
	}

	// The cache also skips the listing round-trip entirely.
	api.listErr = errors.New("backend down")
	if _, err := c.EnsureSessionForDate(context.Background(), date); err != nil {
		t.Errorf("cached resolution hit the backend: %v", err)
	}
}

func TestEnsureSessionPropagatesListError(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("backend down")}
	c := NewCoordinator(api, &fakeOpener{})
	if _, err := c.EnsureSessionForDate(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when listing fails")
	}
}

func TestOpenForDateOpensResolvedSession(t *testing.T) {
	api := &fakeAPI{sessions: []domain.Session{
		{ID: "s7", Title: "새 채팅 2026년 3월 1일"},
	}}
	opener := &fakeOpener{}
	c := NewCoordinator(api, opener)

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := c.OpenForDate(context.Background(), date, chat.Params{}, nil); err != nil {
		t.Fatalf("OpenForDate error: %v", err)
	}
	if len(opener.opened) != 1 || opener.opened[0] != "s7" {
		t.Errorf("opened = %v, want [s7]", opener.opened)
	}
}

func TestJustCreatedUnknownSession(t *testing.T) {
	c := NewCoordinator(&fakeAPI{}, &fakeOpener{})
	if c.JustCreated("nope") {
		t.Error("unknown session reported as just created")
	}
}
