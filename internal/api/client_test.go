package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

func TestListSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/chat/api/sessions/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sessions": []domain.Session{
				{ID: "s2", Title: "새 채팅 2026년 3월 1일"},
				{ID: "s1", Title: "새 채팅 오후 2:30"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	sessions, err := c.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions error: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "s2" {
		t.Errorf("sessions = %+v", sessions)
	}
}

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/api/sessions/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Session{ID: "s9", Title: body["title"]})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	s, err := c.CreateSession(context.Background(), "새 채팅 2026년 3월 1일")
	if err != nil {
		t.Fatalf("CreateSession error: %v", err)
	}
	if s.ID != "s9" || s.Title != "새 채팅 2026년 3월 1일" {
		t.Errorf("session = %+v", s)
	}
}

func TestDeleteSession(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodDelete || r.URL.Path != "/chat/api/sessions/s1/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	if err := c.DeleteSession(context.Background(), "s1"); err != nil {
		t.Fatalf("DeleteSession error: %v", err)
	}
	if !called {
		t.Error("backend never called")
	}
}

func TestListMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/api/messages/s1/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"messages": []domain.Message{
				{Content: "서울 맛집 추천해줘", FromBot: false},
				{Content: "남산 근처를 추천드려요.", FromBot: true},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	msgs, err := c.ListMessages(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ListMessages error: %v", err)
	}
	if len(msgs) != 2 || !msgs[1].FromBot {
		t.Errorf("messages = %+v", msgs)
	}
}

func TestCreateSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendar/api/schedules/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var s domain.Schedule
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			t.Errorf("decode body: %v", err)
		}
		s.ID = "sch1"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(s)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	created, err := c.CreateSchedule(context.Background(), domain.Schedule{
		Date: "2026-03-01", Location: "서울", Companion: "맛집", Memo: "남산서울타워 - 야경",
	})
	if err != nil {
		t.Fatalf("CreateSchedule error: %v", err)
	}
	if created.ID != "sch1" || created.Date != "2026-03-01" {
		t.Errorf("schedule = %+v", created)
	}
}

func TestBackendErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	if err := c.DeleteSession(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for 404")
	}
}
