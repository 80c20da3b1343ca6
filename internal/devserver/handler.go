// Package devserver implements a small local stand-in for the chat
// backend: the session/message/schedule REST surface plus the chat
// websocket endpoint.
package devserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/store"
)

// Handler serves the REST surface the client consumes.
type Handler struct {
	repo store.Repository
}

// NewHandler creates a new Handler over the repository.
func NewHandler(repo store.Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts the REST endpoints on a router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chat/api", func(r chi.Router) {
		r.Get("/sessions/", h.handleListSessions)
		r.Post("/sessions/", h.handleCreateSession)
		r.Delete("/sessions/{sessionID}/", h.handleDeleteSession)
		r.Get("/messages/{sessionID}/", h.handleListMessages)
	})
	r.Route("/calendar/api", func(r chi.Router) {
		r.Post("/schedules/", h.handleCreateSchedule)
		r.Get("/schedules/", h.handleListSchedules)
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.repo.ListSessions(r.Context())
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Title == "" {
		body.Title = "새 채팅 " + time.Now().Format("2006년 1월 2일")
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		Title:     body.Title,
		CreatedAt: time.Now(),
	}
	if err := h.repo.CreateSession(r.Context(), session); err != nil {
		Error(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	JSON(w, http.StatusCreated, session)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.repo.DeleteSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			Error(w, http.StatusNotFound, "session not found")
			return
		}
		Error(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages, err := h.repo.ListMessages(r.Context(), sessionID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

func (h *Handler) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var schedule domain.Schedule
	if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if schedule.Date == "" || schedule.Location == "" {
		Error(w, http.StatusBadRequest, "date and location are required")
		return
	}
	schedule.ID = uuid.NewString()
	schedule.CreatedAt = time.Now()
	if err := h.repo.CreateSchedule(r.Context(), &schedule); err != nil {
		Error(w, http.StatusInternalServerError, "failed to create schedule")
		return
	}
	JSON(w, http.StatusCreated, schedule)
}

func (h *Handler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		Error(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	schedules, err := h.repo.ListSchedules(r.Context(), date)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list schedules")
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"schedules": schedules})
}
