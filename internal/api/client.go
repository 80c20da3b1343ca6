// Package api provides the REST client for the collaborator backend:
// chat sessions, message history and calendar schedules.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

// Client talks to the backend's REST surface. All calls attach the bearer
// token and return decoded domain values.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for a backend base URL.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ListSessions returns all chat sessions, newest first.
func (c *Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	var out struct {
		Sessions []domain.Session `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/api/sessions/", nil, &out); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out.Sessions, nil
}

// CreateSession creates a chat session with the given title.
func (c *Client) CreateSession(ctx context.Context, title string) (*domain.Session, error) {
	body := map[string]string{"title": title}
	var out domain.Session
	if err := c.do(ctx, http.MethodPost, "/chat/api/sessions/", body, &out); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &out, nil
}

// DeleteSession removes a chat session and its messages.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	path := "/chat/api/sessions/" + url.PathEscape(sessionID) + "/"
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

// ListMessages returns the stored history of one session, oldest first.
func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	var out struct {
		Messages []domain.Message `json:"messages"`
	}
	path := "/chat/api/messages/" + url.PathEscape(sessionID) + "/"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list messages for %s: %w", sessionID, err)
	}
	return out.Messages, nil
}

// CreateSchedule records a calendar schedule, typically a promoted
// recommendation.
func (c *Client) CreateSchedule(ctx context.Context, s domain.Schedule) (*domain.Schedule, error) {
	var out domain.Schedule
	if err := c.do(ctx, http.MethodPost, "/calendar/api/schedules/", s, &out); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return &out, nil
}

// ListSchedules returns the schedules recorded for a date (YYYY-MM-DD).
func (c *Client) ListSchedules(ctx context.Context, date string) ([]domain.Schedule, error) {
	var out struct {
		Schedules []domain.Schedule `json:"schedules"`
	}
	path := "/calendar/api/schedules/?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list schedules for %s: %w", date, err)
	}
	return out.Schedules, nil
}

// do performs one request. A nil out skips response decoding.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError extracts the backend's error message when it sent one.
func apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("backend returned %d", resp.StatusCode)
}
