package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/store"
)

// Responder produces a bot reply for one user message. The handshake
// query params carry the planning context when the client supplied one.
type Responder func(userText string, params map[string]string) string

// WSHandler serves the chat websocket endpoint, echoing user frames and
// streaming scripted bot replies the way the real backend does.
type WSHandler struct {
	repo    store.Repository
	respond Responder

	// streamDelay paces the simulated deltas.
	streamDelay time.Duration
}

// NewWSHandler creates a websocket handler over the repository. A nil
// responder falls back to the built-in scripted reply.
func NewWSHandler(repo store.Repository, respond Responder) *WSHandler {
	if respond == nil {
		respond = scriptedReply
	}
	return &WSHandler{
		repo:        repo,
		respond:     respond,
		streamDelay: 30 * time.Millisecond,
	}
}

type wsFrame struct {
	Type        string `json:"type,omitempty"`
	IsBot       *bool  `json:"is_bot,omitempty"`
	IsStreaming bool   `json:"is_streaming,omitempty"`
	Message     string `json:"message,omitempty"`
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	slog.Info("Chat websocket request", "session_id", sessionID, "ip", r.RemoteAddr)

	if sessionID != "" {
		session, err := h.repo.GetSession(r.Context(), sessionID)
		if err != nil || session == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept websocket", "error", err, "session_id", sessionID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "session_id", sessionID)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	params := handshakeParams(r)

	if err := h.writeFrame(ctx, ws, wsFrame{Type: "connection_established"}); err != nil {
		slog.Debug("Failed to confirm connection", "error", err)
		return
	}

	for {
		_, raw, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("Websocket closed by client", "session_id", sessionID)
			} else {
				slog.Warn("Websocket read error", "error", err, "session_id", sessionID)
			}
			return
		}

		var inbound struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &inbound); err != nil || inbound.Message == "" {
			slog.Warn("Ignoring malformed inbound frame", "session_id", sessionID)
			continue
		}

		if err := h.handleUserMessage(ctx, ws, sessionID, inbound.Message, params); err != nil {
			slog.Warn("Failed to handle user message", "error", err, "session_id", sessionID)
			return
		}
	}
}

func (h *WSHandler) handleUserMessage(ctx context.Context, ws *websocket.Conn, sessionID, text string, params map[string]string) error {
	h.storeMessage(ctx, sessionID, text, false)

	// Echo the user's own message back first.
	no := false
	if err := h.writeFrame(ctx, ws, wsFrame{IsBot: &no, Message: text}); err != nil {
		return err
	}

	reply := h.respond(text, params)
	yes := true

	// Stream the reply as cumulative chunks, then close with a final frame.
	for _, chunk := range cumulativeChunks(reply) {
		if err := h.writeFrame(ctx, ws, wsFrame{IsBot: &yes, IsStreaming: true, Message: chunk}); err != nil {
			return err
		}
		select {
		case <-time.After(h.streamDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := h.writeFrame(ctx, ws, wsFrame{IsBot: &yes, Message: reply}); err != nil {
		return err
	}

	h.storeMessage(ctx, sessionID, reply, true)
	return nil
}

func (h *WSHandler) storeMessage(ctx context.Context, sessionID, content string, fromBot bool) {
	if sessionID == "" {
		return
	}
	msg := &domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Content:   content,
		FromBot:   fromBot,
		CreatedAt: time.Now(),
	}
	if err := h.repo.AppendMessage(ctx, msg); err != nil {
		slog.Warn("Failed to store message", "error", err, "session_id", sessionID)
	}
}

func (h *WSHandler) writeFrame(ctx context.Context, ws *websocket.Conn, frame wsFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}

func handshakeParams(r *http.Request) map[string]string {
	q := r.URL.Query()
	params := make(map[string]string)
	for _, key := range []string{"schedule_id", "date", "location", "companion"} {
		if v := q.Get(key); v != "" {
			params[key] = v
		}
	}
	return params
}

// cumulativeChunks splits a reply into the growing prefixes a streaming
// backend would send, one line at a time.
func cumulativeChunks(reply string) []string {
	lines := strings.SplitAfter(reply, "\n")
	chunks := make([]string, 0, len(lines))
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(line)
		chunks = append(chunks, b.String())
	}
	return chunks
}

// scriptedReply fabricates a recommendation-formatted answer around the
// planning context. Good enough to exercise the client end to end.
func scriptedReply(userText string, params map[string]string) string {
	location := params["location"]
	if location == "" {
		location = "서울"
	}
	companion := params["companion"]
	if companion == "" {
		companion = "나들이"
	}

	var b strings.Builder
	b.WriteString(location + " 근처에서 " + companion + " 하기 좋은 곳을 추천드려요.\n\n")
	b.WriteString("**1. [남산서울타워]**\n")
	b.WriteString("- 위치: " + location + " 용산구 남산공원길 105\n")
	b.WriteString("- 추천 이유: 도심 전망이 뛰어나고 " + companion + " 코스로 좋습니다.\n\n")
	b.WriteString("**2. [감성 한옥 카페]**\n")
	b.WriteString("- 위치: " + location + " 종로구 북촌로 57\n")
	b.WriteString("- 추천 이유: 전통 분위기에서 쉬어 가기 좋습니다.\n\n")
	b.WriteString("더 필요한 정보가 있으면 말씀해주세요!\n")
	return b.String()
}
