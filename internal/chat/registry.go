package chat

import (
	"context"
	"log/slog"
	"sync"
)

// Registry owns the active connections, at most one per session id.
// Opening a session that already has a live open connection returns it;
// anything staler is closed before the replacement is installed, so two
// channels can never deliver frames for the same session at once.
type Registry struct {
	wsBase string
	token  string
	dial   Dialer
	policy Policy

	mu     sync.Mutex
	active map[string]*Conn
}

// NewRegistry creates a registry dialing real websocket channels.
func NewRegistry(wsBase, token string, policy Policy) *Registry {
	return NewRegistryWithDialer(wsBase, token, policy, WebSocketDialer)
}

// NewRegistryWithDialer creates a registry with a custom dialer.
func NewRegistryWithDialer(wsBase, token string, policy Policy, dial Dialer) *Registry {
	return &Registry{
		wsBase: wsBase,
		token:  token,
		dial:   dial,
		policy: policy,
		active: make(map[string]*Conn),
	}
}

// Open returns the live connection for a session, establishing one if
// needed. Idempotent per session id: an existing open connection is
// returned as is; a stale one is closed first and replaced. Replacing an
// errored connection is the explicit reopen that clears its exhausted
// state.
func (r *Registry) Open(ctx context.Context, sessionID string, params Params, h Handler) *Conn {
	r.mu.Lock()
	if existing, ok := r.active[sessionID]; ok {
		if existing.Status() == StatusOpen {
			r.mu.Unlock()
			return existing
		}
		existing.Close()
	}

	addr := ChannelURL(r.wsBase, sessionID, r.token, params)
	c := newConn(ctx, sessionID, addr, r.dial, r.policy, h)
	r.active[sessionID] = c
	r.mu.Unlock()

	slog.Info("Opening chat session", "session_id", sessionID)
	go c.connect()
	return c
}

// Get returns the connection for a session, or nil.
func (r *Registry) Get(sessionID string) *Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active[sessionID]
}

// Close tears down the connection for one session.
func (r *Registry) Close(sessionID string) {
	r.mu.Lock()
	c, ok := r.active[sessionID]
	if ok {
		delete(r.active, sessionID)
	}
	r.mu.Unlock()
	if ok {
		c.Close()
	}
}

// CloseAll tears down every active connection, for page teardown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	conns := make([]*Conn, 0, len(r.active))
	for _, c := range r.active {
		conns = append(conns, c)
	}
	r.active = make(map[string]*Conn)
	r.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
