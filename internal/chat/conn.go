package chat

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrReconnectExhausted marks a connection whose reconnect budget is spent.
// It stays down until an explicit reopen through the Registry.
var ErrReconnectExhausted = errors.New("reconnect attempts exhausted")

// Status describes the lifecycle state of a Connection.
type Status string

// Connection states.
const (
	StatusIdle       Status = "idle"
	StatusConnecting Status = "connecting"
	StatusOpen       Status = "open"
	StatusClosed     Status = "closed"
	StatusErrored    Status = "errored"
)

// Policy bundles the reconnect and send-retry tunables.
type Policy struct {
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	SendRetryDelay       time.Duration
}

// DefaultPolicy matches the backend's expectations: five attempts with a
// doubling delay starting at one second.
func DefaultPolicy() Policy {
	return Policy{
		MaxReconnectAttempts: 5,
		ReconnectDelay:       time.Second,
		SendRetryDelay:       time.Second,
	}
}

// Channel is the minimal bidirectional transport a connection drives.
type Channel interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Dialer opens a raw channel for a handshake address.
type Dialer func(ctx context.Context, addr string) (Channel, error)

// Handler receives classified inbound traffic and status transitions for
// one session's connection.
type Handler interface {
	HandleDelta(text string, fromBot, isFinal bool)
	HandleSystem(message string)
	HandleStatus(status Status)
}

// Params carries optional handshake context the backend uses to hydrate the
// conversation: a schedule to discuss, or the date/location/companion the
// user is planning around.
type Params struct {
	ScheduleID string
	Date       string
	Location   string
	Companion  string
}

// ChannelURL builds the handshake address for a session. All context params
// are optional and additive.
func ChannelURL(wsBase, sessionID, token string, params Params) string {
	q := url.Values{}
	q.Set("token", token)
	if params.ScheduleID != "" {
		q.Set("schedule_id", params.ScheduleID)
	}
	if params.Date != "" {
		q.Set("date", params.Date)
	}
	if params.Location != "" {
		q.Set("location", params.Location)
	}
	if params.Companion != "" {
		q.Set("companion", params.Companion)
	}
	return strings.TrimRight(wsBase, "/") + "/ws/chat/" + url.PathEscape(sessionID) + "/?" + q.Encode()
}

// Conn owns the logical channel for one session. At most one Conn may be
// live per session id; the Registry enforces that.
type Conn struct {
	sessionID string
	addr      string
	dial      Dialer
	policy    Policy
	handler   Handler

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	ch        Channel
	status    Status
	attempts  int
	delay     time.Duration
	closed    bool
	gen       int
	reconnect *time.Timer
	sendRetry bool
}

func newConn(ctx context.Context, sessionID, addr string, dial Dialer, policy Policy, h Handler) *Conn {
	cctx, cancel := context.WithCancel(ctx)
	return &Conn{
		sessionID: sessionID,
		addr:      addr,
		dial:      dial,
		policy:    policy,
		handler:   h,
		ctx:       cctx,
		cancel:    cancel,
		status:    StatusIdle,
		delay:     policy.ReconnectDelay,
	}
}

// SessionID returns the session this connection belongs to.
func (c *Conn) SessionID() string { return c.sessionID }

// Status returns the current lifecycle state.
func (c *Conn) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns ErrReconnectExhausted once the reconnect budget is spent,
// nil otherwise.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusErrored && c.attempts >= c.policy.MaxReconnectAttempts {
		return ErrReconnectExhausted
	}
	return nil
}

// connect dials the channel and starts the read loop. Dial failures are
// routed through onClose so reconnection has a single driver.
func (c *Conn) connect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.status = StatusConnecting
	c.mu.Unlock()
	c.handler.HandleStatus(StatusConnecting)

	ch, err := c.dial(c.ctx, c.addr)

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		if ch != nil {
			_ = ch.Close()
		}
		return
	}
	if err != nil {
		c.mu.Unlock()
		slog.Warn("Chat channel dial failed", "session_id", c.sessionID, "error", err)
		c.onClose(gen, false)
		return
	}
	c.ch = ch
	c.status = StatusOpen
	// Successful reopen resets the backoff schedule.
	c.attempts = 0
	c.delay = c.policy.ReconnectDelay
	c.mu.Unlock()

	slog.Info("Chat channel open", "session_id", c.sessionID)
	c.handler.HandleStatus(StatusOpen)
	go c.readLoop(ch, gen)
}

func (c *Conn) readLoop(ch Channel, gen int) {
	for {
		raw, err := ch.Read(c.ctx)
		if err != nil {
			explicit := c.isClosed()
			if !explicit {
				slog.Debug("Chat channel read ended", "session_id", c.sessionID, "error", err)
			}
			c.onClose(gen, explicit)
			return
		}

		frame, err := ParseFrame(raw)
		if err != nil {
			// Malformed payloads are dropped, never fatal.
			slog.Warn("Dropping malformed frame", "session_id", c.sessionID, "error", err)
			continue
		}

		switch frame.Kind {
		case FrameSystem:
			// System frames confirm the channel; they touch status only.
			slog.Debug("System frame", "session_id", c.sessionID, "message", frame.Message)
			c.handler.HandleSystem(frame.Message)
		case FrameDelta:
			c.handler.HandleDelta(frame.Message, frame.FromBot, frame.IsFinal)
		}
	}
}

// onClose handles channel teardown. Reconnection is driven only from here;
// write errors mark the connection errored without scheduling a reconnect,
// so one underlying failure cannot spawn duplicate reconnect attempts.
func (c *Conn) onClose(gen int, wasExplicit bool) {
	c.mu.Lock()
	if gen != c.gen {
		// A newer channel owns the state; this close is stale.
		c.mu.Unlock()
		return
	}
	c.ch = nil

	if wasExplicit || c.closed {
		c.status = StatusClosed
		c.mu.Unlock()
		c.handler.HandleStatus(StatusClosed)
		return
	}

	if c.attempts >= c.policy.MaxReconnectAttempts {
		c.status = StatusErrored
		c.mu.Unlock()
		slog.Warn("Chat reconnect attempts exhausted", "session_id", c.sessionID,
			"attempts", c.policy.MaxReconnectAttempts)
		c.handler.HandleStatus(StatusErrored)
		return
	}

	c.status = StatusClosed
	delay := c.delay
	c.delay *= 2
	c.reconnect = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if c.closed {
			// Explicit close beat the timer; stay down.
			c.mu.Unlock()
			return
		}
		c.attempts++
		attempt := c.attempts
		c.mu.Unlock()
		slog.Info("Reconnecting chat channel", "session_id", c.sessionID, "attempt", attempt)
		c.connect()
	})
	c.mu.Unlock()
	c.handler.HandleStatus(StatusClosed)
}

// Send writes one user message. It returns false when the channel is not
// open; while the channel is still connecting it schedules exactly one
// retry after a short delay and still returns false. The retry is
// single-shot and never recurses into further retries.
func (c *Conn) Send(text string) bool {
	c.mu.Lock()
	status := c.status
	ch := c.ch
	if status == StatusConnecting && !c.sendRetry {
		c.sendRetry = true
		time.AfterFunc(c.policy.SendRetryDelay, func() {
			c.mu.Lock()
			c.sendRetry = false
			retryCh := c.ch
			open := c.status == StatusOpen && !c.closed
			c.mu.Unlock()
			if !open || retryCh == nil {
				slog.Warn("Send retry found channel still not open", "session_id", c.sessionID)
				return
			}
			c.write(retryCh, text)
		})
	}
	c.mu.Unlock()

	if status != StatusOpen || ch == nil {
		return false
	}
	return c.write(ch, text)
}

func (c *Conn) write(ch Channel, text string) bool {
	data, err := EncodeOutbound(text)
	if err != nil {
		return false
	}
	if err := ch.Write(c.ctx, data); err != nil {
		slog.Warn("Chat channel write failed", "session_id", c.sessionID, "error", err)
		c.setErrored()
		return false
	}
	return true
}

// setErrored surfaces a channel-level error. It deliberately does not
// schedule a reconnect; the read loop's closure will drive that.
func (c *Conn) setErrored() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.status = StatusErrored
	c.mu.Unlock()
	c.handler.HandleStatus(StatusErrored)
}

// Close tears the connection down and suppresses any scheduled reconnect.
// A closed Conn stays down; reopening goes through the Registry.
func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.status = StatusClosed
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	ch := c.ch
	c.ch = nil
	c.mu.Unlock()

	if ch != nil {
		_ = ch.Close()
	}
	c.cancel()
	c.handler.HandleStatus(StatusClosed)
	slog.Info("Chat channel closed", "session_id", c.sessionID)
}

func (c *Conn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
