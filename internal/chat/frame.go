// Package chat owns the client side of the conversation channel: the
// per-session connection lifecycle, frame classification, and the streaming
// message renderer.
package chat

import (
	"encoding/json"
	"fmt"
)

// FrameKind classifies an inbound frame.
type FrameKind int

// Frame kinds.
const (
	// FrameSystem carries connection/control information only.
	FrameSystem FrameKind = iota
	// FrameDelta carries one unit of conversation content, possibly partial.
	FrameDelta
)

// InboundFrame is one parsed message from the channel.
type InboundFrame struct {
	Kind    FrameKind
	Message string
	FromBot bool
	IsFinal bool
}

// inboundPayload mirrors the backend's wire shape. is_bot is a pointer so a
// frame that omits it entirely can be told apart from an explicit user echo.
type inboundPayload struct {
	Type        string `json:"type,omitempty"`
	IsSystem    bool   `json:"is_system,omitempty"`
	IsBot       *bool  `json:"is_bot,omitempty"`
	IsStreaming bool   `json:"is_streaming,omitempty"`
	Message     string `json:"message"`
}

// ParseFrame decodes a raw inbound payload into the frame union. Callers
// drop and log malformed payloads; a parse failure must never take the
// connection down.
func ParseFrame(raw []byte) (InboundFrame, error) {
	var p inboundPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return InboundFrame{}, fmt.Errorf("parse inbound frame: %w", err)
	}

	if p.Type == "connection_established" || p.IsSystem {
		return InboundFrame{Kind: FrameSystem, Message: p.Message}, nil
	}
	if p.IsBot == nil {
		return InboundFrame{}, fmt.Errorf("inbound frame missing is_bot: %q", raw)
	}
	return InboundFrame{
		Kind:    FrameDelta,
		Message: p.Message,
		FromBot: *p.IsBot,
		IsFinal: !p.IsStreaming,
	}, nil
}

// EncodeOutbound wraps user text in the outbound send frame.
func EncodeOutbound(text string) ([]byte, error) {
	return json.Marshal(map[string]string{"message": text})
}
