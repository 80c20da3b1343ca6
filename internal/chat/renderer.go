package chat

import (
	"log/slog"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/extract"
)

// Sink receives rendering commands for one conversation pane.
type Sink interface {
	// DisplayMessage renders a completed, non-streaming message.
	DisplayMessage(text string, fromBot bool)
	// BeginStreaming renders the first chunk of an in-progress bot message.
	BeginStreaming(text string)
	// ReplaceStreaming replaces the displayed text of the in-progress
	// bot message. Only called when the text actually changed.
	ReplaceStreaming(text string)
	// EndStreaming marks the in-progress bot message complete, with its
	// final text.
	EndStreaming(text string)
}

// RecommendationHandler is invoked synchronously once per record extracted
// from a finalized bot turn, in place of any deferred affordance rewiring.
type RecommendationHandler func(domain.Recommendation)

// EchoPolicy selects the single path that renders the user's own messages.
type EchoPolicy string

// Echo policies.
const (
	// EchoServer renders the user's message when the transport echoes it
	// back. The default; keeps local and remote panes consistent.
	EchoServer EchoPolicy = "echo"
	// EchoOptimistic renders the user's message locally at send time and
	// drops the echo frame.
	EchoOptimistic EchoPolicy = "optimistic"
)

// Renderer owns the streaming state for a single conversation pane. At most
// one streaming bot message exists at a time; it is replaced in place until
// a final delta arrives, and extraction runs exactly once over the final
// text.
type Renderer struct {
	sink        Sink
	engine      *extract.Engine
	onRecommend RecommendationHandler
	policy      EchoPolicy

	streaming bool
	current   string
}

// NewRenderer creates a renderer for one pane.
func NewRenderer(sink Sink, engine *extract.Engine, onRecommend RecommendationHandler, policy EchoPolicy) *Renderer {
	if policy == "" {
		policy = EchoServer
	}
	return &Renderer{
		sink:        sink,
		engine:      engine,
		onRecommend: onRecommend,
		policy:      policy,
	}
}

// HandleDelta applies one content delta to the pane.
func (r *Renderer) HandleDelta(text string, fromBot, isFinal bool) {
	if !fromBot {
		if r.policy == EchoOptimistic {
			// Already rendered at send time; drop the echo.
			return
		}
		r.sink.DisplayMessage(text, false)
		return
	}

	if !r.streaming {
		if isFinal {
			// The whole turn arrived in one frame.
			r.sink.DisplayMessage(text, true)
			r.finalize(text)
			return
		}
		r.streaming = true
		r.current = text
		r.sink.BeginStreaming(text)
		return
	}

	if text != r.current {
		r.current = text
		if !isFinal {
			r.sink.ReplaceStreaming(text)
		}
	}
	if isFinal {
		r.streaming = false
		r.current = ""
		r.sink.EndStreaming(text)
		r.finalize(text)
	}
}

// RenderLocal renders a user-authored message from local input. Only the
// optimistic policy uses this path; under the echo policy the transport's
// echo frame is authoritative.
func (r *Renderer) RenderLocal(text string) {
	if r.policy != EchoOptimistic {
		return
	}
	r.sink.DisplayMessage(text, false)
}

// Streaming reports whether an in-progress bot message is displayed.
func (r *Renderer) Streaming() bool { return r.streaming }

// finalize runs the extraction pipeline over finalized text, exactly once
// per bot turn. Streaming deltas never reach here.
func (r *Renderer) finalize(text string) {
	recs := r.engine.Scan(text)
	if len(recs) > 0 {
		slog.Debug("Extracted recommendations", "count", len(recs))
	}
	if r.onRecommend == nil {
		return
	}
	for _, rec := range recs {
		r.onRecommend(rec)
	}
}
