package domain

// Unknown is the placeholder for fields the extractor could not resolve.
// The schedule collaborator treats empty strings as invalid, so unresolved
// fields always carry this sentinel instead.
const Unknown = "정보 없음"

// RecommendationKind distinguishes plain places from dated events.
type RecommendationKind string

// Recommendation kinds.
const (
	KindPlace RecommendationKind = "place"
	KindEvent RecommendationKind = "event"
)

// Recommendation is a structured record extracted from a finalized bot reply.
// It exists only between extraction and the user's promote/dismiss decision.
type Recommendation struct {
	PlaceName string             `json:"place_name"`
	Location  string             `json:"location"`
	Category  string             `json:"category"`
	Reason    string             `json:"reason"`
	Reference string             `json:"reference"`
	Kind      RecommendationKind `json:"kind"`
	EventDate string             `json:"event_date,omitempty"`
}

// IsEvent reports whether an event date was found for this record.
func (r Recommendation) IsEvent() bool {
	return r.Kind == KindEvent
}
