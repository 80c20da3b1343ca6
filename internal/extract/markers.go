// Package extract turns marker-delimited bot replies into recommendation
// records. The extraction is a bounded heuristic over a fixed marker
// vocabulary, kept behind pure functions so a stricter parser could replace
// it without touching the transport or rendering layers.
package extract

// Label identifies one extractable recommendation field.
type Label string

// Extractable fields.
const (
	LabelLocation  Label = "location"
	LabelCategory  Label = "category"
	LabelReason    Label = "reason"
	LabelReference Label = "reference"
	LabelEventDate Label = "event_date"
)

// Markers maps each label to its marker aliases, most specific first.
// Alias order matters: at equal positions in the text the earlier (longer)
// alias wins, so "- 위치:" is consumed before the bare "위치:" inside it.
type Markers map[Label][]string

// DefaultMarkers returns the vocabulary the backend's reply format uses.
func DefaultMarkers() Markers {
	return Markers{
		LabelLocation:  {"📍 위치:", "- 위치:", "위치:"},
		LabelCategory:  {"🏷️ 카테고리:", "- 카테고리:", "카테고리:"},
		LabelReason:    {"💫 추천 이유:", "- 추천 이유:", "추천 이유:"},
		LabelReference: {"🔍 참고:", "- 참고:", "참고:"},
		LabelEventDate: {"📅 일시:", "- 일시:", "일시:"},
	}
}

// othersOf returns every alias belonging to labels other than the given one.
// These bound a field's value so it cannot swallow the next field.
func (m Markers) othersOf(label Label) []string {
	var out []string
	for l, aliases := range m {
		if l == label {
			continue
		}
		out = append(out, aliases...)
	}
	return out
}
