package extract

import (
	"strings"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

// Fields holds the extraction result for one candidate. Labels whose markers
// were absent map to the domain.Unknown sentinel, never the empty string.
type Fields map[Label]string

// Extract scans text for each label's markers and returns the labeled
// values. A value runs from just after its marker to the earliest of the
// next newline or the nearest alias of any other label, which keeps one
// field from swallowing the next field's marker and content.
func Extract(text string, markers Markers) Fields {
	out := make(Fields, len(markers))
	for label := range markers {
		out[label] = extractField(text, label, markers)
	}
	return out
}

// Merge fills fields still unknown in dst from src, returning dst.
func (f Fields) Merge(src Fields) Fields {
	for label, v := range src {
		if f[label] == domain.Unknown && v != domain.Unknown {
			f[label] = v
		}
	}
	return f
}

// Resolved reports whether every label carries a real value.
func (f Fields) Resolved() bool {
	for _, v := range f {
		if v == domain.Unknown {
			return false
		}
	}
	return true
}

func extractField(text string, label Label, markers Markers) string {
	bestIdx, start := -1, -1
	for _, alias := range markers[label] {
		idx := strings.Index(text, alias)
		if idx < 0 {
			continue
		}
		// Earliest occurrence wins; alias order breaks ties, so the more
		// specific alias at the same position is preferred.
		if bestIdx < 0 || idx < bestIdx {
			bestIdx = idx
			start = idx + len(alias)
		}
	}
	if start < 0 {
		return domain.Unknown
	}

	rest := text[start:]
	end := len(rest)
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		end = nl
	}
	for _, other := range markers.othersOf(label) {
		if i := strings.Index(rest[:end], other); i >= 0 {
			end = i
		}
	}

	value := cleanValue(rest[:end])
	if value == "" {
		return domain.Unknown
	}
	return value
}

// cleanValue trims whitespace and stray markdown decoration around a value.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, "*")
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "-")
	return strings.TrimSpace(v)
}
