package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

// Recommendation fields are sometimes colocated in one rich paragraph and
// sometimes spread across adjacent lines, so context selection is two-phase:
// try up to maxContextLevels enclosing scopes of the title for one that is
// rich enough, then fall back to walking following sibling lines.
const (
	richContextRunes = 50
	maxContextLevels = 3
	maxSiblingWalk   = 10
)

// Engine scans finalized bot text for recommendation records. It remembers
// which titles it already produced records for, so re-running it over the
// same text is a no-op for those entries.
type Engine struct {
	markers Markers
	tagged  map[string]bool
}

// NewEngine creates an engine over the default marker vocabulary.
func NewEngine() *Engine {
	return NewEngineWithMarkers(DefaultMarkers())
}

// NewEngineWithMarkers creates an engine over a custom vocabulary.
func NewEngineWithMarkers(markers Markers) *Engine {
	return &Engine{
		markers: markers,
		tagged:  make(map[string]bool),
	}
}

// Scan extracts every recommendation from text. Only finalized text should
// be scanned; streaming deltas would yield partial, garbled records.
func (e *Engine) Scan(text string) []domain.Recommendation {
	lines := strings.Split(text, "\n")

	var recs []domain.Recommendation
	for i, line := range lines {
		if !candidateTitle(line) {
			continue
		}

		fields, rich := e.contextFields(lines, i)
		if !rich {
			fields = e.siblingWalk(lines, i, fields)
		}

		rec := Build(line, fields, e.isTagged)
		if rec == nil {
			continue
		}
		e.tagged[rec.PlaceName] = true
		recs = append(recs, *rec)
	}
	return recs
}

// Tagged reports whether a title (in cleaned form) already produced a record.
func (e *Engine) Tagged(title string) bool {
	return e.isTagged(CleanTitle(title))
}

func (e *Engine) isTagged(cleanedName string) bool {
	return e.tagged[cleanedName]
}

// contextFields extracts from the first enclosing scope of the title that is
// rich enough: the title line itself, its paragraph, then its section. The
// second return value is false when no scope qualified and the caller should
// fall back to the sibling walk.
func (e *Engine) contextFields(lines []string, title int) (Fields, bool) {
	for level, scope := range []string{
		lines[title],
		paragraphAround(lines, title),
		sectionFrom(lines, title),
	} {
		if level >= maxContextLevels {
			break
		}
		if utf8.RuneCountInString(scope) > richContextRunes {
			return Extract(scope, e.markers), true
		}
	}
	return Extract(lines[title], e.markers), false
}

// siblingWalk scans the lines following the title one at a time, merging
// fields that are still unknown, until every field resolves, another title
// begins, or the walk bound is hit.
func (e *Engine) siblingWalk(lines []string, title int, fields Fields) Fields {
	for i := title + 1; i < len(lines) && i <= title+maxSiblingWalk; i++ {
		if candidateTitle(lines[i]) {
			break
		}
		fields.Merge(Extract(lines[i], e.markers))
		if fields.Resolved() {
			break
		}
	}
	return fields
}

// candidateTitle reports whether a line looks like a recommendation title:
// an ordinal-prefixed list entry or a bold heading, rather than body text.
func candidateTitle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if HasOrdinalPrefix(trimmed) {
		return true
	}
	// Bold headings qualify unless they end with a colon; those are section
	// headers like "**추천 장소 목록:**", not place names.
	return strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") &&
		!strings.HasSuffix(strings.Trim(trimmed, "*"), ":")
}

// paragraphAround returns the blank-line-delimited block containing line i.
func paragraphAround(lines []string, i int) string {
	start := i
	for start > 0 && strings.TrimSpace(lines[start-1]) != "" {
		start--
	}
	end := i
	for end+1 < len(lines) && strings.TrimSpace(lines[end+1]) != "" {
		end++
	}
	return strings.Join(lines[start:end+1], "\n")
}

// sectionFrom returns the lines from the title up to the next candidate
// title, the widest scope a single recommendation's fields can span.
func sectionFrom(lines []string, i int) string {
	end := len(lines)
	for j := i + 1; j < len(lines); j++ {
		if candidateTitle(lines[j]) {
			end = j
			break
		}
	}
	return strings.Join(lines[i:end], "\n")
}
