package extract

import (
	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

// Build assembles a Recommendation from a candidate title and its extracted
// fields. It returns nil when the title fails validation (a bare list
// marker, not a name) or when alreadyTagged reports the title was handled on
// an earlier pass, so re-running extraction never yields duplicate records.
func Build(titleCandidate string, fields Fields, alreadyTagged func(string) bool) *domain.Recommendation {
	name := CleanTitle(titleCandidate)
	if !ValidTitle(name) {
		return nil
	}
	if alreadyTagged != nil && alreadyTagged(name) {
		return nil
	}

	rec := &domain.Recommendation{
		PlaceName: name,
		Location:  orUnknown(fields[LabelLocation]),
		Category:  orUnknown(fields[LabelCategory]),
		Reason:    orUnknown(fields[LabelReason]),
		Reference: orUnknown(fields[LabelReference]),
		Kind:      domain.KindPlace,
	}

	// An event date flips the kind and reuses the reference slot for the
	// date, keeping the record shape uniform for the persistence side.
	if date := fields[LabelEventDate]; date != domain.Unknown && date != "" {
		rec.Kind = domain.KindEvent
		rec.EventDate = date
		rec.Reference = date
	}

	return rec
}

// orUnknown maps missing values onto the sentinel; downstream persistence
// treats empty as a distinct invalid state.
func orUnknown(v string) string {
	if v == "" {
		return domain.Unknown
	}
	return v
}
