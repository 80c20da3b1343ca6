package domain

import "time"

// Schedule is a calendar entry on the persistence collaborator.
type Schedule struct {
	ID        string    `json:"id,omitempty"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Location  string    `json:"location"`
	Companion string    `json:"companion"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ScheduleFromRecommendation maps a promoted recommendation onto a schedule
// entry for the given date. Events carry their own date and override the
// target date when one was extracted.
func ScheduleFromRecommendation(rec Recommendation, date time.Time) Schedule {
	s := Schedule{
		Date:      date.Format("2006-01-02"),
		Location:  rec.Location,
		Companion: rec.Category,
		Memo:      rec.PlaceName + " - " + rec.Reason,
	}
	if rec.IsEvent() && rec.EventDate != Unknown && rec.EventDate != "" {
		s.Date = rec.EventDate
	}
	return s
}
