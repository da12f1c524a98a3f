package schedule

import (
	"strings"
	"time"
)

// Now is the clock used for relative week signals. Tests override it to pin
// "this week" to a known date.
var Now = time.Now

// WeekOffset is the explicit relative-week token some callers send.
type WeekOffset string

const (
	WeekOffsetCurrent WeekOffset = "current"
	WeekOffsetNext    WeekOffset = "next"
)

// WeekSignal carries every way a caller can indicate which week a schedule
// applies to. Precedence, applied only here and nowhere else: an explicit
// date wins over an offset token, which wins over the NextWeek flag, which
// defaults to the current week.
type WeekSignal struct {
	ExplicitDate *time.Time
	Offset       WeekOffset
	NextWeek     bool
}

// ResolveWeekAnchor returns the Monday of the week the signal points at,
// truncated to midnight. Relative signals are resolved against Now at call
// time; an explicit date is walked back to its own Monday.
func ResolveWeekAnchor(sig WeekSignal) time.Time {
	if sig.ExplicitDate != nil {
		return mondayOf(*sig.ExplicitDate)
	}
	anchor := mondayOf(Now())
	switch sig.Offset {
	case WeekOffsetNext:
		return anchor.AddDate(0, 0, 7)
	case WeekOffsetCurrent:
		return anchor
	}
	if sig.NextWeek {
		return anchor.AddDate(0, 0, 7)
	}
	return anchor
}

func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	back := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -back)
}

// nextWeekPhrases are scanned case-insensitively by DetectNextWeekIntent.
var nextWeekPhrases = []string{
	"next week",
	"coming week",
	"upcoming week",
	"following week",
	"week after this",
}

// DetectNextWeekIntent reports whether free text implies the schedule is for
// next week. Advisory only: the voice pipeline may override it (see
// VoiceWeekPolicy).
func DetectNextWeekIntent(freeText string) bool {
	lower := strings.ToLower(freeText)
	for _, phrase := range nextWeekPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
