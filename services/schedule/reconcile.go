package schedule

import "caregrid/models"

// DayLookup resolves a weekday to its effective working range for one
// record. The second return is false when the day is not a working day at
// all; absence is never reported as a zeroed range.
type DayLookup func(day models.DayCode) (models.DayTimeRange, bool)

// Reconcile merges a record's authoritative per-day map with its legacy
// single-range fields into one unambiguous lookup. The per-day map always
// wins; the legacy range only applies to days listed in WorkingDays that
// predate the map.
func Reconcile(record *models.ScheduleRecord) DayLookup {
	legacy := models.DayTimeRange{
		TimeFrom: record.LegacyTimeFrom,
		TimeTo:   record.LegacyTimeTo,
	}
	legacyOK := ValidRange(legacy)

	working := make(map[models.DayCode]bool, len(record.WorkingDays))
	for _, d := range record.WorkingDays {
		working[d] = true
	}

	return func(day models.DayCode) (models.DayTimeRange, bool) {
		if r, ok := record.DaySchedules[day]; ok {
			return r, true
		}
		if working[day] && legacyOK {
			return legacy, true
		}
		return models.DayTimeRange{}, false
	}
}

// IsCancelled reports whether the record is overridden off for a specific
// date (YYYY-MM-DD). Cancellation is date-specific and beats recurrence; it
// holds even when the date's weekday is not in WorkingDays.
func IsCancelled(record *models.ScheduleRecord, isoDate string) bool {
	for _, d := range record.DeletedDates {
		if d == isoDate {
			return true
		}
	}
	return false
}
