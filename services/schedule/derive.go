package schedule

import (
	"time"

	"caregrid/models"
)

// ISODateLayout is the wire format for calendar dates throughout the system.
const ISODateLayout = "2006-01-02"

// DeriveWeek projects the given records onto the 7 dates starting at
// weekStart. Records are scanned in the order supplied by the caller and the
// first record with a working range for a date wins; the deriver applies no
// prioritization of its own. A date cancelled on a record never produces
// work from that record. childcare maps ISO dates to "a childcare booking
// already exists"; a childcare gap is flagged only on working dates with no
// booking.
func DeriveWeek(records []*models.ScheduleRecord, weekStart time.Time, childcare map[string]bool) []models.DaySchedule {
	lookups := make([]DayLookup, len(records))
	for i, r := range records {
		lookups[i] = Reconcile(r)
	}

	days := make([]models.DaySchedule, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		iso := date.Format(ISODateLayout)
		day := models.DaySchedule{
			Date: date,
			Day:  models.DayCodeFor(date.Weekday()),
		}

		for j, r := range records {
			if IsCancelled(r, iso) {
				continue
			}
			rng, ok := lookups[j](day.Day)
			if !ok {
				continue
			}
			day.HasWork = true
			day.WorkLocation = r.Location
			day.WorkTimeRange = &models.DayTimeRange{TimeFrom: rng.TimeFrom, TimeTo: rng.TimeTo}
			day.SourceScheduleID = r.ID
			break
		}

		day.HasChildcareGap = day.HasWork && !childcare[iso]
		days[i] = day
	}
	return days
}
