package models

import "time"

// DayCode is one of the seven canonical weekday symbols.
type DayCode string

const (
	DaySunday    DayCode = "SUN"
	DayMonday    DayCode = "MON"
	DayTuesday   DayCode = "TUE"
	DayWednesday DayCode = "WED"
	DayThursday  DayCode = "THU"
	DayFriday    DayCode = "FRI"
	DaySaturday  DayCode = "SAT"
)

// AllDayCodes lists every DayCode in calendar order (Sunday first, matching
// time.Weekday numbering).
var AllDayCodes = [7]DayCode{
	DaySunday, DayMonday, DayTuesday, DayWednesday,
	DayThursday, DayFriday, DaySaturday,
}

// Weekday maps a DayCode onto time.Weekday.
func (d DayCode) Weekday() time.Weekday {
	for i, code := range AllDayCodes {
		if code == d {
			return time.Weekday(i)
		}
	}
	return time.Sunday
}

// DayCodeFor returns the DayCode for a time.Weekday.
func DayCodeFor(wd time.Weekday) DayCode {
	return AllDayCodes[int(wd)%7]
}

// DayTimeRange is a working window within one day. Both ends are canonical
// zero-padded 24-hour "HH:MM" strings and TimeFrom is strictly before TimeTo.
type DayTimeRange struct {
	TimeFrom string `bson:"timeFrom" json:"timeFrom"`
	TimeTo   string `bson:"timeTo" json:"timeTo"`
}

// ScheduleDraft is the canonical pre-persistence output of extraction and
// manual entry. Every entry in WorkingDays has a matching key in DaySchedules
// and vice versa.
type ScheduleDraft struct {
	Title        string                   `json:"title"`
	WorkingDays  []DayCode                `json:"workingDays"`
	DaySchedules map[DayCode]DayTimeRange `json:"daySchedules"`
	Location     string                   `json:"location"`
	Notes        string                   `json:"notes"`
	WeekAnchor   time.Time                `json:"weekAnchor"`
}

// ScheduleRecord is the persisted form of a weekly schedule, keyed by
// (UserID, ID). LegacyTimeFrom/LegacyTimeTo are derived projections kept for
// consumers that still expect a single range; DaySchedules is authoritative.
// DeletedDates holds ISO dates (YYYY-MM-DD) on which this otherwise-recurring
// schedule is cancelled.
type ScheduleRecord struct {
	ID             string                   `bson:"id" json:"id"`
	UserID         string                   `bson:"userId" json:"userId"`
	Title          string                   `bson:"title" json:"title"`
	WorkingDays    []DayCode                `bson:"workingDays" json:"workingDays"`
	DaySchedules   map[DayCode]DayTimeRange `bson:"daySchedules" json:"daySchedules"`
	Location       string                   `bson:"location" json:"location"`
	Notes          string                   `bson:"notes" json:"notes"`
	WeekAnchor     time.Time                `bson:"weekAnchor" json:"weekAnchor"`
	LegacyTimeFrom string                   `bson:"timeFrom" json:"timeFrom"`
	LegacyTimeTo   string                   `bson:"timeTo" json:"timeTo"`
	DeletedDates   []string                 `bson:"deletedDates" json:"deletedDates"`
	CreatedAt      time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time                `bson:"updatedAt" json:"updatedAt"`
}

// DaySchedule is one derived calendar day. Constructed fresh on every week
// request, never persisted.
type DaySchedule struct {
	Date             time.Time     `json:"date"`
	Day              DayCode       `json:"day"`
	HasWork          bool          `json:"hasWork"`
	HasChildcareGap  bool          `json:"hasChildcareGap"`
	WorkLocation     string        `json:"workLocation,omitempty"`
	WorkTimeRange    *DayTimeRange `json:"workTimeRange,omitempty"`
	SourceScheduleID string        `json:"sourceScheduleId,omitempty"`
}
