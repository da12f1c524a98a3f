package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"caregrid/models"
)

// dayNames maps every accepted spelling (lowercased) to its canonical code.
// Full names, 3-letter abbreviations and already-canonical codes are accepted.
var dayNames = map[string]models.DayCode{
	"sunday":    models.DaySunday,
	"sun":       models.DaySunday,
	"monday":    models.DayMonday,
	"mon":       models.DayMonday,
	"tuesday":   models.DayTuesday,
	"tue":       models.DayTuesday,
	"wednesday": models.DayWednesday,
	"wed":       models.DayWednesday,
	"thursday":  models.DayThursday,
	"thu":       models.DayThursday,
	"friday":    models.DayFriday,
	"fri":       models.DayFriday,
	"saturday":  models.DaySaturday,
	"sat":       models.DaySaturday,
}

// NormalizeDay converts a free-form weekday string into its canonical
// DayCode. Unrecognized input returns ErrInvalidDayCode; it is up to the
// caller to recover or reject.
func NormalizeDay(input string) (models.DayCode, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	if code, ok := dayNames[key]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDayCode, input)
}

// timePattern accepts "H:MM", "HH:MM", "HH:MM:SS" and 12-hour forms with an
// optional space before the AM/PM marker ("9am", "9:30 pm", "5:00PM").
var timePattern = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?(?::\d{2})?\s*([AaPp][Mm])?\s*$`)

// NormalizeTime converts a free-form time string into canonical zero-padded
// 24-hour "HH:MM". Seconds are dropped. 12-hour conversion: 12 AM becomes 00,
// 12 PM stays 12, any other PM hour gains 12. Out-of-range hours or minutes
// return ErrInvalidTimeFormat.
func NormalizeTime(input string) (string, error) {
	m := timePattern.FindStringSubmatch(input)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
		}
	}

	if meridiem := strings.ToLower(m[3]); meridiem != "" {
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
		}
		switch {
		case meridiem == "am" && hour == 12:
			hour = 0
		case meridiem == "pm" && hour != 12:
			hour += 12
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// rangeSeparator splits "9am to 5pm", "9-17:30" and en-dash variants.
var rangeSeparator = regexp.MustCompile(`(?i)\s*(?:\bto\b|[-–])\s*`)

// ParseTimeRange extracts two time expressions from a single string and
// normalizes both sides. It returns nil when either side fails to parse or
// when the end is not strictly after the start; zero-length and wraparound
// ranges are never valid working time.
func ParseTimeRange(input string) *models.DayTimeRange {
	parts := rangeSeparator.Split(strings.TrimSpace(input), 2)
	if len(parts) != 2 {
		return nil
	}
	from, err := NormalizeTime(parts[0])
	if err != nil {
		return nil
	}
	to, err := NormalizeTime(parts[1])
	if err != nil {
		return nil
	}
	if to <= from {
		return nil
	}
	return &models.DayTimeRange{TimeFrom: from, TimeTo: to}
}

// ValidRange reports whether a pre-built range holds two canonical times in
// strictly increasing order.
func ValidRange(r models.DayTimeRange) bool {
	return r.TimeFrom != "" && r.TimeTo != "" && r.TimeFrom < r.TimeTo
}
