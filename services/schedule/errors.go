package schedule

import "errors"

// Tagged failures surfaced by the normalizer and reconciler. The extraction
// validators recover from every one of these locally by substituting a
// documented fallback; they are never propagated past the service boundary.
var (
	ErrInvalidDayCode      = errors.New("unrecognized day of week")
	ErrInvalidTimeFormat   = errors.New("unrecognized time format")
	ErrEmptyWorkingDays    = errors.New("no working days present")
	ErrNoUsableExtraction  = errors.New("extraction produced no usable schedule")
	ErrAmbiguousTranscript = errors.New("transcript contains no recognizable schedule")
	ErrScheduleNotFound    = errors.New("schedule not found")
)
