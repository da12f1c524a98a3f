package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// pinNow fixes the package clock for one test.
func pinNow(t *testing.T, fixed time.Time) {
	t.Helper()
	prev := Now
	Now = func() time.Time { return fixed }
	t.Cleanup(func() { Now = prev })
}

func TestResolveWeekAnchor_CurrentWeek(t *testing.T) {
	// Wednesday 2025-03-12; the Monday of that week is 2025-03-10.
	pinNow(t, time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC))

	anchor := ResolveWeekAnchor(WeekSignal{})
	assert.Equal(t, "2025-03-10", anchor.Format(ISODateLayout))
	assert.Equal(t, time.Monday, anchor.Weekday())

	// Deterministic: two calls at the same instant agree.
	assert.Equal(t, anchor, ResolveWeekAnchor(WeekSignal{}))
}

func TestResolveWeekAnchor_MondayStaysPut(t *testing.T) {
	pinNow(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	anchor := ResolveWeekAnchor(WeekSignal{NextWeek: false})
	assert.Equal(t, "2025-03-10", anchor.Format(ISODateLayout))
}

func TestResolveWeekAnchor_SundayBelongsToPrecedingMonday(t *testing.T) {
	pinNow(t, time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC)) // Sunday
	anchor := ResolveWeekAnchor(WeekSignal{})
	assert.Equal(t, "2025-03-10", anchor.Format(ISODateLayout))
}

func TestResolveWeekAnchor_NextWeekFlag(t *testing.T) {
	pinNow(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))
	anchor := ResolveWeekAnchor(WeekSignal{NextWeek: true})
	assert.Equal(t, "2025-03-17", anchor.Format(ISODateLayout))
}

func TestResolveWeekAnchor_OffsetToken(t *testing.T) {
	pinNow(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-03-10",
		ResolveWeekAnchor(WeekSignal{Offset: WeekOffsetCurrent}).Format(ISODateLayout))
	assert.Equal(t, "2025-03-17",
		ResolveWeekAnchor(WeekSignal{Offset: WeekOffsetNext}).Format(ISODateLayout))
}

func TestResolveWeekAnchor_Precedence(t *testing.T) {
	pinNow(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))

	// Explicit date beats the offset token and the flag.
	explicit := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC) // Thursday
	anchor := ResolveWeekAnchor(WeekSignal{
		ExplicitDate: &explicit,
		Offset:       WeekOffsetNext,
		NextWeek:     true,
	})
	assert.Equal(t, "2025-06-02", anchor.Format(ISODateLayout))

	// Offset token beats the flag.
	anchor = ResolveWeekAnchor(WeekSignal{Offset: WeekOffsetCurrent, NextWeek: true})
	assert.Equal(t, "2025-03-10", anchor.Format(ISODateLayout))
}

func TestDetectNextWeekIntent(t *testing.T) {
	assert.True(t, DetectNextWeekIntent("I work Monday to Friday next week"))
	assert.True(t, DetectNextWeekIntent("For the COMING WEEK I'm on earlies"))
	assert.False(t, DetectNextWeekIntent("I work Monday to Friday"))
	assert.False(t, DetectNextWeekIntent(""))
}
