package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caregrid/models"
)

// memoryScheduleRepo is an in-memory ScheduleRepository for service tests.
type memoryScheduleRepo struct {
	records []*models.ScheduleRecord
}

func (m *memoryScheduleRepo) GetByID(userID, id string) (*models.ScheduleRecord, error) {
	for _, r := range m.records {
		if r.UserID == userID && r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memoryScheduleRepo) ListByUser(userID string) ([]*models.ScheduleRecord, error) {
	var out []*models.ScheduleRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryScheduleRepo) Save(record *models.ScheduleRecord) (*models.ScheduleRecord, error) {
	record.UpdatedAt = time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.UpdatedAt
	}
	for i, r := range m.records {
		if r.ID == record.ID {
			m.records[i] = record
			return record, nil
		}
	}
	m.records = append(m.records, record)
	return record, nil
}

func (m *memoryScheduleRepo) AppendDeletedDate(id, date string) error {
	for _, r := range m.records {
		if r.ID == id {
			for _, d := range r.DeletedDates {
				if d == date {
					return nil
				}
			}
			r.DeletedDates = append(r.DeletedDates, date)
			return nil
		}
	}
	return ErrScheduleNotFound
}

func (m *memoryScheduleRepo) Delete(userID, id string) error {
	for i, r := range m.records {
		if r.UserID == userID && r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return ErrScheduleNotFound
}

// stubBookingRepo serves a fixed childcare map.
type stubBookingRepo struct {
	booked map[string]bool
}

func (s *stubBookingRepo) HasChildcareBooking(userID, date string) (bool, error) {
	return s.booked[date], nil
}

func (s *stubBookingRepo) ChildcareMap(userID string, dates []string) (map[string]bool, error) {
	out := make(map[string]bool, len(dates))
	for _, d := range dates {
		if s.booked[d] {
			out[d] = true
		}
	}
	return out, nil
}

func newTestService() (*DefaultScheduleService, *memoryScheduleRepo, *stubBookingRepo) {
	repo := &memoryScheduleRepo{}
	bookings := &stubBookingRepo{booked: map[string]bool{}}
	return &DefaultScheduleService{Repo: repo, Bookings: bookings}, repo, bookings
}

func testDraft() *models.ScheduleDraft {
	return &models.ScheduleDraft{
		Title:       "Shifts",
		WorkingDays: []models.DayCode{models.DayMonday, models.DayWednesday},
		DaySchedules: map[models.DayCode]models.DayTimeRange{
			models.DayMonday:    {TimeFrom: "09:00", TimeTo: "17:00"},
			models.DayWednesday: {TimeFrom: "07:30", TimeTo: "18:15"},
		},
		Location: "Office",
	}
}

func TestSaveDraft_DerivesLegacyEnvelope(t *testing.T) {
	svc, _, _ := newTestService()

	record, err := svc.SaveDraft("user-1", testDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "user-1", record.UserID)
	// Envelope of the per-day map: earliest start, latest end.
	assert.Equal(t, "07:30", record.LegacyTimeFrom)
	assert.Equal(t, "18:15", record.LegacyTimeTo)
	assert.NotNil(t, record.DeletedDates)
}

func TestSaveDraft_CollapsesDuplicateDays(t *testing.T) {
	svc, _, _ := newTestService()

	draft := testDraft()
	draft.WorkingDays = []models.DayCode{models.DayMonday, models.DayMonday, models.DayWednesday}

	record, err := svc.SaveDraft("user-1", draft)
	require.NoError(t, err)
	assert.Equal(t, []models.DayCode{models.DayMonday, models.DayWednesday}, record.WorkingDays)
}

func TestSaveDraft_RejectsInvalidDrafts(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SaveDraft("user-1", &models.ScheduleDraft{})
	assert.ErrorIs(t, err, ErrEmptyWorkingDays)

	draft := testDraft()
	delete(draft.DaySchedules, models.DayWednesday)
	_, err = svc.SaveDraft("user-1", draft)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestWeekViewCacheKey(t *testing.T) {
	// Per-user invalidation scans "weekview:<user>:*", so the key must keep
	// the user segment ahead of the week segment.
	key := weekViewCacheKey("user-1", mondayWeek())
	assert.Equal(t, "weekview:user-1:2025-03-10", key)
}

func TestWeekView_DerivesCalendarWithChildcare(t *testing.T) {
	svc, _, bookings := newTestService()
	bookings.booked["2025-03-10"] = true

	_, err := svc.SaveDraft("user-1", testDraft())
	require.NoError(t, err)

	view, err := svc.WeekView("user-1", mondayWeek())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", view.WeekStart)
	require.Len(t, view.Days, 7)

	assert.True(t, view.Days[0].HasWork)
	assert.False(t, view.Days[0].HasChildcareGap) // booked
	assert.True(t, view.Days[2].HasWork)
	assert.True(t, view.Days[2].HasChildcareGap) // not booked
}

func TestWeekView_OldestRecordWinsOverlap(t *testing.T) {
	svc, _, _ := newTestService()

	first := testDraft()
	first.Location = "First job"
	_, err := svc.SaveDraft("user-1", first)
	require.NoError(t, err)

	second := testDraft()
	second.Location = "Second job"
	_, err = svc.SaveDraft("user-1", second)
	require.NoError(t, err)

	view, err := svc.WeekView("user-1", mondayWeek())
	require.NoError(t, err)
	assert.Equal(t, "First job", view.Days[0].WorkLocation)
}

func TestCancelDate(t *testing.T) {
	svc, repo, _ := newTestService()
	record, err := svc.SaveDraft("user-1", testDraft())
	require.NoError(t, err)

	require.NoError(t, svc.CancelDate("user-1", record.ID, "2025-03-10"))
	assert.Contains(t, repo.records[0].DeletedDates, "2025-03-10")

	view, err := svc.WeekView("user-1", mondayWeek())
	require.NoError(t, err)
	assert.False(t, view.Days[0].HasWork)

	assert.Error(t, svc.CancelDate("user-1", record.ID, "10/03/2025"))
	assert.ErrorIs(t, svc.CancelDate("user-1", "missing", "2025-03-10"), ErrScheduleNotFound)
}

func TestDeleteSchedule(t *testing.T) {
	svc, _, _ := newTestService()
	record, err := svc.SaveDraft("user-1", testDraft())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSchedule("user-1", record.ID))
	assert.ErrorIs(t, svc.DeleteSchedule("user-1", record.ID), ErrScheduleNotFound)

	_, err = svc.GetSchedule("user-1", record.ID)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
