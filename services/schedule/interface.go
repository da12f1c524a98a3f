package schedule

import (
	"time"

	bookingRepo "caregrid/database/repository/booking"
	scheduleRepo "caregrid/database/repository/schedule"
	"caregrid/models"

	"github.com/go-redis/redis/v8"
)

// ScheduleService is the surface the HTTP layer talks to. All inputs and
// outputs are plain data; transport concerns stay in the handlers.
type ScheduleService interface {
	// SaveDraft persists a validated draft as a new record for the user.
	SaveDraft(userID string, draft *models.ScheduleDraft) (*models.ScheduleRecord, error)
	// GetSchedule fetches one record; ErrScheduleNotFound when absent.
	GetSchedule(userID, id string) (*models.ScheduleRecord, error)
	// ListSchedules returns the user's records oldest first.
	ListSchedules(userID string) ([]*models.ScheduleRecord, error)
	// WeekView derives the 7-day calendar starting at weekStart.
	WeekView(userID string, weekStart time.Time) (*models.WeekViewResponse, error)
	// CancelDate adds a date-specific cancellation override to a record.
	CancelDate(userID, id, date string) error
	// DeleteSchedule removes a record entirely.
	DeleteSchedule(userID, id string) error
}

// DefaultScheduleService is the production implementation. Cache, when set,
// memoizes derived week views; a nil Cache disables memoization.
type DefaultScheduleService struct {
	Repo     scheduleRepo.ScheduleRepository
	Bookings bookingRepo.BookingRepository
	Cache    *redis.Client
}
