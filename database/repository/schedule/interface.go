package scheduleRepo

import (
	"caregrid/models"
)

// ScheduleRepository defines the data access methods for persisted weekly
// schedule records. Records are keyed by (userId, id); Save upserts by id.
type ScheduleRepository interface {
	// GetByID retrieves one schedule owned by the user, or nil when absent.
	GetByID(userID, id string) (*models.ScheduleRecord, error)
	// ListByUser retrieves every schedule for a user, oldest first.
	ListByUser(userID string) ([]*models.ScheduleRecord, error)
	// Save upserts a schedule record by id and returns the stored copy.
	Save(record *models.ScheduleRecord) (*models.ScheduleRecord, error)
	// AppendDeletedDate adds a date-specific cancellation override. The
	// update is atomic per record and idempotent per date.
	AppendDeletedDate(id, date string) error
	// Delete removes a schedule owned by the user.
	Delete(userID, id string) error
}
