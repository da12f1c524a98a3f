package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"caregrid/models"
	"caregrid/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaveDraft persists a validated draft as a new schedule record. The legacy
// single-range fields are derived here as the envelope of the per-day map
// (earliest start, latest end) so old consumers keep seeing one range; they
// are never read back as a source of truth when the per-day map is present.
func (s *DefaultScheduleService) SaveDraft(userID string, draft *models.ScheduleDraft) (*models.ScheduleRecord, error) {
	logger := utils.GetLogger()

	if len(draft.WorkingDays) == 0 {
		return nil, ErrEmptyWorkingDays
	}
	// Working days are a set; collapse duplicates here since this is the last
	// gate before persistence, whatever channel produced the draft.
	seen := make(map[models.DayCode]bool, len(draft.WorkingDays))
	days := make([]models.DayCode, 0, len(draft.WorkingDays))
	for _, day := range draft.WorkingDays {
		if seen[day] {
			continue
		}
		seen[day] = true
		r, ok := draft.DaySchedules[day]
		if !ok || !ValidRange(r) {
			return nil, fmt.Errorf("%w: day %s has no valid range", ErrInvalidTimeFormat, day)
		}
		days = append(days, day)
	}
	draft.WorkingDays = days

	legacyFrom, legacyTo := envelope(draft)
	record := &models.ScheduleRecord{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          draft.Title,
		WorkingDays:    draft.WorkingDays,
		DaySchedules:   draft.DaySchedules,
		Location:       draft.Location,
		Notes:          draft.Notes,
		WeekAnchor:     draft.WeekAnchor,
		LegacyTimeFrom: legacyFrom,
		LegacyTimeTo:   legacyTo,
		DeletedDates:   []string{},
	}

	saved, err := s.Repo.Save(record)
	if err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	s.invalidateWeekViews(userID)
	logger.Info("schedule saved",
		zap.String("userId", userID),
		zap.String("scheduleId", saved.ID),
		zap.Int("workingDays", len(saved.WorkingDays)))
	return saved, nil
}

// envelope derives the backward-compatible single range from the per-day map.
func envelope(draft *models.ScheduleDraft) (string, string) {
	var from, to string
	for _, day := range draft.WorkingDays {
		r := draft.DaySchedules[day]
		if from == "" || r.TimeFrom < from {
			from = r.TimeFrom
		}
		if to == "" || r.TimeTo > to {
			to = r.TimeTo
		}
	}
	return from, to
}

// GetSchedule fetches one record owned by the user.
func (s *DefaultScheduleService) GetSchedule(userID, id string) (*models.ScheduleRecord, error) {
	record, err := s.Repo.GetByID(userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if record == nil {
		return nil, ErrScheduleNotFound
	}
	return record, nil
}

// ListSchedules returns the user's records oldest first.
func (s *DefaultScheduleService) ListSchedules(userID string) ([]*models.ScheduleRecord, error) {
	records, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return records, nil
}

// weekViewCacheTTL bounds staleness from writes this service does not see,
// such as childcare bookings confirmed by the booking subsystem.
const weekViewCacheTTL = 5 * time.Minute

func weekViewCacheKey(userID string, weekStart time.Time) string {
	return fmt.Sprintf("weekview:%s:%s", userID, weekStart.Format(ISODateLayout))
}

// invalidateWeekViews drops every cached week view for the user. Called on
// each write path so a re-read never serves a view derived from stale records.
func (s *DefaultScheduleService) invalidateWeekViews(userID string) {
	if s.Cache == nil {
		return
	}
	ctx := context.Background()
	iter := s.Cache.Scan(ctx, 0, "weekview:"+userID+":*", 0).Iterator()
	for iter.Next(ctx) {
		s.Cache.Del(ctx, iter.Val())
	}
}

// WeekView derives the user's calendar for the week starting at weekStart.
// Records reach the deriver in creation order (oldest first), which is the
// tie-break for dates covered by more than one schedule; the deriver itself
// never reorders.
func (s *DefaultScheduleService) WeekView(userID string, weekStart time.Time) (*models.WeekViewResponse, error) {
	ctx := context.Background()
	cacheKey := weekViewCacheKey(userID, weekStart)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var view models.WeekViewResponse
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return &view, nil
			}
			// Unreadable cache entry, fall through to re-derivation.
		}
	}

	records, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = weekStart.AddDate(0, 0, i).Format(ISODateLayout)
	}
	childcare, err := s.Bookings.ChildcareMap(userID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch childcare bookings: %w", err)
	}

	view := &models.WeekViewResponse{
		WeekStart: weekStart.Format(ISODateLayout),
		Days:      DeriveWeek(records, weekStart, childcare),
	}
	if s.Cache != nil {
		if viewBytes, err := json.Marshal(view); err == nil {
			s.Cache.Set(ctx, cacheKey, viewBytes, weekViewCacheTTL)
		}
	}
	return view, nil
}

// CancelDate marks one date as not occurring on an otherwise-recurring
// schedule. The date must be a valid ISO date; ownership is checked before
// the override is appended.
func (s *DefaultScheduleService) CancelDate(userID, id, date string) error {
	if _, err := time.Parse(ISODateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	record, err := s.Repo.GetByID(userID, id)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if record == nil {
		return ErrScheduleNotFound
	}
	if err := s.Repo.AppendDeletedDate(id, date); err != nil {
		return fmt.Errorf("failed to cancel date: %w", err)
	}
	s.invalidateWeekViews(userID)
	utils.GetLogger().Info("schedule date cancelled",
		zap.String("scheduleId", id), zap.String("date", date))
	return nil
}

// DeleteSchedule removes a record entirely.
func (s *DefaultScheduleService) DeleteSchedule(userID, id string) error {
	record, err := s.Repo.GetByID(userID, id)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if record == nil {
		return ErrScheduleNotFound
	}
	if err := s.Repo.Delete(userID, id); err != nil {
		return err
	}
	s.invalidateWeekViews(userID)
	return nil
}
