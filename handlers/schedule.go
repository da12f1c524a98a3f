package handlers

import (
	"errors"
	"net/http"
	"time"

	"caregrid/middleware"
	"caregrid/models"
	"caregrid/services/schedule"
	"caregrid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the manual-entry and calendar endpoints.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// ManualScheduleRequest is the form-entry payload. Day names and times are
// free-form and run through the same normalizer as every other channel, but
// unlike the extraction channels a manual entry that fails normalization is
// rejected outright - the person is there to fix it.
type ManualScheduleRequest struct {
	Title        string                            `json:"title"`
	WorkingDays  []string                          `json:"workingDays" binding:"required"`
	DaySchedules map[string]models.RawDayTimeRange `json:"daySchedules" binding:"required"`
	Location     string                            `json:"location"`
	Notes        string                            `json:"notes"`
	Week         string                            `json:"week"`      // "current" or "next"
	WeekStart    string                            `json:"weekStart"` // YYYY-MM-DD, wins over Week
}

// CreateScheduleHandler validates a manually entered schedule and saves it.
func (h *ScheduleHandler) CreateScheduleHandler(c *gin.Context) {
	userID := middleware.UserID(c)

	var req ManualScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	draft := &models.ScheduleDraft{
		Title:        req.Title,
		Location:     req.Location,
		Notes:        req.Notes,
		DaySchedules: make(map[models.DayCode]models.DayTimeRange),
	}
	seen := make(map[models.DayCode]bool, len(req.WorkingDays))
	for _, name := range req.WorkingDays {
		code, err := schedule.NormalizeDay(name)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Unrecognized day of week", name)
			return
		}
		// Working days are a set. "Monday" and "monday" both normalize to
		// MON, so the collision is only visible after normalization.
		if seen[code] {
			utils.JSONError(c, http.StatusBadRequest, "Duplicate day of week", name)
			return
		}
		seen[code] = true
		raw, ok := req.DaySchedules[name]
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "Missing time range for day", name)
			return
		}
		from, errFrom := schedule.NormalizeTime(raw.TimeFrom)
		to, errTo := schedule.NormalizeTime(raw.TimeTo)
		if errFrom != nil || errTo != nil || to <= from {
			utils.JSONError(c, http.StatusBadRequest, "Invalid time range for day", name)
			return
		}
		draft.WorkingDays = append(draft.WorkingDays, code)
		draft.DaySchedules[code] = models.DayTimeRange{TimeFrom: from, TimeTo: to}
	}

	sig, err := weekSignalFrom(req.WeekStart, req.Week)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid week signal", err.Error())
		return
	}
	draft.WeekAnchor = schedule.ResolveWeekAnchor(sig)

	record, err := h.Service.SaveDraft(userID, draft)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not save schedule", err.Error())
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListSchedulesHandler returns all of the caller's schedules.
func (h *ScheduleHandler) ListSchedulesHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	records, err := h.Service.ListSchedules(userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not list schedules", err.Error())
		return
	}
	if records == nil {
		records = []*models.ScheduleRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// GetScheduleHandler returns one schedule by id.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	record, err := h.Service.GetSchedule(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Schedule not found", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Could not fetch schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, record)
}

// WeekViewHandler derives the 7-day calendar. The target week comes from
// ?start=YYYY-MM-DD (snapped back to its Monday) or ?week=current|next;
// an explicit start wins.
func (h *ScheduleHandler) WeekViewHandler(c *gin.Context) {
	userID := middleware.UserID(c)

	sig, err := weekSignalFrom(c.Query("start"), c.Query("week"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid week signal", err.Error())
		return
	}
	weekStart := schedule.ResolveWeekAnchor(sig)

	view, err := h.Service.WeekView(userID, weekStart)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not derive week", err.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}

// CancelDateHandler marks a single date as cancelled on a schedule.
func (h *ScheduleHandler) CancelDateHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	id := c.Param("id")
	date := c.Param("date")

	if err := h.Service.CancelDate(userID, id, date); err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Schedule not found", id)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Could not cancel date", err.Error())
		return
	}
	utils.GetLogger().Debug("date cancelled via API",
		zap.String("scheduleId", id), zap.String("date", date))
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "date": date})
}

// DeleteScheduleHandler removes a schedule entirely.
func (h *ScheduleHandler) DeleteScheduleHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	id := c.Param("id")

	if err := h.Service.DeleteSchedule(userID, id); err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Schedule not found", id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Could not delete schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

// weekSignalFrom builds the WeekSignal from transport values, preserving the
// documented precedence: explicit date over offset token.
func weekSignalFrom(explicitDate, offsetToken string) (schedule.WeekSignal, error) {
	if explicitDate != "" {
		t, err := time.Parse(schedule.ISODateLayout, explicitDate)
		if err != nil {
			return schedule.WeekSignal{}, err
		}
		return schedule.WeekSignal{ExplicitDate: &t}, nil
	}
	switch offsetToken {
	case "", string(schedule.WeekOffsetCurrent):
		return schedule.WeekSignal{Offset: schedule.WeekOffsetCurrent}, nil
	case string(schedule.WeekOffsetNext):
		return schedule.WeekSignal{Offset: schedule.WeekOffsetNext}, nil
	}
	return schedule.WeekSignal{}, errors.New("week must be 'current' or 'next'")
}
