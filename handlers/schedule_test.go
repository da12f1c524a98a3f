package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caregrid/middleware"
	"caregrid/models"
	"caregrid/services/schedule"
)

// stubScheduleService records the draft the handler hands over.
type stubScheduleService struct {
	saved *models.ScheduleDraft
}

func (s *stubScheduleService) SaveDraft(userID string, draft *models.ScheduleDraft) (*models.ScheduleRecord, error) {
	s.saved = draft
	return &models.ScheduleRecord{
		ID:           "rec-1",
		UserID:       userID,
		WorkingDays:  draft.WorkingDays,
		DaySchedules: draft.DaySchedules,
	}, nil
}

func (s *stubScheduleService) GetSchedule(userID, id string) (*models.ScheduleRecord, error) {
	return nil, schedule.ErrScheduleNotFound
}

func (s *stubScheduleService) ListSchedules(userID string) ([]*models.ScheduleRecord, error) {
	return nil, nil
}

func (s *stubScheduleService) WeekView(userID string, weekStart time.Time) (*models.WeekViewResponse, error) {
	return &models.WeekViewResponse{}, nil
}

func (s *stubScheduleService) CancelDate(userID, id, date string) error { return nil }

func (s *stubScheduleService) DeleteSchedule(userID, id string) error { return nil }

func newTestRouter(svc schedule.ScheduleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewScheduleHandler(svc)
	router.POST("/api/schedules", func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, "user-1")
	}, h.CreateScheduleHandler)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateScheduleHandler_NormalizesManualEntry(t *testing.T) {
	svc := &stubScheduleService{}
	router := newTestRouter(svc)

	w := postJSON(router, "/api/schedules", `{
		"workingDays": ["Monday", "wed"],
		"daySchedules": {
			"Monday": {"timeFrom": "9am", "timeTo": "5pm"},
			"wed":    {"timeFrom": "07:30", "timeTo": "18:15"}
		}
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.saved)
	assert.Equal(t, []models.DayCode{models.DayMonday, models.DayWednesday}, svc.saved.WorkingDays)
	assert.Equal(t, models.DayTimeRange{TimeFrom: "09:00", TimeTo: "17:00"}, svc.saved.DaySchedules[models.DayMonday])
}

func TestCreateScheduleHandler_RejectsDuplicateDays(t *testing.T) {
	// "Monday" and "monday" are distinct JSON keys but the same day once
	// normalized, so the entry is rejected rather than stored twice.
	svc := &stubScheduleService{}
	router := newTestRouter(svc)

	w := postJSON(router, "/api/schedules", `{
		"workingDays": ["Monday", "monday"],
		"daySchedules": {
			"Monday": {"timeFrom": "09:00", "timeTo": "17:00"},
			"monday": {"timeFrom": "09:00", "timeTo": "17:00"}
		}
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.saved)
}

func TestCreateScheduleHandler_RejectsBadTimeRange(t *testing.T) {
	svc := &stubScheduleService{}
	router := newTestRouter(svc)

	w := postJSON(router, "/api/schedules", `{
		"workingDays": ["Monday"],
		"daySchedules": {
			"Monday": {"timeFrom": "5pm", "timeTo": "9am"}
		}
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.saved)
}
