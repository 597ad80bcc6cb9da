package handlers

import (
	"net/http"
	"net/url"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"skillup/internal/models"
	"skillup/internal/services"
)

type DashboardHandler struct {
	goals GoalService
	log   *zap.Logger
}

func NewDashboardHandler(goals GoalService, log *zap.Logger) *DashboardHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardHandler{goals: goals, log: log}
}

type dashboardResponse struct {
	ReferenceDate  string              `json:"reference_date"`
	Stats          services.Stats      `json:"stats"`
	RecentActivity []services.Activity `json:"recent_activity"`
}

// Get computes the profile statistics. The client may pass its own calendar
// day as local_date (YYYY-MM-DD) and its IANA zone as tz; days are grouped in
// tz, or in the server location when tz is absent.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	today, err := h.referenceDay(r.URL.Query())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	stats, activity, err := h.goals.Dashboard(r.Context(), uid, today)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if activity == nil {
		activity = []services.Activity{}
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		ReferenceDate:  today.Format(dateLayout),
		Stats:          stats,
		RecentActivity: activity,
	})
}

func (h *DashboardHandler) referenceDay(q url.Values) (time.Time, error) {
	now := h.goals.Today()
	loc := now.Location()
	if tz := q.Get("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, errInvalidTimezone
		}
		loc = l
	}
	v := q.Get("local_date")
	if v == "" {
		return models.DateOf(now.In(loc)), nil
	}
	d, err := time.ParseInLocation(dateLayout, v, loc)
	if err != nil {
		return time.Time{}, errInvalidLocalDate
	}
	return d, nil
}
