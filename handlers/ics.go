package handlers

import (
	"fmt"
	"net/http"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
)

// GetBusyTimelineICS handles GET /api/availability/:userId/ics, serving the
// busy timeline as an iCalendar feed so external calendar clients can
// overlay it. Event UIDs and timestamps derive from the intervals
// themselves, keeping the feed reproducible for the same inputs.
func (h *SchedulingHandler) GetBusyTimelineICS(c *gin.Context) {
	userID := c.Param("userId")
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	busy, err := h.Svc.BusyTimeline(c.Request.Context(), userID, window)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	for _, iv := range busy {
		ev := cal.AddEvent(fmt.Sprintf("busy-%s-%d@calendra", userID, iv.Start.Unix()))
		ev.SetDtStampTime(iv.Start)
		ev.SetStartAt(iv.Start)
		ev.SetEndAt(iv.End)
		ev.SetSummary("Busy")
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}
