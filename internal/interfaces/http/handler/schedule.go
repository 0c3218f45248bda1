package handler

import (
	"github.com/gin-gonic/gin"

	attendanceapp "github.com/hrm/backend/internal/application/attendance"
	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// ScheduleHandler serves work schedule and calendar endpoints
type ScheduleHandler struct {
	BaseHandler
	schedules *attendanceapp.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(schedules *attendanceapp.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// RegisterRoutes registers schedule routes
func (h *ScheduleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/schedules")
	{
		group.POST("/members/:member_id", middleware.Require("schedules", "submit"), h.Submit)
		group.GET("/members/:member_id", middleware.Require("schedules", "read"), h.MemberMonth)
		group.GET("/calendar", middleware.Require("calendar", "read"), h.Calendar)
		group.GET("/unsubmitted", middleware.Require("schedules", "report"), h.Unsubmitted)
	}
}

type scheduleEntryRequest struct {
	Date      string `json:"date" binding:"required"`
	DayOff    bool   `json:"day_off"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

type submitScheduleRequest struct {
	Entries []scheduleEntryRequest `json:"entries" binding:"required,min=1"`
}

// Submit upserts a batch of schedule entries for a member
func (h *ScheduleHandler) Submit(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	var req submitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid schedule payload")
		return
	}

	input := attendanceapp.SubmitScheduleInput{MemberID: memberID}
	for _, entry := range req.Entries {
		date, err := valueobject.ParseDate(entry.Date)
		if err != nil {
			h.BadRequest(c, "entry dates must be YYYY-MM-DD")
			return
		}
		input.Entries = append(input.Entries, attendanceapp.ScheduleEntryInput{
			Date:      date,
			DayOff:    entry.DayOff,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Location:  attendance.Location(entry.Location),
		})
	}

	schedules, err := h.schedules.Submit(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, schedules)
}

// MemberMonth returns one member's schedule rows for a month
func (h *ScheduleHandler) MemberMonth(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}

	schedules, err := h.schedules.MemberMonth(c.Request.Context(), memberID, month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, schedules)
}

// Calendar returns the merged schedule/attendance/assignment view over
// an inclusive date range
func (h *ScheduleHandler) Calendar(c *gin.Context) {
	from, err := valueobject.ParseDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "from must be YYYY-MM-DD")
		return
	}
	to, err := valueobject.ParseDate(c.Query("to"))
	if err != nil {
		h.BadRequest(c, "to must be YYYY-MM-DD")
		return
	}
	if to.Before(from) {
		h.BadRequest(c, "to cannot be before from")
		return
	}

	calendar, err := h.schedules.Calendar(c.Request.Context(), from, to)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, calendar)
}

// Unsubmitted reports members with no schedule for next week, optionally
// announcing the list to chat
func (h *ScheduleHandler) Unsubmitted(c *gin.Context) {
	announce := c.Query("announce") == "true"
	report, err := h.schedules.Unsubmitted(c.Request.Context(), announce)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, report)
}
