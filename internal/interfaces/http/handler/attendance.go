package handler

import (
	"github.com/gin-gonic/gin"

	attendanceapp "github.com/hrm/backend/internal/application/attendance"
	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// AttendanceHandler serves clock-in/out, correction and review endpoints
type AttendanceHandler struct {
	BaseHandler
	attendance *attendanceapp.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendance *attendanceapp.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// RegisterRoutes registers attendance routes
func (h *AttendanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/attendance")
	{
		group.POST("/clock-in", middleware.Require("attendance", "clock"), h.ClockIn)
		group.POST("/clock-out", middleware.Require("attendance", "clock"), h.ClockOut)
		group.GET("/today", middleware.Require("attendance", "clock"), h.Today)
		group.GET("/members/:member_id", middleware.Require("attendance", "read"), h.Month)
		group.PUT("/:id/correction", middleware.Require("attendance", "correct"), h.Correct)
		group.PUT("/:id/confirm", middleware.Require("attendance", "confirm"), h.Confirm)
		group.PUT("/members/:member_id/absent", middleware.Require("attendance", "confirm"), h.MarkAbsent)
	}
}

type clockInRequest struct {
	Plan     string `json:"plan"`
	Location string `json:"location"`
}

// ClockIn records the caller's clock-in for today
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	var req clockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid clock-in payload")
		return
	}

	record, err := h.attendance.ClockIn(c.Request.Context(), attendanceapp.ClockInInput{
		MemberID: currentSession(c).MemberID,
		Plan:     req.Plan,
		Location: attendance.Location(req.Location),
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, record)
}

type clockOutRequest struct {
	BreakMinutes int    `json:"break_minutes"`
	Done         string `json:"done"`
	Tomorrow     string `json:"tomorrow"`
}

// ClockOut records the caller's clock-out for today
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	var req clockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid clock-out payload")
		return
	}

	record, err := h.attendance.ClockOut(c.Request.Context(), attendanceapp.ClockOutInput{
		MemberID:     currentSession(c).MemberID,
		BreakMinutes: req.BreakMinutes,
		Done:         req.Done,
		Tomorrow:     req.Tomorrow,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, record)
}

// Today returns the caller's attendance row for today, null when absent
func (h *AttendanceHandler) Today(c *gin.Context) {
	record, err := h.attendance.Today(c.Request.Context(), currentSession(c).MemberID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, record)
}

// Month returns one member's attendance for a month with display status
func (h *AttendanceHandler) Month(c *gin.Context) {
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

	days, err := h.attendance.Month(c.Request.Context(), memberID, month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, days)
}

type correctRequest struct {
	ClockIn      *string `json:"clock_in"`
	ClockOut     *string `json:"clock_out"`
	BreakMinutes *int    `json:"break_minutes"`
}

// Correct resubmits clock values for a record. Owners correct their own
// rows; admins and managers correct anyone's.
func (h *AttendanceHandler) Correct(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attendance ID")
		return
	}
	var req correctRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid correction payload")
		return
	}

	session := currentSession(c)
	record, err := h.attendance.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if record.MemberID != session.MemberID && !session.Role.CanManage() {
		h.Forbidden(c)
		return
	}

	record, err = h.attendance.Correct(c.Request.Context(), attendanceapp.CorrectInput{
		AttendanceID: id,
		ClockIn:      req.ClockIn,
		ClockOut:     req.ClockOut,
		BreakMinutes: req.BreakMinutes,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, record)
}

type markAbsentRequest struct {
	Date string `json:"date" binding:"required"`
}

// MarkAbsent records a member's day as an absence
func (h *AttendanceHandler) MarkAbsent(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	var req markAbsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "date is required")
		return
	}
	date, err := valueobject.ParseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	record, err := h.attendance.MarkAbsent(c.Request.Context(), attendanceapp.MarkAbsentInput{
		MemberID: memberID,
		Date:     date,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, record)
}

type confirmRequest struct {
	Status string `json:"status" binding:"required"`
}

// Confirm sets the review state of a record
func (h *AttendanceHandler) Confirm(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attendance ID")
		return
	}
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "status is required")
		return
	}

	record, err := h.attendance.Confirm(c.Request.Context(), attendanceapp.ConfirmInput{
		AttendanceID: id,
		Status:       attendance.ConfirmStatus(req.Status),
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, record)
}
