package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/attendance"
)

// AttendanceModel is the persistence model for an Attendance record
type AttendanceModel struct {
	BaseColumns
	MemberID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_member_date"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_member_date;index"`
	ClockIn       *time.Time
	ClockOut      *time.Time
	BreakMinutes  int                      `gorm:"not null;default:0"`
	WorkMinutes   int                      `gorm:"not null;default:0"`
	PlanText      string                   `gorm:"type:text"`
	DoneText      string                   `gorm:"type:text"`
	TomorrowText  string                   `gorm:"type:text"`
	Status        attendance.RecordStatus  `gorm:"type:varchar(20);not null"`
	ConfirmStatus attendance.ConfirmStatus `gorm:"type:varchar(20);not null"`
	Notified      bool                     `gorm:"not null;default:false"`
	Location      attendance.Location      `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "attendances"
}

// ToDomain converts the persistence model to a domain Attendance entity
func (m *AttendanceModel) ToDomain() *attendance.Attendance {
	return &attendance.Attendance{
		BaseEntity:    m.BaseColumns.entity(),
		MemberID:      m.MemberID,
		Date:          dateFromColumn(m.Date),
		ClockIn:       m.ClockIn,
		ClockOut:      m.ClockOut,
		BreakMinutes:  m.BreakMinutes,
		WorkMinutes:   m.WorkMinutes,
		PlanText:      m.PlanText,
		DoneText:      m.DoneText,
		TomorrowText:  m.TomorrowText,
		Status:        m.Status,
		ConfirmStatus: m.ConfirmStatus,
		Notified:      m.Notified,
		Location:      m.Location,
	}
}

// FromDomain populates the persistence model from a domain Attendance
func (m *AttendanceModel) FromDomain(e *attendance.Attendance) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.Date = dateColumn(e.Date)
	m.ClockIn = e.ClockIn
	m.ClockOut = e.ClockOut
	m.BreakMinutes = e.BreakMinutes
	m.WorkMinutes = e.WorkMinutes
	m.PlanText = e.PlanText
	m.DoneText = e.DoneText
	m.TomorrowText = e.TomorrowText
	m.Status = e.Status
	m.ConfirmStatus = e.ConfirmStatus
	m.Notified = e.Notified
	m.Location = e.Location
}

// AttendanceModelFromDomain creates a new persistence model from a domain entity
func AttendanceModelFromDomain(e *attendance.Attendance) *AttendanceModel {
	m := &AttendanceModel{}
	m.FromDomain(e)
	return m
}

// WorkScheduleModel is the persistence model for a WorkSchedule entry
type WorkScheduleModel struct {
	BaseColumns
	MemberID  uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_member_date"`
	Date      time.Time           `gorm:"type:date;not null;uniqueIndex:idx_schedule_member_date;index"`
	DayOff    bool                `gorm:"not null;default:false"`
	StartTime string              `gorm:"type:varchar(5)"`
	EndTime   string              `gorm:"type:varchar(5)"`
	Location  attendance.Location `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (WorkScheduleModel) TableName() string {
	return "work_schedules"
}

// ToDomain converts the persistence model to a domain WorkSchedule entity
func (m *WorkScheduleModel) ToDomain() *attendance.WorkSchedule {
	return &attendance.WorkSchedule{
		BaseEntity: m.BaseColumns.entity(),
		MemberID:   m.MemberID,
		Date:       dateFromColumn(m.Date),
		DayOff:     m.DayOff,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Location:   m.Location,
	}
}

// FromDomain populates the persistence model from a domain WorkSchedule
func (m *WorkScheduleModel) FromDomain(e *attendance.WorkSchedule) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.Date = dateColumn(e.Date)
	m.DayOff = e.DayOff
	m.StartTime = e.StartTime
	m.EndTime = e.EndTime
	m.Location = e.Location
}

// WorkScheduleModelFromDomain creates a new persistence model from a domain entity
func WorkScheduleModelFromDomain(e *attendance.WorkSchedule) *WorkScheduleModel {
	m := &WorkScheduleModel{}
	m.FromDomain(e)
	return m
}
