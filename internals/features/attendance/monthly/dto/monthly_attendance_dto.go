package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	attendanceModel "tutorbill_backend/internals/features/attendance/monthly/model"
)

////////////////////////////////////////////////////////////////////////////////
// MONTHLY ATTENDANCE - DTO
////////////////////////////////////////////////////////////////////////////////

// Upsert replaces the whole month document (last-writer-wins).
type AttendanceUpsertDTO struct {
	StudentID uuid.UUID                 `json:"student_id" validate:"required"`
	Month     int                       `json:"month" validate:"required,min=1,max=12"`
	Year      int                       `json:"year" validate:"required,min=1000,max=9999"`
	Sessions  []attendanceModel.Session `json:"sessions" validate:"dive"`
}

type SessionAppendDTO struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Location string `json:"location"`
	Topic    string `json:"topic"`
}

type AttendanceResponse struct {
	Key        string                    `json:"key"`
	StudentID  uuid.UUID                 `json:"student_id"`
	Month      string                    `json:"month"`
	Year       string                    `json:"year"`
	Sessions   []attendanceModel.Session `json:"sessions"`
	ClassCount int                       `json:"class_count"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToAttendanceResponse(m attendanceModel.MonthlyAttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		Key:        m.MonthlyAttendanceKey,
		StudentID:  m.MonthlyAttendanceStudentID,
		Month:      m.MonthlyAttendanceMonth,
		Year:       m.MonthlyAttendanceYear,
		Sessions:   m.MonthlyAttendanceSessions,
		ClassCount: m.MonthlyAttendanceClassCount,
		CreatedAt:  m.MonthlyAttendanceCreatedAt,
		UpdatedAt:  m.MonthlyAttendanceUpdatedAt,
	}
}

func ToAttendanceResponses(ms []attendanceModel.MonthlyAttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, len(ms))
	for i := range ms {
		out[i] = ToAttendanceResponse(ms[i])
	}
	return out
}

func AttendanceUpsertDTOToModel(d AttendanceUpsertDTO) attendanceModel.MonthlyAttendanceModel {
	key := attendanceModel.AttendanceKey{StudentID: d.StudentID, Month: d.Month, Year: d.Year}
	sessions := d.Sessions
	if sessions == nil {
		sessions = []attendanceModel.Session{}
	}
	return attendanceModel.MonthlyAttendanceModel{
		MonthlyAttendanceKey:       key.String(),
		MonthlyAttendanceStudentID: d.StudentID,
		MonthlyAttendanceMonth:     fmt.Sprintf("%02d", d.Month),
		MonthlyAttendanceYear:      fmt.Sprintf("%04d", d.Year),
		MonthlyAttendanceSessions:  datatypes.NewJSONSlice(sessions),
		// class_count derived in the BeforeSave hook
	}
}
