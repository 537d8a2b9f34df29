package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// SESSION - one taught (or cancelled) class inside a month
// =========================================================

const SessionStatusCancelled = "cancelled"

type Session struct {
	Date     string `json:"date"` // ISO date, yyyy-MM-dd
	Location string `json:"location"`
	Topic    string `json:"topic"`
	Status   string `json:"status,omitempty"` // empty = held; "cancelled" excluded from class_count
}

// CountBillable returns the number of non-cancelled sessions.
func CountBillable(sessions []Session) int {
	n := 0
	for _, s := range sessions {
		if s.Status != SessionStatusCancelled {
			n++
		}
	}
	return n
}

// =========================================================
// ATTENDANCE KEY - typed composite identity
// {studentId}_{MM}_{yyyy}, the sole identity of a month document.
// =========================================================

type AttendanceKey struct {
	StudentID uuid.UUID
	Month     int // 1..12
	Year      int // 4-digit
}

// String is the deterministic projection used as the primary key.
func (k AttendanceKey) String() string {
	return fmt.Sprintf("%s_%02d_%04d", k.StudentID, k.Month, k.Year)
}

// =========================================================
// MODEL - one document per student per calendar month.
// Whole-document rewrite on every mutation (last-writer-wins);
// the natural key is what gives attendance its idempotent upsert.
// =========================================================

type MonthlyAttendanceModel struct {
	// PK - AttendanceKey projection
	MonthlyAttendanceKey string `gorm:"column:monthly_attendance_key;type:varchar(50);primaryKey" json:"monthly_attendance_key"`

	MonthlyAttendanceStudentID uuid.UUID `gorm:"column:monthly_attendance_student_id;type:uuid;not null;index:ix_attendance_student" json:"monthly_attendance_student_id"`
	MonthlyAttendanceMonth     string    `gorm:"column:monthly_attendance_month;type:varchar(2);not null" json:"monthly_attendance_month"` // "01".."12"
	MonthlyAttendanceYear      string    `gorm:"column:monthly_attendance_year;type:varchar(4);not null" json:"monthly_attendance_year"`

	MonthlyAttendanceSessions   datatypes.JSONSlice[Session] `gorm:"column:monthly_attendance_sessions;type:jsonb" json:"monthly_attendance_sessions"`
	MonthlyAttendanceClassCount int                          `gorm:"column:monthly_attendance_class_count;not null;default:0" json:"monthly_attendance_class_count"`

	MonthlyAttendanceCreatedAt time.Time `gorm:"column:monthly_attendance_created_at;not null" json:"monthly_attendance_created_at"`
	MonthlyAttendanceUpdatedAt time.Time `gorm:"column:monthly_attendance_updated_at;not null" json:"monthly_attendance_updated_at"`
}

func (MonthlyAttendanceModel) TableName() string {
	return "monthly_attendance"
}

// Key rebuilds the typed key from the stored columns.
func (m *MonthlyAttendanceModel) Key() AttendanceKey {
	var mo, yr int
	fmt.Sscanf(m.MonthlyAttendanceMonth, "%d", &mo)
	fmt.Sscanf(m.MonthlyAttendanceYear, "%d", &yr)
	return AttendanceKey{StudentID: m.MonthlyAttendanceStudentID, Month: mo, Year: yr}
}

// =========================================================
// HOOKS
// =========================================================

func (m *MonthlyAttendanceModel) BeforeSave(tx *gorm.DB) (err error) {
	// class_count is always derived from the session list on write.
	m.MonthlyAttendanceClassCount = CountBillable(m.MonthlyAttendanceSessions)
	now := time.Now()
	if m.MonthlyAttendanceCreatedAt.IsZero() {
		m.MonthlyAttendanceCreatedAt = now
	}
	m.MonthlyAttendanceUpdatedAt = now
	return nil
}
