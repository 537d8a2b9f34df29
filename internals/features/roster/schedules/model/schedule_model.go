package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// WEEKLY SLOT (JSONB)
// =========================================================

type WeeklySlot struct {
	Weekday     int    `json:"weekday"` // 0=Sunday .. 6=Saturday
	StartTime   string `json:"start_time"` // "16:30"
	DurationMin int    `json:"duration_min"`
	Location    string `json:"location"`
}

// =========================================================
// MODEL - one schedule document per student, keyed by student id.
// =========================================================

type ScheduleModel struct {
	// PK = student id (one row per student)
	ScheduleStudentID uuid.UUID `gorm:"column:schedule_student_id;type:uuid;primaryKey" json:"schedule_student_id"`

	ScheduleSlots datatypes.JSONSlice[WeeklySlot] `gorm:"column:schedule_slots;type:jsonb" json:"schedule_slots"`
	ScheduleNote  string                          `gorm:"column:schedule_note;type:text" json:"schedule_note"`

	ScheduleCreatedAt time.Time `gorm:"column:schedule_created_at;not null" json:"schedule_created_at"`
	ScheduleUpdatedAt time.Time `gorm:"column:schedule_updated_at;not null" json:"schedule_updated_at"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}

func (m *ScheduleModel) BeforeSave(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.ScheduleCreatedAt.IsZero() {
		m.ScheduleCreatedAt = now
	}
	m.ScheduleUpdatedAt = now
	return nil
}
