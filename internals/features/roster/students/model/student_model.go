package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL
// =========================================================

type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`

	StudentName       string `gorm:"column:student_name;type:varchar(120);not null;index:ix_student_name" json:"student_name"`
	StudentParentName string `gorm:"column:student_parent_name;type:varchar(120)" json:"student_parent_name"`
	StudentPhone      string `gorm:"column:student_phone;type:varchar(20);index" json:"student_phone"`
	StudentEmail      string `gorm:"column:student_email;type:varchar(120)" json:"student_email"`
	StudentAddress    string `gorm:"column:student_address;type:text" json:"student_address"`

	// Course decides the rate looked up in the pricing table.
	StudentCourse string `gorm:"column:student_course;type:varchar(60);index:ix_student_course" json:"student_course"`

	// External URL only; no upload pipeline here.
	StudentPhotoURL string `gorm:"column:student_photo_url;type:text" json:"student_photo_url"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (StudentModel) TableName() string {
	return "students"
}

// =========================================================
// HOOKS
// =========================================================

func (m *StudentModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	now := time.Now()
	if m.StudentCreatedAt.IsZero() {
		m.StudentCreatedAt = now
	}
	m.StudentUpdatedAt = now
	return nil
}

func (m *StudentModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudentUpdatedAt = time.Now()
	return nil
}
