package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	studentModel "tutorbill_backend/internals/features/roster/students/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENTS - DTO
////////////////////////////////////////////////////////////////////////////////

type StudentCreateDTO struct {
	StudentName       string `json:"student_name" validate:"required,min=1,max=120"`
	StudentParentName string `json:"student_parent_name" validate:"max=120"`
	StudentPhone      string `json:"student_phone" validate:"max=20"`
	StudentEmail      string `json:"student_email" validate:"omitempty,email"`
	StudentAddress    string `json:"student_address"`
	StudentCourse     string `json:"student_course" validate:"max=60"`
	StudentPhotoURL   string `json:"student_photo_url" validate:"omitempty,url"`
}

// Update (partial)
type StudentUpdateDTO struct {
	StudentName       *string `json:"student_name,omitempty" validate:"omitempty,min=1,max=120"`
	StudentParentName *string `json:"student_parent_name,omitempty" validate:"omitempty,max=120"`
	StudentPhone      *string `json:"student_phone,omitempty" validate:"omitempty,max=20"`
	StudentEmail      *string `json:"student_email,omitempty" validate:"omitempty,email"`
	StudentAddress    *string `json:"student_address,omitempty"`
	StudentCourse     *string `json:"student_course,omitempty" validate:"omitempty,max=60"`
	StudentPhotoURL   *string `json:"student_photo_url,omitempty" validate:"omitempty,url"`
}

type StudentResponse struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentName       string    `json:"student_name"`
	StudentParentName string    `json:"student_parent_name"`
	StudentPhone      string    `json:"student_phone"`
	StudentEmail      string    `json:"student_email"`
	StudentAddress    string    `json:"student_address"`
	StudentCourse     string    `json:"student_course"`
	StudentPhotoURL   string    `json:"student_photo_url"`
	StudentCreatedAt  time.Time `json:"student_created_at"`
	StudentUpdatedAt  time.Time `json:"student_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToStudentResponse(m studentModel.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:         m.StudentID,
		StudentName:       m.StudentName,
		StudentParentName: m.StudentParentName,
		StudentPhone:      m.StudentPhone,
		StudentEmail:      m.StudentEmail,
		StudentAddress:    m.StudentAddress,
		StudentCourse:     m.StudentCourse,
		StudentPhotoURL:   m.StudentPhotoURL,
		StudentCreatedAt:  m.StudentCreatedAt,
		StudentUpdatedAt:  m.StudentUpdatedAt,
	}
}

func ToStudentResponses(ms []studentModel.StudentModel) []StudentResponse {
	out := make([]StudentResponse, len(ms))
	for i := range ms {
		out[i] = ToStudentResponse(ms[i])
	}
	return out
}

func StudentCreateDTOToModel(d StudentCreateDTO) studentModel.StudentModel {
	return studentModel.StudentModel{
		StudentName:       strings.TrimSpace(d.StudentName),
		StudentParentName: strings.TrimSpace(d.StudentParentName),
		StudentPhone:      strings.TrimSpace(d.StudentPhone),
		StudentEmail:      strings.TrimSpace(d.StudentEmail),
		StudentAddress:    strings.TrimSpace(d.StudentAddress),
		StudentCourse:     strings.TrimSpace(d.StudentCourse),
		StudentPhotoURL:   strings.TrimSpace(d.StudentPhotoURL),
	}
}

// ApplyStudentUpdate patches only the provided fields.
func ApplyStudentUpdate(m *studentModel.StudentModel, d StudentUpdateDTO) {
	if d.StudentName != nil {
		m.StudentName = strings.TrimSpace(*d.StudentName)
	}
	if d.StudentParentName != nil {
		m.StudentParentName = strings.TrimSpace(*d.StudentParentName)
	}
	if d.StudentPhone != nil {
		m.StudentPhone = strings.TrimSpace(*d.StudentPhone)
	}
	if d.StudentEmail != nil {
		m.StudentEmail = strings.TrimSpace(*d.StudentEmail)
	}
	if d.StudentAddress != nil {
		m.StudentAddress = strings.TrimSpace(*d.StudentAddress)
	}
	if d.StudentCourse != nil {
		m.StudentCourse = strings.TrimSpace(*d.StudentCourse)
	}
	if d.StudentPhotoURL != nil {
		m.StudentPhotoURL = strings.TrimSpace(*d.StudentPhotoURL)
	}
}
