package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	scheduleModel "tutorbill_backend/internals/features/roster/schedules/model"
)

////////////////////////////////////////////////////////////////////////////////
// SCHEDULES - DTO
////////////////////////////////////////////////////////////////////////////////

type ScheduleUpsertDTO struct {
	Slots []scheduleModel.WeeklySlot `json:"slots" validate:"dive"`
	Note  string                     `json:"note"`
}

type ScheduleResponse struct {
	StudentID uuid.UUID                  `json:"student_id"`
	Slots     []scheduleModel.WeeklySlot `json:"slots"`
	Note      string                     `json:"note"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToScheduleResponse(m scheduleModel.ScheduleModel) ScheduleResponse {
	slots := []scheduleModel.WeeklySlot(m.ScheduleSlots)
	if slots == nil {
		slots = []scheduleModel.WeeklySlot{}
	}
	return ScheduleResponse{
		StudentID: m.ScheduleStudentID,
		Slots:     slots,
		Note:      m.ScheduleNote,
		UpdatedAt: m.ScheduleUpdatedAt,
	}
}

func ScheduleUpsertDTOToModel(studentID uuid.UUID, d ScheduleUpsertDTO) scheduleModel.ScheduleModel {
	slots := d.Slots
	if slots == nil {
		slots = []scheduleModel.WeeklySlot{}
	}
	return scheduleModel.ScheduleModel{
		ScheduleStudentID: studentID,
		ScheduleSlots:     datatypes.NewJSONSlice(slots),
		ScheduleNote:      d.Note,
	}
}
