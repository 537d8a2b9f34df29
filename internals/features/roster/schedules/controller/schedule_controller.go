package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "tutorbill_backend/internals/features/roster/schedules/dto"
	scheduleModel "tutorbill_backend/internals/features/roster/schedules/model"
	helper "tutorbill_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type ScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db, Validate: validator.New()}
}

// =======================================================
// UPSERT (one schedule document per student)
// PUT /api/a/schedules/:studentId
// =======================================================

func (ctl *ScheduleController) Upsert(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var in dto.ScheduleUpsertDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := dto.ScheduleUpsertDTOToModel(studentID, in)
	if err := ctl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "schedule_student_id"}},
			UpdateAll: true,
		}).
		Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "schedule saved", dto.ToScheduleResponse(m))
}

// =======================================================
// GET
// GET /api/a/schedules/:studentId
// =======================================================

func (ctl *ScheduleController) Get(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var m scheduleModel.ScheduleModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "schedule_student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "schedule not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToScheduleResponse(m))
}

// =======================================================
// DELETE
// DELETE /api/a/schedules/:studentId
// =======================================================

func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Delete(&scheduleModel.ScheduleModel{}, "schedule_student_id = ?", studentID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "schedule not found")
	}

	return helper.JsonOK(c, "schedule deleted", nil)
}
