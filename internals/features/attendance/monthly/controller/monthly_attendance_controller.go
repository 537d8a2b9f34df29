package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "tutorbill_backend/internals/features/attendance/monthly/dto"
	attendanceModel "tutorbill_backend/internals/features/attendance/monthly/model"
	helper "tutorbill_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type AttendanceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Validate: validator.New()}
}

func parseMonthYearQuery(c *fiber.Ctx) (int, int, error) {
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "month must be 1..12")
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil || year < 1000 || year > 9999 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year must be a 4-digit year")
	}
	return month, year, nil
}

// =======================================================
// UPSERT (whole-month rewrite)
// PUT /api/a/attendance
// The composite key gives attendance its natural dedup: the
// same student+month+year always lands on the same row.
// =======================================================

func (ctl *AttendanceController) Upsert(c *fiber.Ctx) error {
	var in dto.AttendanceUpsertDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := dto.AttendanceUpsertDTOToModel(in)

	if err := ctl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "monthly_attendance_key"}},
			UpdateAll: true,
		}).
		Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "attendance saved", dto.ToAttendanceResponse(m))
}

// =======================================================
// GET ONE MONTH
// GET /api/a/attendance/:studentId?month=&year=
// =======================================================

func (ctl *AttendanceController) GetMonth(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	month, year, err := parseMonthYearQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	key := attendanceModel.AttendanceKey{StudentID: studentID, Month: month, Year: year}
	var m attendanceModel.MonthlyAttendanceModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "monthly_attendance_key = ?", key.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "no attendance for this month")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToAttendanceResponse(m))
}

// =======================================================
// LIST MONTHS FOR A STUDENT
// GET /api/a/attendance/:studentId/months
// =======================================================

func (ctl *AttendanceController) ListMonths(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var rows []attendanceModel.MonthlyAttendanceModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("monthly_attendance_student_id = ?", studentID).
		Order("monthly_attendance_year DESC, monthly_attendance_month DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToAttendanceResponses(rows))
}

// =======================================================
// APPEND ONE SESSION
// POST /api/a/attendance/:studentId/sessions?month=&year=
// Reads, appends, rewrites the whole document.
// =======================================================

func (ctl *AttendanceController) AppendSession(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	month, year, err := parseMonthYearQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.SessionAppendDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	key := attendanceModel.AttendanceKey{StudentID: studentID, Month: month, Year: year}
	var m attendanceModel.MonthlyAttendanceModel
	err = ctl.DB.WithContext(c.UserContext()).
		First(&m, "monthly_attendance_key = ?", key.String()).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = dto.AttendanceUpsertDTOToModel(dto.AttendanceUpsertDTO{
			StudentID: studentID, Month: month, Year: year,
		})
	}

	sessions := append([]attendanceModel.Session(m.MonthlyAttendanceSessions), attendanceModel.Session{
		Date:     in.Date,
		Location: in.Location,
		Topic:    in.Topic,
	})
	m.MonthlyAttendanceSessions = datatypes.NewJSONSlice(sessions)

	if err := ctl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "monthly_attendance_key"}},
			UpdateAll: true,
		}).
		Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "session added", dto.ToAttendanceResponse(m))
}

// =======================================================
// DELETE MONTH
// DELETE /api/a/attendance/:studentId?month=&year=
// =======================================================

func (ctl *AttendanceController) DeleteMonth(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	month, year, err := parseMonthYearQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	key := attendanceModel.AttendanceKey{StudentID: studentID, Month: month, Year: year}
	res := ctl.DB.WithContext(c.UserContext()).
		Delete(&attendanceModel.MonthlyAttendanceModel{}, "monthly_attendance_key = ?", key.String())
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "no attendance for this month")
	}

	return helper.JsonOK(c, "attendance deleted", nil)
}
