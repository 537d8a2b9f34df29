package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tutorbill_backend/internals/features/finance/expenses/dto"
	expenseModel "tutorbill_backend/internals/features/finance/expenses/model"
	helper "tutorbill_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type ExpenseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db, Validate: validator.New()}
}

// =======================================================
// CREATE
// POST /api/a/expenses
// =======================================================

func (ctl *ExpenseController) Create(c *fiber.Ctx) error {
	var in dto.ExpenseCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := dto.ExpenseCreateDTOToModel(in)
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "expense created", dto.ToExpenseResponse(m))
}

// =======================================================
// LIST
// GET /api/a/expenses?month=&year=&category=&page=&per_page=
// =======================================================

func (ctl *ExpenseController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&expenseModel.ExpenseModel{})

	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("expense_category = ?", cat)
	}
	monthStr := strings.TrimSpace(c.Query("month"))
	yearStr := strings.TrimSpace(c.Query("year"))
	if monthStr != "" && yearStr != "" {
		month, errM := strconv.Atoi(monthStr)
		year, errY := strconv.Atoi(yearStr)
		if errM != nil || errY != nil || month < 1 || month > 12 {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid month/year filter")
		}
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("expense_incurred_on >= ? AND expense_incurred_on < ?", from, from.AddDate(0, 1, 0))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []expenseModel.ExpenseModel
	if err := q.Order("expense_incurred_on DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToExpenseResponses(rows),
		helper.BuildPagination(total, paging, len(rows)))
}

// =======================================================
// UPDATE (partial)
// PATCH /api/a/expenses/:id
// =======================================================

func (ctl *ExpenseController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.ExpenseUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m expenseModel.ExpenseModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "expense_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "expense not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	dto.ApplyExpenseUpdate(&m, in)

	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "expense updated", dto.ToExpenseResponse(m))
}

// =======================================================
// DELETE (soft)
// DELETE /api/a/expenses/:id
// =======================================================

func (ctl *ExpenseController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Delete(&expenseModel.ExpenseModel{}, "expense_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "expense not found")
	}

	return helper.JsonOK(c, "expense deleted", nil)
}
