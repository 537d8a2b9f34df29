package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tutorbill_backend/internals/features/finance/invoices/dto"
	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
	invoiceService "tutorbill_backend/internals/features/finance/invoices/service"
	helper "tutorbill_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type InvoiceController struct {
	DB       *gorm.DB
	Engine   *invoiceService.BillingEngine
	Validate *validator.Validate
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{
		DB:       db,
		Engine:   invoiceService.NewBillingEngine(db),
		Validate: validator.New(),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// =======================================================
// GENERATE
// POST /api/a/invoices/generate
// =======================================================

func (ctl *InvoiceController) Generate(c *fiber.Ctx) error {
	var in dto.InvoiceGenerateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	inv, err := ctl.Engine.Generate(c.UserContext(), invoiceService.GenerateInput{
		StudentID:            in.StudentID,
		EndMonth:             in.EndMonth,
		EndYear:              in.EndYear,
		MonthCount:           in.MonthCount,
		ManualClassCount:     in.ManualClassCount,
		ExplicitSessionDates: in.ExplicitSessionDates,
		Adjustment:           in.Adjustment,
		AdjLabel:             in.AdjLabel,
		DocumentType:         invoiceModel.InvoiceType(in.DocumentType),
		BankAccountID:        in.BankAccountID,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "invoice generated", dto.ToInvoiceResponse(*inv))
}

// =======================================================
// GENERATE BULK
// POST /api/a/invoices/generate-bulk
// Sequential; aborts on the first failure. Invoices created
// before the failure stay persisted.
// =======================================================

func (ctl *InvoiceController) GenerateBulk(c *fiber.Ctx) error {
	var in dto.InvoiceBulkGenerateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	docType := invoiceModel.InvoiceTypeInvoice
	if in.DocumentType != "" {
		docType = invoiceModel.InvoiceType(in.DocumentType)
	}

	created, err := ctl.Engine.GenerateBulk(c.UserContext(), invoiceService.BulkInput{
		StudentIDs:       in.StudentIDs,
		EndMonth:         in.EndMonth,
		EndYear:          in.EndYear,
		MonthCount:       in.MonthCount,
		ManualClassCount: in.ManualClassCount,
		BankAccountID:    in.BankAccountID,
		DocumentType:     docType,
	})
	if err != nil {
		// partial progress is part of the contract: report what was
		// created before the abort alongside the failure
		responses := make([]dto.InvoiceResponse, len(created))
		for i := range created {
			responses[i] = dto.ToInvoiceResponse(*created[i])
		}
		fe, ok := err.(*fiber.Error)
		if !ok {
			fe = fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return helper.JsonErrorWithDetails(c, fe.Code, fe.Message, fiber.Map{
			"created":   responses,
			"completed": len(created),
			"total":     len(in.StudentIDs),
		})
	}

	responses := make([]dto.InvoiceResponse, len(created))
	for i := range created {
		responses[i] = dto.ToInvoiceResponse(*created[i])
	}
	return helper.JsonCreated(c, "bulk generation complete", responses)
}

// =======================================================
// LIST
// GET /api/a/invoices?type=&status=&student_id=&page=&per_page=
// =======================================================

func (ctl *InvoiceController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&invoiceModel.InvoiceModel{})

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		q = q.Where("invoice_type = ?", t)
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("invoice_status = ?", s)
	}
	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("invoice_student_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []invoiceModel.InvoiceModel
	if err := q.Order("invoice_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToInvoiceResponses(rows),
		helper.BuildPagination(total, paging, len(rows)))
}

// =======================================================
// GET BY ID
// GET /api/a/invoices/:id
// =======================================================

func (ctl *InvoiceController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var inv invoiceModel.InvoiceModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&inv, "invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToInvoiceResponse(inv))
}

// =======================================================
// EDIT
// PATCH /api/a/invoices/:id
// =======================================================

func (ctl *InvoiceController) Edit(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.InvoiceEditDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	inv, err := ctl.Engine.Edit(c.UserContext(), id, invoiceService.EditInput{
		ClassCount:      in.ClassCount,
		RatePerClass:    in.RatePerClass,
		Adjustment:      in.Adjustment,
		AdjLabel:        in.AdjLabel,
		Sessions:        in.Sessions,
		StudentSnapshot: in.StudentSnapshot,
		BankSnapshot:    in.BankSnapshot,
		CustomNumber:    in.CustomNumber,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "invoice updated", dto.ToInvoiceResponse(*inv))
}

// =======================================================
// TOGGLE STATUS
// POST /api/a/invoices/:id/toggle-status
// =======================================================

func (ctl *InvoiceController) ToggleStatus(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	status, err := ctl.Engine.ToggleStatus(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "status updated", fiber.Map{"status": status})
}

// =======================================================
// DELETE
// DELETE /api/a/invoices/:id
// =======================================================

func (ctl *InvoiceController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Delete(&invoiceModel.InvoiceModel{}, "invoice_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
	}

	return helper.JsonOK(c, "invoice deleted", nil)
}
