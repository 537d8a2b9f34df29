package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	configs "tutorbill_backend/internals/configs"
	waService "tutorbill_backend/internals/features/comms/whatsapp/service"
	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
	settingsModel "tutorbill_backend/internals/features/settings/business/model"
	helper "tutorbill_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type WhatsAppController struct {
	DB *gorm.DB
}

func NewWhatsAppController(db *gorm.DB) *WhatsAppController {
	return &WhatsAppController{DB: db}
}

// =======================================================
// FEE REMINDER
// GET /api/a/whatsapp/invoices/:id/reminder
// =======================================================

func (ctl *WhatsAppController) InvoiceReminder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
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

	businessName := ""
	var settings settingsModel.BusinessSettingsModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&settings, "business_setting_id = ?", settingsModel.BusinessSettingsID).Error; err == nil {
		businessName = settings.BusinessSettingName
	}

	snap := inv.InvoiceStudentSnapshot.Data()
	if snap.Phone == "" {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "invoice snapshot has no phone number")
	}

	message := waService.FeeReminderMessage(&inv, businessName, configs.GetEnv("PUBLIC_BASE_URL"))

	return helper.JsonOK(c, "ok", fiber.Map{
		"phone":   waService.NormalizePhone(snap.Phone),
		"message": message,
		"link":    waService.WaLink(snap.Phone, message),
	})
}
