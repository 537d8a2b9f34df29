package controller

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "tutorbill_backend/internals/features/finance/invoices/dto"
	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
	settingsModel "tutorbill_backend/internals/features/settings/business/model"
	helper "tutorbill_backend/internals/helpers"
)

// =======================================================
// PUBLIC READ PATH - anyone holding the invoice id may view
// it. Read-only projection of the persisted document plus a
// UPI payload string; no write capability is exposed here.
// =======================================================

type PublicInvoiceController struct {
	DB *gorm.DB
}

func NewPublicInvoiceController(db *gorm.DB) *PublicInvoiceController {
	return &PublicInvoiceController{DB: db}
}

// GET /api/public/invoices/:id
func (ctl *PublicInvoiceController) GetByID(c *fiber.Ctx) error {
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

	// business name for the payee label; the bank snapshot is frozen on
	// the invoice so only the display name is read live
	var settings settingsModel.BusinessSettingsModel
	businessName := ""
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&settings, "business_setting_id = ?", settingsModel.BusinessSettingsID).Error; err == nil {
		businessName = settings.BusinessSettingName
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"invoice":     dto.ToInvoiceResponse(inv),
		"upi_payload": BuildUPIPayload(&inv, businessName),
	})
}

// BuildUPIPayload renders upi://pay?pa=...&pn=...&am=...&cu=INR from the
// frozen bank snapshot. Empty when no UPI id was captured, or for
// quotations (non-payable).
func BuildUPIPayload(inv *invoiceModel.InvoiceModel, businessName string) string {
	if inv.InvoiceType != invoiceModel.InvoiceTypeInvoice || inv.InvoiceBankSnapshot == nil {
		return ""
	}
	bank := inv.InvoiceBankSnapshot.Data()
	if bank.UPIID == "" {
		return ""
	}
	q := url.Values{}
	q.Set("pa", bank.UPIID)
	q.Set("pn", businessName)
	q.Set("am", fmt.Sprintf("%.2f", inv.InvoiceTotalAmount))
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode()
}
