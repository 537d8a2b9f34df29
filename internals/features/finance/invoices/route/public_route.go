package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invController "tutorbill_backend/internals/features/finance/invoices/controller"
)

func PublicInvoiceRoutes(r fiber.Router, db *gorm.DB) {
	ctl := invController.NewPublicInvoiceController(db)
	inv := r.Group("/invoices")
	{
		inv.Get("/:id", ctl.GetByID)
	}
}
