package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invController "tutorbill_backend/internals/features/finance/invoices/controller"
)

func AdminInvoiceRoutes(r fiber.Router, db *gorm.DB) {
	ctl := invController.NewInvoiceController(db)
	inv := r.Group("/invoices")
	{
		inv.Post("/generate", ctl.Generate)
		inv.Post("/generate-bulk", ctl.GenerateBulk)
		inv.Get("/", ctl.List)
		inv.Get("/:id", ctl.GetByID)
		inv.Patch("/:id", ctl.Edit)
		inv.Post("/:id/toggle-status", ctl.ToggleStatus)
		inv.Delete("/:id", ctl.Delete)
	}
}
