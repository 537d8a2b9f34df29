package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	waController "tutorbill_backend/internals/features/comms/whatsapp/controller"
)

func AdminWhatsAppRoutes(r fiber.Router, db *gorm.DB) {
	ctl := waController.NewWhatsAppController(db)
	w := r.Group("/whatsapp")
	{
		w.Get("/invoices/:id/reminder", ctl.InvoiceReminder)
	}
}
