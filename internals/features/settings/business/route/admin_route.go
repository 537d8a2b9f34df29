package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingsController "tutorbill_backend/internals/features/settings/business/controller"
)

func AdminSettingsRoutes(r fiber.Router, db *gorm.DB) {
	ctl := settingsController.NewBusinessSettingsController(db)
	s := r.Group("/settings/business")
	{
		s.Get("/", ctl.Get)
		s.Put("/", ctl.Put)
		s.Put("/pricing", ctl.PutPricing)
		s.Put("/bank-accounts", ctl.PutBankAccounts)
	}
}
