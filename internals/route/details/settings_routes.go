package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingsRoute "tutorbill_backend/internals/features/settings/business/route"
)

func SettingsAdminRoutes(r fiber.Router, db *gorm.DB) {
	settingsRoute.AdminSettingsRoutes(r, db)
}
