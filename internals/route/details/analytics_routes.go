package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsRoute "tutorbill_backend/internals/features/analytics/dashboard/route"
	waRoute "tutorbill_backend/internals/features/comms/whatsapp/route"
)

func AnalyticsAdminRoutes(r fiber.Router, db *gorm.DB) {
	analyticsRoute.AdminAnalyticsRoutes(r, db)
	waRoute.AdminWhatsAppRoutes(r, db)
}
