package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashController "tutorbill_backend/internals/features/analytics/dashboard/controller"
)

func AdminAnalyticsRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dashController.NewDashboardController(db)
	a := r.Group("/analytics")
	{
		a.Get("/revenue", ctl.Revenue)
		a.Get("/at-risk", ctl.AtRisk)
	}
}
