package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleController "tutorbill_backend/internals/features/roster/schedules/controller"
)

func AdminScheduleRoutes(r fiber.Router, db *gorm.DB) {
	ctl := scheduleController.NewScheduleController(db)
	s := r.Group("/schedules")
	{
		s.Put("/:studentId", ctl.Upsert)
		s.Get("/:studentId", ctl.Get)
		s.Delete("/:studentId", ctl.Delete)
	}
}
