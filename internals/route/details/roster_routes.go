package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleRoute "tutorbill_backend/internals/features/roster/schedules/route"
	studentRoute "tutorbill_backend/internals/features/roster/students/route"
)

func RosterAdminRoutes(r fiber.Router, db *gorm.DB) {
	studentRoute.AdminStudentRoutes(r, db)
	scheduleRoute.AdminScheduleRoutes(r, db)
}
