package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "tutorbill_backend/internals/features/attendance/monthly/route"
)

func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	attendanceRoute.AdminAttendanceRoutes(r, db)
}
