package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attController "tutorbill_backend/internals/features/attendance/monthly/controller"
)

func AdminAttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctl := attController.NewAttendanceController(db)
	att := r.Group("/attendance")
	{
		att.Put("/", ctl.Upsert)
		att.Get("/:studentId/months", ctl.ListMonths)
		att.Get("/:studentId", ctl.GetMonth)
		att.Post("/:studentId/sessions", ctl.AppendSession)
		att.Delete("/:studentId", ctl.DeleteMonth)
	}
}
