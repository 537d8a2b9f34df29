package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "tutorbill_backend/internals/features/roster/students/controller"
)

func AdminStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)
	students := r.Group("/students")
	{
		students.Post("/", ctl.Create)
		students.Get("/", ctl.List)
		students.Get("/:id", ctl.GetByID)
		students.Patch("/:id", ctl.Update)
		students.Delete("/:id", ctl.Delete)
	}
}
