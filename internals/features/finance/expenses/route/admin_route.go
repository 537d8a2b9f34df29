package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	expenseController "tutorbill_backend/internals/features/finance/expenses/controller"
)

func AdminExpenseRoutes(r fiber.Router, db *gorm.DB) {
	ctl := expenseController.NewExpenseController(db)
	e := r.Group("/expenses")
	{
		e.Post("/", ctl.Create)
		e.Get("/", ctl.List)
		e.Patch("/:id", ctl.Update)
		e.Delete("/:id", ctl.Delete)
	}
}
