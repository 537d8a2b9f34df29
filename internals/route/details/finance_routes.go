package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	expenseRoute "tutorbill_backend/internals/features/finance/expenses/route"
	invoiceRoute "tutorbill_backend/internals/features/finance/invoices/route"
)

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	invoiceRoute.AdminInvoiceRoutes(r, db)
	expenseRoute.AdminExpenseRoutes(r, db)
}

func FinancePublicRoutes(r fiber.Router, db *gorm.DB) {
	invoiceRoute.PublicInvoiceRoutes(r, db)
}
