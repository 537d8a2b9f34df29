package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	middlewares "tutorbill_backend/internals/middlewares"
	authMiddleware "tutorbill_backend/internals/middlewares/auth"
	routeDetails "tutorbill_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public", middlewares.PublicRateLimiter())

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (JWT)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Roster routes...")
	routeDetails.RosterAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Attendance routes...")
	routeDetails.AttendanceAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Settings routes...")
	routeDetails.SettingsAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceAdminRoutes(admin, db)
	routeDetails.FinancePublicRoutes(public, db)

	log.Println("[INFO] Mounting Analytics routes...")
	routeDetails.AnalyticsAdminRoutes(admin, db)
}
