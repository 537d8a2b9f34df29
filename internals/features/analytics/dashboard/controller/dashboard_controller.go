package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	analyticsService "tutorbill_backend/internals/features/analytics/dashboard/service"
	attendanceModel "tutorbill_backend/internals/features/attendance/monthly/model"
	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
	studentModel "tutorbill_backend/internals/features/roster/students/model"
	helper "tutorbill_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

func intQuery(c *fiber.Ctx, name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return def
	}
	return v
}

// =======================================================
// REVENUE CHART
// GET /api/a/analytics/revenue?months=6
// =======================================================

func (ctl *DashboardController) Revenue(c *fiber.Ctx) error {
	now := time.Now()
	months := intQuery(c, "months", 6)
	if months < 1 || months > 24 {
		return helper.JsonError(c, fiber.StatusBadRequest, "months must be 1..24")
	}

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	var rows []invoiceModel.InvoiceModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("invoice_status = ? AND invoice_paid_at >= ?", invoiceModel.InvoiceStatusPaid, from).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	points := analyticsService.AggregateRevenue(rows, int(now.Month()), now.Year(), months)
	return helper.JsonOK(c, "ok", points)
}

// =======================================================
// CHURN / AT-RISK STUDENTS
// GET /api/a/analytics/at-risk?threshold=2
// =======================================================

func (ctl *DashboardController) AtRisk(c *fiber.Ctx) error {
	threshold := intQuery(c, "threshold", 2)
	if threshold < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "threshold must be >= 1")
	}

	var students []studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var records []attendanceModel.MonthlyAttendanceModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("monthly_attendance_class_count > 0").
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	latest := make(map[uuid.UUID]struct {
		Name  string
		Month int
		Year  int
	}, len(students))
	for _, s := range students {
		latest[s.StudentID] = struct {
			Name  string
			Month int
			Year  int
		}{Name: s.StudentName}
	}
	for _, r := range records {
		cur, ok := latest[r.MonthlyAttendanceStudentID]
		if !ok {
			continue // dangling attendance for a deleted student
		}
		key := r.Key()
		if key.Year*12+key.Month > cur.Year*12+cur.Month {
			cur.Month = key.Month
			cur.Year = key.Year
			latest[r.MonthlyAttendanceStudentID] = cur
		}
	}

	now := time.Now()
	entries := analyticsService.FlagAtRisk(latest, int(now.Month()), now.Year(), threshold)
	return helper.JsonOK(c, "ok", entries)
}
