package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	attendanceModel "tutorbill_backend/internals/features/attendance/monthly/model"
	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
	studentModel "tutorbill_backend/internals/features/roster/students/model"
	settingsModel "tutorbill_backend/internals/features/settings/business/model"
)

// ===============================
// fixtures
// ===============================

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory DB alive across queries
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&studentModel.StudentModel{},
		&attendanceModel.MonthlyAttendanceModel{},
		&settingsModel.BusinessSettingsModel{},
		&invoiceModel.InvoiceModel{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, course string) studentModel.StudentModel {
	t.Helper()
	s := studentModel.StudentModel{
		StudentName:       "Asha Rao",
		StudentParentName: "Meera Rao",
		StudentPhone:      "9876543210",
		StudentEmail:      "asha@example.com",
		StudentAddress:    "12 MG Road, Bengaluru",
		StudentCourse:     course,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedSettings(t *testing.T, db *gorm.DB, pricing map[string]int, banks []settingsModel.BankAccount) {
	t.Helper()
	s := settingsModel.BusinessSettingsModel{
		BusinessSettingID:           settingsModel.BusinessSettingsID,
		BusinessSettingPricing:      datatypes.NewJSONType(pricing),
		BusinessSettingBankAccounts: datatypes.NewJSONSlice(banks),
		BusinessSettingName:         "Bright Tutors",
	}
	require.NoError(t, db.Create(&s).Error)
}

func seedAttendance(t *testing.T, db *gorm.DB, studentID uuid.UUID, month, year, classes int) {
	t.Helper()
	sessions := make([]attendanceModel.Session, classes)
	for i := range sessions {
		sessions[i] = attendanceModel.Session{
			Date:     fmt.Sprintf("%04d-%02d-%02d", year, month, i+1),
			Location: "Home",
			Topic:    fmt.Sprintf("Topic %d", i+1),
		}
	}
	key := attendanceModel.AttendanceKey{StudentID: studentID, Month: month, Year: year}
	m := attendanceModel.MonthlyAttendanceModel{
		MonthlyAttendanceKey:       key.String(),
		MonthlyAttendanceStudentID: studentID,
		MonthlyAttendanceMonth:     fmt.Sprintf("%02d", month),
		MonthlyAttendanceYear:      fmt.Sprintf("%04d", year),
		MonthlyAttendanceSessions:  datatypes.NewJSONSlice(sessions),
	}
	require.NoError(t, db.Create(&m).Error)
}

func intPtr(n int) *int { return &n }

// ===============================
// month span & weekend synthesis
// ===============================

func TestBuildMonthSpan(t *testing.T) {
	span := BuildMonthSpan(2, 2024, 4)
	require.Len(t, span, 4)
	assert.Equal(t, MonthRef{Month: 11, Year: 2023}, span[0]) // wraps the year boundary
	assert.Equal(t, MonthRef{Month: 12, Year: 2023}, span[1])
	assert.Equal(t, MonthRef{Month: 1, Year: 2024}, span[2])
	assert.Equal(t, MonthRef{Month: 2, Year: 2024}, span[3])
	assert.Equal(t, "November 2023", span[0].Label())
}

func TestWeekendDates(t *testing.T) {
	span := []MonthRef{{Month: 4, Year: 2024}}

	dates := WeekendDates(span, 3)
	require.Len(t, dates, 3)
	// April 2024: Sat 6th, Sun 7th, Sat 13th, ...
	assert.Equal(t, "2024-04-06", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2024-04-07", dates[1].Format("2006-01-02"))
	assert.Equal(t, "2024-04-13", dates[2].Format("2006-01-02"))

	// one month holds at most 10 weekend days; asking for more
	// truncates silently
	dates = WeekendDates(span, 50)
	assert.Less(t, len(dates), 50)
	for _, d := range dates {
		wd := d.Weekday()
		assert.True(t, wd == time.Saturday || wd == time.Sunday, "expected weekend, got %s", wd)
	}
}

// ===============================
// generation
// ===============================

// Scenario A: real attendance, no override.
func TestGenerate_FromAttendance(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)
	seedAttendance(t, db, student.StudentID, 3, 2024, 4) // 4 classes in March
	// April has no attendance document at all

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID:    student.StudentID,
		EndMonth:     4,
		EndYear:      2024,
		MonthCount:   2,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, inv.InvoiceActualAttendanceCount)
	assert.Equal(t, 4, inv.InvoiceClassCount)
	assert.Equal(t, 999, inv.InvoiceRatePerClass)
	assert.Equal(t, float64(3996), inv.InvoiceTotalAmount)
	assert.False(t, inv.InvoiceIsManualBilling)
	assert.Equal(t, invoiceModel.InvoiceStatusUnpaid, inv.InvoiceStatus)

	// breakdown covers the full span, missing month included with zero
	breakdown := []invoiceModel.MonthBreakdown(inv.InvoiceMonthlyBreakdown)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "March 2024", breakdown[0].Label)
	assert.Equal(t, 4, breakdown[0].ClassCount)
	assert.Equal(t, "April 2024", breakdown[1].Label)
	assert.Equal(t, 0, breakdown[1].ClassCount)

	// real sessions stored verbatim
	assert.Len(t, []attendanceModel.Session(inv.InvoiceSessions), 4)
	assert.Equal(t, 3, inv.InvoiceStartMonth)
	assert.Equal(t, 2024, inv.InvoiceStartYear)

	// snapshot frozen by value
	snap := inv.InvoiceStudentSnapshot.Data()
	assert.Equal(t, "Asha Rao", snap.Name)
	assert.Equal(t, "Beginner", snap.Course)
}

// Scenario B: manual override with a discount.
func TestGenerate_ManualOverride(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)
	seedAttendance(t, db, student.StudentID, 3, 2024, 4)

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID:        student.StudentID,
		EndMonth:         4,
		EndYear:          2024,
		MonthCount:       2,
		ManualClassCount: intPtr(6),
		Adjustment:       -200,
		AdjLabel:         "Sibling Discount",
		DocumentType:     invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, inv.InvoiceClassCount)
	assert.Equal(t, 4, inv.InvoiceActualAttendanceCount)
	assert.True(t, inv.InvoiceIsManualBilling)
	assert.Equal(t, float64(6*999-200), inv.InvoiceTotalAmount)
	assert.Equal(t, "Sibling Discount", inv.InvoiceAdjLabel)

	// sessions synthesized onto weekends within the span
	sessions := []attendanceModel.Session(inv.InvoiceSessions)
	require.Len(t, sessions, 6)
	assert.Equal(t, "2024-03-02", sessions[0].Date) // first Saturday of March 2024
}

// Scenario C: explicit dates win over everything else, and the billable
// count follows the picked dates even when no manual count is sent.
func TestGenerate_ExplicitDates(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)
	seedAttendance(t, db, student.StudentID, 4, 2024, 4) // real attendance must not leak in

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID:            student.StudentID,
		EndMonth:             4,
		EndYear:              2024,
		MonthCount:           1,
		ExplicitSessionDates: []string{"2024-04-06", "2024-04-07"},
		DocumentType:         invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)

	sessions := []attendanceModel.Session(inv.InvoiceSessions)
	require.Len(t, sessions, 2)
	assert.Equal(t, "2024-04-06", sessions[0].Date)
	assert.Equal(t, "2024-04-07", sessions[1].Date)
	assert.Equal(t, 2, inv.InvoiceClassCount)
	assert.Equal(t, 4, inv.InvoiceActualAttendanceCount)
	assert.True(t, inv.InvoiceIsManualBilling)
	assert.Equal(t, float64(2*999), inv.InvoiceTotalAmount)
}

// An explicit manual count still outranks the date count when both are sent.
func TestGenerate_ExplicitDatesWithManualCount(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID:            student.StudentID,
		EndMonth:             4,
		EndYear:              2024,
		MonthCount:           1,
		ManualClassCount:     intPtr(3),
		ExplicitSessionDates: []string{"2024-04-06", "2024-04-07"},
		DocumentType:         invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, inv.InvoiceClassCount)
	assert.Len(t, []attendanceModel.Session(inv.InvoiceSessions), 2)
	assert.Equal(t, float64(3*999), inv.InvoiceTotalAmount)
}

// Scenario D: course missing from the pricing table bills zero.
func TestGenerate_MissingRate(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Advanced")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)
	seedAttendance(t, db, student.StudentID, 4, 2024, 3)

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID:    student.StudentID,
		EndMonth:     4,
		EndYear:      2024,
		MonthCount:   1,
		Adjustment:   50,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, inv.InvoiceRatePerClass)
	assert.Equal(t, float64(50), inv.InvoiceTotalAmount) // adjustment only
	assert.Equal(t, "Additional Fee", inv.InvoiceAdjLabel)
}

func TestGenerate_StudentNotFound(t *testing.T) {
	db := newTestDB(t)
	engine := NewBillingEngine(db)

	_, err := engine.Generate(context.Background(), GenerateInput{
		StudentID:    uuid.New(),
		EndMonth:     4,
		EndYear:      2024,
		MonthCount:   1,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestGenerate_Quotation(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID:        student.StudentID,
		EndMonth:         5,
		EndYear:          2024,
		MonthCount:       1,
		ManualClassCount: intPtr(8),
		DocumentType:     invoiceModel.InvoiceTypeQuotation,
	})
	require.NoError(t, err)

	assert.Equal(t, invoiceModel.InvoiceTypeQuotation, inv.InvoiceType)
	assert.Equal(t, invoiceModel.InvoiceStatusQuotation, inv.InvoiceStatus)
}

func TestGenerate_BankSnapshotResolution(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	banks := []settingsModel.BankAccount{
		{ID: "b1", BankName: "HDFC", UPIID: "tutors@hdfc"},
		{ID: "b2", BankName: "SBI", UPIID: "tutors@sbi"},
	}
	seedSettings(t, db, map[string]int{"Beginner": 999}, banks)

	engine := NewBillingEngine(db)

	// explicit id
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID: student.StudentID, EndMonth: 4, EndYear: 2024, MonthCount: 1,
		DocumentType: invoiceModel.InvoiceTypeInvoice, BankAccountID: "b2",
	})
	require.NoError(t, err)
	require.NotNil(t, inv.InvoiceBankSnapshot)
	assert.Equal(t, "SBI", inv.InvoiceBankSnapshot.Data().BankName)

	// no id → first configured account
	inv, err = engine.Generate(context.Background(), GenerateInput{
		StudentID: student.StudentID, EndMonth: 4, EndYear: 2024, MonthCount: 1,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)
	require.NotNil(t, inv.InvoiceBankSnapshot)
	assert.Equal(t, "HDFC", inv.InvoiceBankSnapshot.Data().BankName)
}

// Generating twice with unchanged attendance yields the same numbers;
// both records persist (no at-most-one-per-period guard).
func TestGenerate_AggregationIdempotent(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)
	seedAttendance(t, db, student.StudentID, 4, 2024, 5)

	engine := NewBillingEngine(db)
	in := GenerateInput{
		StudentID: student.StudentID, EndMonth: 4, EndYear: 2024, MonthCount: 1,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	}

	first, err := engine.Generate(context.Background(), in)
	require.NoError(t, err)
	second, err := engine.Generate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.InvoiceActualAttendanceCount, second.InvoiceActualAttendanceCount)
	assert.Equal(t, first.InvoiceClassCount, second.InvoiceClassCount)
	assert.Equal(t, first.InvoiceTotalAmount, second.InvoiceTotalAmount)
	assert.NotEqual(t, first.InvoiceID, second.InvoiceID)

	var n int64
	require.NoError(t, db.Model(&invoiceModel.InvoiceModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

// ===============================
// bulk
// ===============================

// Scenario E: abort on first error, earlier invoices persist, later
// students are never attempted.
func TestGenerateBulk_AbortOnFirstError(t *testing.T) {
	db := newTestDB(t)
	s1 := seedStudent(t, db, "Beginner")
	s3 := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)
	seedAttendance(t, db, s1.StudentID, 4, 2024, 2)
	seedAttendance(t, db, s3.StudentID, 4, 2024, 3)

	missing := uuid.New() // deleted mid-batch

	engine := NewBillingEngine(db)
	created, err := engine.GenerateBulk(context.Background(), BulkInput{
		StudentIDs: []uuid.UUID{s1.StudentID, missing, s3.StudentID},
		EndMonth:   4,
		EndYear:    2024,
		MonthCount: 1,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	require.Len(t, created, 1)
	assert.Equal(t, s1.StudentID, created[0].InvoiceStudentID)

	var n int64
	require.NoError(t, db.Model(&invoiceModel.InvoiceModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n) // no rollback, no third invoice
}

// ===============================
// edit & toggle
// ===============================

func TestEdit_RecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)
	seedAttendance(t, db, student.StudentID, 4, 2024, 4)

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID: student.StudentID, EndMonth: 4, EndYear: 2024, MonthCount: 1,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)

	edited, err := engine.Edit(context.Background(), inv.InvoiceID, EditInput{
		ClassCount:   intPtr(10),
		RatePerClass: intPtr(500),
		CustomNumber: func() *string { s := "INV-2024-042"; return &s }(),
	})
	require.NoError(t, err)

	assert.Equal(t, float64(10*500), edited.InvoiceTotalAmount)
	assert.Equal(t, "INV-2024-042", edited.InvoiceCustomNumber)

	adj := -750.0
	edited, err = engine.Edit(context.Background(), inv.InvoiceID, EditInput{Adjustment: &adj})
	require.NoError(t, err)
	assert.Equal(t, float64(10*500)-750, edited.InvoiceTotalAmount)
}

func TestToggleStatus(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID: student.StudentID, EndMonth: 4, EndYear: 2024, MonthCount: 1,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)

	// Unpaid → Paid stamps paid_at
	status, err := engine.ToggleStatus(context.Background(), inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, invoiceModel.InvoiceStatusPaid, status)

	var reloaded invoiceModel.InvoiceModel
	require.NoError(t, db.First(&reloaded, "invoice_id = ?", inv.InvoiceID).Error)
	require.NotNil(t, reloaded.InvoicePaidAt)

	// Paid → Unpaid clears it; scan into a fresh struct so the NULL
	// column is observed rather than the leftover pointer
	status, err = engine.ToggleStatus(context.Background(), inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, invoiceModel.InvoiceStatusUnpaid, status)

	var reverted invoiceModel.InvoiceModel
	require.NoError(t, db.First(&reverted, "invoice_id = ?", inv.InvoiceID).Error)
	assert.Nil(t, reverted.InvoicePaidAt)
}

func TestToggleStatus_QuotationRejected(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)

	engine := NewBillingEngine(db)
	q, err := engine.Generate(context.Background(), GenerateInput{
		StudentID: student.StudentID, EndMonth: 4, EndYear: 2024, MonthCount: 1,
		DocumentType: invoiceModel.InvoiceTypeQuotation,
	})
	require.NoError(t, err)

	_, err = engine.ToggleStatus(context.Background(), q.InvoiceID)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	var reloaded invoiceModel.InvoiceModel
	require.NoError(t, db.First(&reloaded, "invoice_id = ?", q.InvoiceID).Error)
	assert.Equal(t, invoiceModel.InvoiceStatusQuotation, reloaded.InvoiceStatus)
}

// Student deletion after generation leaves the invoice intact; the
// snapshot is what documents render from.
func TestSnapshotSurvivesStudentDeletion(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db, "Beginner")
	seedSettings(t, db, map[string]int{"Beginner": 999}, nil)
	seedAttendance(t, db, student.StudentID, 4, 2024, 3)

	engine := NewBillingEngine(db)
	inv, err := engine.Generate(context.Background(), GenerateInput{
		StudentID: student.StudentID, EndMonth: 4, EndYear: 2024, MonthCount: 1,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&studentModel.StudentModel{}, "student_id = ?", student.StudentID).Error)

	var reloaded invoiceModel.InvoiceModel
	require.NoError(t, db.First(&reloaded, "invoice_id = ?", inv.InvoiceID).Error)
	assert.Equal(t, "Asha Rao", reloaded.InvoiceStudentSnapshot.Data().Name)

	// but a fresh generation for the deleted student fails
	_, err = engine.Generate(context.Background(), GenerateInput{
		StudentID: student.StudentID, EndMonth: 5, EndYear: 2024, MonthCount: 1,
		DocumentType: invoiceModel.InvoiceTypeInvoice,
	})
	require.Error(t, err)
}
