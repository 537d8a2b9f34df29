package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attendanceModel "tutorbill_backend/internals/features/attendance/monthly/model"
	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
	studentModel "tutorbill_backend/internals/features/roster/students/model"
	settingsModel "tutorbill_backend/internals/features/settings/business/model"
)

// Synthesized sessions (future weekend slots or caller-picked dates)
// carry placeholder location/topic until the class actually happens.
const (
	plannedLocation = "TBD"
	plannedTopic    = "Planned Session"
)

// =========================================================
// BILLING ENGINE
// Aggregates attendance across a month span, applies manual
// overrides + a flat adjustment, and assembles the invoice
// document with frozen student/bank snapshots.
// =========================================================

type BillingEngine struct {
	DB *gorm.DB
}

func NewBillingEngine(db *gorm.DB) *BillingEngine {
	return &BillingEngine{DB: db}
}

type GenerateInput struct {
	StudentID  uuid.UUID
	EndMonth   int // 1..12
	EndYear    int // 4-digit
	MonthCount int // 1,2,3,4,6

	ManualClassCount     *int     // overrides summed attendance when set
	ExplicitSessionDates []string // ISO dates; wins over everything else
	Adjustment           float64  // signed; +surcharge / -discount
	AdjLabel             string

	DocumentType  invoiceModel.InvoiceType
	BankAccountID string
}

var allowedMonthCounts = map[int]bool{1: true, 2: true, 3: true, 4: true, 6: true}

func (in *GenerateInput) validate() error {
	if in.StudentID == uuid.Nil {
		return fiber.NewError(fiber.StatusBadRequest, "student is required")
	}
	if in.EndMonth < 1 || in.EndMonth > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "end month must be 1..12")
	}
	if in.EndYear < 1000 || in.EndYear > 9999 {
		return fiber.NewError(fiber.StatusBadRequest, "end year must be a 4-digit year")
	}
	if !allowedMonthCounts[in.MonthCount] {
		return fiber.NewError(fiber.StatusBadRequest, "month count must be one of 1, 2, 3, 4, 6")
	}
	if in.ManualClassCount != nil && *in.ManualClassCount < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "manual class count must be >= 0")
	}
	switch in.DocumentType {
	case invoiceModel.InvoiceTypeInvoice, invoiceModel.InvoiceTypeQuotation:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "document type must be invoice or quotation")
	}
	return nil
}

// Generate computes and persists one invoice/quotation. Reads (student,
// settings, per-month attendance) and the final write are independent
// round trips - there is deliberately no cross-collection transaction
// and no at-most-one-per-period guard.
func (e *BillingEngine) Generate(ctx context.Context, in GenerateInput) (*invoiceModel.InvoiceModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := e.DB.WithContext(ctx)

	// 1) student must exist at generation time; the snapshot keeps the
	// invoice valid if the student is deleted later.
	var student studentModel.StudentModel
	if err := db.First(&student, "student_id = ?", in.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// 2) month span, chronological
	span := BuildMonthSpan(in.EndMonth, in.EndYear, in.MonthCount)

	// 3) aggregate attendance; a missing month document counts as zero
	actualCount := 0
	counts := make([]int, len(span))
	allSessions := make([]attendanceModel.Session, 0, 16)
	for i, ref := range span {
		key := attendanceModel.AttendanceKey{StudentID: in.StudentID, Month: ref.Month, Year: ref.Year}
		var rec attendanceModel.MonthlyAttendanceModel
		err := db.First(&rec, "monthly_attendance_key = ?", key.String()).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			continue // counts[i] stays 0
		}
		counts[i] = rec.MonthlyAttendanceClassCount
		actualCount += rec.MonthlyAttendanceClassCount
		allSessions = append(allSessions, rec.MonthlyAttendanceSessions...)
	}

	// 4) rate from the pricing table; absent course bills 0, no error
	settings, err := e.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	rate := 0
	if settings != nil {
		rate = settings.RateFor(student.StudentCourse)
	}

	// 5) billable count; hand-picked dates imply a manual count even
	// when the caller omits it
	billable := actualCount
	isManual := false
	switch {
	case in.ManualClassCount != nil:
		billable = *in.ManualClassCount
		isManual = true
	case len(in.ExplicitSessionDates) > 0:
		billable = len(in.ExplicitSessionDates)
		isManual = true
	}

	// 6) session list precedence:
	//    explicit dates > manual weekend synthesis > real sessions
	var sessions []attendanceModel.Session
	switch {
	case len(in.ExplicitSessionDates) > 0:
		sessions = synthesizeSessions(in.ExplicitSessionDates)
	case in.ManualClassCount != nil:
		// weekend synthesis may come up short on small spans; keep
		// whatever fits (sessions < class_count is accepted).
		dates := WeekendDates(span, billable)
		iso := make([]string, len(dates))
		for i, d := range dates {
			iso[i] = d.Format("2006-01-02")
		}
		sessions = synthesizeSessions(iso)
	default:
		sessions = allSessions
	}

	// 7) amount invariant: total = billable*rate + adjustment
	adjLabel := strings.TrimSpace(in.AdjLabel)
	if adjLabel == "" && in.Adjustment != 0 {
		if in.Adjustment < 0 {
			adjLabel = "Discount"
		} else {
			adjLabel = "Additional Fee"
		}
	}

	// 8) bank snapshot: explicit id → first configured → nil
	var bankSnap *datatypes.JSONType[settingsModel.BankAccount]
	if settings != nil {
		if bank := settings.ResolveBank(in.BankAccountID); bank != nil {
			v := datatypes.NewJSONType(*bank)
			bankSnap = &v
		}
	}

	status := invoiceModel.InvoiceStatusUnpaid
	if in.DocumentType == invoiceModel.InvoiceTypeQuotation {
		status = invoiceModel.InvoiceStatusQuotation
	}

	start := span[0]
	inv := invoiceModel.InvoiceModel{
		InvoiceType:   in.DocumentType,
		InvoiceStatus: status,

		InvoiceStudentID: student.StudentID,

		InvoiceStartMonth: start.Month,
		InvoiceStartYear:  start.Year,
		InvoiceEndMonth:   in.EndMonth,
		InvoiceEndYear:    in.EndYear,
		InvoiceMonthCount: in.MonthCount,

		InvoiceMonthlyBreakdown: datatypes.NewJSONSlice(breakdownFor(span, counts)),

		InvoiceClassCount:            billable,
		InvoiceActualAttendanceCount: actualCount,
		InvoiceIsManualBilling:       isManual,

		InvoiceSessions: datatypes.NewJSONSlice(sessions),

		InvoiceRatePerClass: rate,
		InvoiceAdjustment:   in.Adjustment,
		InvoiceAdjLabel:     adjLabel,

		InvoiceStudentSnapshot: datatypes.NewJSONType(invoiceModel.StudentSnapshot{
			Name:       student.StudentName,
			ParentName: student.StudentParentName,
			Phone:      student.StudentPhone,
			Email:      student.StudentEmail,
			Address:    student.StudentAddress,
			Course:     student.StudentCourse,
		}),
		InvoiceBankSnapshot: bankSnap,
	}
	inv.RecomputeTotal()

	// 9) persist
	if err := db.Create(&inv).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &inv, nil
}

// =========================================================
// BULK GENERATION - sequential, abort on first error.
// Already-created invoices stay persisted (no rollback);
// remaining students are never attempted.
// =========================================================

type BulkInput struct {
	StudentIDs []uuid.UUID
	EndMonth   int
	EndYear    int
	MonthCount int

	ManualClassCount *int
	BankAccountID    string
	DocumentType     invoiceModel.InvoiceType
}

func (e *BillingEngine) GenerateBulk(ctx context.Context, in BulkInput) ([]*invoiceModel.InvoiceModel, error) {
	if len(in.StudentIDs) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "no students selected")
	}
	docType := in.DocumentType
	if docType == "" {
		docType = invoiceModel.InvoiceTypeInvoice
	}

	out := make([]*invoiceModel.InvoiceModel, 0, len(in.StudentIDs))
	total := len(in.StudentIDs)
	for i, sid := range in.StudentIDs {
		log.Printf("[BULK] generating invoice %d/%d", i+1, total)
		inv, err := e.Generate(ctx, GenerateInput{
			StudentID:        sid,
			EndMonth:         in.EndMonth,
			EndYear:          in.EndYear,
			MonthCount:       in.MonthCount,
			ManualClassCount: in.ManualClassCount,
			DocumentType:     docType,
			BankAccountID:    in.BankAccountID,
		})
		if err != nil {
			return out, err
		}
		out = append(out, inv)
	}
	return out, nil
}

// =========================================================
// EDIT - wholesale rewrite of the editable fields; the total
// is always recomputed, never taken from the caller.
// =========================================================

type EditInput struct {
	ClassCount   *int
	RatePerClass *int
	Adjustment   *float64
	AdjLabel     *string

	Sessions        []attendanceModel.Session
	StudentSnapshot *invoiceModel.StudentSnapshot
	BankSnapshot    *settingsModel.BankAccount
	CustomNumber    *string
}

func (e *BillingEngine) Edit(ctx context.Context, invoiceID uuid.UUID, in EditInput) (*invoiceModel.InvoiceModel, error) {
	db := e.DB.WithContext(ctx)

	var inv invoiceModel.InvoiceModel
	if err := db.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if in.ClassCount != nil {
		if *in.ClassCount < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "class count must be >= 0")
		}
		inv.InvoiceClassCount = *in.ClassCount
	}
	if in.RatePerClass != nil {
		if *in.RatePerClass < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "rate must be >= 0")
		}
		inv.InvoiceRatePerClass = *in.RatePerClass
	}
	if in.Adjustment != nil {
		inv.InvoiceAdjustment = *in.Adjustment
	}
	if in.AdjLabel != nil {
		inv.InvoiceAdjLabel = strings.TrimSpace(*in.AdjLabel)
	}
	if in.Sessions != nil {
		inv.InvoiceSessions = datatypes.NewJSONSlice(in.Sessions)
	}
	if in.StudentSnapshot != nil {
		inv.InvoiceStudentSnapshot = datatypes.NewJSONType(*in.StudentSnapshot)
	}
	if in.BankSnapshot != nil {
		v := datatypes.NewJSONType(*in.BankSnapshot)
		inv.InvoiceBankSnapshot = &v
	}
	if in.CustomNumber != nil {
		inv.InvoiceCustomNumber = strings.TrimSpace(*in.CustomNumber)
	}

	inv.RecomputeTotal()

	if err := db.Save(&inv).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &inv, nil
}

// =========================================================
// STATUS TOGGLE - invoices only: Unpaid/Paid with paid_at
// stamp/clear. Quotations never enter the payment state
// machine; converting one means generating a fresh invoice.
// =========================================================

func (e *BillingEngine) ToggleStatus(ctx context.Context, invoiceID uuid.UUID) (invoiceModel.InvoiceStatus, error) {
	db := e.DB.WithContext(ctx)

	var inv invoiceModel.InvoiceModel
	if err := db.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return "", fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if inv.InvoiceType != invoiceModel.InvoiceTypeInvoice {
		return "", fiber.NewError(fiber.StatusConflict, "quotations cannot be marked paid")
	}

	if inv.InvoiceStatus == invoiceModel.InvoiceStatusPaid {
		inv.InvoiceStatus = invoiceModel.InvoiceStatusUnpaid
		inv.InvoicePaidAt = nil
	} else {
		now := time.Now()
		inv.InvoiceStatus = invoiceModel.InvoiceStatusPaid
		inv.InvoicePaidAt = &now
	}

	// Save skips nil pointer zero-values on struct updates, so write the
	// toggled columns explicitly.
	if err := db.Model(&invoiceModel.InvoiceModel{}).
		Where("invoice_id = ?", inv.InvoiceID).
		Updates(map[string]interface{}{
			"invoice_status":     inv.InvoiceStatus,
			"invoice_paid_at":    inv.InvoicePaidAt,
			"invoice_updated_at": time.Now(),
		}).Error; err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return inv.InvoiceStatus, nil
}

// =========================================================
// internals
// =========================================================

func (e *BillingEngine) loadSettings(ctx context.Context) (*settingsModel.BusinessSettingsModel, error) {
	var s settingsModel.BusinessSettingsModel
	err := e.DB.WithContext(ctx).First(&s, "business_setting_id = ?", settingsModel.BusinessSettingsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no settings yet: rate 0, no bank snapshot
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &s, nil
}

func synthesizeSessions(isoDates []string) []attendanceModel.Session {
	out := make([]attendanceModel.Session, len(isoDates))
	for i, d := range isoDates {
		out[i] = attendanceModel.Session{
			Date:     d,
			Location: plannedLocation,
			Topic:    plannedTopic,
		}
	}
	return out
}
