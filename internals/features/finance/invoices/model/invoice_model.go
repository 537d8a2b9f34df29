package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attendanceModel "tutorbill_backend/internals/features/attendance/monthly/model"
	settingsModel "tutorbill_backend/internals/features/settings/business/model"
)

// =========================================================
// ENUMS - document type & payment status
// =========================================================

type InvoiceType string

const (
	InvoiceTypeInvoice   InvoiceType = "invoice"
	InvoiceTypeQuotation InvoiceType = "quotation"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid    InvoiceStatus = "Unpaid"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusQuotation InvoiceStatus = "Quotation"
)

// =========================================================
// EMBEDDED DOCS (JSONB)
// =========================================================

// MonthBreakdown is one entry per month of the billing period,
// present even when the month had no attendance document.
type MonthBreakdown struct {
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Label      string `json:"label"` // e.g. "March 2024"
	ClassCount int    `json:"class_count"`
}

// StudentSnapshot is frozen student data copied by value at generation
// time. Later edits to the student never touch historical invoices.
type StudentSnapshot struct {
	Name       string `json:"name"`
	ParentName string `json:"parent_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Course     string `json:"course"`
}

// =========================================================
// MODEL
// =========================================================

type InvoiceModel struct {
	// PK
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey" json:"invoice_id"`

	InvoiceType   InvoiceType   `gorm:"column:invoice_type;type:varchar(12);not null;index:ix_invoice_type" json:"invoice_type"`
	InvoiceStatus InvoiceStatus `gorm:"column:invoice_status;type:varchar(12);not null;index:ix_invoice_status" json:"invoice_status"`

	// Reference only; the snapshot below is what documents render from.
	InvoiceStudentID uuid.UUID `gorm:"column:invoice_student_id;type:uuid;not null;index:ix_invoice_student" json:"invoice_student_id"`

	// Billing period
	InvoiceStartMonth int `gorm:"column:invoice_start_month;not null" json:"invoice_start_month"`
	InvoiceStartYear  int `gorm:"column:invoice_start_year;not null" json:"invoice_start_year"`
	InvoiceEndMonth   int `gorm:"column:invoice_end_month;not null" json:"invoice_end_month"`
	InvoiceEndYear    int `gorm:"column:invoice_end_year;not null" json:"invoice_end_year"`
	InvoiceMonthCount int `gorm:"column:invoice_month_count;not null" json:"invoice_month_count"`

	InvoiceMonthlyBreakdown datatypes.JSONSlice[MonthBreakdown] `gorm:"column:invoice_monthly_breakdown;type:jsonb" json:"invoice_monthly_breakdown"`

	// Billable count (possibly manual override) vs. ground truth.
	InvoiceClassCount            int  `gorm:"column:invoice_class_count;not null" json:"invoice_class_count"`
	InvoiceActualAttendanceCount int  `gorm:"column:invoice_actual_attendance_count;not null" json:"invoice_actual_attendance_count"`
	InvoiceIsManualBilling       bool `gorm:"column:invoice_is_manual_billing;not null;default:false" json:"invoice_is_manual_billing"`

	// Real sessions or synthesized planned dates.
	InvoiceSessions datatypes.JSONSlice[attendanceModel.Session] `gorm:"column:invoice_sessions;type:jsonb" json:"invoice_sessions"`

	InvoiceRatePerClass int     `gorm:"column:invoice_rate_per_class;not null" json:"invoice_rate_per_class"`
	InvoiceAdjustment   float64 `gorm:"column:invoice_adjustment;not null;default:0" json:"invoice_adjustment"` // +surcharge / -discount
	InvoiceAdjLabel     string  `gorm:"column:invoice_adj_label;type:varchar(60)" json:"invoice_adj_label"`

	// Invariant: total == class_count*rate + adjustment, at creation and
	// after every edit.
	InvoiceTotalAmount float64 `gorm:"column:invoice_total_amount;not null" json:"invoice_total_amount"`

	// Display-only custom number (edit operation may set it).
	InvoiceCustomNumber string `gorm:"column:invoice_custom_number;type:varchar(40)" json:"invoice_custom_number"`

	InvoiceStudentSnapshot datatypes.JSONType[StudentSnapshot]            `gorm:"column:invoice_student_snapshot;type:jsonb" json:"invoice_student_snapshot"`
	InvoiceBankSnapshot    *datatypes.JSONType[settingsModel.BankAccount] `gorm:"column:invoice_bank_snapshot;type:jsonb" json:"invoice_bank_snapshot,omitempty"`

	InvoicePaidAt *time.Time `gorm:"column:invoice_paid_at" json:"invoice_paid_at,omitempty"`

	InvoiceCreatedAt time.Time `gorm:"column:invoice_created_at;not null;index:ix_invoice_created_at" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time `gorm:"column:invoice_updated_at;not null" json:"invoice_updated_at"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}

// RecomputeTotal re-applies the amount invariant from the stored parts.
func (m *InvoiceModel) RecomputeTotal() {
	m.InvoiceTotalAmount = float64(m.InvoiceClassCount*m.InvoiceRatePerClass) + m.InvoiceAdjustment
}

// =========================================================
// HOOKS
// =========================================================

func (m *InvoiceModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	now := time.Now()
	if m.InvoiceCreatedAt.IsZero() {
		m.InvoiceCreatedAt = now
	}
	m.InvoiceUpdatedAt = now
	return nil
}

func (m *InvoiceModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.InvoiceUpdatedAt = time.Now()
	return nil
}
