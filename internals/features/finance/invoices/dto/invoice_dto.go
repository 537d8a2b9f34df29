package dto

import (
	"time"

	"github.com/google/uuid"

	attendanceModel "tutorbill_backend/internals/features/attendance/monthly/model"
	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
	settingsModel "tutorbill_backend/internals/features/settings/business/model"
	amountwords "tutorbill_backend/internals/helpers/amountwords"
)

////////////////////////////////////////////////////////////////////////////////
// GENERATE / BULK - request DTOs
////////////////////////////////////////////////////////////////////////////////

type InvoiceGenerateDTO struct {
	StudentID  uuid.UUID `json:"student_id" validate:"required"`
	EndMonth   int       `json:"end_month" validate:"required,min=1,max=12"`
	EndYear    int       `json:"end_year" validate:"required,min=1000,max=9999"`
	MonthCount int       `json:"month_count" validate:"required,oneof=1 2 3 4 6"`

	ManualClassCount     *int     `json:"manual_class_count,omitempty" validate:"omitempty,min=0"`
	ExplicitSessionDates []string `json:"explicit_session_dates,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`

	Adjustment float64 `json:"adjustment"`
	AdjLabel   string  `json:"adj_label"`

	DocumentType  string `json:"document_type" validate:"required,oneof=invoice quotation"`
	BankAccountID string `json:"bank_account_id"`
}

type InvoiceBulkGenerateDTO struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1,dive,required"`
	EndMonth   int         `json:"end_month" validate:"required,min=1,max=12"`
	EndYear    int         `json:"end_year" validate:"required,min=1000,max=9999"`
	MonthCount int         `json:"month_count" validate:"required,oneof=1 2 3 4 6"`

	ManualClassCount *int   `json:"manual_class_count,omitempty" validate:"omitempty,min=0"`
	DocumentType     string `json:"document_type" validate:"omitempty,oneof=invoice quotation"`
	BankAccountID    string `json:"bank_account_id"`
}

////////////////////////////////////////////////////////////////////////////////
// EDIT - wholesale rewrite; total is recomputed server-side
////////////////////////////////////////////////////////////////////////////////

type InvoiceEditDTO struct {
	ClassCount   *int     `json:"class_count,omitempty" validate:"omitempty,min=0"`
	RatePerClass *int     `json:"rate_per_class,omitempty" validate:"omitempty,min=0"`
	Adjustment   *float64 `json:"adjustment,omitempty"`
	AdjLabel     *string  `json:"adj_label,omitempty"`

	Sessions        []attendanceModel.Session     `json:"sessions,omitempty"`
	StudentSnapshot *invoiceModel.StudentSnapshot `json:"student_snapshot,omitempty"`
	BankSnapshot    *settingsModel.BankAccount    `json:"bank_snapshot,omitempty"`
	CustomNumber    *string                       `json:"custom_number,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSE
////////////////////////////////////////////////////////////////////////////////

type InvoiceResponse struct {
	InvoiceID uuid.UUID `json:"invoice_id"`

	Type   string `json:"type"`
	Status string `json:"status"`

	StudentID uuid.UUID `json:"student_id"`

	StartMonth int `json:"start_month"`
	StartYear  int `json:"start_year"`
	EndMonth   int `json:"end_month"`
	EndYear    int `json:"end_year"`
	MonthCount int `json:"month_count"`

	MonthlyBreakdown []invoiceModel.MonthBreakdown `json:"monthly_breakdown"`

	ClassCount            int  `json:"class_count"`
	ActualAttendanceCount int  `json:"actual_attendance_count"`
	IsManualBilling       bool `json:"is_manual_billing"`

	Sessions []attendanceModel.Session `json:"sessions"`

	RatePerClass int     `json:"rate_per_class"`
	Adjustment   float64 `json:"adjustment"`
	AdjLabel     string  `json:"adj_label,omitempty"`

	TotalAmount        float64 `json:"total_amount"`
	TotalAmountInWords string  `json:"total_amount_in_words"`

	CustomNumber string `json:"custom_number,omitempty"`

	StudentSnapshot invoiceModel.StudentSnapshot `json:"student_snapshot"`
	BankSnapshot    *settingsModel.BankAccount   `json:"bank_snapshot,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToInvoiceResponse(m invoiceModel.InvoiceModel) InvoiceResponse {
	var bank *settingsModel.BankAccount
	if m.InvoiceBankSnapshot != nil {
		v := m.InvoiceBankSnapshot.Data()
		bank = &v
	}

	return InvoiceResponse{
		InvoiceID: m.InvoiceID,

		Type:   string(m.InvoiceType),
		Status: string(m.InvoiceStatus),

		StudentID: m.InvoiceStudentID,

		StartMonth: m.InvoiceStartMonth,
		StartYear:  m.InvoiceStartYear,
		EndMonth:   m.InvoiceEndMonth,
		EndYear:    m.InvoiceEndYear,
		MonthCount: m.InvoiceMonthCount,

		MonthlyBreakdown: m.InvoiceMonthlyBreakdown,

		ClassCount:            m.InvoiceClassCount,
		ActualAttendanceCount: m.InvoiceActualAttendanceCount,
		IsManualBilling:       m.InvoiceIsManualBilling,

		Sessions: m.InvoiceSessions,

		RatePerClass: m.InvoiceRatePerClass,
		Adjustment:   m.InvoiceAdjustment,
		AdjLabel:     m.InvoiceAdjLabel,

		TotalAmount:        m.InvoiceTotalAmount,
		TotalAmountInWords: amountwords.Rupees(m.InvoiceTotalAmount),

		CustomNumber: m.InvoiceCustomNumber,

		StudentSnapshot: m.InvoiceStudentSnapshot.Data(),
		BankSnapshot:    bank,

		PaidAt:    m.InvoicePaidAt,
		CreatedAt: m.InvoiceCreatedAt,
		UpdatedAt: m.InvoiceUpdatedAt,
	}
}

func ToInvoiceResponses(ms []invoiceModel.InvoiceModel) []InvoiceResponse {
	out := make([]InvoiceResponse, len(ms))
	for i := range ms {
		out[i] = ToInvoiceResponse(ms[i])
	}
	return out
}
