package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
)

func paidInvoice(amount float64, paidAt time.Time) invoiceModel.InvoiceModel {
	return invoiceModel.InvoiceModel{
		InvoiceType:        invoiceModel.InvoiceTypeInvoice,
		InvoiceStatus:      invoiceModel.InvoiceStatusPaid,
		InvoiceTotalAmount: amount,
		InvoicePaidAt:      &paidAt,
	}
}

func TestAggregateRevenue(t *testing.T) {
	mar := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	apr := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	invoices := []invoiceModel.InvoiceModel{
		paidInvoice(3996, mar),
		paidInvoice(2000, mar),
		paidInvoice(5794, apr),
		// unpaid rows never count, whatever their amount
		{InvoiceStatus: invoiceModel.InvoiceStatusUnpaid, InvoiceTotalAmount: 9999},
		// quotations neither
		{InvoiceStatus: invoiceModel.InvoiceStatusQuotation, InvoiceTotalAmount: 9999},
	}

	points := AggregateRevenue(invoices, 4, 2024, 3)
	require.Len(t, points, 3)

	// chronological, zero months included
	assert.Equal(t, "February 2024", points[0].Label)
	assert.Equal(t, float64(0), points[0].Total)
	assert.Equal(t, 0, points[0].Count)

	assert.Equal(t, "March 2024", points[1].Label)
	assert.Equal(t, float64(5996), points[1].Total)
	assert.Equal(t, 2, points[1].Count)

	assert.Equal(t, "April 2024", points[2].Label)
	assert.Equal(t, float64(5794), points[2].Total)
	assert.Equal(t, 1, points[2].Count)
}

func TestAggregateRevenue_PaymentOutsideWindow(t *testing.T) {
	old := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	points := AggregateRevenue([]invoiceModel.InvoiceModel{paidInvoice(1000, old)}, 4, 2024, 3)
	for _, p := range points {
		assert.Equal(t, float64(0), p.Total)
	}
}

func TestFlagAtRisk(t *testing.T) {
	active := uuid.New()
	drifting := uuid.New()
	never := uuid.New()

	latest := map[uuid.UUID]struct {
		Name  string
		Month int
		Year  int
	}{
		active:   {Name: "Asha", Month: 4, Year: 2024},
		drifting: {Name: "Ravi", Month: 12, Year: 2023}, // 4 months behind Apr 2024
		never:    {Name: "Kiran"},                       // no attendance at all
	}

	flagged := FlagAtRisk(latest, 4, 2024, 2)
	require.Len(t, flagged, 2)

	byID := map[uuid.UUID]ChurnEntry{}
	for _, e := range flagged {
		byID[e.StudentID] = e
	}

	assert.NotContains(t, byID, active)
	assert.Equal(t, 4, byID[drifting].MonthsIdle)
	assert.Equal(t, 12, byID[drifting].LastMonth)
	assert.Equal(t, 2, byID[never].MonthsIdle)
	assert.Equal(t, 0, byID[never].LastMonth)
}

func TestMonthIndexGapAcrossYears(t *testing.T) {
	assert.Equal(t, 1, monthIndex(2024, 1)-monthIndex(2023, 12))
	assert.Equal(t, 12, monthIndex(2024, 3)-monthIndex(2023, 3))
}
