package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
	settingsModel "tutorbill_backend/internals/features/settings/business/model"
)

func snapOf(bank settingsModel.BankAccount) *datatypes.JSONType[settingsModel.BankAccount] {
	v := datatypes.NewJSONType(bank)
	return &v
}

func TestBuildUPIPayload(t *testing.T) {
	inv := &invoiceModel.InvoiceModel{
		InvoiceType:        invoiceModel.InvoiceTypeInvoice,
		InvoiceTotalAmount: 5794,
		InvoiceBankSnapshot: snapOf(settingsModel.BankAccount{
			ID:    "b1",
			UPIID: "tutors@hdfc",
		}),
	}

	payload := BuildUPIPayload(inv, "Bright Tutors")
	assert.Contains(t, payload, "upi://pay?")
	assert.Contains(t, payload, "pa=tutors%40hdfc")
	assert.Contains(t, payload, "pn=Bright+Tutors")
	assert.Contains(t, payload, "am=5794.00")
	assert.Contains(t, payload, "cu=INR")
}

func TestBuildUPIPayload_Empty(t *testing.T) {
	// quotations are not payable
	q := &invoiceModel.InvoiceModel{
		InvoiceType:         invoiceModel.InvoiceTypeQuotation,
		InvoiceBankSnapshot: snapOf(settingsModel.BankAccount{UPIID: "tutors@hdfc"}),
	}
	assert.Equal(t, "", BuildUPIPayload(q, "Bright Tutors"))

	// no bank snapshot captured
	inv := &invoiceModel.InvoiceModel{InvoiceType: invoiceModel.InvoiceTypeInvoice}
	assert.Equal(t, "", BuildUPIPayload(inv, "Bright Tutors"))

	// bank without a UPI id
	inv.InvoiceBankSnapshot = snapOf(settingsModel.BankAccount{AccountNumber: "1234"})
	assert.Equal(t, "", BuildUPIPayload(inv, "Bright Tutors"))
}
