package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "919876543210"},          // bare 10-digit mobile
		{"98765 43210", "919876543210"},         // spaces stripped
		{"+91 98765-43210", "919876543210"},     // already has country code
		{"09876543210", "9876543210"},           // leading trunk zero dropped
		{"0091 9876543210", "919876543210"},     // international 00 prefix
		{"+44 20 7946 0958", "442079460958"},    // non-Indian numbers pass through
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizePhone(c.in), "input %q", c.in)
	}
}

func TestFeeReminderMessage(t *testing.T) {
	inv := &invoiceModel.InvoiceModel{
		InvoiceStartMonth: 3,
		InvoiceStartYear:  2024,
		InvoiceEndMonth:   4,
		InvoiceEndYear:    2024,
		InvoiceMonthCount: 2,

		InvoiceClassCount:  6,
		InvoiceTotalAmount: 5794,

		InvoiceStudentSnapshot: datatypes.NewJSONType(invoiceModel.StudentSnapshot{
			Name:       "Asha Rao",
			ParentName: "Meera Rao",
			Course:     "Beginner",
		}),
	}

	msg := FeeReminderMessage(inv, "Bright Tutors", "")
	assert.Contains(t, msg, "Dear Meera Rao,")
	assert.Contains(t, msg, "Asha Rao (Beginner)")
	assert.Contains(t, msg, "March 2024")
	assert.Contains(t, msg, "April 2024")
	assert.Contains(t, msg, "Classes: 6")
	assert.Contains(t, msg, "₹5794.00")
	assert.Contains(t, msg, "Bright Tutors")
	assert.NotContains(t, msg, "/invoice/")

	msg = FeeReminderMessage(inv, "Bright Tutors", "https://billing.example.com/")
	assert.Contains(t, msg, "View invoice: https://billing.example.com/invoice/")
}

func TestWaLink(t *testing.T) {
	link := WaLink("98765 43210", "Amount due: ₹5794.00\nThanks")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	assert.NotContains(t, link, " ")  // message is query-escaped
	assert.NotContains(t, link, "\n")
}
