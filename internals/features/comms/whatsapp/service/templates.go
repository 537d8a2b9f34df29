package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
)

// WhatsApp is used as a plain deep link - no Business API integration.
// The panel opens wa.me with a prefilled message; sending stays manual.

// NormalizePhone strips separators and prefixes the country code when
// the number looks like a bare 10-digit Indian mobile number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 {
		return "91" + digits
	}
	return strings.TrimLeft(digits, "0")
}

// FeeReminderMessage renders the reminder text from the invoice's
// frozen snapshots; live student edits never leak into the message.
func FeeReminderMessage(inv *invoiceModel.InvoiceModel, businessName, publicBaseURL string) string {
	snap := inv.InvoiceStudentSnapshot.Data()

	period := fmt.Sprintf("%s %d", time.Month(inv.InvoiceEndMonth), inv.InvoiceEndYear)
	if inv.InvoiceMonthCount > 1 {
		period = fmt.Sprintf("%s %d - %s", time.Month(inv.InvoiceStartMonth), inv.InvoiceStartYear, period)
	}

	lines := []string{
		fmt.Sprintf("Dear %s,", snap.ParentName),
		fmt.Sprintf("Fee reminder for %s (%s), billing period %s.", snap.Name, snap.Course, period),
		fmt.Sprintf("Classes: %d | Amount due: ₹%.2f", inv.InvoiceClassCount, inv.InvoiceTotalAmount),
	}
	if publicBaseURL != "" {
		lines = append(lines, fmt.Sprintf("View invoice: %s/invoice/%s", strings.TrimRight(publicBaseURL, "/"), inv.InvoiceID))
	}
	lines = append(lines, fmt.Sprintf("- %s", businessName))
	return strings.Join(lines, "\n")
}

// WaLink builds the https://wa.me deep link with the prefilled text.
func WaLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone), url.QueryEscape(message))
}
