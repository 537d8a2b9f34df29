package service

import (
	"fmt"
	"time"

	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
)

// MonthRef is one calendar month of a billing period.
type MonthRef struct {
	Month int
	Year  int
}

func (r MonthRef) Label() string {
	return fmt.Sprintf("%s %d", time.Month(r.Month), r.Year)
}

// BuildMonthSpan returns the `count` calendar months ending at
// (endMonth, endYear), in chronological order. Walks backward from the
// end month, then reverses.
func BuildMonthSpan(endMonth, endYear, count int) []MonthRef {
	span := make([]MonthRef, 0, count)
	m, y := endMonth, endYear
	for i := 0; i < count; i++ {
		span = append(span, MonthRef{Month: m, Year: y})
		m--
		if m < 1 {
			m = 12
			y--
		}
	}
	// reverse into chronological order
	for i, j := 0, len(span)-1; i < j; i, j = i+1, j-1 {
		span[i], span[j] = span[j], span[i]
	}
	return span
}

// WeekendDates returns up to `limit` Saturday/Sunday dates across the
// span, in chronological order. Short spans can yield fewer dates than
// asked for; callers keep whatever comes back (no padding, no error).
func WeekendDates(span []MonthRef, limit int) []time.Time {
	if limit <= 0 {
		return nil
	}
	dates := make([]time.Time, 0, limit)
	for _, ref := range span {
		d := time.Date(ref.Year, time.Month(ref.Month), 1, 0, 0, 0, 0, time.UTC)
		for d.Month() == time.Month(ref.Month) {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				dates = append(dates, d)
				if len(dates) == limit {
					return dates
				}
			}
			d = d.AddDate(0, 0, 1)
		}
	}
	return dates
}

// breakdownFor pairs a month span with per-month class counts.
func breakdownFor(span []MonthRef, counts []int) []invoiceModel.MonthBreakdown {
	out := make([]invoiceModel.MonthBreakdown, len(span))
	for i, ref := range span {
		out[i] = invoiceModel.MonthBreakdown{
			Month:      ref.Month,
			Year:       ref.Year,
			Label:      ref.Label(),
			ClassCount: counts[i],
		}
	}
	return out
}
