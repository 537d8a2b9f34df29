package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	invoiceModel "tutorbill_backend/internals/features/finance/invoices/model"
)

// Single-pass aggregations over already-fetched rows. The dataset is a
// single tutoring business (dozens of students), so nothing here needs
// to be pushed down into SQL.

// =========================================================
// REVENUE - paid invoices bucketed by payment month
// =========================================================

type RevenuePoint struct {
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// AggregateRevenue buckets paid invoices into the trailing `months`
// calendar months ending at (endMonth, endYear). Months without
// payments still appear with zero totals.
func AggregateRevenue(invoices []invoiceModel.InvoiceModel, endMonth, endYear, months int) []RevenuePoint {
	points := make([]RevenuePoint, 0, months)

	m, y := endMonth, endYear
	for i := 0; i < months; i++ {
		points = append(points, RevenuePoint{
			Month: m,
			Year:  y,
			Label: fmt.Sprintf("%s %d", time.Month(m), y),
		})
		m--
		if m < 1 {
			m = 12
			y--
		}
	}
	// chronological order
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}

	index := make(map[string]int, months)
	for i, p := range points {
		index[fmt.Sprintf("%04d-%02d", p.Year, p.Month)] = i
	}

	for _, inv := range invoices {
		if inv.InvoiceStatus != invoiceModel.InvoiceStatusPaid || inv.InvoicePaidAt == nil {
			continue
		}
		key := inv.InvoicePaidAt.Format("2006-01")
		if i, ok := index[key]; ok {
			points[i].Total += inv.InvoiceTotalAmount
			points[i].Count++
		}
	}
	return points
}

// =========================================================
// CHURN - students drifting away from classes
// =========================================================

type ChurnEntry struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	LastMonth   int       `json:"last_month"` // 0 = never attended
	LastYear    int       `json:"last_year"`
	MonthsIdle  int       `json:"months_idle"`
}

// monthIndex flattens (year, month) for gap arithmetic.
func monthIndex(year, month int) int {
	return year*12 + (month - 1)
}

// FlagAtRisk returns students whose most recent attendance month is
// `threshold` or more months behind the reference month. Students with
// no attendance at all are always flagged.
func FlagAtRisk(latest map[uuid.UUID]struct {
	Name  string
	Month int
	Year  int
}, refMonth, refYear, threshold int) []ChurnEntry {
	ref := monthIndex(refYear, refMonth)
	out := []ChurnEntry{}
	for id, v := range latest {
		if v.Month == 0 {
			out = append(out, ChurnEntry{
				StudentID:   id,
				StudentName: v.Name,
				MonthsIdle:  threshold, // unknown, report at least the threshold
			})
			continue
		}
		idle := ref - monthIndex(v.Year, v.Month)
		if idle >= threshold {
			out = append(out, ChurnEntry{
				StudentID:   id,
				StudentName: v.Name,
				LastMonth:   v.Month,
				LastYear:    v.Year,
				MonthsIdle:  idle,
			})
		}
	}
	return out
}
