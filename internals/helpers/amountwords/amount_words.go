package amountwords

import (
	"math"
	"strings"
)

// Indian-system amount-to-words for printable invoices,
// e.g. 5794 → "Rupees Five Thousand Seven Hundred Ninety Four Only".

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// twoDigits renders 0..99.
func twoDigits(n int) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

// threeDigits renders 0..999.
func threeDigits(n int) string {
	if n < 100 {
		return twoDigits(n)
	}
	s := ones[n/100] + " Hundred"
	if n%100 != 0 {
		s += " " + twoDigits(n%100)
	}
	return s
}

// InWords renders a non-negative integer in the Indian grouping
// (crore / lakh / thousand / hundred).
func InWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	parts := []string{}
	if c := n / 1_00_00_000; c > 0 {
		// crores above 99 recurse (Arab is uncommon on invoices)
		if c >= 100 {
			parts = append(parts, InWords(c)+" Crore")
		} else {
			parts = append(parts, twoDigits(int(c))+" Crore")
		}
		n %= 1_00_00_000
	}
	if l := n / 1_00_000; l > 0 {
		parts = append(parts, twoDigits(int(l))+" Lakh")
		n %= 1_00_000
	}
	if t := n / 1_000; t > 0 {
		parts = append(parts, twoDigits(int(t))+" Thousand")
		n %= 1_000
	}
	if n > 0 {
		parts = append(parts, threeDigits(int(n)))
	}
	return strings.Join(parts, " ")
}

// Rupees renders a currency amount, paise included when present.
func Rupees(amount float64) string {
	prefix := ""
	if amount < 0 {
		prefix = "Minus "
		amount = -amount
	}

	total := math.Round(amount * 100)
	rupees := int64(total) / 100
	paise := int64(total) % 100

	s := prefix + "Rupees " + InWords(rupees)
	if paise > 0 {
		s += " and " + twoDigits(int(paise)) + " Paise"
	}
	return s + " Only"
}
