package core

import (
	"fmt"
	"strings"
	"time"
)

// CurrencySymbol is the Ghanaian Cedi sign used on every rendered amount.
const CurrencySymbol = "GH₵"

// FormatCurrency renders an amount as Ghanaian Cedi, e.g. 1250.5 -> "GH₵1,250.50".
func FormatCurrency(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(CurrencySymbol)
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatDate renders a date as "15 Sep 2023".
func FormatDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// FormatTime renders the time of day as "03:04 PM".
func FormatTime(t time.Time) string {
	return t.Format("03:04 PM")
}

// FormatDateTime renders a timestamp as "15 Sep 2023 at 03:04 PM".
func FormatDateTime(t time.Time) string {
	return FormatDate(t) + " at " + FormatTime(t)
}

// TruncateText shortens text with an ellipsis if it exceeds maxLen.
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
