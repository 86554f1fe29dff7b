package utils

import (
	"fmt"
	"strings"
)

// FormatCurrencyEGP formats an amount in Egyptian pounds with a
// thousands separator. Example: 15000.5 -> "EGP 15,000.50"
func FormatCurrencyEGP(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return "EGP " + strings.Join(groups, ",") + "." + decimalPart
}
