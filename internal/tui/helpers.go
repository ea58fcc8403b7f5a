package tui

import (
	"errors"
	"fmt"

	"github.com/mvalarezo/taller/internal/gateway"
)

// displayErr maps remote failures to their operator-facing text while local
// validation messages pass through verbatim.
func displayErr(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *gateway.APIError
	var transportErr *gateway.TransportError
	if errors.As(err, &apiErr) || errors.As(err, &transportErr) {
		return errors.New(gateway.Message(err))
	}
	return err
}

// formatMoney formats money as "$X,XXX.XX" with comma separators
func formatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := "$"
	if negative {
		prefix = "-$"
	}
	return prefix + string(result) + decPart
}

// formatKm formats an odometer reading as "X km"
func formatKm(km int) string {
	return fmt.Sprintf("%d km", km)
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
