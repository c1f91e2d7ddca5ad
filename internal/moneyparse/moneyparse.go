// Package moneyparse decodes the monetary encodings found in the legacy
// fleet exports. Two conventions exist: scaled integers with no decimal
// separator (the divisor is a property of the detected layout, not of the
// data) and human-formatted Brazilian currency strings ("R$ 1.234,56").
// Decode failures always yield zero, never an error: a malformed field
// must not discard an otherwise valid record.
package moneyparse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DecodeScaledAmount strips every character that is not a digit or minus
// sign, parses the rest as an integer, takes the absolute value and
// divides by divisor. Unparsable input decodes to zero.
func DecodeScaledAmount(raw string, divisor int64) decimal.Decimal {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '-' {
			b.WriteRune(r)
		}
	}
	n, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	if divisor <= 0 {
		divisor = 1
	}
	return n.Abs().Div(decimal.NewFromInt(divisor))
}

// DecodeMonetaryString parses a human-formatted currency string: currency
// symbols and spaces are dropped, thousands dots removed, the decimal
// comma becomes a point. Returns zero on failure.
func DecodeMonetaryString(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		// Brazilian format: dot is a thousands separator, comma is decimal.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	n, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return n.Abs()
}

// FormatBR renders an amount with two decimal places and a decimal comma,
// as the closing-report export expects.
func FormatBR(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}
