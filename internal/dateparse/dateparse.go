// Package dateparse decodes the date encodings found in the legacy fleet
// exports and provides the reporting-period arithmetic used by the
// aggregation engine.
package dateparse

import (
	"fmt"
	"strings"
)

// ISOLayout is the canonical day format used across the pipeline.
const ISOLayout = "2006-01-02"

// DecodeFixedDate converts a raw export date into an ISO day string.
// Accepted inputs: DD/MM/YYYY, or an 8-digit run read as YYYYMMDD when it
// starts with "201" or "202" and as DDMMYYYY otherwise. Anything else
// yields the empty string.
//
// The 8-digit disambiguation misreads dates before 2010 and after 2029;
// the heuristic is kept as-is because the source systems offer no better
// signal.
func DecodeFixedDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return ""
		}
		day, month, year := pad2(parts[0]), pad2(parts[1]), strings.TrimSpace(parts[2])
		if len(year) != 4 || !allDigits(day) || !allDigits(month) || !allDigits(year) {
			return ""
		}
		return fmt.Sprintf("%s-%s-%s", year, month, day)
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 8 {
		return ""
	}
	if strings.HasPrefix(d, "201") || strings.HasPrefix(d, "202") {
		return fmt.Sprintf("%s-%s-%s", d[0:4], d[4:6], d[6:8])
	}
	return fmt.Sprintf("%s-%s-%s", d[4:8], d[2:4], d[0:2])
}

func pad2(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
