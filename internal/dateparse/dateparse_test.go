package dateparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFixedDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"slash format", "15/03/2024", "2024-03-15"},
		{"slash format single digits", "5/3/2024", "2024-03-05"},
		{"eight digits year first", "20240315", "2024-03-15"},
		{"eight digits day first", "15032024", "2024-03-15"},
		{"eight digits with noise", " 2024-03.15 ", "2024-03-15"},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"too few digits", "150324", ""},
		{"two-part slash", "03/2024", ""},
		{"two-digit year", "15/03/24", ""},
		{"letters", "abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeFixedDate(tt.raw))
		})
	}
}

func TestPeriodWindow(t *testing.T) {
	start, end := Period{Granularity: GranularityMonth, Month: 3, Year: 2024}.Window()
	assert.Equal(t, "2024-03-01", start.Format(ISOLayout))
	assert.Equal(t, "2024-04-01", end.Format(ISOLayout))

	// Any month inside the quarter selects the same window.
	start, end = Period{Granularity: GranularityQuarter, Month: 5, Year: 2024}.Window()
	assert.Equal(t, "2024-04-01", start.Format(ISOLayout))
	assert.Equal(t, "2024-07-01", end.Format(ISOLayout))

	start, end = Period{Granularity: GranularitySemester, Month: 9, Year: 2024}.Window()
	assert.Equal(t, "2024-07-01", start.Format(ISOLayout))
	assert.Equal(t, "2025-01-01", end.Format(ISOLayout))

	start, end = Period{Granularity: GranularityYear, Month: 6, Year: 2024}.Window()
	assert.Equal(t, "2024-01-01", start.Format(ISOLayout))
	assert.Equal(t, "2025-01-01", end.Format(ISOLayout))
}

func TestPeriodContains(t *testing.T) {
	p := Period{Granularity: GranularityMonth, Month: 3, Year: 2024}
	assert.True(t, p.Contains("2024-03-01"))
	assert.True(t, p.Contains("2024-03-31"))
	assert.False(t, p.Contains("2024-04-01"))
	assert.False(t, p.Contains("2024-02-29"))
	assert.False(t, p.Contains(""))
	assert.False(t, p.Contains("31/03/2024"))
}

func TestPeriodPrevious(t *testing.T) {
	prev := Period{Granularity: GranularityMonth, Month: 1, Year: 2024}.Previous()
	assert.Equal(t, Period{Granularity: GranularityMonth, Month: 12, Year: 2023}, prev)

	prev = Period{Granularity: GranularityQuarter, Month: 2, Year: 2024}.Previous()
	assert.Equal(t, Period{Granularity: GranularityQuarter, Month: 10, Year: 2023}, prev)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Marco", Period{Granularity: GranularityMonth, Month: 3, Year: 2024}.Label())
	assert.Equal(t, "Trimestre2", Period{Granularity: GranularityQuarter, Month: 5, Year: 2024}.Label())
	assert.Equal(t, "Semestre2", Period{Granularity: GranularitySemester, Month: 9, Year: 2024}.Label())
	assert.Equal(t, "Anual", Period{Granularity: GranularityYear, Month: 1, Year: 2024}.Label())
}
