package dateparse

import (
	"fmt"
	"time"
)

// Granularity selects the width of a reporting period.
type Granularity string

const (
	GranularityMonth    Granularity = "month"
	GranularityQuarter  Granularity = "quarter"
	GranularitySemester Granularity = "semester"
	GranularityYear     Granularity = "year"
)

// Period is a reporting-period selector. Month is 1-12 and, for quarter
// and semester granularities, any month inside the desired window.
type Period struct {
	Granularity Granularity
	Month       int
	Year        int
}

// monthsPer returns the window width in months.
func (p Period) monthsPer() int {
	switch p.Granularity {
	case GranularityQuarter:
		return 3
	case GranularitySemester:
		return 6
	case GranularityYear:
		return 12
	default:
		return 1
	}
}

// Window returns the half-open interval [start, end) covered by the period.
func (p Period) Window() (time.Time, time.Time) {
	width := p.monthsPer()
	month := p.Month
	if p.Granularity == GranularityYear {
		month = 1
	} else if width > 1 {
		// Snap to the start of the quarter/semester containing Month.
		month = ((p.Month-1)/width)*width + 1
	}
	start := time.Date(p.Year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, width, 0)
}

// Contains reports whether the ISO day falls inside the period. Empty or
// malformed dates are never contained.
func (p Period) Contains(isoDay string) bool {
	t, err := time.Parse(ISOLayout, isoDay)
	if err != nil {
		return false
	}
	start, end := p.Window()
	return !t.Before(start) && t.Before(end)
}

// Previous returns the period one granularity unit earlier, rolling the
// year back when the window crosses January.
func (p Period) Previous() Period {
	start, _ := p.Window()
	prev := start.AddDate(0, -p.monthsPer(), 0)
	return Period{Granularity: p.Granularity, Month: int(prev.Month()), Year: prev.Year()}
}

var monthNamesBR = []string{
	"Janeiro", "Fevereiro", "Marco", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Label renders the human-readable period tag used in export filenames,
// e.g. "Marco", "Trimestre2", "Semestre1", "Anual".
func (p Period) Label() string {
	switch p.Granularity {
	case GranularityYear:
		return "Anual"
	case GranularityQuarter:
		return fmt.Sprintf("Trimestre%d", (p.Month-1)/3+1)
	case GranularitySemester:
		return fmt.Sprintf("Semestre%d", (p.Month-1)/6+1)
	default:
		if p.Month >= 1 && p.Month <= 12 {
			return monthNamesBR[p.Month-1]
		}
		return fmt.Sprintf("Mes%d", p.Month)
	}
}
