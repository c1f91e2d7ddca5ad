// Package layout recognizes which legacy export format a tokenized file
// carries and maps logical column names to field indexes in its header row.
package layout

import (
	"strings"

	"fvieira/frota-csv/internal/parsererror"
)

// Layout identifies one of the recognized legacy export formats.
type Layout string

const (
	// Entrada is the inbound invoice report (SAE134).
	Entrada Layout = "entrada"
	// Saida is the stock issue report (SAE127).
	Saida Layout = "saida"
	// TireVendor is the tire supplier worksheet export.
	TireVendor Layout = "pneus"
	// TrackerSubscription is the tracker monthly-fee export.
	TrackerSubscription Layout = "rastreador"
	// InternalLabor is the workshop labor split export.
	InternalLabor Layout = "mao-de-obra"
)

// Scale divisors for the raw scaled-integer monetary fields of each
// fixed-layout report. Discovered from sample files; the exports carry no
// decimal separator.
const (
	EntradaAmountDivisor int64 = 100
	SaidaAmountDivisor   int64 = 1000
	SaidaQuantityDivisor int64 = 1000
)

// headerScanWindow bounds how deep into a file the detector looks for a
// header row. The legacy reports prepend a variable number of banner and
// page-break lines before the column header.
const headerScanWindow = 50

// signatures maps a substring that appears only in one layout's header row
// to that layout. Order matters: the entrada signature column also occurs
// in some saida page footers, so the more specific token is listed first.
var signatures = []struct {
	token  string
	layout Layout
}{
	{"DET01-QUEBRA", Saida},
	{"PRENT-TOTA", Entrada},
	{"FICHA PNEU", TireVendor},
	{"MENSALIDADE RASTREADOR", TrackerSubscription},
	{"VALOR M.O.", InternalLabor},
}

// Header is the result of a successful detection: the recognized layout,
// the index of its header row, and the column map for field lookup.
type Header struct {
	Layout   Layout
	RowIndex int
	fields   FieldMap
}

// Fields returns the column map built from the header row.
func (h Header) Fields() FieldMap {
	return h.fields
}

// Detect scans at most the first 50 rows for a known header signature.
// The first row containing one becomes the header row. filePath is only
// used to build the error when nothing matches.
func Detect(rows [][]string, filePath string) (Header, error) {
	limit := len(rows)
	if limit > headerScanWindow {
		limit = headerScanWindow
	}
	for i := 0; i < limit; i++ {
		joined := strings.ToUpper(strings.Join(rows[i], " "))
		for _, sig := range signatures {
			if strings.Contains(joined, sig.token) {
				return Header{
					Layout:   sig.layout,
					RowIndex: i,
					fields:   NewFieldMap(rows[i]),
				}, nil
			}
		}
	}
	return Header{}, &parsererror.UnrecognizedLayoutError{
		FilePath:    filePath,
		RowsScanned: limit,
	}
}

// FieldMap resolves logical column names against a header row.
type FieldMap struct {
	headers []string
}

// NewFieldMap normalizes a header row (trim plus uppercase) for lookup.
func NewFieldMap(headerRow []string) FieldMap {
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = strings.ToUpper(strings.TrimSpace(h))
	}
	return FieldMap{headers: headers}
}

// Index returns the column index for name. Exact match is tried over the
// whole header before substring containment, so a short column name is
// never captured by a longer unrelated one (QUEBRA vs QUEBRA-EMPR).
// Returns -1 when the column is absent.
func (m FieldMap) Index(name string) int {
	want := strings.ToUpper(strings.TrimSpace(name))
	for i, h := range m.headers {
		if h == want {
			return i
		}
	}
	for i, h := range m.headers {
		if strings.Contains(h, want) {
			return i
		}
	}
	return -1
}

// Value returns the trimmed field for the named column in row, or "" when
// the column is absent or the row is too short.
func (m FieldMap) Value(row []string, name string) string {
	idx := m.Index(name)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
