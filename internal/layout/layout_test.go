package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fvieira/frota-csv/internal/parsererror"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		rows       [][]string
		wantLayout Layout
		wantRow    int
	}{
		{
			name: "entrada header after banner rows",
			rows: [][]string{
				{"SAE134 - RELATORIO DE ENTRADAS"},
				{""},
				{"PRGER-CCUS", "PRGER-NFOR", "PRENT-TOTA", "PRGER-LCTO"},
				{"002260", "FORNECEDOR X", "125000", "20240115"},
			},
			wantLayout: Entrada,
			wantRow:    2,
		},
		{
			name: "saida header",
			rows: [][]string{
				{"SAE127"},
				{"PRGER-CCUS", "DET01-QUEBRA", "PRGER-TTEN"},
			},
			wantLayout: Saida,
			wantRow:    1,
		},
		{
			name: "tire vendor worksheet",
			rows: [][]string{
				{"FICHA PNEU", "FROTA", "VALOR"},
			},
			wantLayout: TireVendor,
			wantRow:    0,
		},
		{
			name: "tracker subscription export",
			rows: [][]string{
				{"FROTA", "MENSALIDADE RASTREADOR"},
			},
			wantLayout: TrackerSubscription,
			wantRow:    0,
		},
		{
			name: "internal labor split",
			rows: [][]string{
				{"FROTA", "VALOR M.O.", "DATA"},
			},
			wantLayout: InternalLabor,
			wantRow:    0,
		},
		{
			name: "lowercase header still matches",
			rows: [][]string{
				{"prger-ccus", "prent-tota"},
			},
			wantLayout: Entrada,
			wantRow:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Detect(tt.rows, "in.csv")
			require.NoError(t, err)
			assert.Equal(t, tt.wantLayout, h.Layout)
			assert.Equal(t, tt.wantRow, h.RowIndex)
		})
	}
}

func TestDetectNotRecognized(t *testing.T) {
	rows := [][]string{
		{"RELATORIO QUALQUER"},
		{"COLUNA-A", "COLUNA-B"},
	}
	_, err := Detect(rows, "estranho.csv")
	require.Error(t, err)
	var lerr *parsererror.UnrecognizedLayoutError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "estranho.csv", lerr.FilePath)
	assert.Equal(t, 2, lerr.RowsScanned)
}

func TestDetectScanWindow(t *testing.T) {
	rows := make([][]string, 0, 60)
	for i := 0; i < 55; i++ {
		rows = append(rows, []string{"linha de banner"})
	}
	rows = append(rows, []string{"PRGER-CCUS", "PRENT-TOTA"})
	_, err := Detect(rows, "fundo.csv")
	assert.Error(t, err)
}

func TestFieldMapExactBeforeSubstring(t *testing.T) {
	m := NewFieldMap([]string{"DET01-QUEBRA-EMPR", "DET01-QUEBRA", "PRGER-TTEN"})
	assert.Equal(t, 1, m.Index("DET01-QUEBRA"))
	assert.Equal(t, 0, m.Index("DET01-QUEBRA-EMPR"))
	assert.Equal(t, 2, m.Index("TTEN"))
	assert.Equal(t, -1, m.Index("INEXISTENTE"))
}

func TestFieldMapValue(t *testing.T) {
	m := NewFieldMap([]string{" PRGER-CCUS ", "PRGER-NFOR"})
	row := []string{" 002260 ", "FORNECEDOR"}
	assert.Equal(t, "002260", m.Value(row, "prger-ccus"))
	assert.Equal(t, "", m.Value(row[:1], "PRGER-NFOR"))
	assert.Equal(t, "", m.Value(row, "NADA"))
}
