package vendorparser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fvieira/frota-csv/internal/layout"
	"fvieira/frota-csv/internal/models"
	"fvieira/frota-csv/internal/registry"
	"fvieira/frota-csv/internal/tokenizer"
)

func testMachines() *registry.Snapshot {
	return registry.NewSnapshot([]models.Machine{
		{FleetCode: "2260", Name: "TRATOR VALTRA", Type: "Trator"},
		{FleetCode: "310", Name: "CAMINHAO PIPA", Type: "Caminhao"},
	})
}

func parse(t *testing.T, content string, want layout.Layout) ([]models.Expense, *models.ImportWarnings) {
	t.Helper()
	rows := tokenizer.Tokenize(content, ';')
	header, err := layout.Detect(rows, "planilha.csv")
	require.NoError(t, err)
	require.Equal(t, want, header.Layout)
	require.True(t, Handles(header.Layout))

	warnings := models.NewImportWarnings()
	return Build(rows, header, testMachines(), warnings), warnings
}

func TestBuildTireSheet(t *testing.T) {
	content := `FICHA PNEU;FROTA;DATA;DESCRICAO;VALOR
1081;002260;05/01/2024;PNEU 18.4-34 TRASEIRO;R$ 3.450,00
1082;310;06/01/2024;;1.200,50
1083;;07/01/2024;SEM FROTA;10,00`

	expenses, warnings := parse(t, content, layout.TireVendor)
	require.Len(t, expenses, 2)

	first := expenses[0]
	assert.Equal(t, models.KindInflow, first.Kind)
	assert.Equal(t, "2260", first.FleetCode)
	assert.Equal(t, "2024-01-05", first.Date)
	assert.True(t, decimal.NewFromInt(3450).Equal(first.Amount), first.Amount.String())
	assert.Equal(t, "PNEUS", first.Category)
	assert.Equal(t, "Borracharia Conveniada", first.Supplier)
	assert.Equal(t, "PNEU 18.4-34 TRASEIRO", first.Description)

	second := expenses[1]
	assert.True(t, decimal.NewFromFloat(1200.50).Equal(second.Amount), second.Amount.String())
	assert.Equal(t, "PNEUS", second.Description)

	assert.True(t, warnings.Empty())
}

func TestBuildTrackerSheet(t *testing.T) {
	content := `FROTA;DATA;MENSALIDADE RASTREADOR
310;01/02/2024;R$ 89,90
777;01/02/2024;R$ 89,90`

	expenses, warnings := parse(t, content, layout.TrackerSubscription)
	require.Len(t, expenses, 2)
	assert.Equal(t, "MENSALIDADE RASTREADOR", expenses[0].Category)
	assert.Equal(t, "Operadora de Rastreamento", expenses[0].Supplier)
	assert.True(t, decimal.NewFromFloat(89.90).Equal(expenses[0].Amount))
	assert.True(t, expenses[1].UnknownFleet)
	assert.Equal(t, []string{"777"}, warnings.UnknownFleets())
}

func TestBuildLaborSheet(t *testing.T) {
	content := `FROTA;DATA;DESCRICAO;VALOR M.O.
2260;10/03/2024;REVISAO BOMBA INJETORA;450,00`

	expenses, _ := parse(t, content, layout.InternalLabor)
	require.Len(t, expenses, 1)
	assert.Equal(t, "MAO DE OBRA INTERNA", expenses[0].Category)
	assert.Equal(t, "Oficina Interna", expenses[0].Supplier)
	assert.True(t, decimal.NewFromInt(450).Equal(expenses[0].Amount))
}

func TestHandles(t *testing.T) {
	assert.True(t, Handles(layout.TireVendor))
	assert.False(t, Handles(layout.Entrada))
	assert.False(t, Handles(layout.Saida))
}
