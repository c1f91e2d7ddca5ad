package saidaparser

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

const sampleFile = `SAE127 - SAIDAS DE ALMOXARIFADO
DET01-QUEBRA;PRGER-DATA;PRGER-TTEN;PRGER-QTDES;PRGER-VREN;PRMAT-NOME;PRMAT-CODI;PRGER-RECE;PRGER-NALM
002260;15/01/2024;1250000;2000;625000;FILTRO DE OLEO;000123;JOAO;CENTRAL
000310;16/01/2024;500000;10000;50000;OLEO DIESEL;77;PEDRO;CENTRAL
555;17/01/2024;99000;1000;99000;PARAFUSO M8;999;ANA;CENTRAL
;18/01/2024;1000;1000;1000;ITEM SEM FROTA;1;X;Y`

func buildSample(t *testing.T) ([]models.Expense, *models.ImportWarnings) {
	t.Helper()
	rows := tokenizer.Tokenize(sampleFile, ';')
	header, err := layout.Detect(rows, "sae127.csv")
	require.NoError(t, err)
	require.Equal(t, layout.Saida, header.Layout)

	machines := registry.NewSnapshot([]models.Machine{
		{FleetCode: "2260", Name: "TRATOR VALTRA", Type: "Trator"},
		{FleetCode: "310", Name: "CAMINHAO PIPA", Type: "Caminhao"},
	})
	materials := registry.NewMaterialIndex([]models.MaterialCatalogEntry{
		{Code: "123", Description: "FILTRO DE OLEO", Category: "FILTROS"},
		{Code: "77", Description: "OLEO DIESEL", Category: "OLEO DIESEL"},
	})
	warnings := models.NewImportWarnings()
	return Build(rows, header, machines, materials, warnings), warnings
}

func TestBuild(t *testing.T) {
	expenses, _ := buildSample(t)
	require.Len(t, expenses, 3)

	first := expenses[0]
	assert.Equal(t, models.KindOutflow, first.Kind)
	assert.Equal(t, "2260", first.FleetCode)
	assert.False(t, first.UnknownFleet)
	assert.Equal(t, "2024-01-15", first.Date)
	assert.True(t, decimal.NewFromInt(1250).Equal(first.Amount), first.Amount.String())
	assert.True(t, decimal.NewFromInt(2).Equal(first.Quantity), first.Quantity.String())
	assert.True(t, decimal.NewFromInt(625).Equal(first.UnitValue), first.UnitValue.String())
	assert.Equal(t, "FILTROS", first.Category)
	assert.Equal(t, "FILTRO DE OLEO", first.Description)
	assert.Equal(t, "Movimentação de Estoque", first.Supplier)
}

func TestBuildCatalogLookup(t *testing.T) {
	expenses, warnings := buildSample(t)

	second := expenses[1]
	assert.Equal(t, "OLEO DIESEL", second.Category)

	third := expenses[2]
	assert.Equal(t, models.CategoryUncatalogued, third.Category)
	assert.True(t, third.UnknownFleet)
	assert.Equal(t, []string{"999"}, warnings.UnknownMaterials())
	assert.Equal(t, []string{"555"}, warnings.UnknownFleets())
}
