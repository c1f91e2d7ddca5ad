package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fvieira/frota-csv/internal/aggregator"
	"fvieira/frota-csv/internal/dateparse"
)

func sampleReport() *aggregator.Report {
	dec := decimal.NewFromFloat
	return &aggregator.Report{
		Period: dateparse.Period{Granularity: dateparse.GranularityMonth, Month: 1, Year: 2024},
		Total:  dec(1220),
		Closing: []aggregator.MachineClosing{
			{
				FleetCode: "310", Name: "CAMINHAO PIPA",
				Hours: dec(10), Liters: dec(25), LitersPerHour: dec(2.5),
				Fuel: dec(120), Parts: dec(50),
				MaintenanceTotal: dec(50), Total: dec(170),
				FuelCostPerHour: dec(12), CostPerHour: dec(17), CostPerHourNoFuel: dec(5),
			},
			{
				FleetCode: "2260", Name: "TRATOR VALTRA",
				Hours: dec(100), Liters: dec(800), LitersPerHour: dec(8),
				Fuel: dec(500), Parts: dec(300), Tires: dec(250),
				MaintenanceTotal: dec(550), Total: dec(1050),
				FuelCostPerHour: dec(5), CostPerHour: dec(10.5), CostPerHourNoFuel: dec(5.5),
			},
		},
	}
}

func TestFileName(t *testing.T) {
	report := sampleReport()
	assert.Equal(t, "Fechamento_Janeiro_2024.csv", FileName(report, "csv"))
	assert.Equal(t, "Fechamento_Janeiro_2024.xlsx", FileName(report, "xlsx"))
}

func TestRenderCSV(t *testing.T) {
	data, err := RenderCSV(sampleReport())
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	lines := strings.Split(strings.TrimRight(string(data[3:]), "\r\n"), "\r\n")
	// Header, two machine rows, totals row.
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "Frota;Maquina;Horas"))
	assert.True(t, strings.HasPrefix(lines[1], "310;CAMINHAO PIPA;10,00;25,00;2,50"))
	assert.Contains(t, lines[2], "2260;TRATOR VALTRA;100,00;800,00;8,00")

	totals := strings.Split(lines[3], ";")
	assert.Equal(t, "TOTAL", totals[0])
	assert.Equal(t, "110,00", totals[2])
	assert.Equal(t, "825,00", totals[3])
	assert.Equal(t, "620,00", totals[6])
	assert.Equal(t, "1220,00", totals[13])
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSV(sampleReport(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Fechamento_Janeiro_2024.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteXLSX(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteXLSX(sampleReport(), dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	title, err := f.GetCellValue("Fechamento", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Fechamento de Máquinas", title)

	fleet, err := f.GetCellValue("Fechamento", "A9")
	require.NoError(t, err)
	assert.Equal(t, "310", fleet)
}
