// Package export renders the closing report as a spreadsheet file. The
// CSV variant targets Excel in Brazilian locale: UTF-8 BOM so Excel picks
// the right encoding, semicolon delimiter and decimal comma.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"fvieira/frota-csv/internal/aggregator"
	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/moneyparse"
)

var log = logging.GetLogger()

// SetLogger sets the logger used by the exporters.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var closingHeader = []string{
	"Frota",
	"Maquina",
	"Horas",
	"Litros",
	"Litros/Hora",
	"Combustivel/Hora",
	"Vlr Combustivel",
	"Vlr Pecas",
	"Vlr M.O.",
	"Vlr Pneus",
	"Total Manutencao",
	"Vlr Fixas",
	"Vlr Gerais",
	"Total Despesas",
	"Custo/Hora",
	"Custo/Hora s/ Comb.",
}

// FileName builds the closing-report file name for a period, e.g.
// "Fechamento_Janeiro_2024.csv".
func FileName(report *aggregator.Report, extension string) string {
	return fmt.Sprintf("Fechamento_%s_%d.%s", report.Period.Label(), report.Period.Year, extension)
}

func closingRows(report *aggregator.Report) [][]string {
	rows := make([][]string, 0, len(report.Closing)+1)

	var totals aggregator.MachineClosing
	for _, row := range report.Closing {
		rows = append(rows, []string{
			row.FleetCode,
			row.Name,
			moneyparse.FormatBR(row.Hours),
			moneyparse.FormatBR(row.Liters),
			moneyparse.FormatBR(row.LitersPerHour),
			moneyparse.FormatBR(row.FuelCostPerHour),
			moneyparse.FormatBR(row.Fuel),
			moneyparse.FormatBR(row.Parts),
			moneyparse.FormatBR(row.Labor),
			moneyparse.FormatBR(row.Tires),
			moneyparse.FormatBR(row.MaintenanceTotal),
			moneyparse.FormatBR(row.Fixed),
			moneyparse.FormatBR(row.General),
			moneyparse.FormatBR(row.Total),
			moneyparse.FormatBR(row.CostPerHour),
			moneyparse.FormatBR(row.CostPerHourNoFuel),
		})
		totals.Hours = totals.Hours.Add(row.Hours)
		totals.Liters = totals.Liters.Add(row.Liters)
		totals.Fuel = totals.Fuel.Add(row.Fuel)
		totals.Parts = totals.Parts.Add(row.Parts)
		totals.Labor = totals.Labor.Add(row.Labor)
		totals.Tires = totals.Tires.Add(row.Tires)
		totals.MaintenanceTotal = totals.MaintenanceTotal.Add(row.MaintenanceTotal)
		totals.Fixed = totals.Fixed.Add(row.Fixed)
		totals.General = totals.General.Add(row.General)
		totals.Total = totals.Total.Add(row.Total)
	}

	var litersPerHour, fuelPerHour, costPerHour, costPerHourNoFuel decimal.Decimal
	if !totals.Hours.IsZero() {
		litersPerHour = totals.Liters.Div(totals.Hours)
		fuelPerHour = totals.Fuel.Div(totals.Hours)
		costPerHour = totals.Total.Div(totals.Hours)
		costPerHourNoFuel = totals.Total.Sub(totals.Fuel).Div(totals.Hours)
	}
	rows = append(rows, []string{
		"TOTAL",
		"",
		moneyparse.FormatBR(totals.Hours),
		moneyparse.FormatBR(totals.Liters),
		moneyparse.FormatBR(litersPerHour),
		moneyparse.FormatBR(fuelPerHour),
		moneyparse.FormatBR(totals.Fuel),
		moneyparse.FormatBR(totals.Parts),
		moneyparse.FormatBR(totals.Labor),
		moneyparse.FormatBR(totals.Tires),
		moneyparse.FormatBR(totals.MaintenanceTotal),
		moneyparse.FormatBR(totals.Fixed),
		moneyparse.FormatBR(totals.General),
		moneyparse.FormatBR(totals.Total),
		moneyparse.FormatBR(costPerHour),
		moneyparse.FormatBR(costPerHourNoFuel),
	})

	return rows
}

// RenderCSV produces the closing-report CSV bytes: BOM, header, one row
// per machine, totals row.
func RenderCSV(report *aggregator.Report) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	w.UseCRLF = true

	if err := w.Write(closingHeader); err != nil {
		return nil, fmt.Errorf("writing closing report header: %w", err)
	}
	if err := w.WriteAll(closingRows(report)); err != nil {
		return nil, fmt.Errorf("writing closing report rows: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSV writes the closing report into dir using the period file name
// and returns the full path.
func WriteCSV(report *aggregator.Report, dir string) (string, error) {
	path := filepath.Join(dir, FileName(report, "csv"))
	data, err := RenderCSV(report)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing closing report CSV: %w", err)
	}
	log.Info("Closing report exported",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rows", Value: len(report.Closing)})
	return path, nil
}
