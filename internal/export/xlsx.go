package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fvieira/frota-csv/internal/aggregator"
	"fvieira/frota-csv/internal/logging"
)

const closingSheet = "Fechamento"

// RenderXLSX produces the closing-report workbook: a summary block
// followed by the same table the CSV export carries.
func RenderXLSX(report *aggregator.Report) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", closingSheet)

	_ = f.SetCellValue(closingSheet, "A1", "Fechamento de Máquinas")
	_ = f.SetCellValue(closingSheet, "A2", "Período")
	_ = f.SetCellValue(closingSheet, "B2", fmt.Sprintf("%s %d", report.Period.Label(), report.Period.Year))
	_ = f.SetCellValue(closingSheet, "A3", "Total Geral")
	_ = f.SetCellValue(closingSheet, "B3", report.Total.InexactFloat64())
	_ = f.SetCellValue(closingSheet, "A4", "Combustível")
	_ = f.SetCellValue(closingSheet, "B4", report.FuelTotal.InexactFloat64())
	_ = f.SetCellValue(closingSheet, "A5", "Manutenção")
	_ = f.SetCellValue(closingSheet, "B5", report.MaintenanceTotal.InexactFloat64())
	_ = f.SetCellValue(closingSheet, "A6", "Máquinas Ativas")
	_ = f.SetCellValue(closingSheet, "B6", report.ActiveMachines)

	headerRow := 8
	for col, title := range closingHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("building closing report XLSX: %w", err)
		}
		_ = f.SetCellValue(closingSheet, cell, title)
	}
	for i, row := range closingRows(report) {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			if err != nil {
				return nil, fmt.Errorf("building closing report XLSX: %w", err)
			}
			_ = f.SetCellValue(closingSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering closing report XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX writes the closing-report workbook into dir and returns the
// full path.
func WriteXLSX(report *aggregator.Report, dir string) (string, error) {
	data, err := RenderXLSX(report)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(report, "xlsx"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing closing report XLSX: %w", err)
	}
	log.Info("Closing report workbook exported", logging.Field{Key: "file", Value: path})
	return path, nil
}
